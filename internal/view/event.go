package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownEvent = errors.New("unknown event")

type EventType string

const (
	EventNameFilter     EventType = "name_filter"
	EventLanguageFilter EventType = "language_filter"
	EventPrevPage       EventType = "prev_page"
	EventNextPage       EventType = "next_page"
	EventPageInput      EventType = "page_input"
	EventPageSize       EventType = "page_size"
)

// Event is a single user interaction. Value carries the raw input text for
// filter, page and size events.
type Event struct {
	Type  EventType `json:"type"`
	Value string    `json:"value"`
}

// Dispatch applies ev and returns the resulting payload. Page and size input
// that does not parse as an integer is rejected like an out of range value.
func (c *Controller) Dispatch(ev Event) (Payload, error) {
	switch ev.Type {
	case EventNameFilter:
		return c.OnNameFilterChanged(ev.Value), nil
	case EventLanguageFilter:
		return c.OnLanguageFilterChanged(ev.Value), nil
	case EventPrevPage:
		return c.OnPrevPage(), nil
	case EventNextPage:
		return c.OnNextPage(), nil
	case EventPageInput:
		n, err := strconv.Atoi(strings.TrimSpace(ev.Value))
		if err != nil {
			return c.Payload(), fmt.Errorf("%w: %q", ErrOutOfRange, ev.Value)
		}
		return c.OnPageInput(n)
	case EventPageSize:
		n, err := strconv.Atoi(strings.TrimSpace(ev.Value))
		if err != nil {
			return c.Payload(), fmt.Errorf("%w: %q", ErrInvalidPageSize, ev.Value)
		}
		return c.OnPageSizeChanged(n)
	default:
		return c.Payload(), fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

// IsRejected reports whether err is a page or size validation failure that
// renderers should ignore.
func IsRejected(err error) bool {
	return errors.Is(err, ErrOutOfRange) || errors.Is(err, ErrInvalidPageSize)
}
