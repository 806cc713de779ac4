package view

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange      = errors.New("page out of range")
	ErrInvalidPageSize = errors.New("invalid page size")
)

// PageSizes are the sizes offered by the renderers. Any positive size is
// accepted.
var PageSizes = []int{5, 10, 20}

const DefaultPageSize = 10

type PageState struct {
	PageSize    int `json:"page_size"`
	CurrentPage int `json:"current_page"`
}

// TotalPages is ceil(n/size), 0 for an empty set.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Window returns the slice of items visible on state.CurrentPage, clipped to
// the bounds of items.
func Window[T any](items []T, state PageState) []T {
	if state.PageSize <= 0 {
		return nil
	}
	page := max(state.CurrentPage, 1)
	start := (page - 1) * state.PageSize
	if start >= len(items) {
		return items[len(items):]
	}
	end := min(start+state.PageSize, len(items))
	return items[start:end]
}

// Paginator tracks the page state for a set of n items.
type Paginator struct {
	size  int
	page  int
	total int
}

func NewPaginator(size int) (*Paginator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	return &Paginator{size: size, page: 1}, nil
}

// SetTotal sets the item count and clamps the current page into range.
func (p *Paginator) SetTotal(n int) {
	p.total = max(n, 0)
	p.clamp()
}

func (p *Paginator) TotalPages() int { return TotalPages(p.total, p.size) }

func (p *Paginator) State() PageState {
	return PageState{PageSize: p.size, CurrentPage: p.page}
}

// GoTo moves to page n. The state is unchanged on error.
func (p *Paginator) GoTo(n int) error {
	if n < 1 || n > p.TotalPages() {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, n, p.TotalPages())
	}
	p.page = n
	return nil
}

// SetPageSize changes the page size and returns to page 1.
func (p *Paginator) SetPageSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	p.size = size
	p.page = 1
	return nil
}

func (p *Paginator) Reset() { p.page = 1 }

// Restore applies a saved state, clamping the page into range.
func (p *Paginator) Restore(s PageState) error {
	if s.PageSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, s.PageSize)
	}
	p.size = s.PageSize
	p.page = s.CurrentPage
	p.clamp()
	return nil
}

func (p *Paginator) clamp() {
	p.page = min(p.page, max(1, p.TotalPages()))
	p.page = max(p.page, 1)
}
