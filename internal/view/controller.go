// Package view holds the repository list view state: topic preselection,
// filtering, pagination and the controller that ties them together.
//
// A Controller is not safe for concurrent use. Renderers own one controller
// per session and feed it one event at a time.
package view

import (
	"github.com/kevinmichaelchen/repo-view/internal/models"
)

type State int

const (
	StateEmpty State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "empty"
}

// Payload is everything a renderer needs to draw the current view.
type Payload struct {
	State              string          `json:"state"`
	Username           string          `json:"username,omitempty"`
	Profile            *models.Profile `json:"profile,omitempty"`
	VisibleItems       []models.Repo   `json:"visible_items"`
	CurrentPage        int             `json:"current_page"`
	TotalPages         int             `json:"total_pages"`
	PageSize           int             `json:"page_size"`
	TotalItems         int             `json:"total_items"`
	AvailableLanguages []string        `json:"available_languages"`
	Criteria           Criteria        `json:"criteria"`
}

// Renderer consumes payloads. It must not retain or mutate VisibleItems
// beyond the call.
type Renderer interface {
	Render(Payload)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Payload)

func (f RendererFunc) Render(p Payload) { f(p) }

// Snapshot is the serializable session state. The filtered set is derived
// from it on Restore.
type Snapshot struct {
	Username string         `json:"username"`
	Profile  models.Profile `json:"profile"`
	Repos    []models.Repo  `json:"repos"`
	Criteria Criteria       `json:"criteria"`
	Page     PageState      `json:"page"`
}

type Controller struct {
	topics   []string
	pageSize int
	renderer Renderer

	state     State
	username  string
	profile   models.Profile
	raw       []models.Repo
	preselect []models.Repo
	filtered  []models.Repo
	languages []string
	criteria  Criteria
	pager     *Paginator
}

type Option func(*Controller)

// WithTopics overrides DefaultTopics.
func WithTopics(topics []string) Option {
	return func(c *Controller) {
		if len(topics) > 0 {
			c.topics = topics
		}
	}
}

// WithPageSize sets the page size used for new sessions. Non-positive sizes
// are ignored.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		topics:   DefaultTopics,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

func (c *Controller) State() State { return c.state }

// Load starts a new session, replacing any previous one.
func (c *Controller) Load(username string, profile models.Profile, repos []models.Repo) Payload {
	c.load(username, profile, repos)
	return c.emit()
}

func (c *Controller) load(username string, profile models.Profile, repos []models.Repo) {
	c.Reset()
	c.state = StateActive
	c.username = username
	c.profile = profile
	c.raw = repos
	c.preselect = PreselectByTopic(repos, c.topics)
	c.languages = Languages(repos)
	c.refilter()
}

// Reset discards the session.
func (c *Controller) Reset() {
	c.state = StateEmpty
	c.username = ""
	c.profile = models.Profile{}
	c.raw = nil
	c.preselect = nil
	c.filtered = nil
	c.languages = nil
	c.criteria = Criteria{Language: AllLanguages}
	c.pager, _ = NewPaginator(c.pageSize)
}

func (c *Controller) OnNameFilterChanged(text string) Payload {
	c.criteria.NamePattern = text
	c.refilter()
	c.pager.Reset()
	return c.emit()
}

func (c *Controller) OnLanguageFilterChanged(lang string) Payload {
	if lang == "" {
		lang = AllLanguages
	}
	c.criteria.Language = lang
	c.refilter()
	c.pager.Reset()
	return c.emit()
}

// OnPrevPage is a no-op on the first page.
func (c *Controller) OnPrevPage() Payload {
	if p := c.pager.State().CurrentPage; p > 1 {
		_ = c.pager.GoTo(p - 1)
	}
	return c.emit()
}

// OnNextPage is a no-op on the last page.
func (c *Controller) OnNextPage() Payload {
	if p := c.pager.State().CurrentPage; p < c.pager.TotalPages() {
		_ = c.pager.GoTo(p + 1)
	}
	return c.emit()
}

// OnPageInput jumps to page n. Out of range pages leave the state unchanged
// and return ErrOutOfRange alongside the current payload.
func (c *Controller) OnPageInput(n int) (Payload, error) {
	if err := c.pager.GoTo(n); err != nil {
		return c.Payload(), err
	}
	return c.emit(), nil
}

// OnPageSizeChanged returns ErrInvalidPageSize for non-positive sizes.
func (c *Controller) OnPageSizeChanged(size int) (Payload, error) {
	if err := c.pager.SetPageSize(size); err != nil {
		return c.Payload(), err
	}
	return c.emit(), nil
}

// Payload returns the current view without notifying the renderer.
func (c *Controller) Payload() Payload {
	page := c.pager.State()
	p := Payload{
		State:              c.state.String(),
		Username:           c.username,
		VisibleItems:       Window(c.filtered, page),
		CurrentPage:        page.CurrentPage,
		TotalPages:         c.pager.TotalPages(),
		PageSize:           page.PageSize,
		TotalItems:         len(c.filtered),
		AvailableLanguages: c.languages,
		Criteria:           c.criteria,
	}
	if p.VisibleItems == nil {
		p.VisibleItems = []models.Repo{}
	}
	if p.AvailableLanguages == nil {
		p.AvailableLanguages = []string{}
	}
	if c.state == StateActive {
		profile := c.profile
		p.Profile = &profile
	}
	return p
}

// Preselected returns a copy of the session's topic preselection.
func (c *Controller) Preselected() []models.Repo {
	return append([]models.Repo(nil), c.preselect...)
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Username: c.username,
		Profile:  c.profile,
		Repos:    c.raw,
		Criteria: c.criteria,
		Page:     c.pager.State(),
	}
}

// Restore rebuilds an active session from s without notifying the renderer.
func (c *Controller) Restore(s Snapshot) error {
	c.load(s.Username, s.Profile, s.Repos)
	c.criteria = s.Criteria
	if c.criteria.Language == "" {
		c.criteria.Language = AllLanguages
	}
	c.refilter()
	return c.pager.Restore(s.Page)
}

// refilter recomputes the filtered set. With no criteria the view shows the
// topic preselection; any criteria filter the full list.
func (c *Controller) refilter() {
	if c.criteria.IsZero() {
		c.filtered = c.preselect
	} else {
		c.filtered = Filter(c.raw, c.criteria)
	}
	c.pager.SetTotal(len(c.filtered))
}

func (c *Controller) emit() Payload {
	p := c.Payload()
	if c.renderer != nil {
		c.renderer.Render(p)
	}
	return p
}
