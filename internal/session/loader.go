// Package session loads search sessions from GitHub into a view controller
// and keeps serialized sessions for the HTTP API.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kevinmichaelchen/repo-view/internal/logging"
	"github.com/kevinmichaelchen/repo-view/internal/models"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

var ErrEmptyUsername = errors.New("please enter a GitHub username")

// Fetcher returns a user's profile and repositories. *github.Client
// implements it.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.Profile, error)
	FetchRepos(ctx context.Context, username string) ([]models.Repo, error)
}

type Loader struct {
	fetcher Fetcher
}

func NewLoader(f Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load submits a new search: the controller is reset, then the profile and
// repos are fetched in turn. On error the controller stays empty and the
// fetch error is returned unchanged.
func (l *Loader) Load(ctx context.Context, c *view.Controller, username string) (view.Payload, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return view.Payload{}, ErrEmptyUsername
	}
	c.Reset()

	logger := logging.FromContext(ctx).With("user", username)
	prog := logging.NewProgress(logger)

	profile, err := l.fetcher.FetchProfile(ctx, username)
	if err != nil {
		logger.Debug("profile fetch failed", "err", err)
		return c.Payload(), err
	}

	repos, err := l.fetcher.FetchRepos(ctx, username)
	if err != nil {
		logger.Debug("repos fetch failed", "err", err)
		return c.Payload(), err
	}

	p := c.Load(username, *profile, repos)
	prog.Done("Loaded session", "repos", len(repos), "preselected", p.TotalItems)
	return p, nil
}

// Fetch loads a session into a fresh controller built from opts.
func (l *Loader) Fetch(ctx context.Context, username string, opts ...view.Option) (*view.Controller, error) {
	c := view.NewController(opts...)
	if _, err := l.Load(ctx, c, username); err != nil {
		return nil, fmt.Errorf("loading %s: %w", strings.TrimSpace(username), err)
	}
	return c, nil
}
