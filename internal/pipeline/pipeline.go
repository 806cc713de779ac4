// Package pipeline archives a user's session: fetch from GitHub, store the
// profile and repos in SurrealDB, and optionally attach an AI summary.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kevinmichaelchen/repo-view/internal/logging"
	"github.com/kevinmichaelchen/repo-view/internal/models"
	"github.com/kevinmichaelchen/repo-view/internal/session"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

// Archive is the storage the pipeline writes to. *surrealdb.Client
// implements it.
type Archive interface {
	InitSchema(ctx context.Context) error
	UpsertProfile(ctx context.Context, p models.Profile, repoCount int) error
	UpsertRepo(ctx context.Context, owner string, r models.Repo) error
	UpdateSummary(ctx context.Context, login string, s models.ProfileSummary) error
}

type Summarizer interface {
	Summarize(ctx context.Context, p models.Profile, repos []models.Repo) (*models.ProfileSummary, error)
}

type Options struct {
	// Summarizer is optional; nil skips the AI summary.
	Summarizer  Summarizer
	Topics      []string
	Concurrency int
}

type Result struct {
	Profile     models.Profile
	Repos       int
	Preselected int
	Summary     *models.ProfileSummary
}

func Run(ctx context.Context, fetcher session.Fetcher, db Archive, username string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	if err := db.InitSchema(ctx); err != nil {
		return nil, err
	}

	// Step 1: Fetch the session
	logger.Info("Fetching from GitHub...", "user", username)
	ctrl, err := session.NewLoader(fetcher).Fetch(ctx, username, view.WithTopics(opts.Topics))
	if err != nil {
		return nil, err
	}
	snap := ctrl.Snapshot()
	res := &Result{
		Profile:     snap.Profile,
		Repos:       len(snap.Repos),
		Preselected: ctrl.Payload().TotalItems,
	}

	// Step 2: Upsert profile and repos
	if err := db.UpsertProfile(ctx, snap.Profile, len(snap.Repos)); err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 5
	}
	var done atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, repo := range snap.Repos {
		g.Go(func() error {
			if err := db.UpsertRepo(gCtx, snap.Profile.Login, repo); err != nil {
				return err
			}
			n := done.Add(1)
			if n%25 == 0 || int(n) == len(snap.Repos) {
				logger.Info("Upserted repos", "done", n, "total", len(snap.Repos))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("archiving repos: %w", err)
	}

	if opts.Summarizer == nil {
		return res, nil
	}

	// Step 3: Summarize, preferring the topic preselection
	summary, err := Summarize(ctx, opts.Summarizer, ctrl)
	if err != nil {
		logger.Warn("summary failed, archive kept without it", "err", err)
		return res, nil
	}
	if err := db.UpdateSummary(ctx, snap.Profile.Login, *summary); err != nil {
		logger.Warn("storing summary failed", "err", err)
		return res, nil
	}
	res.Summary = summary
	return res, nil
}

// Summarize asks s about the profile loaded in ctrl. The topic preselection
// goes first, followed by the remaining repos in listing order.
func Summarize(ctx context.Context, s Summarizer, ctrl *view.Controller) (*models.ProfileSummary, error) {
	snap := ctrl.Snapshot()
	preselected := ctrl.Preselected()

	seen := make(map[string]bool, len(preselected))
	ordered := make([]models.Repo, 0, len(snap.Repos))
	for _, r := range preselected {
		seen[r.FullName] = true
		ordered = append(ordered, r)
	}
	for _, r := range snap.Repos {
		if !seen[r.FullName] {
			ordered = append(ordered, r)
		}
	}
	return s.Summarize(ctx, snap.Profile, ordered)
}
