package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/surrealdb/surrealdb.go"
	sdkmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/kevinmichaelchen/repo-view/internal/config"
	"github.com/kevinmichaelchen/repo-view/internal/models"
)

type Client struct {
	db *sdk.DB
}

func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	db, err := sdk.FromEndpointURLString(ctx, cfg.SurrealURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, sdk.Auth{
		Namespace: cfg.SurrealNS,
		Database:  cfg.SurrealDB,
		Username:  cfg.SurrealUser,
		Password:  cfg.SurrealPass,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("signing in: %w", err)
	}

	if err := db.Use(ctx, cfg.SurrealNS, cfg.SurrealDB); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("selecting ns/db: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close(ctx)
}

const schema = `
DEFINE TABLE IF NOT EXISTS profile SCHEMAFULL;

DEFINE FIELD IF NOT EXISTS login            ON TABLE profile TYPE string;
DEFINE FIELD IF NOT EXISTS name             ON TABLE profile TYPE option<string>;
DEFINE FIELD IF NOT EXISTS avatar_url       ON TABLE profile TYPE string;
DEFINE FIELD IF NOT EXISTS url              ON TABLE profile TYPE string;
DEFINE FIELD IF NOT EXISTS created_at       ON TABLE profile TYPE datetime;
DEFINE FIELD IF NOT EXISTS twitter_username ON TABLE profile TYPE option<string>;
DEFINE FIELD IF NOT EXISTS location         ON TABLE profile TYPE option<string>;
DEFINE FIELD IF NOT EXISTS followers        ON TABLE profile TYPE int;
DEFINE FIELD IF NOT EXISTS following        ON TABLE profile TYPE int;
DEFINE FIELD IF NOT EXISTS public_repos     ON TABLE profile TYPE int;
DEFINE FIELD IF NOT EXISTS repo_count       ON TABLE profile TYPE int;
DEFINE FIELD IF NOT EXISTS ai_summary       ON TABLE profile TYPE option<string>;
DEFINE FIELD IF NOT EXISTS ai_focus         ON TABLE profile TYPE option<array<string>>;
DEFINE FIELD IF NOT EXISTS archived_at      ON TABLE profile TYPE datetime;

DEFINE INDEX IF NOT EXISTS idx_login ON TABLE profile FIELDS login UNIQUE;

DEFINE TABLE IF NOT EXISTS repo SCHEMAFULL;

DEFINE FIELD IF NOT EXISTS owner       ON TABLE repo TYPE string;
DEFINE FIELD IF NOT EXISTS name        ON TABLE repo TYPE string;
DEFINE FIELD IF NOT EXISTS full_name   ON TABLE repo TYPE string;
DEFINE FIELD IF NOT EXISTS description ON TABLE repo TYPE option<string>;
DEFINE FIELD IF NOT EXISTS url         ON TABLE repo TYPE string;
DEFINE FIELD IF NOT EXISTS language    ON TABLE repo TYPE option<string>;
DEFINE FIELD IF NOT EXISTS topics      ON TABLE repo TYPE array<string>;
DEFINE FIELD IF NOT EXISTS stars       ON TABLE repo TYPE int;
DEFINE FIELD IF NOT EXISTS updated_at  ON TABLE repo TYPE datetime;
DEFINE FIELD IF NOT EXISTS archived_at ON TABLE repo TYPE datetime;

DEFINE INDEX IF NOT EXISTS idx_full_name ON TABLE repo FIELDS full_name UNIQUE;
DEFINE INDEX IF NOT EXISTS idx_owner     ON TABLE repo FIELDS owner;
`

func (c *Client) InitSchema(ctx context.Context) error {
	_, err := sdk.Query[any](ctx, c.db, schema, nil)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// UpsertProfile stores p along with the number of repos archived for it.
func (c *Client) UpsertProfile(ctx context.Context, p models.Profile, repoCount int) error {
	_, err := sdk.Query[any](ctx, c.db,
		`UPSERT type::thing("profile", $id) MERGE $data`,
		map[string]any{
			"id":   recordID(p.Login),
			"data": profileData(p, repoCount, time.Now().UTC()),
		})
	if err != nil {
		return fmt.Errorf("upserting profile %s: %w", p.Login, err)
	}
	return nil
}

func (c *Client) UpsertRepo(ctx context.Context, owner string, r models.Repo) error {
	_, err := sdk.Query[any](ctx, c.db,
		`UPSERT type::thing("repo", $id) MERGE $data`,
		map[string]any{
			"id":   recordID(r.FullName),
			"data": repoData(owner, r, time.Now().UTC()),
		})
	if err != nil {
		return fmt.Errorf("upserting %s: %w", r.FullName, err)
	}
	return nil
}

func (c *Client) UpdateSummary(ctx context.Context, login string, s models.ProfileSummary) error {
	focus := s.Focus
	if focus == nil {
		focus = []string{}
	}
	_, err := sdk.Query[any](ctx, c.db,
		`UPDATE profile SET ai_summary = $ai_summary, ai_focus = $ai_focus WHERE login = $login`,
		map[string]any{
			"login":      login,
			"ai_summary": s.Summary,
			"ai_focus":   focus,
		})
	if err != nil {
		return fmt.Errorf("updating summary for %s: %w", login, err)
	}
	return nil
}

type ArchivedProfile struct {
	Login      string                   `json:"login"`
	RepoCount  int                      `json:"repo_count"`
	Followers  int                      `json:"followers"`
	AISummary  *string                  `json:"ai_summary"`
	ArchivedAt sdkmodels.CustomDateTime `json:"archived_at"`
}

func (c *Client) ListProfiles(ctx context.Context) ([]ArchivedProfile, error) {
	results, err := sdk.Query[[]ArchivedProfile](ctx, c.db,
		`SELECT login, repo_count, followers, ai_summary, archived_at FROM profile ORDER BY archived_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

type LanguageCount struct {
	Language string
	Count    int
}

// GetLanguageBreakdown counts archived repos per language. Repos without a
// language are counted under models.NotAvailable.
func (c *Client) GetLanguageBreakdown(ctx context.Context) ([]LanguageCount, error) {
	// Fetch languages and compute in Go
	results, err := sdk.Query[[]map[string]any](ctx, c.db,
		`SELECT language FROM repo`, nil)
	if err != nil {
		return nil, fmt.Errorf("getting languages: %w", err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return countLanguages((*results)[0].Result), nil
}

func countLanguages(rows []map[string]any) []LanguageCount {
	counts := map[string]int{}
	var order []string
	for _, row := range rows {
		lang, _ := row["language"].(string)
		if lang == "" {
			lang = models.NotAvailable
		}
		if _, ok := counts[lang]; !ok {
			order = append(order, lang)
		}
		counts[lang]++
	}
	out := make([]LanguageCount, 0, len(order))
	for _, lang := range order {
		out = append(out, LanguageCount{Language: lang, Count: counts[lang]})
	}
	return out
}

func recordID(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "/", "__")
}

// profileData and repoData include only non-nil optional fields to avoid
// CBOR NULL vs SurrealDB NONE mismatch.
func profileData(p models.Profile, repoCount int, now time.Time) map[string]any {
	data := map[string]any{
		"login":        p.Login,
		"avatar_url":   p.AvatarURL,
		"url":          p.URL,
		"created_at":   p.CreatedAt.UTC(),
		"followers":    p.Followers,
		"following":    p.Following,
		"public_repos": p.PublicRepos,
		"repo_count":   repoCount,
		"archived_at":  now,
	}
	if p.Name != nil {
		data["name"] = *p.Name
	}
	if p.TwitterUsername != nil {
		data["twitter_username"] = *p.TwitterUsername
	}
	if p.Location != nil {
		data["location"] = *p.Location
	}
	return data
}

func repoData(owner string, r models.Repo, now time.Time) map[string]any {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	data := map[string]any{
		"owner":       owner,
		"name":        r.Name,
		"full_name":   r.FullName,
		"url":         r.URL,
		"topics":      topics,
		"stars":       r.Stars,
		"updated_at":  r.UpdatedAt.UTC(),
		"archived_at": now,
	}
	if r.Description != nil {
		data["description"] = *r.Description
	}
	if r.Language != nil {
		data["language"] = *r.Language
	}
	return data
}
