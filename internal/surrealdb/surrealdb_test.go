package surrealdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/repo-view/internal/config"
	"github.com/kevinmichaelchen/repo-view/internal/models"
)

func TestRecordID(t *testing.T) {
	require.Equal(t, "octocat__hello-world", recordID("octocat/Hello-World"))
	require.Equal(t, "octocat", recordID("OctoCat"))
}

func TestRepoDataOmitsNilOptionals(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := repoData("octocat", models.Repo{Name: "x", FullName: "octocat/x"}, now)

	require.NotContains(t, data, "description")
	require.NotContains(t, data, "language")
	require.Equal(t, []string{}, data["topics"])
	require.Equal(t, "octocat", data["owner"])
	require.Equal(t, now, data["archived_at"])

	lang := "Go"
	data = repoData("octocat", models.Repo{Language: &lang}, now)
	require.Equal(t, "Go", data["language"])
}

func TestProfileDataOmitsNilOptionals(t *testing.T) {
	now := time.Now().UTC()
	loc := "Berlin"
	data := profileData(models.Profile{Login: "octo", Location: &loc, Followers: 3}, 12, now)

	require.NotContains(t, data, "name")
	require.NotContains(t, data, "twitter_username")
	require.Equal(t, "Berlin", data["location"])
	require.Equal(t, 12, data["repo_count"])
	require.Equal(t, 3, data["followers"])
}

func TestCountLanguages(t *testing.T) {
	got := countLanguages([]map[string]any{
		{"language": "Go"},
		{"language": nil},
		{"language": "HTML"},
		{},
		{"language": "Go"},
	})
	require.Equal(t, []LanguageCount{
		{Language: "Go", Count: 2},
		{Language: models.NotAvailable, Count: 2},
		{Language: "HTML", Count: 1},
	}, got)
}

func TestClientRoundTrip(t *testing.T) {
	if os.Getenv("SURREAL_URL") == "" {
		t.Skip("SURREAL_URL not set")
	}
	ctx := context.Background()

	db, err := NewClient(ctx, config.Load())
	require.NoError(t, err)
	defer func() { _ = db.Close(ctx) }()

	require.NoError(t, db.InitSchema(ctx))
	require.NoError(t, db.UpsertProfile(ctx, models.Profile{Login: "repo-view-test", CreatedAt: time.Now()}, 1))
	require.NoError(t, db.UpsertRepo(ctx, "repo-view-test", models.Repo{
		Name:      "demo",
		FullName:  "repo-view-test/demo",
		Topics:    []string{"html"},
		UpdatedAt: time.Now(),
	}))

	profiles, err := db.ListProfiles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, profiles)
}
