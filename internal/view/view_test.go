package view

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/repo-view/internal/models"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func repo(name, lang string, day int, topics ...string) models.Repo {
	r := models.Repo{
		Name:      name,
		FullName:  "octo/" + name,
		Topics:    topics,
		UpdatedAt: base.AddDate(0, 0, day),
	}
	if lang != "" {
		r.Language = &lang
	}
	return r
}

func names(repos []models.Repo) []string {
	out := make([]string, len(repos))
	for i, r := range repos {
		out[i] = r.Name
	}
	return out
}

func randomRepos(rng *rand.Rand, n int) []models.Repo {
	langs := []string{"", "Go", "Python", "JavaScript"}
	topics := []string{"html", "css", "javascript", "go", "cli"}
	repos := make([]models.Repo, n)
	for i := range repos {
		var ts []string
		for _, t := range topics {
			if rng.Intn(3) == 0 {
				ts = append(ts, t)
			}
		}
		repos[i] = repo(fmt.Sprintf("Repo-%d", i), langs[rng.Intn(len(langs))], rng.Intn(10), ts...)
	}
	return repos
}

func TestPreselectByTopic(t *testing.T) {
	repos := []models.Repo{
		repo("old-html", "", 1, "html"),
		repo("no-topics", "Go", 9),
		repo("new-css", "CSS", 5, "css", "design"),
		repo("tie-a", "", 3, "javascript"),
		repo("go-only", "Go", 8, "go"),
		repo("tie-b", "", 3, "html"),
	}

	got := PreselectByTopic(repos, DefaultTopics)
	require.Equal(t, []string{"new-css", "tie-a", "tie-b", "old-html"}, names(got))
}

func TestPreselectByTopicEmpty(t *testing.T) {
	require.Empty(t, PreselectByTopic(nil, DefaultTopics))
	require.Empty(t, PreselectByTopic([]models.Repo{repo("a", "", 0)}, DefaultTopics))
	require.Empty(t, PreselectByTopic([]models.Repo{repo("a", "", 0, "html")}, nil))
}

func TestPreselectByTopicProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	allow := map[string]bool{"javascript": true, "html": true, "css": true}

	for i := 0; i < 50; i++ {
		repos := randomRepos(rng, rng.Intn(30))
		got := PreselectByTopic(repos, DefaultTopics)

		index := make(map[string]int, len(repos))
		for j, r := range repos {
			index[r.Name] = j
		}
		for j, r := range got {
			_, ok := index[r.Name]
			require.True(t, ok, "output must be a subset of the input")

			tagged := false
			for _, tp := range r.Topics {
				tagged = tagged || allow[tp]
			}
			require.True(t, tagged, "%s has no allowed topic", r.Name)

			if j > 0 {
				prev := got[j-1]
				require.False(t, r.UpdatedAt.After(prev.UpdatedAt), "not sorted by recency")
				if r.UpdatedAt.Equal(prev.UpdatedAt) {
					require.Less(t, index[prev.Name], index[r.Name], "tie order not preserved")
				}
			}
		}
	}
}

func TestFilter(t *testing.T) {
	repos := []models.Repo{
		repo("Dotfiles", "Shell", 0),
		repo("go-kit", "Go", 0),
		repo("gopher-js", "JavaScript", 0),
		repo("notes", "", 0),
		repo("GoLand-themes", "Go", 0),
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"zero criteria", Criteria{}, []string{"Dotfiles", "go-kit", "gopher-js", "notes", "GoLand-themes"}},
		{"all sentinel", Criteria{Language: AllLanguages}, []string{"Dotfiles", "go-kit", "gopher-js", "notes", "GoLand-themes"}},
		{"case insensitive name", Criteria{NamePattern: "GO"}, []string{"go-kit", "gopher-js", "GoLand-themes"}},
		{"trimmed name", Criteria{NamePattern: "  dot "}, []string{"Dotfiles"}},
		{"language", Criteria{Language: "Go"}, []string{"go-kit", "GoLand-themes"}},
		{"name and language", Criteria{NamePattern: "go", Language: "JavaScript"}, []string{"gopher-js"}},
		{"language is exact", Criteria{Language: "go"}, []string{}},
		{"no match", Criteria{NamePattern: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, names(Filter(repos, tt.criteria)))
		})
	}
}

func TestFilterProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	patterns := []string{"", "repo", "1", "-2", "x"}
	langs := []string{AllLanguages, "Go", "Python", "Rust"}

	for i := 0; i < 50; i++ {
		repos := randomRepos(rng, rng.Intn(25))
		require.Equal(t, repos, append([]models.Repo{}, Filter(repos, Criteria{Language: AllLanguages})...))

		c := Criteria{NamePattern: patterns[rng.Intn(len(patterns))], Language: langs[rng.Intn(len(langs))]}
		got := Filter(repos, c)
		require.LessOrEqual(t, len(got), len(repos))
		for _, r := range got {
			require.True(t, c.Match(r))
		}
	}
}

func TestLanguages(t *testing.T) {
	repos := []models.Repo{
		repo("a", "Go", 0),
		repo("b", "", 0),
		repo("c", "Python", 0),
		repo("d", "Go", 0),
		repo("e", "Shell", 0),
	}
	require.Equal(t, []string{"Go", "Python", "Shell"}, Languages(repos))
	require.Equal(t, []string{}, Languages(nil))
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ n, size, want int }{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{3, 5, 1},
		{20, 10, 2},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TotalPages(tt.n, tt.size), "n=%d size=%d", tt.n, tt.size)
	}
}

func TestWindowReconstructsSequence(t *testing.T) {
	for n := 0; n <= 23; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for _, size := range []int{1, 3, 5, 10, 20} {
			var joined []int
			total := TotalPages(n, size)
			for page := 1; page <= total; page++ {
				joined = append(joined, Window(items, PageState{PageSize: size, CurrentPage: page})...)
			}
			if n == 0 {
				require.Empty(t, joined)
				continue
			}
			require.Equal(t, items, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestWindowPastEnd(t *testing.T) {
	items := []int{1, 2, 3}
	require.Empty(t, Window(items, PageState{PageSize: 5, CurrentPage: 2}))
	require.Equal(t, []int{3}, Window(items, PageState{PageSize: 2, CurrentPage: 2}))
	require.Empty(t, Window([]int(nil), PageState{PageSize: 5, CurrentPage: 1}))
}

func TestPaginator(t *testing.T) {
	_, err := NewPaginator(0)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	p, err := NewPaginator(5)
	require.NoError(t, err)

	p.SetTotal(0)
	require.Equal(t, 0, p.TotalPages())
	require.Equal(t, 1, p.State().CurrentPage)
	require.ErrorIs(t, p.GoTo(1), ErrOutOfRange)

	p.SetTotal(12)
	require.Equal(t, 3, p.TotalPages())
	require.NoError(t, p.GoTo(3))
	require.NoError(t, p.GoTo(3))
	require.Equal(t, 3, p.State().CurrentPage)

	require.ErrorIs(t, p.GoTo(0), ErrOutOfRange)
	require.ErrorIs(t, p.GoTo(4), ErrOutOfRange)
	require.Equal(t, 3, p.State().CurrentPage)

	require.ErrorIs(t, p.SetPageSize(-1), ErrInvalidPageSize)
	require.Equal(t, PageState{PageSize: 5, CurrentPage: 3}, p.State())

	require.NoError(t, p.SetPageSize(10))
	require.Equal(t, PageState{PageSize: 10, CurrentPage: 1}, p.State())
	require.Equal(t, 2, p.TotalPages())

	require.NoError(t, p.GoTo(2))
	p.SetTotal(4)
	require.Equal(t, 1, p.State().CurrentPage)
}
