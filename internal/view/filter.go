package view

import (
	"strings"

	"github.com/kevinmichaelchen/repo-view/internal/models"
)

// AllLanguages disables the language predicate.
const AllLanguages = "all"

// Criteria is rebuilt from the filter inputs on every change.
type Criteria struct {
	NamePattern string `json:"name_pattern"`
	Language    string `json:"language"`
}

func (c Criteria) normalized() Criteria {
	c.NamePattern = strings.ToLower(strings.TrimSpace(c.NamePattern))
	if c.Language == "" {
		c.Language = AllLanguages
	}
	return c
}

// IsZero reports whether c constrains nothing.
func (c Criteria) IsZero() bool {
	n := c.normalized()
	return n.NamePattern == "" && n.Language == AllLanguages
}

// Match reports whether r satisfies both predicates.
func (c Criteria) Match(r models.Repo) bool {
	return c.normalized().match(r)
}

func (c Criteria) match(r models.Repo) bool {
	if c.NamePattern != "" && !strings.Contains(strings.ToLower(r.Name), c.NamePattern) {
		return false
	}
	if c.Language != AllLanguages && !r.HasLanguage(c.Language) {
		return false
	}
	return true
}

// Filter returns the repos matching c in input order. The result never
// aliases repos.
func Filter(repos []models.Repo, c Criteria) []models.Repo {
	c = c.normalized()
	out := make([]models.Repo, 0, len(repos))
	for _, r := range repos {
		if c.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Languages returns the distinct non-empty languages of repos in first-seen
// order.
func Languages(repos []models.Repo) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range repos {
		if r.Language == nil || *r.Language == "" {
			continue
		}
		if _, ok := seen[*r.Language]; ok {
			continue
		}
		seen[*r.Language] = struct{}{}
		out = append(out, *r.Language)
	}
	return out
}
