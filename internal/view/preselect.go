package view

import (
	"sort"

	"github.com/kevinmichaelchen/repo-view/internal/models"
)

// DefaultTopics is the allow-list used when no topics are configured.
var DefaultTopics = []string{"javascript", "html", "css"}

// PreselectByTopic keeps repos tagged with at least one of topics, newest
// update first. Repos with equal UpdatedAt keep their input order.
func PreselectByTopic(repos []models.Repo, topics []string) []models.Repo {
	allow := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		allow[t] = struct{}{}
	}

	out := make([]models.Repo, 0, len(repos))
	for _, r := range repos {
		for _, t := range r.Topics {
			if _, ok := allow[t]; ok {
				out = append(out, r)
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
