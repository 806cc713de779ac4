package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kevinmichaelchen/repo-view/internal/models"
)

type Client struct {
	client   *openai.Client
	model    string
	maxRepos int
}

func NewClient(baseURL, apiKey, model string, maxRepos int) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	if maxRepos <= 0 {
		maxRepos = 20
	}
	return &Client{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		maxRepos: maxRepos,
	}
}

const systemPrompt = `You are a technical recruiter reading a GitHub profile. Given the profile and a list of its repositories (name, language, topics, stars, description), produce a JSON object with:

1. "summary": A 2-3 sentence summary of what this developer builds and where their work is concentrated.
2. "focus": An array of 1-4 short focus areas (for example "Frontend", "CSS tooling", "Data science").

Return ONLY valid JSON. No markdown, no code fences.`

// Summarize describes the profile from at most maxRepos of repos, which
// should already be ordered by relevance.
func (c *Client) Summarize(ctx context.Context, p models.Profile, repos []models.Repo) (*models.ProfileSummary, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(p, repos, c.maxRepos)},
		},
		// No ResponseFormat: not all models support json_object mode.
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM call for %s: %w", p.Login, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned for %s", p.Login)
	}

	return parseSummary(resp.Choices[0].Message.Content)
}

func userMessage(p models.Profile, repos []models.Repo, maxRepos int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User: %s (%s)\n", p.Login, p.DisplayName())
	fmt.Fprintf(&b, "Location: %s\nFollowers: %d\nPublic repos: %d\n\nRepositories:\n",
		p.Place(), p.Followers, p.PublicRepos)

	if len(repos) > maxRepos {
		repos = repos[:maxRepos]
	}
	for _, r := range repos {
		fmt.Fprintf(&b, "- %s [%s] ★%d", r.Name, r.LanguageName(), r.Stars)
		if len(r.Topics) > 0 {
			fmt.Fprintf(&b, " topics: %s", strings.Join(r.Topics, ", "))
		}
		if r.Description != nil && *r.Description != "" {
			fmt.Fprintf(&b, ": %s", *r.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func parseSummary(content string) (*models.ProfileSummary, error) {
	content = stripCodeFences(content)

	var result models.ProfileSummary
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parsing LLM response: %w\nraw: %s", err, content)
	}
	if result.Focus == nil {
		result.Focus = []string{}
	}
	return &result, nil
}

// stripCodeFences removes markdown code fences that some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence (```json or ```)
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		// Remove closing fence
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
