package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinmichaelchen/repo-view/internal/models"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, stripCodeFences(tt.in))
	}
}

func TestParseSummary(t *testing.T) {
	s, err := parseSummary("```json\n{\"summary\":\"Builds CSS tools.\",\"focus\":[\"Frontend\"]}\n```")
	require.NoError(t, err)
	require.Equal(t, "Builds CSS tools.", s.Summary)
	require.Equal(t, []string{"Frontend"}, s.Focus)

	s, err = parseSummary(`{"summary":"x"}`)
	require.NoError(t, err)
	require.Equal(t, []string{}, s.Focus)

	_, err = parseSummary("not json")
	require.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	lang := "CSS"
	desc := "A tiny theme"
	repos := []models.Repo{
		{Name: "theme", Language: &lang, Topics: []string{"css"}, Stars: 4, Description: &desc},
		{Name: "notes"},
		{Name: "dropped"},
	}

	msg := userMessage(models.Profile{Login: "octo", Followers: 2}, repos, 2)
	require.Contains(t, msg, "User: octo (N/A)")
	require.Contains(t, msg, "- theme [CSS] ★4 topics: css: A tiny theme")
	require.Contains(t, msg, "- notes [N/A] ★0")
	require.NotContains(t, msg, "dropped")
}

func TestSummarize(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"summary\":\"Web developer.\",\"focus\":[\"HTML\",\"CSS\"]}"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "test-key", "test-model", 0)
	s, err := c.Summarize(context.Background(), models.Profile{Login: "octo"}, nil)
	require.NoError(t, err)
	require.Equal(t, "test-model", gotModel)
	require.Equal(t, "Web developer.", s.Summary)
	require.Equal(t, []string{"HTML", "CSS"}, s.Focus)
	require.True(t, strings.HasPrefix(s.Summary, "Web"))
}
