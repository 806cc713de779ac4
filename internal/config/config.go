package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	GitHubAPIURL      string
	Topics            []string
	PageSize          int
	ReposPerPage      int
	ListenAddr        string
	RedisURL          string
	SessionTTL        time.Duration
	LogLevel          string
	ShutdownTimeout   time.Duration
	SummaryMaxRepos   int
	ArchiveConcurrent int

	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubAPIURL:      os.Getenv("GITHUB_API_URL"),
		Topics:            splitList(os.Getenv("REPO_VIEW_TOPICS")),
		PageSize:          intEnv("REPO_VIEW_PAGE_SIZE", 10),
		ReposPerPage:      intEnv("REPO_VIEW_REPOS_PER_PAGE", 100),
		ListenAddr:        os.Getenv("LISTEN_ADDR"),
		RedisURL:          os.Getenv("REDIS_URL"),
		SessionTTL:        durationEnv("SESSION_TTL", 30*time.Minute),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		ShutdownTimeout:   durationEnv("SHUTDOWN_TIMEOUT", 5*time.Second),
		SummaryMaxRepos:   intEnv("SUMMARY_MAX_REPOS", 20),
		ArchiveConcurrent: intEnv("ARCHIVE_CONCURRENCY", 5),

		SurrealURL:  os.Getenv("SURREAL_URL"),
		SurrealNS:   os.Getenv("SURREAL_NS"),
		SurrealDB:   os.Getenv("SURREAL_DB"),
		SurrealUser: os.Getenv("SURREAL_USER"),
		SurrealPass: os.Getenv("SURREAL_PASS"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   os.Getenv("LLM_MODEL"),
	}

	// The SDK appends /rpc automatically
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/rpc")
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/")

	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = "https://api.github.com"
	}
	if len(cfg.Topics) == 0 {
		cfg.Topics = []string{"javascript", "html", "css"}
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// intEnv falls back to def when the variable is unset, malformed or not
// positive.
func intEnv(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func durationEnv(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
