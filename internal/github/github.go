package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kevinmichaelchen/repo-view/internal/models"
)

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultPerPage = 100
)

// ErrNotFound is returned when GitHub answers 404, usually an unknown user.
var ErrNotFound = errors.New("not found")

// UpstreamError is any other non-2xx answer from GitHub.
type UpstreamError struct {
	Resource   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to fetch %s data: %d", e.Resource, e.StatusCode)
}

// Client is a thin wrapper around the unauthenticated GitHub REST API.
type Client struct {
	baseURL    string
	perPage    int
	httpClient *http.Client
	rest       *resty.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

func WithPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.perPage = n
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		perPage:    DefaultPerPage,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rest = resty.NewWithClient(c.httpClient).
		SetHeader("Accept", "application/vnd.github.v3+json")
	return c
}

// FetchProfile returns the public profile of username.
func (c *Client) FetchProfile(ctx context.Context, username string) (*models.Profile, error) {
	var u userResponse
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	if err := c.get(ctx, endpoint, "profile", &u); err != nil {
		return nil, err
	}
	p := u.toProfile()
	return &p, nil
}

// FetchRepos returns the first page of public repos owned by username, in
// the order GitHub lists them.
func (c *Client) FetchRepos(ctx context.Context, username string) ([]models.Repo, error) {
	var rs []repoResponse
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d", c.baseURL, url.PathEscape(username), c.perPage)
	if err := c.get(ctx, endpoint, "repos", &rs); err != nil {
		return nil, err
	}

	repos := make([]models.Repo, 0, len(rs))
	for _, r := range rs {
		repos = append(repos, r.toRepo())
	}
	return repos, nil
}

// --- internal ---

func (c *Client) get(ctx context.Context, endpoint, resource string, v any) error {
	res, err := c.rest.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", resource, endpoint, ErrNotFound)
	case !res.IsSuccess():
		return &UpstreamError{Resource: resource, StatusCode: res.StatusCode()}
	}

	if err := json.Unmarshal(res.Body(), v); err != nil {
		return fmt.Errorf("parsing %s response: %w", resource, err)
	}
	return nil
}

type userResponse struct {
	Login           string    `json:"login"`
	Name            *string   `json:"name"`
	AvatarURL       string    `json:"avatar_url"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	TwitterUsername *string   `json:"twitter_username"`
	Location        *string   `json:"location"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	PublicRepos     int       `json:"public_repos"`
}

type repoResponse struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	Language        *string   `json:"language"`
	Topics          []string  `json:"topics"`
	StargazersCount int       `json:"stargazers_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u userResponse) toProfile() models.Profile {
	return models.Profile{
		Login:           u.Login,
		Name:            u.Name,
		AvatarURL:       u.AvatarURL,
		URL:             u.HTMLURL,
		CreatedAt:       u.CreatedAt,
		TwitterUsername: u.TwitterUsername,
		Location:        u.Location,
		Followers:       u.Followers,
		Following:       u.Following,
		PublicRepos:     u.PublicRepos,
	}
}

func (r repoResponse) toRepo() models.Repo {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return models.Repo{
		Name:        r.Name,
		FullName:    r.FullName,
		Description: r.Description,
		URL:         r.HTMLURL,
		Language:    r.Language,
		Topics:      topics,
		Stars:       r.StargazersCount,
		UpdatedAt:   r.UpdatedAt,
	}
}
