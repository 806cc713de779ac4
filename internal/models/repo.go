package models

import "time"

// NotAvailable is shown in place of optional fields GitHub leaves empty.
const NotAvailable = "N/A"

type Repo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description *string   `json:"description,omitempty"`
	URL         string    `json:"url"`
	Language    *string   `json:"language,omitempty"`
	Topics      []string  `json:"topics"`
	Stars       int       `json:"stars"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LanguageName returns the primary language or NotAvailable.
func (r Repo) LanguageName() string {
	if r.Language == nil || *r.Language == "" {
		return NotAvailable
	}
	return *r.Language
}

// HasLanguage reports whether the repo's primary language is exactly lang.
func (r Repo) HasLanguage(lang string) bool {
	return r.Language != nil && *r.Language == lang
}

type Profile struct {
	Login           string    `json:"login"`
	Name            *string   `json:"name,omitempty"`
	AvatarURL       string    `json:"avatar_url"`
	URL             string    `json:"url"`
	CreatedAt       time.Time `json:"created_at"`
	TwitterUsername *string   `json:"twitter_username,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	PublicRepos     int       `json:"public_repos"`
}

func (p Profile) DisplayName() string { return orNotAvailable(p.Name) }

func (p Profile) Twitter() string { return orNotAvailable(p.TwitterUsername) }

func (p Profile) Place() string { return orNotAvailable(p.Location) }

type ProfileSummary struct {
	Summary string   `json:"summary"`
	Focus   []string `json:"focus"`
}

func orNotAvailable(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}
