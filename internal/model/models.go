// internal/model/models.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is a GitHub user profile as persisted by this service.
// ID, LastRefreshedAt and FetchGeneration are owned by the service; the rest mirrors upstream.
type Profile struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	AvatarURL       string    `json:"avatar_url"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	ProfileURL      string    `json:"profile_url"`
	CreatedAt       time.Time `json:"created_at"`
	LastRefreshedAt time.Time `json:"updated_at"`
	FetchGeneration uuid.UUID `json:"fetch_generation"`
}

// ProfileSummary is the subset of a profile returned by listings.
type ProfileSummary struct {
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	AvatarURL       string    `json:"avatar_url"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	LastRefreshedAt time.Time `json:"updated_at"`
}

// Repository is a point-in-time snapshot of one upstream repository.
type Repository struct {
	GithubID      int64     `json:"github_id"`
	ProfileID     int64     `json:"profile_id,omitempty"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	URL           string    `json:"html_url"`
	Description   *string   `json:"description"`
	Language      *string   `json:"language"`
	StarsCount    int       `json:"stargazers_count"`
	ForksCount    int       `json:"forks_count"`
	WatchersCount int       `json:"watchers_count"`
	Size          int       `json:"size"`
	Topics        []string  `json:"topics"`
	License       []byte    `json:"license,omitempty"`
	IsFork        bool      `json:"is_fork"`
	RepoCreatedAt time.Time `json:"created_at"`
	RepoUpdatedAt time.Time `json:"updated_at"`
}

// LanguageName returns the primary language or "" when upstream reported none.
func (r Repository) LanguageName() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}

type StarredRepo struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
	URL   string `json:"url"`
}

type ForkedRepo struct {
	Name  string `json:"name"`
	Forks int    `json:"forks"`
	URL   string `json:"url"`
}

type RecentRepo struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updated_at"`
	Language  *string   `json:"language"`
	Stars     int       `json:"stars"`
}

// AnalysisResult holds the statistics derived from a profile's repository snapshot.
type AnalysisResult struct {
	ProfileID           int64          `json:"profile_id"`
	TotalStars          int64          `json:"total_stars"`
	TotalForks          int64          `json:"total_forks"`
	TotalWatchers       int64          `json:"total_watchers"`
	TotalSize           int64          `json:"total_size"`
	RepoCount           int            `json:"repo_count"`
	OriginalRepoCount   int            `json:"original_repo_count"`
	ForkedRepoCount     int            `json:"forked_repo_count"`
	AverageStarsPerRepo int            `json:"average_stars_per_repo"`
	TopLanguages        []string       `json:"top_languages"`
	LanguageBreakdown   map[string]int `json:"language_breakdown"`
	TopTopics           []string       `json:"top_topics"`
	TopicBreakdown      map[string]int `json:"topic_breakdown"`
	MostStarredRepo     StarredRepo    `json:"most_starred_repo"`
	MostForkedRepo      ForkedRepo     `json:"most_forked_repo"`
	RecentRepositories  []RecentRepo   `json:"recent_repositories"`
	AnalyzedAt          time.Time      `json:"analysis_date"`
	FetchGeneration     uuid.UUID      `json:"fetch_generation"`
}

// NormalizeUsername lower-cases and trims a username; GitHub logins are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
