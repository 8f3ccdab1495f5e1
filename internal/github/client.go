// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-profile-analyzer/internal/errors"
	"github-profile-analyzer/internal/metrics"
	"github-profile-analyzer/internal/model"
)

const (
	DefaultBaseURL        = "https://api.github.com/"
	DefaultPageSize       = 100
	DefaultProfileTimeout = 10 * time.Second
	DefaultPageTimeout    = 15 * time.Second
	DefaultUserAgent      = "GitHub-Profile-Analyzer"
)

// Options configures a Client. It is copied at construction and never mutated afterwards.
type Options struct {
	BaseURL        string
	Token          string
	PageSize       int
	ProfileTimeout time.Duration
	PageTimeout    time.Duration
	UserAgent      string
	// HTTPClient is the transport used for unauthenticated calls and wrapped by the
	// token source when Token is set. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.ProfileTimeout <= 0 {
		o.ProfileTimeout = DefaultProfileTimeout
	}
	if o.PageTimeout <= 0 {
		o.PageTimeout = DefaultPageTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	opts   Options
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// When opts.Token is set every request is authenticated through a static oauth2 token source;
// otherwise requests go out unauthenticated and are subject to stricter upstream limits.
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	opts = opts.withDefaults()

	httpClient := opts.HTTPClient
	if opts.Token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	}

	gh := github.NewClient(httpClient)
	baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL %q: %w", opts.BaseURL, err)
	}
	gh.BaseURL = baseURL
	gh.UserAgent = opts.UserAgent

	return &Client{
		gh:     gh,
		opts:   opts,
		logger: logger,
	}, nil
}

// PageSize returns the number of repositories requested per page.
func (c *Client) PageSize() int {
	return c.opts.PageSize
}

// FetchProfile fetches a user's public profile and translates it to our internal model.
func (c *Client) FetchProfile(ctx context.Context, username string) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ProfileTimeout)
	defer cancel()

	c.logger.Info("Fetching user data from GitHub API", "username", username)
	start := time.Now()
	user, resp, err := c.gh.Users.Get(ctx, username)
	observe("user", start, resp, err)
	if err != nil {
		c.logger.Error("Failed to fetch user data", "username", username, "error", err)
		return nil, classify(err, username)
	}

	c.logger.Info("Successfully fetched user data", "username", username, "status", resp.StatusCode)
	return toInternalProfile(user), nil
}

// FetchAllRepositories fetches every public repository owned by username, most recently
// updated first. Pages are requested until one comes back shorter than the page size;
// upstream pagination links and counts are not consulted. A failed page fails the whole call.
func (c *Client) FetchAllRepositories(ctx context.Context, username string) ([]model.Repository, error) {
	var allRepos []model.Repository

	opts := &github.RepositoryListByUserOptions{
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: c.opts.PageSize,
			Page:    1,
		},
	}

	for {
		repos, err := c.fetchRepositoryPage(ctx, username, opts)
		if err != nil {
			c.logger.Error("Failed to fetch repositories", "username", username, "page", opts.Page, "error", err)
			return nil, err
		}

		for _, repo := range repos {
			allRepos = append(allRepos, toInternalRepository(repo))
		}

		c.logger.Debug("Fetched repositories page", "username", username, "page", opts.Page,
			"repos_in_page", len(repos), "total_so_far", len(allRepos))

		if len(repos) < c.opts.PageSize {
			break
		}
		opts.Page++
	}

	c.logger.Info("Successfully fetched all repositories", "username", username,
		"total_repos", len(allRepos), "pages", opts.Page)
	return allRepos, nil
}

func (c *Client) fetchRepositoryPage(ctx context.Context, username string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.PageTimeout)
	defer cancel()

	start := time.Now()
	repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
	observe("repos", start, resp, err)
	if err != nil {
		return nil, classify(err, username)
	}
	return repos, nil
}

// classify translates a go-github failure into a domain error.
// 404 → NotFound, 403 → RateLimited, 401 → Unauthorized, anything else → Upstream.
func classify(err error, username string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return custom_errors.RateLimited(err)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return custom_errors.RateLimited(err)
	}

	status, detail := 0, ""
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		detail = respErr.Message
		if respErr.Response != nil {
			status = respErr.Response.StatusCode
		}
	} else if errors.Is(err, context.DeadlineExceeded) {
		detail = "request timed out"
	}

	switch status {
	case http.StatusNotFound:
		return custom_errors.NotFound(fmt.Sprintf("GitHub user '%s' not found", username), err)
	case http.StatusForbidden:
		return custom_errors.RateLimited(err)
	case http.StatusUnauthorized:
		return custom_errors.Unauthorized(err)
	default:
		return custom_errors.Upstream(status, detail, err)
	}
}

func observe(endpoint string, start time.Time, resp *github.Response, err error) {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	metrics.RecordUpstreamRequest(endpoint, metrics.Outcome(err), status, time.Since(start))
}

// toInternalProfile translates a github.User object to our internal model.Profile.
func toInternalProfile(u *github.User) *model.Profile {
	return &model.Profile{
		Username:    model.NormalizeUsername(u.GetLogin()),
		Name:        u.GetName(),
		AvatarURL:   u.GetAvatarURL(),
		Bio:         u.GetBio(),
		Location:    u.GetLocation(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		ProfileURL:  u.GetHTMLURL(),
		CreatedAt:   u.GetCreatedAt().Time,
	}
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return model.Repository{
		GithubID:      r.GetID(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		URL:           r.GetHTMLURL(),
		Description:   r.Description,
		Language:      r.Language,
		StarsCount:    r.GetStargazersCount(),
		ForksCount:    r.GetForksCount(),
		WatchersCount: r.GetWatchersCount(),
		Size:          r.GetSize(),
		Topics:        topics,
		License:       licenseJSON(r.License),
		IsFork:        r.GetFork(),
		RepoCreatedAt: r.GetCreatedAt().Time,
		RepoUpdatedAt: r.GetUpdatedAt().Time,
	}
}

// licenseJSON keeps the upstream license object opaque; it is stored as-is.
func licenseJSON(l *github.License) []byte {
	if l == nil {
		return nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil
	}
	return b
}
