// internal/github/client_test.go
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "github-profile-analyzer/internal/errors"
)

// setupTestClient creates a httptest server and a client pointing to it.
func setupTestClient(t *testing.T, handler http.Handler, opts Options) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts.BaseURL = server.URL
	opts.HTTPClient = server.Client()
	client, err := NewClient(opts, logger)
	require.NoError(t, err)

	return client, server
}

// repoPage renders n repository objects starting at id offset+1.
func repoPage(offset, n int) []byte {
	repos := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		id := offset + i
		repos = append(repos, map[string]any{
			"id":               id,
			"name":             fmt.Sprintf("repo-%d", id),
			"full_name":        fmt.Sprintf("octocat/repo-%d", id),
			"html_url":         fmt.Sprintf("https://github.com/octocat/repo-%d", id),
			"stargazers_count": id,
			"topics":           []string{"go"},
			"updated_at":       "2024-01-01T00:00:00Z",
			"created_at":       "2020-01-01T00:00:00Z",
		})
	}
	b, _ := json.Marshal(repos)
	return b
}

// paginatedHandler serves total repositories in pages of perPage and counts requests.
func paginatedHandler(t *testing.T, total, perPage int, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, strconv.Itoa(perPage), q.Get("per_page"))
		assert.Equal(t, "updated", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("direction"))

		page, err := strconv.Atoi(q.Get("page"))
		require.NoError(t, err)
		offset := (page - 1) * perPage
		n := total - offset
		if n > perPage {
			n = perPage
		}
		if n < 0 {
			n = 0
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(repoPage(offset, n))
	}
}

func TestClient_FetchProfile(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"login": "Octocat", "name": "The Octocat", "avatar_url": "https://avatars/1",
			"bio": "hi", "location": "SF", "public_repos": 8, "followers": 100, "following": 9,
			"html_url": "https://github.com/octocat", "created_at": "2011-01-25T18:44:36Z"}`)
	})
	client, _ := setupTestClient(t, handler, Options{})

	profile, err := client.FetchProfile(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Username)
	assert.Equal(t, "The Octocat", profile.Name)
	assert.Equal(t, "https://avatars/1", profile.AvatarURL)
	assert.Equal(t, 8, profile.PublicRepos)
	assert.Equal(t, 100, profile.Followers)
	assert.Equal(t, 9, profile.Following)
	assert.Equal(t, "https://github.com/octocat", profile.ProfileURL)
	assert.Equal(t, time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC), profile.CreatedAt.UTC())
}

func TestClient_FetchAllRepositories_Pagination(t *testing.T) {
	t.Run("stops at the first short page", func(t *testing.T) {
		var calls int32
		client, _ := setupTestClient(t, paginatedHandler(t, 250, 100, &calls), Options{})

		repos, err := client.FetchAllRepositories(context.Background(), "octocat")

		require.NoError(t, err)
		assert.Len(t, repos, 250)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		assert.Equal(t, int64(1), repos[0].GithubID)
		assert.Equal(t, int64(250), repos[249].GithubID)
		assert.Equal(t, []string{"go"}, repos[0].Topics)
	})

	t.Run("exact multiple fetches one extra empty page", func(t *testing.T) {
		var calls int32
		client, _ := setupTestClient(t, paginatedHandler(t, 200, 100, &calls), Options{})

		repos, err := client.FetchAllRepositories(context.Background(), "octocat")

		require.NoError(t, err)
		assert.Len(t, repos, 200)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("no repositories", func(t *testing.T) {
		var calls int32
		client, _ := setupTestClient(t, paginatedHandler(t, 0, 100, &calls), Options{})

		repos, err := client.FetchAllRepositories(context.Background(), "octocat")

		require.NoError(t, err)
		assert.Empty(t, repos)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("honours a custom page size", func(t *testing.T) {
		var calls int32
		client, _ := setupTestClient(t, paginatedHandler(t, 7, 3, &calls), Options{PageSize: 3})

		repos, err := client.FetchAllRepositories(context.Background(), "octocat")

		require.NoError(t, err)
		assert.Len(t, repos, 7)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("a failed page aborts the whole fetch", func(t *testing.T) {
		var calls int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write(repoPage(0, 100))
		})
		client, _ := setupTestClient(t, handler, Options{})

		repos, err := client.FetchAllRepositories(context.Background(), "octocat")

		require.Error(t, err)
		assert.Nil(t, repos)
		assert.Equal(t, custom_errors.KindUpstream, custom_errors.KindOf(err))
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		headers    map[string]string
		wantKind   custom_errors.Kind
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", status: http.StatusNotFound, wantKind: custom_errors.KindNotFound},
		{name: "forbidden", status: http.StatusForbidden, wantKind: custom_errors.KindRateLimited},
		{
			name:     "primary rate limit",
			status:   http.StatusForbidden,
			headers:  map[string]string{"X-RateLimit-Remaining": "0", "X-RateLimit-Reset": strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)},
			wantKind: custom_errors.KindRateLimited,
		},
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: custom_errors.KindUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, wantKind: custom_errors.KindUpstream, wantStatus: http.StatusInternalServerError, wantMsg: "GitHub API error: nope"},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, wantKind: custom_errors.KindUpstream, wantStatus: http.StatusUnprocessableEntity, wantMsg: "GitHub API error: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprintln(w, `{"message": "nope"}`)
			})
			client, _ := setupTestClient(t, handler, Options{})

			_, err := client.FetchProfile(context.Background(), "octocat")

			require.Error(t, err)
			var domainErr *custom_errors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantKind, domainErr.Kind)
			assert.Equal(t, tt.wantStatus, domainErr.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, domainErr.Message)
			}
		})
	}
}

func TestClient_NotFoundMessageNamesUser(t *testing.T) {
	client, _ := setupTestClient(t, http.NotFoundHandler(), Options{})

	_, err := client.FetchProfile(context.Background(), "ghost")

	require.Error(t, err)
	assert.Equal(t, "GitHub user 'ghost' not found", custom_errors.Message(err))
}

func TestClient_Timeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client, _ := setupTestClient(t, handler, Options{ProfileTimeout: 50 * time.Millisecond, PageTimeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := client.FetchProfile(context.Background(), "octocat")

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	var domainErr *custom_errors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, custom_errors.KindUpstream, domainErr.Kind)
	assert.Equal(t, 0, domainErr.Status)
	assert.Equal(t, "GitHub API error: request timed out", domainErr.Message)

	_, err = client.FetchAllRepositories(context.Background(), "octocat")
	assert.Equal(t, custom_errors.KindUpstream, custom_errors.KindOf(err))
}

func TestClient_Authentication(t *testing.T) {
	t.Run("sends the configured token", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
			fmt.Fprintln(w, `{"login": "octocat"}`)
		})
		client, _ := setupTestClient(t, handler, Options{Token: "s3cret"})

		_, err := client.FetchProfile(context.Background(), "octocat")
		require.NoError(t, err)
	})

	t.Run("omits authorization without a token", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			fmt.Fprintln(w, `{"login": "octocat"}`)
		})
		client, _ := setupTestClient(t, handler, Options{})

		_, err := client.FetchProfile(context.Background(), "octocat")
		require.NoError(t, err)
	})
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	_, err := NewClient(Options{BaseURL: "http://[::1"}, logger)
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client, err := NewClient(Options{}, logger)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, client.PageSize())

	client, err = NewClient(Options{PageSize: 30}, logger)
	require.NoError(t, err)
	assert.Equal(t, 30, client.PageSize())
}
