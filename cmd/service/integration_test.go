//go:build integration

// cmd/service/integration_test.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github-profile-analyzer/internal/analyzer"
	"github-profile-analyzer/internal/api"
	"github-profile-analyzer/internal/database"
	custom_errors "github-profile-analyzer/internal/errors"
	"github-profile-analyzer/internal/github"
	"github-profile-analyzer/internal/reconciler"
)

func setupTestDatabase(ctx context.Context, t *testing.T) (*pgxpool.Pool, func()) {
	// Start a postgres container
	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)

	// Get the connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Run migrations
	require.NoError(t, database.Migrate("file://../../migrations", connStr))

	// Create a connection pool
	dbpool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Teardown function to be called by the test
	teardown := func() {
		dbpool.Close()
		err := pgContainer.Terminate(ctx)
		require.NoError(t, err)
	}

	return dbpool, teardown
}

// fakeGitHub serves one user whose repository set can be swapped between calls.
type fakeGitHub struct {
	mu       sync.Mutex
	repoIDs  []int
	requests int32
}

func (f *fakeGitHub) setRepos(ids ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repoIDs = ids
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.requests, 1)
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/users/octocat":
		fmt.Fprintln(w, `{"login": "octocat", "name": "The Octocat", "public_repos": 2, "followers": 5,
			"html_url": "https://github.com/octocat", "created_at": "2011-01-25T18:44:36Z"}`)
	case "/users/octocat/repos":
		f.mu.Lock()
		ids := append([]int(nil), f.repoIDs...)
		f.mu.Unlock()

		repos := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			repos = append(repos, map[string]any{
				"id":               id,
				"name":             fmt.Sprintf("repo-%d", id),
				"full_name":        fmt.Sprintf("octocat/repo-%d", id),
				"html_url":         fmt.Sprintf("https://github.com/octocat/repo-%d", id),
				"language":         "Go",
				"stargazers_count": id * 10,
				"topics":           []string{"cli"},
				"license":          map[string]any{"key": "mit", "name": "MIT License"},
				"created_at":       "2020-01-01T00:00:00Z",
				"updated_at":       time.Date(2024, 1, id, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
			})
		}
		_ = json.NewEncoder(w).Encode(repos)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, `{"message": "Not Found"}`)
	}
}

func storedRepoIDs(ctx context.Context, t *testing.T, q *database.Queries, profileID int64) []int64 {
	t.Helper()
	repos, err := q.ListRepositoriesByProfileID(ctx, profileID)
	require.NoError(t, err)
	ids := make([]int64, 0, len(repos))
	for _, r := range repos {
		ids = append(ids, r.GithubID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestProfileLifecycle_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbpool, teardown := setupTestDatabase(ctx, t)
	defer teardown()

	fake := &fakeGitHub{}
	fake.setRepos(1, 2, 3)
	server := httptest.NewServer(fake)
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ghClient, err := github.NewClient(github.Options{BaseURL: server.URL, HTTPClient: server.Client()}, logger)
	require.NoError(t, err)

	q := database.New(dbpool)
	svc := analyzer.NewService(q, ghClient, reconciler.NewReconciler(dbpool, logger), logger, 30*time.Minute)

	// First request populates the store.
	first, err := svc.GetProfile(ctx, "octocat", false)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.NotNil(t, first.Analysis)
	assert.Equal(t, int64(60), first.Analysis.TotalStars)
	assert.Equal(t, "repo-3", first.Analysis.MostStarredRepo.Name)
	assert.Equal(t, []int64{1, 2, 3}, storedRepoIDs(ctx, t, q, first.Profile.ID))

	// Second request inside the window is served from the store.
	before := atomic.LoadInt32(&fake.requests)
	cached, err := svc.GetProfile(ctx, "octocat", false)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, before, atomic.LoadInt32(&fake.requests))

	// A forced refresh replaces the snapshot set.
	fake.setRepos(1, 4)
	refreshed, err := svc.GetProfile(ctx, "octocat", true)
	require.NoError(t, err)
	assert.Equal(t, first.Profile.ID, refreshed.Profile.ID)
	assert.Equal(t, []int64{1, 4}, storedRepoIDs(ctx, t, q, refreshed.Profile.ID))
	assert.Equal(t, int64(50), refreshed.Analysis.TotalStars)
	assert.NotEqual(t, first.Profile.FetchGeneration, refreshed.Profile.FetchGeneration)

	// Profile, repositories and analysis share one fetch generation.
	repos, err := q.ListRepositoriesByProfileID(ctx, refreshed.Profile.ID)
	require.NoError(t, err)
	for _, r := range repos {
		assert.Equal(t, refreshed.Profile.FetchGeneration, r.FetchGeneration)
	}
	assert.Equal(t, refreshed.Profile.FetchGeneration, refreshed.Analysis.FetchGeneration)

	// Listing.
	page, err := svc.ListAnalyzedUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "octocat", page.Users[0].Username)

	// The HTTP layer serves stored stats.
	router := api.NewRouter(svc, logger, api.Options{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/github/profile/octocat/languages", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Go":2`)

	// Clearing the cache removes children and parent.
	require.NoError(t, svc.ClearCache(ctx, "octocat"))
	_, err = svc.GetStats(ctx, "octocat")
	assert.Equal(t, custom_errors.KindNotFound, custom_errors.KindOf(err))
	assert.Empty(t, storedRepoIDs(ctx, t, q, refreshed.Profile.ID))
	count, err := q.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUnknownUser_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbpool, teardown := setupTestDatabase(ctx, t)
	defer teardown()

	server := httptest.NewServer(&fakeGitHub{})
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ghClient, err := github.NewClient(github.Options{BaseURL: server.URL, HTTPClient: server.Client()}, logger)
	require.NoError(t, err)
	svc := analyzer.NewService(database.New(dbpool), ghClient, reconciler.NewReconciler(dbpool, logger), logger, 0)

	_, err = svc.GetProfile(ctx, "ghost", false)

	require.Error(t, err)
	assert.Equal(t, "GitHub user 'ghost' not found", custom_errors.Message(err))
	count, err := database.New(dbpool).CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
