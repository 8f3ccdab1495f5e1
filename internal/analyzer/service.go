// internal/analyzer/service.go
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github-profile-analyzer/internal/database"
	custom_errors "github-profile-analyzer/internal/errors"
	"github-profile-analyzer/internal/metrics"
	"github-profile-analyzer/internal/model"
)

// DefaultCacheTTL is how long a stored profile is served without contacting GitHub.
const DefaultCacheTTL = 30 * time.Minute

// ErrAnalysisMissing marks a profile that exists without an analysis.
var ErrAnalysisMissing = errors.New("analysis missing for profile")

// Fetcher retrieves upstream data. Implemented by *github.Client.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*model.Profile, error)
	FetchAllRepositories(ctx context.Context, username string) ([]model.Repository, error)
}

// Persister writes snapshots. Implemented by *reconciler.Reconciler.
type Persister interface {
	Reconcile(ctx context.Context, profile *model.Profile, repos []model.Repository) (int64, error)
	Purge(ctx context.Context, profileID int64) error
}

// ProfileResult is a profile with its analysis and whether it was served from the store.
type ProfileResult struct {
	Profile  model.Profile         `json:"user"`
	Analysis *model.AnalysisResult `json:"analysis"`
	Cached   bool                  `json:"cached"`
}

type LanguageBreakdown struct {
	TopLanguages      []string       `json:"top_languages"`
	LanguageBreakdown map[string]int `json:"language_breakdown"`
}

// UserPage is one page of analyzed profiles.
type UserPage struct {
	Users      []model.ProfileSummary `json:"users"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// Service answers profile queries from the store and refreshes stale entries from GitHub.
type Service struct {
	q        database.Querier
	fetcher  Fetcher
	store    Persister
	logger   *slog.Logger
	cacheTTL time.Duration
	now      func() time.Time
	group    singleflight.Group
}

// NewService creates a new Service. A non-positive cacheTTL selects DefaultCacheTTL.
func NewService(q database.Querier, fetcher Fetcher, store Persister, logger *slog.Logger, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		q:        q,
		fetcher:  fetcher,
		store:    store,
		logger:   logger,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// CacheTTL returns the freshness window applied to stored profiles.
func (s *Service) CacheTTL() time.Duration {
	return s.cacheTTL
}

// GetProfile returns the stored profile and analysis when they are fresh, and otherwise
// fetches, reconciles and re-reads them. forceRefresh skips the freshness check.
func (s *Service) GetProfile(ctx context.Context, username string, forceRefresh bool) (*ProfileResult, error) {
	username = model.NormalizeUsername(username)
	logger := s.logger.With("username", username)
	logger.Info("Starting profile analysis", "force_refresh", forceRefresh)

	if forceRefresh {
		metrics.RecordCacheLookup("bypass")
	} else {
		res, err := s.cached(ctx, logger, username)
		if err != nil {
			return nil, err
		}
		if res != nil {
			metrics.RecordCacheLookup("hit")
			return res, nil
		}
		metrics.RecordCacheLookup("miss")
	}

	v, err, shared := s.group.Do(username, func() (any, error) {
		return s.refresh(ctx, logger, username)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("Joined in-flight refresh")
	}
	res := *v.(*ProfileResult)
	return &res, nil
}

// cached returns nil without error when the stored entry is absent, stale or has no analysis.
func (s *Service) cached(ctx context.Context, logger *slog.Logger, username string) (*ProfileResult, error) {
	row, err := s.q.GetProfileByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, custom_errors.Storage("get profile", err)
	}

	age := s.now().Sub(row.LastRefreshedAt)
	if age >= s.cacheTTL {
		logger.Debug("Cached profile is stale", "cache_age", age)
		return nil, nil
	}

	analysis, err := s.loadAnalysis(ctx, username, row.ID)
	if errors.Is(err, ErrAnalysisMissing) {
		logger.Warn("Cached profile has no analysis, refreshing")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Returning cached data", "cache_age", age.Round(time.Second))
	return &ProfileResult{Profile: row.ToModel(), Analysis: analysis, Cached: true}, nil
}

func (s *Service) refresh(ctx context.Context, logger *slog.Logger, username string) (*ProfileResult, error) {
	start := time.Now()
	res, err := s.fetchAndStore(ctx, logger, username)
	metrics.ObserveRefresh(metrics.Outcome(err), time.Since(start))
	if err != nil {
		logger.Error("Profile analysis failed", "duration", time.Since(start), "error", err)
		return nil, err
	}
	logger.Info("Profile analysis completed", "duration", time.Since(start))
	return res, nil
}

func (s *Service) fetchAndStore(ctx context.Context, logger *slog.Logger, username string) (*ProfileResult, error) {
	profile, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	repos, err := s.fetcher.FetchAllRepositories(ctx, username)
	if err != nil {
		return nil, err
	}
	logger.Info("Fetched GitHub data", "repo_count", len(repos), "followers", profile.Followers)

	profileID, err := s.store.Reconcile(ctx, profile, repos)
	if err != nil {
		return nil, err
	}

	row, err := s.q.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, custom_errors.Storage("get profile", err)
	}
	analysis, err := s.loadAnalysis(ctx, username, profileID)
	if err != nil {
		return nil, err
	}
	return &ProfileResult{Profile: row.ToModel(), Analysis: analysis, Cached: false}, nil
}

// GetStats returns the stored analysis for username without contacting GitHub.
func (s *Service) GetStats(ctx context.Context, username string) (*model.AnalysisResult, error) {
	username = model.NormalizeUsername(username)
	logger := s.logger.With("username", username)
	logger.Info("Fetching stats")

	row, err := s.loadProfile(ctx, username, fmt.Sprintf("GitHub user '%s' not found", username))
	if err != nil {
		logger.Error("Failed to get stats", "error", err)
		return nil, err
	}
	analysis, err := s.loadAnalysis(ctx, username, row.ID)
	if err != nil {
		logger.Error("Failed to get stats", "error", err)
		return nil, err
	}

	logger.Info("Stats retrieved")
	return analysis, nil
}

// GetLanguages returns the language projection of the stored analysis.
func (s *Service) GetLanguages(ctx context.Context, username string) (*LanguageBreakdown, error) {
	username = model.NormalizeUsername(username)
	logger := s.logger.With("username", username)
	logger.Info("Fetching languages")

	row, err := s.loadProfile(ctx, username, fmt.Sprintf("User %s not found. Please fetch profile first.", username))
	if err != nil {
		logger.Error("Failed to get languages", "error", err)
		return nil, err
	}
	analysis, err := s.loadAnalysis(ctx, username, row.ID)
	if err != nil {
		logger.Error("Failed to get languages", "error", err)
		return nil, err
	}

	logger.Info("Languages retrieved", "language_count", len(analysis.LanguageBreakdown))
	return &LanguageBreakdown{
		TopLanguages:      analysis.TopLanguages,
		LanguageBreakdown: analysis.LanguageBreakdown,
	}, nil
}

// ClearCache deletes the stored profile with its repositories and analysis.
func (s *Service) ClearCache(ctx context.Context, username string) error {
	username = model.NormalizeUsername(username)
	logger := s.logger.With("username", username)
	logger.Info("Clearing cache")

	row, err := s.loadProfile(ctx, username, fmt.Sprintf("User %s not found.", username))
	if err != nil {
		logger.Error("Failed to clear cache", "error", err)
		return err
	}
	if err := s.store.Purge(ctx, row.ID); err != nil {
		logger.Error("Failed to clear cache", "error", err)
		return err
	}

	logger.Info("Cache cleared successfully")
	return nil
}

// ListAnalyzedUsers pages through stored profiles, most recently refreshed first.
// page and limit are expected to be validated by the caller (page >= 1, limit >= 1).
// A page whose offset does not fit the query parameters is empty.
func (s *Service) ListAnalyzedUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	s.logger.Info("Fetching analyzed users", "page", page, "limit", limit)

	var rows []database.ListProfilesByRefreshedRow
	offset := int64(page-1) * int64(limit)
	if offset <= math.MaxInt32 && limit <= math.MaxInt32 {
		var err error
		rows, err = s.q.ListProfilesByRefreshed(ctx, database.ListProfilesByRefreshedParams{
			Limit:  int32(limit),
			Offset: int32(offset),
		})
		if err != nil {
			return nil, custom_errors.Storage("list profiles", err)
		}
	}
	total, err := s.q.CountProfiles(ctx)
	if err != nil {
		return nil, custom_errors.Storage("count profiles", err)
	}

	users := make([]model.ProfileSummary, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.ToModel())
	}

	s.logger.Info("Retrieved analyzed users", "page", page, "limit", limit, "total", total, "user_count", len(users))
	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func totalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *Service) loadProfile(ctx context.Context, username, notFoundMsg string) (database.Profile, error) {
	row, err := s.q.GetProfileByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Profile{}, custom_errors.NotFound(notFoundMsg, err)
	}
	if err != nil {
		return database.Profile{}, custom_errors.Storage("get profile", err)
	}
	return row, nil
}

func (s *Service) loadAnalysis(ctx context.Context, username string, profileID int64) (*model.AnalysisResult, error) {
	row, err := s.q.GetAnalysisByProfileID(ctx, profileID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, custom_errors.NotFound(fmt.Sprintf("Analysis data for %s not found.", username), ErrAnalysisMissing)
	}
	if err != nil {
		return nil, custom_errors.Storage("get analysis", err)
	}
	analysis, err := row.ToModel()
	if err != nil {
		return nil, custom_errors.Storage("decode analysis", err)
	}
	return &analysis, nil
}
