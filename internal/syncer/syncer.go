// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github-profile-analyzer/internal/analyzer"
	"github-profile-analyzer/internal/database"
	"github-profile-analyzer/internal/metrics"
)

const (
	// Number of profiles to refresh in parallel
	concurrency = 5
)

// Refresher re-fetches a single profile. Implemented by *analyzer.Service.
type Refresher interface {
	GetProfile(ctx context.Context, username string, forceRefresh bool) (*analyzer.ProfileResult, error)
}

// Syncer periodically refreshes stored profiles whose cache window has expired.
type Syncer struct {
	q          database.Querier
	refresher  Refresher
	logger     *slog.Logger
	interval   time.Duration
	batchSize  int
	staleAfter time.Duration
	now        func() time.Time
}

// NewSyncer creates a new Syncer instance. Profiles last refreshed more than staleAfter ago are
// picked up, at most batchSize per cycle.
func NewSyncer(q database.Querier, refresher Refresher, logger *slog.Logger, interval time.Duration, batchSize int, staleAfter time.Duration) *Syncer {
	return &Syncer{
		q:          q,
		refresher:  refresher,
		logger:     logger,
		interval:   interval,
		batchSize:  batchSize,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Start runs refresh cycles until ctx is cancelled. A non-positive interval disables the loop.
func (s *Syncer) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Background refresh disabled")
		return
	}

	s.logger.Info("Starting syncer", "interval", s.interval.String(), "batch_size", s.batchSize, "concurrency", concurrency)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunCycle(ctx)
		case <-ctx.Done():
			s.logger.Info("Syncer shutting down", "reason", ctx.Err())
			return
		}
	}
}

// RunCycle refreshes one batch of stale profiles, oldest first, and returns how many succeeded.
// Individual failures are logged and do not stop the cycle.
func (s *Syncer) RunCycle(ctx context.Context) int {
	cutoff := s.now().Add(-s.staleAfter)
	usernames, err := s.q.ListStaleProfiles(ctx, database.ListStaleProfilesParams{
		LastRefreshedAt: cutoff,
		Limit:           int32(s.batchSize),
	})
	if err != nil {
		s.logger.Error("Failed to list stale profiles", "error", err)
		return 0
	}
	if len(usernames) == 0 {
		s.logger.Debug("No stale profiles to refresh")
		return 0
	}

	s.logger.Info("Starting new refresh cycle", "profiles", len(usernames))
	results := make([]bool, len(usernames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, username := range usernames {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			_, err := s.refresher.GetProfile(gctx, username, true)
			metrics.RecordBackgroundRefresh(metrics.Outcome(err))
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					s.logger.Error("Failed to refresh profile", "username", username, "error", err)
				}
				return nil
			}
			results[i] = true
			return nil
		})
	}
	_ = g.Wait()

	refreshed := 0
	for _, ok := range results {
		if ok {
			refreshed++
		}
	}
	s.logger.Info("Refresh cycle finished", "refreshed", refreshed, "failed", len(usernames)-refreshed)
	return refreshed
}
