// internal/reconciler/reconciler.go
package reconciler

import (
	"context"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github-profile-analyzer/internal/database"
	custom_errors "github-profile-analyzer/internal/errors"
	"github-profile-analyzer/internal/metrics"
	"github-profile-analyzer/internal/model"
	"github-profile-analyzer/internal/stats"
)

// TxBeginner is satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Reconciler replaces the persisted state of a profile with a freshly fetched snapshot.
type Reconciler struct {
	db     TxBeginner
	logger *slog.Logger
	now    func() time.Time
	newGen func() uuid.UUID
}

// NewReconciler creates a new Reconciler instance.
func NewReconciler(db TxBeginner, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		db:     db,
		logger: logger,
		now:    time.Now,
		newGen: uuid.New,
	}
}

// Reconcile upserts the profile, replaces its repository snapshot and its analysis in a single
// transaction, and returns the persisted profile id. All three records are tagged with the same
// fetch generation. On failure nothing is committed and a storage error is returned.
func (r *Reconciler) Reconcile(ctx context.Context, profile *model.Profile, repos []model.Repository) (int64, error) {
	start := time.Now()
	var id int64
	err := r.inTx(ctx, func(q database.Querier) error {
		var err error
		id, err = r.reconcile(ctx, q, profile, repos, r.now().UTC(), r.newGen())
		return err
	})
	metrics.ObserveReconcile(metrics.Outcome(err), len(repos), time.Since(start))
	if err != nil {
		r.logger.Error("Data processing failed", "username", profile.Username,
			"duration", time.Since(start), "error", err)
		return 0, err
	}
	return id, nil
}

// Purge deletes a profile's repositories, analysis and the profile itself, children first.
func (r *Reconciler) Purge(ctx context.Context, profileID int64) error {
	return r.inTx(ctx, func(q database.Querier) error {
		return r.purge(ctx, q, profileID)
	})
}

// inTx runs fn inside a transaction and commits if it succeeds.
func (r *Reconciler) inTx(ctx context.Context, fn func(q database.Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return custom_errors.Storage("begin transaction", err)
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	if err := fn(database.New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return custom_errors.Storage("commit transaction", err)
	}
	return nil
}

// reconcile performs the upsert / delete / insert sequence against q.
func (r *Reconciler) reconcile(ctx context.Context, q database.Querier, profile *model.Profile, repos []model.Repository, refreshedAt time.Time, gen uuid.UUID) (int64, error) {
	logger := r.logger.With("username", profile.Username, "fetch_generation", gen)
	logger.Info("Starting data processing", "repo_count", len(repos))

	dbProfile, err := q.UpsertProfile(ctx, prepareProfileUpsert(profile, refreshedAt, gen))
	if err != nil {
		return 0, custom_errors.Storage("upsert profile", err)
	}
	logger = logger.With("profile_id", dbProfile.ID)
	logger.Info("User profile saved")

	if _, err := q.DeleteRepositoriesByProfileID(ctx, dbProfile.ID); err != nil {
		return 0, custom_errors.Storage("delete repositories", err)
	}
	if _, err := q.DeleteAnalysisByProfileID(ctx, dbProfile.ID); err != nil {
		return 0, custom_errors.Storage("delete analysis", err)
	}
	logger.Debug("Cleared existing data")

	if len(repos) > 0 {
		n, err := q.CreateRepositories(ctx, prepareRepositoryBulkInsert(dbProfile.ID, gen, repos))
		if err != nil {
			return 0, custom_errors.Storage("insert repositories", err)
		}
		logger.Info("Saved repositories", "count", n)
	}

	persisted := dbProfile.ToModel()
	analysis := stats.Reduce(&persisted, repos, refreshedAt)
	params, err := prepareAnalysisInsert(analysis)
	if err != nil {
		return 0, custom_errors.Storage("encode analysis", err)
	}
	if _, err := q.CreateAnalysisResult(ctx, params); err != nil {
		return 0, custom_errors.Storage("insert analysis", err)
	}

	topLanguage := ""
	if len(analysis.TopLanguages) > 0 {
		topLanguage = analysis.TopLanguages[0]
	}
	logger.Info("Data processing completed",
		"total_stars", analysis.TotalStars,
		"original_repos", analysis.OriginalRepoCount,
		"forked_repos", analysis.ForkedRepoCount,
		"language_count", len(analysis.LanguageBreakdown),
		"top_language", topLanguage)

	return dbProfile.ID, nil
}

func (r *Reconciler) purge(ctx context.Context, q database.Querier, profileID int64) error {
	if _, err := q.DeleteRepositoriesByProfileID(ctx, profileID); err != nil {
		return custom_errors.Storage("delete repositories", err)
	}
	if _, err := q.DeleteAnalysisByProfileID(ctx, profileID); err != nil {
		return custom_errors.Storage("delete analysis", err)
	}
	if _, err := q.DeleteProfile(ctx, profileID); err != nil {
		return custom_errors.Storage("delete profile", err)
	}
	return nil
}

func prepareProfileUpsert(p *model.Profile, refreshedAt time.Time, gen uuid.UUID) database.UpsertProfileParams {
	return database.UpsertProfileParams{
		Username:        model.NormalizeUsername(p.Username),
		Name:            p.Name,
		AvatarUrl:       p.AvatarURL,
		Bio:             p.Bio,
		Location:        p.Location,
		PublicRepos:     int32(p.PublicRepos),
		Followers:       int32(p.Followers),
		Following:       int32(p.Following),
		ProfileUrl:      p.ProfileURL,
		SourceCreatedAt: p.CreatedAt,
		LastRefreshedAt: refreshedAt,
		FetchGeneration: gen,
	}
}

func prepareRepositoryBulkInsert(profileID int64, gen uuid.UUID, repos []model.Repository) []database.CreateRepositoriesParams {
	params := make([]database.CreateRepositoriesParams, len(repos))
	for i, r := range repos {
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		params[i] = database.CreateRepositoriesParams{
			GithubID:        r.GithubID,
			ProfileID:       profileID,
			Name:            r.Name,
			FullName:        r.FullName,
			HtmlUrl:         r.URL,
			Description:     toPgText(r.Description),
			Language:        toPgText(r.Language),
			StargazersCount: int32(r.StarsCount),
			ForksCount:      int32(r.ForksCount),
			WatchersCount:   int32(r.WatchersCount),
			Size:            int32(r.Size),
			Topics:          topics,
			License:         r.License,
			IsFork:          r.IsFork,
			RepoCreatedAt:   r.RepoCreatedAt,
			RepoUpdatedAt:   r.RepoUpdatedAt,
			FetchGeneration: gen,
		}
	}
	return params
}

func prepareAnalysisInsert(a model.AnalysisResult) (database.CreateAnalysisResultParams, error) {
	params := database.CreateAnalysisResultParams{
		ProfileID:           a.ProfileID,
		TotalStars:          a.TotalStars,
		TotalForks:          a.TotalForks,
		TotalWatchers:       a.TotalWatchers,
		TotalSize:           a.TotalSize,
		RepoCount:           int32(a.RepoCount),
		OriginalRepoCount:   int32(a.OriginalRepoCount),
		ForkedRepoCount:     int32(a.ForkedRepoCount),
		AverageStarsPerRepo: int32(a.AverageStarsPerRepo),
		TopLanguages:        a.TopLanguages,
		TopTopics:           a.TopTopics,
		AnalyzedAt:          a.AnalyzedAt,
		FetchGeneration:     a.FetchGeneration,
	}

	var err error
	if params.LanguageBreakdown, err = json.Marshal(a.LanguageBreakdown); err != nil {
		return params, err
	}
	if params.TopicBreakdown, err = json.Marshal(a.TopicBreakdown); err != nil {
		return params, err
	}
	if params.MostStarredRepo, err = json.Marshal(a.MostStarredRepo); err != nil {
		return params, err
	}
	if params.MostForkedRepo, err = json.Marshal(a.MostForkedRepo); err != nil {
		return params, err
	}
	if params.RecentRepositories, err = json.Marshal(a.RecentRepositories); err != nil {
		return params, err
	}
	return params, nil
}

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{
		String: *s,
		Valid:  true,
	}
}
