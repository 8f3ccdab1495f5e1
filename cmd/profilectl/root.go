package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github-profile-analyzer/internal/analyzer"
	"github-profile-analyzer/internal/config"
	"github-profile-analyzer/internal/database"
	"github-profile-analyzer/internal/github"
	"github-profile-analyzer/internal/reconciler"
	"github-profile-analyzer/internal/syncer"
)

var verbose bool

// app holds the components shared by subcommands. It is built lazily in PersistentPreRunE.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	dbpool  *pgxpool.Pool
	queries *database.Queries
	store   *reconciler.Reconciler
	svc     *analyzer.Service
}

var current app

var rootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "Operate the GitHub profile analyzer from the command line",
	Long: `profilectl analyzes GitHub profiles against the same database as the service.

  profilectl migrate                Apply database migrations
  profilectl analyze <username>     Fetch (or reuse) and print a profile analysis
  profilectl stats <username>       Print the stored analysis
  profilectl languages <username>   Print the stored language breakdown
  profilectl clear <username>       Delete a stored profile
  profilectl users                  List analyzed profiles
  profilectl refresh                Run one background refresh cycle
  profilectl seed                   Store a sample profile for local development`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return current.setup(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		current.close()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(
		migrateCmd,
		analyzeCmd,
		statsCmd,
		languagesCmd,
		clearCmd,
		usersCmd,
		refreshCmd,
		seedCmd,
	)
}

func (a *app) setup(ctx context.Context) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	a.dbpool, err = pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.queries = database.New(a.dbpool)

	ghClient, err := github.NewClient(github.Options{
		BaseURL:        cfg.GithubURL,
		Token:          cfg.GithubToken,
		PageSize:       cfg.GithubPageSize,
		ProfileTimeout: cfg.GithubProfileTimeout,
		PageTimeout:    cfg.GithubPageTimeout,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	a.store = reconciler.NewReconciler(a.dbpool, a.logger)
	a.svc = analyzer.NewService(a.queries, ghClient, a.store, a.logger, cfg.CacheTTL)
	return nil
}

func (a *app) close() {
	if a.dbpool != nil {
		a.dbpool.Close()
	}
}

func (a *app) refresher() *syncer.Syncer {
	return syncer.NewSyncer(a.queries, a.svc, a.logger, a.cfg.RefreshInterval, a.cfg.RefreshBatchSize, a.cfg.CacheTTL)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
