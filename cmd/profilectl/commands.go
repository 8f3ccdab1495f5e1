package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github-profile-analyzer/internal/database"
	"github-profile-analyzer/internal/validation"
)

var (
	forceRefresh bool
	downSteps    int
	page         string
	limit        string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply (or with --down, roll back) database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("down") {
			if err := database.MigrateDown(current.cfg.MigrationsPath, current.cfg.DBURL, downSteps); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back")
			return nil
		}
		if err := database.Migrate(current.cfg.MigrationsPath, current.cfg.DBURL); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Print a profile with its analysis, fetching from GitHub when the stored copy is stale",
	Args:  usernameArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := current.svc.GetProfile(cmd.Context(), args[0], forceRefresh)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Print the stored analysis for a profile",
	Args:  usernameArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := current.svc.GetStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages <username>",
	Short: "Print the stored language breakdown for a profile",
	Args:  usernameArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		langs, err := current.svc.GetLanguages(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), langs)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <username>",
	Short: "Delete a stored profile with its repositories and analysis",
	Args:  usernameArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.svc.ClearCache(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared for user: %s\n", args[0])
		return nil
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List analyzed profiles, most recently refreshed first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := validation.ParsePagination(page, limit)
		if err != nil {
			return err
		}
		res, err := current.svc.ListAnalyzedUsers(cmd.Context(), p.Page, p.Limit)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh one batch of stale profiles and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := current.refresher().RunCycle(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d profiles\n", n)
		return nil
	},
}

// usernameArg requires exactly one syntactically valid username.
func usernameArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	return validation.Username(args[0])
}

func init() {
	migrateCmd.Flags().IntVar(&downSteps, "down", 0, "roll back this many migrations (0 rolls back all)")
	analyzeCmd.Flags().BoolVar(&forceRefresh, "force", false, "ignore the stored copy and fetch from GitHub")
	usersCmd.Flags().StringVar(&page, "page", "1", "page number")
	usersCmd.Flags().StringVar(&limit, "limit", "10", "profiles per page (max 100)")
}
