package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github-profile-analyzer/internal/model"
	"github-profile-analyzer/internal/validation"
)

var seedUsername string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store a sample profile with two repositories, without contacting GitHub",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validation.Username(seedUsername); err != nil {
			return err
		}
		profile, repos := seedFixture(seedUsername, time.Now().UTC())
		id, err := current.store.Reconcile(cmd.Context(), profile, repos)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded profile %s (id %d) with %d repositories\n", profile.Username, id, len(repos))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedUsername, "username", "sample-dev", "username of the sample profile")
}

// seedFixture builds the sample profile and its repositories. Timestamps are relative to now.
func seedFixture(username string, now time.Time) (*model.Profile, []model.Repository) {
	username = model.NormalizeUsername(username)
	url := "https://github.com/" + username
	lang := func(s string) *string { return &s }

	profile := &model.Profile{
		Username:    username,
		Name:        "Sample Developer",
		AvatarURL:   "https://avatars.githubusercontent.com/u/0?v=4",
		Bio:         "Node.js developer",
		Location:    "India",
		PublicRepos: 2,
		Followers:   100,
		Following:   10,
		ProfileURL:  url,
		CreatedAt:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	repos := []model.Repository{
		{
			GithubID:      1,
			Name:          "vault-app",
			FullName:      username + "/vault-app",
			URL:           url + "/vault-app",
			Language:      lang("TypeScript"),
			StarsCount:    50,
			ForksCount:    10,
			WatchersCount: 20,
			Size:          1234,
			Topics:        []string{"security", "node"},
			RepoCreatedAt: now,
			RepoUpdatedAt: now,
		},
		{
			GithubID:      2,
			Name:          "chat-app",
			FullName:      username + "/chat-app",
			URL:           url + "/chat-app",
			Language:      lang("JavaScript"),
			StarsCount:    70,
			ForksCount:    15,
			WatchersCount: 25,
			Size:          4321,
			Topics:        []string{"realtime", "socket.io"},
			RepoCreatedAt: now,
			RepoUpdatedAt: now,
		},
	}
	return profile, repos
}
