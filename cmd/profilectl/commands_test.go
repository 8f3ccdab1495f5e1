package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "github-profile-analyzer/internal/errors"
	"github-profile-analyzer/internal/stats"
)

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"migrate", "analyze", "stats", "languages", "clear", "users", "refresh", "seed"})
}

func TestUsernameArg(t *testing.T) {
	assert.NoError(t, usernameArg(analyzeCmd, []string{"octocat"}))
	assert.Error(t, usernameArg(analyzeCmd, nil))
	assert.Error(t, usernameArg(analyzeCmd, []string{"a", "b"}))

	err := usernameArg(analyzeCmd, []string{"-bad-"})
	assert.Equal(t, custom_errors.KindValidation, custom_errors.KindOf(err))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]int{"stars": 3}))
	assert.Equal(t, "{\n  \"stars\": 3\n}\n", buf.String())
}

func TestSeedFixture(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	profile, repos := seedFixture("Sample-Dev", now)

	assert.Equal(t, "sample-dev", profile.Username)
	assert.Equal(t, "https://github.com/sample-dev", profile.ProfileURL)
	require.Len(t, repos, 2)
	assert.Equal(t, "sample-dev/chat-app", repos[1].FullName)

	result := stats.Reduce(profile, repos, now)
	assert.Equal(t, int64(120), result.TotalStars)
	assert.Equal(t, int64(25), result.TotalForks)
	assert.Equal(t, "chat-app", result.MostStarredRepo.Name)
	assert.Equal(t, map[string]int{"TypeScript": 1, "JavaScript": 1}, result.LanguageBreakdown)
}

func TestSeedCommand_RejectsInvalidUsername(t *testing.T) {
	seedUsername = "-bad-"
	t.Cleanup(func() { seedUsername = "sample-dev" })

	err := seedCmd.RunE(seedCmd, nil)

	assert.Equal(t, custom_errors.KindValidation, custom_errors.KindOf(err))
}
