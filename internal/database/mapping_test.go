package database

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-profile-analyzer/internal/model"
)

func TestAnalysisResult_ToModel(t *testing.T) {
	row := AnalysisResult{
		ProfileID:          3,
		RepoCount:          2,
		LanguageBreakdown:  []byte(`{"Go":2}`),
		MostStarredRepo:    []byte(`{"name":"tool","stars":7,"url":"https://github.com/o/tool"}`),
		RecentRepositories: []byte(`[{"name":"tool","url":"https://github.com/o/tool","updated_at":"2024-01-01T00:00:00Z","language":"Go","stars":7},` +
			`{"name":"notes","url":"https://github.com/o/notes","updated_at":"2024-01-01T00:00:00Z","language":null,"stars":0}]`),
	}

	got, err := row.ToModel()

	require.NoError(t, err)
	assert.Equal(t, 2, got.RepoCount)
	assert.Equal(t, map[string]int{"Go": 2}, got.LanguageBreakdown)
	assert.Equal(t, model.StarredRepo{Name: "tool", Stars: 7, URL: "https://github.com/o/tool"}, got.MostStarredRepo)
	require.Len(t, got.RecentRepositories, 2)
	require.NotNil(t, got.RecentRepositories[0].Language)
	assert.Equal(t, "Go", *got.RecentRepositories[0].Language)
	assert.Nil(t, got.RecentRepositories[1].Language)
	assert.Nil(t, got.TopicBreakdown, "absent columns stay empty")
}

func TestAnalysisResult_ToModel_CorruptColumn(t *testing.T) {
	_, err := AnalysisResult{TopicBreakdown: []byte(`{"cli":`)}.ToModel()
	assert.ErrorContains(t, err, "topic_breakdown")
}

func TestRepository_ToModel_NullableColumns(t *testing.T) {
	withLang := Repository{Language: pgtype.Text{String: "Go", Valid: true}}.ToModel()
	assert.Equal(t, "Go", withLang.LanguageName())
	assert.Nil(t, withLang.Description)

	bare := Repository{}.ToModel()
	assert.Nil(t, bare.Language)
	assert.Equal(t, "", bare.LanguageName())
}
