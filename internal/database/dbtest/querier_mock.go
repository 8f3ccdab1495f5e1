// Package dbtest provides test doubles for the database package.
package dbtest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github-profile-analyzer/internal/database"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

var _ database.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) CountProfiles(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) CreateAnalysisResult(ctx context.Context, arg database.CreateAnalysisResultParams) (database.AnalysisResult, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.AnalysisResult), args.Error(1)
}
func (m *MockQuerier) CreateRepositories(ctx context.Context, arg []database.CreateRepositoriesParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) DeleteAnalysisByProfileID(ctx context.Context, profileID int64) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) DeleteProfile(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) DeleteRepositoriesByProfileID(ctx context.Context, profileID int64) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetAnalysisByProfileID(ctx context.Context, profileID int64) (database.AnalysisResult, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(database.AnalysisResult), args.Error(1)
}
func (m *MockQuerier) GetProfileByID(ctx context.Context, id int64) (database.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(database.Profile), args.Error(1)
}
func (m *MockQuerier) GetProfileByUsername(ctx context.Context, username string) (database.Profile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(database.Profile), args.Error(1)
}
func (m *MockQuerier) ListProfilesByRefreshed(ctx context.Context, arg database.ListProfilesByRefreshedParams) ([]database.ListProfilesByRefreshedRow, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]database.ListProfilesByRefreshedRow), args.Error(1)
}
func (m *MockQuerier) ListRepositoriesByProfileID(ctx context.Context, profileID int64) ([]database.Repository, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).([]database.Repository), args.Error(1)
}
func (m *MockQuerier) ListStaleProfiles(ctx context.Context, arg database.ListStaleProfilesParams) ([]string, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockQuerier) UpsertProfile(ctx context.Context, arg database.UpsertProfileParams) (database.Profile, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Profile), args.Error(1)
}

// MethodCalls returns the names of the mocked methods in the order they were called.
func (m *MockQuerier) MethodCalls() []string {
	names := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		names = append(names, c.Method)
	}
	return names
}
