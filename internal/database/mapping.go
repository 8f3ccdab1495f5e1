package database

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github-profile-analyzer/internal/model"
)

// ToModel converts a stored profile row to the domain model.
func (p Profile) ToModel() model.Profile {
	return model.Profile{
		ID:              p.ID,
		Username:        p.Username,
		Name:            p.Name,
		AvatarURL:       p.AvatarUrl,
		Bio:             p.Bio,
		Location:        p.Location,
		PublicRepos:     int(p.PublicRepos),
		Followers:       int(p.Followers),
		Following:       int(p.Following),
		ProfileURL:      p.ProfileUrl,
		CreatedAt:       p.SourceCreatedAt,
		LastRefreshedAt: p.LastRefreshedAt,
		FetchGeneration: p.FetchGeneration,
	}
}

func (r ListProfilesByRefreshedRow) ToModel() model.ProfileSummary {
	return model.ProfileSummary{
		Username:        r.Username,
		Name:            r.Name,
		AvatarURL:       r.AvatarUrl,
		PublicRepos:     int(r.PublicRepos),
		Followers:       int(r.Followers),
		LastRefreshedAt: r.LastRefreshedAt,
	}
}

func (r Repository) ToModel() model.Repository {
	repo := model.Repository{
		GithubID:      r.GithubID,
		ProfileID:     r.ProfileID,
		Name:          r.Name,
		FullName:      r.FullName,
		URL:           r.HtmlUrl,
		StarsCount:    int(r.StargazersCount),
		ForksCount:    int(r.ForksCount),
		WatchersCount: int(r.WatchersCount),
		Size:          int(r.Size),
		Topics:        r.Topics,
		License:       r.License,
		IsFork:        r.IsFork,
		RepoCreatedAt: r.RepoCreatedAt,
		RepoUpdatedAt: r.RepoUpdatedAt,
	}
	if r.Description.Valid {
		repo.Description = &r.Description.String
	}
	if r.Language.Valid {
		repo.Language = &r.Language.String
	}
	return repo
}

// ToModel decodes the jsonb columns of a stored analysis.
func (a AnalysisResult) ToModel() (model.AnalysisResult, error) {
	result := model.AnalysisResult{
		ProfileID:           a.ProfileID,
		TotalStars:          a.TotalStars,
		TotalForks:          a.TotalForks,
		TotalWatchers:       a.TotalWatchers,
		TotalSize:           a.TotalSize,
		RepoCount:           int(a.RepoCount),
		OriginalRepoCount:   int(a.OriginalRepoCount),
		ForkedRepoCount:     int(a.ForkedRepoCount),
		AverageStarsPerRepo: int(a.AverageStarsPerRepo),
		TopLanguages:        a.TopLanguages,
		TopTopics:           a.TopTopics,
		AnalyzedAt:          a.AnalyzedAt,
		FetchGeneration:     a.FetchGeneration,
	}

	fields := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"language_breakdown", a.LanguageBreakdown, &result.LanguageBreakdown},
		{"topic_breakdown", a.TopicBreakdown, &result.TopicBreakdown},
		{"most_starred_repo", a.MostStarredRepo, &result.MostStarredRepo},
		{"most_forked_repo", a.MostForkedRepo, &result.MostForkedRepo},
		{"recent_repositories", a.RecentRepositories, &result.RecentRepositories},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return model.AnalysisResult{}, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	return result, nil
}
