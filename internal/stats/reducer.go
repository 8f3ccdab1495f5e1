// Package stats derives aggregate statistics from a repository snapshot.
// Everything here is pure: the same input always yields the same AnalysisResult.
package stats

import (
	"math"
	"sort"
	"time"

	"github-profile-analyzer/internal/model"
)

const (
	// TopN caps the top language and top topic lists.
	TopN = 10
	// RecentLimit caps the recent repositories list.
	RecentLimit = 10
)

// frequency counts keys while remembering the order they were first seen,
// so ties can be broken deterministically.
type frequency struct {
	counts map[string]int
	order  []string
}

func newFrequency() *frequency {
	return &frequency{counts: make(map[string]int)}
}

func (f *frequency) add(key string) {
	if _, ok := f.counts[key]; !ok {
		f.order = append(f.order, key)
	}
	f.counts[key]++
}

// top returns up to n keys by count descending, equal counts in first-seen order.
func (f *frequency) top(n int) []string {
	keys := make([]string, len(f.order))
	copy(keys, f.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return f.counts[keys[i]] > f.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Reduce computes the AnalysisResult for a profile in a single pass over repos.
// repos is expected in upstream order (most recently updated first): that order decides
// ties for the most starred and most forked repositories and fills the recent list.
func Reduce(profile *model.Profile, repos []model.Repository, analyzedAt time.Time) model.AnalysisResult {
	result := model.AnalysisResult{
		RepoCount:          len(repos),
		TopLanguages:       []string{},
		TopTopics:          []string{},
		RecentRepositories: []model.RecentRepo{},
		AnalyzedAt:         analyzedAt,
	}
	if profile != nil {
		result.ProfileID = profile.ID
		result.FetchGeneration = profile.FetchGeneration
	}

	languages := newFrequency()
	topics := newFrequency()

	for _, repo := range repos {
		result.TotalStars += int64(repo.StarsCount)
		result.TotalForks += int64(repo.ForksCount)
		result.TotalWatchers += int64(repo.WatchersCount)
		result.TotalSize += int64(repo.Size)

		if lang := repo.LanguageName(); lang != "" {
			languages.add(lang)
		}
		for _, topic := range repo.Topics {
			topics.add(topic)
		}

		// Strict comparison: the first repository reaching a maximum keeps it.
		if repo.StarsCount > result.MostStarredRepo.Stars {
			result.MostStarredRepo = model.StarredRepo{Name: repo.Name, Stars: repo.StarsCount, URL: repo.URL}
		}
		if repo.ForksCount > result.MostForkedRepo.Forks {
			result.MostForkedRepo = model.ForkedRepo{Name: repo.Name, Forks: repo.ForksCount, URL: repo.URL}
		}

		if len(result.RecentRepositories) < RecentLimit {
			result.RecentRepositories = append(result.RecentRepositories, model.RecentRepo{
				Name:      repo.Name,
				URL:       repo.URL,
				UpdatedAt: repo.RepoUpdatedAt,
				Language:  copyString(repo.Language),
				Stars:     repo.StarsCount,
			})
		}

		if repo.IsFork {
			result.ForkedRepoCount++
		}
	}

	result.OriginalRepoCount = result.RepoCount - result.ForkedRepoCount
	result.AverageStarsPerRepo = averageStars(result.TotalStars, result.RepoCount)
	result.LanguageBreakdown = languages.counts
	result.TopLanguages = languages.top(TopN)
	result.TopicBreakdown = topics.counts
	result.TopTopics = topics.top(TopN)

	return result
}

func averageStars(total int64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
