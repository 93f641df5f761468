package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// SummarizeDaily describes a daily series.
func SummarizeDaily(buckets []domain.DailyBucket) domain.SeriesSummary {
	keys := make([]string, len(buckets))
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		keys[i], counts[i] = b.Date, b.Count
	}
	return summarize(keys, counts)
}

// SummarizeWeekly describes a weekly series.
func SummarizeWeekly(buckets []domain.WeeklyBucket) domain.SeriesSummary {
	keys := make([]string, len(buckets))
	counts := make([]int, len(buckets))
	for i, b := range buckets {
		keys[i], counts[i] = b.Week, b.Count
	}
	return summarize(keys, counts)
}

// summarize ties on the busiest bucket resolve to the earliest one.
func summarize(keys []string, counts []int) domain.SeriesSummary {
	summary := domain.SeriesSummary{Buckets: len(counts)}
	if len(counts) == 0 {
		return summary
	}
	for i, c := range counts {
		summary.Total += c
		if c > summary.BusiestSize || summary.BusiestKey == "" {
			summary.BusiestKey, summary.BusiestSize = keys[i], c
		}
	}

	data := stats.LoadRawData(counts)
	// Errors only occur on empty input, which is handled above.
	summary.Mean, _ = stats.Mean(data)
	summary.Median, _ = stats.Median(data)
	return summary
}
