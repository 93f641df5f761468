// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"
	"time"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/timebucket"
)

// AggregateOverall sums the commit counts of push events per UTC calendar day.
// Events of any other type are ignored. Buckets are returned in chronological order.
func AggregateOverall(events []domain.RawEvent) []domain.DailyBucket {
	countsByDay := make(map[string]int)
	for _, event := range events {
		if event.Type != domain.PushEventType {
			continue
		}
		countsByDay[timebucket.DailyKey(event.CreatedAt)] += event.CommitCount
	}

	buckets := make([]domain.DailyBucket, 0, len(countsByDay))
	for day, count := range countsByDay {
		buckets = append(buckets, domain.DailyBucket{Date: day, Count: count})
	}
	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

// AggregateWeekly counts commits per ISO-8601 week of their author date.
// Buckets are sorted by week start date rather than by key, and the result
// does not depend on the order of commits.
func AggregateWeekly(commits []domain.RawCommit) []domain.WeeklyBucket {
	type week struct {
		start time.Time
		count int
	}
	weeks := make(map[string]*week)
	for _, commit := range commits {
		key, start := timebucket.ISOWeekKey(commit.AuthoredAt)
		w, ok := weeks[key]
		if !ok {
			w = &week{start: start}
			weeks[key] = w
		}
		w.count++
	}

	buckets := make([]domain.WeeklyBucket, 0, len(weeks))
	for key, w := range weeks {
		buckets = append(buckets, domain.WeeklyBucket{Week: key, WeekStart: w.start, Count: w.count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeekStart.Before(buckets[j].WeekStart)
	})
	return buckets
}
