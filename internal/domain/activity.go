package domain

import "time"

// PushEventType is the only event type that contributes to overall activity.
const PushEventType = "PushEvent"

// RawEvent is a normalized entry of an account's public event feed.
// CommitCount is the length of the push payload's commit list and is zero for
// every other event type.
type RawEvent struct {
	Type        string
	CreatedAt   time.Time
	CommitCount int
}

// RawCommit is a normalized entry of a repository's commit list.
type RawCommit struct {
	SHA        string
	AuthoredAt time.Time
}

// DailyBucket is the commit count of one calendar day (YYYY-MM-DD, UTC).
type DailyBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeeklyBucket is the commit count of one ISO-8601 week.
type WeeklyBucket struct {
	Week      string    `json:"week"`
	WeekStart time.Time `json:"week_start"`
	Count     int       `json:"count"`
}

// ActivityView is the activity series currently on display. It is either an
// OverallActivity or a RepositoryActivity, never both.
type ActivityView interface {
	activityView()
}

// OverallActivity is the account-wide daily series built from push events.
type OverallActivity struct {
	State FetchState[[]DailyBucket]
}

// RepositoryActivity is the weekly series of a single selected repository.
type RepositoryActivity struct {
	Name  string
	State FetchState[[]WeeklyBucket]
}

func (OverallActivity) activityView()    {}
func (RepositoryActivity) activityView() {}
