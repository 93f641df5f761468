// Package timebucket maps instants to the calendar keys used to bucket activity.
package timebucket

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// DailyKey truncates t to its UTC calendar date, formatted YYYY-MM-DD.
func DailyKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// ISOWeekKey returns the ISO-8601 week identifier (YYYY-Www) of t in UTC and
// the Monday that starts that week, at midnight UTC.
//
// Weeks are numbered by their Thursday: the week belongs to the year its
// Thursday falls in, so 2021-01-01 (a Friday) is 2020-W53 and Sunday is the
// seventh day of the week that began on the preceding Monday.
func ISOWeekKey(t time.Time) (string, time.Time) {
	day := startOfDay(t)
	year, week := day.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week), weekStart(day)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func weekStart(day time.Time) time.Time {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}
