// Package streak computes consecutive-day study streaks from activity
// timestamps.
package streak

import (
	"sort"
	"time"
)

// Length returns the number of consecutive calendar days, ending at today or
// yesterday, on which at least one activity occurred. Multiple activities on
// the same day count once and input order does not matter. A streak whose
// most recent day is yesterday is still alive: the user has until midnight
// to extend it. Anything older yields 0.
//
// Calendar days are resolved in now's location.
func Length(activity []time.Time, now time.Time) int {
	if len(activity) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(activity))
	days := make([]time.Time, 0, len(activity))
	for _, ts := range activity {
		day := truncateToDay(ts.In(now.Location()))
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := truncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	latest := days[0]
	if !latest.Equal(today) && !latest.Equal(yesterday) {
		return 0
	}

	count := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			count++
			continue
		}
		break
	}

	return count
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
