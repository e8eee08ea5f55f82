package stats

import (
	"sort"
	"time"

	"github.com/matt-steen/zenith/pkg/model"
)

// ClassesForDay filters one weekday's entries, ordered by start time.
// Plain string comparison is correct because times are zero-padded
// 24-hour HH:MM.
func ClassesForDay(classes []model.ClassEntry, day string) []model.ClassEntry {
	out := []model.ClassEntry{}

	for _, c := range classes {
		if c.Day == day {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})

	return out
}

// GroupByDay buckets the schedule per weekday, each day ordered by
// start time. Days without classes map to empty slices so the week
// view can render all seven rows.
func GroupByDay(classes []model.ClassEntry) map[string][]model.ClassEntry {
	out := map[string][]model.ClassEntry{}

	for _, day := range model.Weekdays() {
		out[day] = ClassesForDay(classes, day)
	}

	return out
}

// dayIndex maps a weekday name to its offset in the Monday-first week.
func dayIndex(day string) int {
	for i, d := range model.Weekdays() {
		if d == day {
			return i
		}
	}

	return len(model.Weekdays())
}

// UpcomingClasses orders the schedule starting from now's weekday and
// returns the first limit entries. A class later today counts before
// tomorrow's first class; start times break ties within a day.
func UpcomingClasses(classes []model.ClassEntry, now time.Time, limit int) []model.ClassEntry {
	// time.Weekday is Sunday-based; shift to the Monday-first order.
	today := (int(now.Weekday()) + 6) % 7

	out := append([]model.ClassEntry{}, classes...)

	offset := func(c model.ClassEntry) int {
		return (dayIndex(c.Day) - today + 7) % 7
	}

	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := offset(out[i]), offset(out[j])
		if oi != oj {
			return oi < oj
		}

		return out[i].StartTime < out[j].StartTime
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}
