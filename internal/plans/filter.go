package plans

import (
	"sort"
	"strings"
	"time"
)

// FilterMode selects a named subset of the plan collection.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterPending   FilterMode = "pending"
	FilterCompleted FilterMode = "completed"
	FilterToday     FilterMode = "today"
	FilterWeek      FilterMode = "week"
)

// Filter reduces a plan collection to the ordered subset matching the given
// criteria, evaluated against the current local time. It never mutates its
// input and never fails; plans with absent or unparseable deadlines simply
// fall out of the date-based modes.
func Filter(items []Plan, mode FilterMode, query string, category string) []Plan {
	return FilterAt(items, mode, query, category, time.Now())
}

// FilterAt is Filter with an explicit evaluation time.
func FilterAt(items []Plan, mode FilterMode, query string, category string, now time.Time) []Plan {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]Plan, 0, len(items))
	for _, p := range items {
		if !matchesQuery(p, query) {
			continue
		}
		if category != "" && category != "all" && string(p.Category) != category {
			continue
		}
		if !matchesMode(p, mode, now) {
			continue
		}
		out = append(out, p)
	}

	// Completed plans sink to the bottom; within a status group higher
	// priority comes first. The sort is stable so input order breaks ties.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Status == StatusCompleted) != (b.Status == StatusCompleted) {
			return a.Status != StatusCompleted
		}
		return priorityRank(a.Priority) < priorityRank(b.Priority)
	})
	return out
}

func matchesQuery(p Plan, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	return p.Description != "" && strings.Contains(strings.ToLower(p.Description), query)
}

func matchesMode(p Plan, mode FilterMode, now time.Time) bool {
	switch mode {
	case FilterPending:
		return p.Status == StatusPending
	case FilterCompleted:
		return p.Status == StatusCompleted
	case FilterToday:
		due, ok := ParseDeadline(p.Deadline)
		return ok && sameDay(due, now)
	case FilterWeek:
		due, ok := ParseDeadline(p.Deadline)
		if !ok {
			return false
		}
		weekStart := startOfWeek(now)
		return !due.Before(weekStart) && due.Before(weekStart.AddDate(0, 0, 7))
	default:
		return true
	}
}
