package plans

import (
	"math"
	"time"
)

// Snapshot summarizes a plan collection. It is derived on every read and
// never cached apart from the collection itself.
type Snapshot struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// Aggregate computes summary counters in a single pass.
func Aggregate(items []Plan) Snapshot {
	return AggregateAt(items, time.Now())
}

// AggregateAt is Aggregate with an explicit evaluation time. A plan is
// overdue when it is still pending and its deadline's calendar date is
// strictly before today; a deadline of exactly today is not overdue.
func AggregateAt(items []Plan, now time.Time) Snapshot {
	var s Snapshot
	s.Total = len(items)
	for _, p := range items {
		switch p.Status {
		case StatusCompleted:
			s.Completed++
		case StatusPending:
			s.Pending++
			if due, ok := ParseDeadline(p.Deadline); ok && due.Before(now) && !sameDay(due, now) {
				s.Overdue++
			}
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}
