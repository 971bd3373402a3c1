package plans

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategoryFinance  Category = "finance"
	CategoryPersonal Category = "personal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Plan is a user-owned unit of work. Deadline is a date-only string; a value
// that does not parse as a calendar date is kept in storage but ignored by
// all date-based logic.
type Plan struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    Priority  `json:"priority"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	Deadline    string    `json:"deadline,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateRequest carries the client-settable fields of a new plan.
// Zero values fall back to the documented defaults.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	Deadline    string   `json:"deadline"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	Category    *Category `json:"category"`
	Status      *Status   `json:"status"`
	Deadline    *string   `json:"deadline"`
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryWork, CategoryStudy, CategoryHealth, CategoryFinance, CategoryPersonal:
		return true
	default:
		return false
	}
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseDeadline interprets a date-only deadline string. The second return is
// false for absent or unparseable values; callers treat those as "no deadline".
func ParseDeadline(deadline string) (time.Time, bool) {
	if deadline == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", deadline, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// startOfWeek returns midnight of the Monday of t's week in t's location.
func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}
