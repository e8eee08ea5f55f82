// Package model holds the UI-facing view of every resource plus the
// pure transformations from the server's wire records. Dates are
// normalized to YYYY-MM-DD strings so calendar-day comparisons are
// plain string comparisons; times of day stay as zero-padded HH:MM
// strings ordered lexically.
package model

import "time"

// Note statuses.
const (
	NoteActive   = "active"
	NoteArchived = "archived"
)

// Todo statuses. Advancing cycles pending -> in-progress -> completed
// -> pending.
const (
	TodoPending    = "pending"
	TodoInProgress = "in-progress"
	TodoCompleted  = "completed"
)

// Todo priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Weekdays returns the schedule's day order, Monday first.
func Weekdays() []string {
	return []string{
		"Monday", "Tuesday", "Wednesday", "Thursday",
		"Friday", "Saturday", "Sunday",
	}
}

// Note is a user note.
type Note struct {
	ID        string
	Title     string
	Content   string
	Subject   string
	Tags      []string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoItem is a single todo entry.
type TodoItem struct {
	ID          string
	Title       string
	Description string
	Priority    string
	Category    string
	// DueDate is a YYYY-MM-DD string, or "" when no due date is set.
	DueDate   string
	Status    string
	CreatedAt time.Time
}

// ClassEntry is one fixed weekly class slot.
type ClassEntry struct {
	ID         string
	Subject    string
	Teacher    string
	Day        string
	StartTime  string
	EndTime    string
	RoomNumber string
	CreatedAt  time.Time
}

// Transaction is one budget movement.
type Transaction struct {
	ID       string
	Amount   float64
	Type     string
	Category string
	Note     string
	// Date is a YYYY-MM-DD string used for calendar-day matching.
	Date               string
	IsRecurring        bool
	RecurringFrequency string
	CreatedAt          time.Time
}

// Budget is a per-category monthly spending limit. Spent is derived
// client-side from the transaction set and never trusted from the
// server.
type Budget struct {
	ID       string
	Category string
	Limit    float64
	Spent    float64
	Month    string
}

// Task belongs to exactly one study goal.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	// DueDate is a YYYY-MM-DD string, or "".
	DueDate string
}

// StudyGoal owns an ordered list of tasks. Progress is the manual
// override; nil means progress is derived from task completion.
type StudyGoal struct {
	ID          string
	Title       string
	Description string
	Tasks       []Task
	// CreatedAt and TargetDate are YYYY-MM-DD strings; TargetDate may
	// be "".
	CreatedAt  string
	TargetDate string
	Progress   *float64
}

// ExamSet is a generated exam Q&A set.
type ExamSet struct {
	ID        string
	Subject   string
	Topic     string
	Questions []Question
	CreatedAt time.Time
}

// Question is one question/answer pair of an exam set.
type Question struct {
	ID       string
	Question string
	Answer   string
}
