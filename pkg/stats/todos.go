package stats

import (
	"sort"
	"time"

	"github.com/matt-steen/zenith/pkg/model"
)

// TodoSort selects one of the supported todo orderings.
type TodoSort string

// Supported todo sort orders.
const (
	SortCreated  TodoSort = "created"
	SortPriority TodoSort = "priority"
	SortDueDate  TodoSort = "dueDate"
)

// priorityRank fixes the priority ordering used by SortPriority.
var priorityRank = map[string]int{
	model.PriorityHigh:   3,
	model.PriorityMedium: 2,
	model.PriorityLow:    1,
}

// TodoStats are the todo view's headline counts.
type TodoStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Overdue    int
}

// IsOverdue reports whether a todo's due date has passed while the
// todo isn't completed. The comparison is calendar-day, not
// time-of-day.
func IsOverdue(t model.TodoItem, now time.Time) bool {
	return t.Status != model.TodoCompleted && t.DueDate != "" && t.DueDate < model.Today(now)
}

// CountTodos partitions the todo set by status and counts overdue
// entries.
func CountTodos(todos []model.TodoItem, now time.Time) TodoStats {
	s := TodoStats{Total: len(todos)}

	for _, t := range todos {
		switch t.Status {
		case model.TodoPending:
			s.Pending++
		case model.TodoInProgress:
			s.InProgress++
		case model.TodoCompleted:
			s.Completed++
		}

		if IsOverdue(t, now) {
			s.Overdue++
		}
	}

	return s
}

// NextStatus advances a todo along the pending -> in-progress ->
// completed -> pending cycle.
func NextStatus(status string) string {
	switch status {
	case model.TodoPending:
		return model.TodoInProgress
	case model.TodoInProgress:
		return model.TodoCompleted
	case model.TodoCompleted:
		return model.TodoPending
	default:
		return model.TodoPending
	}
}

// FilterTodos keeps the todos in the given status; "" keeps all.
func FilterTodos(todos []model.TodoItem, status string) []model.TodoItem {
	if status == "" {
		return append([]model.TodoItem{}, todos...)
	}

	out := []model.TodoItem{}

	for _, t := range todos {
		if t.Status == status {
			out = append(out, t)
		}
	}

	return out
}

// SortTodos returns a sorted copy. createdAt orders newest first,
// priority orders High before Medium before Low, dueDate orders
// soonest first with dateless items last. Ties keep their incoming
// order.
func SortTodos(todos []model.TodoItem, by TodoSort) []model.TodoItem {
	out := append([]model.TodoItem{}, todos...)

	sort.SliceStable(out, func(i, j int) bool {
		switch by {
		case SortPriority:
			return priorityRank[out[i].Priority] > priorityRank[out[j].Priority]
		case SortDueDate:
			if out[i].DueDate == "" {
				return false
			}

			if out[j].DueDate == "" {
				return true
			}

			return out[i].DueDate < out[j].DueDate
		default:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})

	return out
}
