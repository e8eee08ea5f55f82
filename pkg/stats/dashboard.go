package stats

import (
	"sort"
	"time"

	"github.com/matt-steen/zenith/pkg/model"
)

// Recent-item limits for the dashboard page.
const (
	recentGoals        = 3
	recentTodos        = 5
	upcomingClassCount = 3
	recentTransactions = 5
	recentNotes        = 3
)

// DashboardStats are the headline figures at the top of the
// dashboard. Each completed study task counts as one study hour.
type DashboardStats struct {
	StudyHours      int
	CompletedTasks  int
	BudgetRemaining float64
	StudyStreak     int
}

// DashboardData is everything the dashboard page renders.
type DashboardData struct {
	Stats              DashboardStats
	RecentGoals        []model.StudyGoal
	RecentTodos        []model.TodoItem
	UpcomingClasses    []model.ClassEntry
	RecentTransactions []model.Transaction
	RecentNotes        []model.Note
}

// Collections bundles the transformed resource sets the dashboard
// derives from.
type Collections struct {
	Goals        []model.StudyGoal
	Todos        []model.TodoItem
	Classes      []model.ClassEntry
	Transactions []model.Transaction
	Notes        []model.Note
}

// BuildDashboard derives the dashboard page from the current
// collections. monthlyBudget is the configured overall budget that
// expenses are subtracted from.
func BuildDashboard(c Collections, monthlyBudget float64, now time.Time) DashboardData {
	completedStudyTasks, _ := TaskCounts(c.Goals)
	summary := CalculateSummary(c.Transactions, now)

	completedTodos := 0

	for _, t := range c.Todos {
		if t.Status == model.TodoCompleted {
			completedTodos++
		}
	}

	return DashboardData{
		Stats: DashboardStats{
			StudyHours:      completedStudyTasks,
			CompletedTasks:  completedTodos,
			BudgetRemaining: monthlyBudget - summary.TotalExpenses,
			StudyStreak:     StudyStreak(c, now),
		},
		RecentGoals:        recentGoalList(c.Goals),
		RecentTodos:        firstN(SortTodos(c.Todos, SortCreated), recentTodos),
		UpcomingClasses:    UpcomingClasses(c.Classes, now, upcomingClassCount),
		RecentTransactions: recentTransactionList(c.Transactions),
		RecentNotes:        recentNoteList(c.Notes),
	}
}

// StudyStreak counts consecutive calendar days ending today on which
// any record was created. A quiet day today lets the streak run from
// yesterday instead of resetting it mid-day.
func StudyStreak(c Collections, now time.Time) int {
	active := map[string]bool{}

	for _, g := range c.Goals {
		if g.CreatedAt != "" {
			active[g.CreatedAt] = true
		}
	}

	for _, t := range c.Todos {
		markDay(active, t.CreatedAt)
	}

	for _, n := range c.Notes {
		markDay(active, n.CreatedAt)
	}

	for _, t := range c.Transactions {
		markDay(active, t.CreatedAt)
	}

	day := now
	if !active[model.Today(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0

	for active[model.Today(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

func markDay(active map[string]bool, t time.Time) {
	if !t.IsZero() {
		active[model.Today(t)] = true
	}
}

func recentGoalList(goals []model.StudyGoal) []model.StudyGoal {
	out := append([]model.StudyGoal{}, goals...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})

	return firstN(out, recentGoals)
}

func recentTransactionList(transactions []model.Transaction) []model.Transaction {
	out := append([]model.Transaction{}, transactions...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return firstN(out, recentTransactions)
}

func recentNoteList(notes []model.Note) []model.Note {
	out := append([]model.Note{}, notes...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return firstN(out, recentNotes)
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}

	return items
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
