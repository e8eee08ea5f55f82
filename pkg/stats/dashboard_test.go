package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

func sampleCollections() stats.Collections {
	return stats.Collections{
		Goals: []model.StudyGoal{
			{ID: "g1", Title: "pass finals", CreatedAt: "2026-03-04", Tasks: []model.Task{
				{ID: "t1", Completed: true},
				{ID: "t2", Completed: true},
				{ID: "t3"},
			}},
			{ID: "g2", Title: "learn piano", CreatedAt: "2026-03-03"},
		},
		Todos:        sampleTodos(),
		Classes:      sampleClasses(),
		Transactions: sampleTransactions(),
		Notes: []model.Note{
			{ID: "n1", Title: "kinematics", CreatedAt: time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	data := stats.BuildDashboard(sampleCollections(), 1000, testNow())

	assert.Equal(2, data.Stats.StudyHours)
	assert.Equal(1, data.Stats.CompletedTasks)
	assert.InDelta(954.50, data.Stats.BudgetRemaining, 0.001)

	assert.Len(data.RecentGoals, 2)
	assert.Equal("g1", data.RecentGoals[0].ID)
	assert.Len(data.RecentTodos, 3)
	assert.Len(data.UpcomingClasses, 3)
	assert.Len(data.RecentTransactions, 4)
	assert.Len(data.RecentNotes, 1)
}

func TestBuildDashboardRecentLimits(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c := stats.Collections{}

	for i := 0; i < 10; i++ {
		c.Goals = append(c.Goals, model.StudyGoal{ID: "g", CreatedAt: "2026-03-01"})
		c.Todos = append(c.Todos, model.TodoItem{ID: "t"})
		c.Notes = append(c.Notes, model.Note{ID: "n"})
		c.Transactions = append(c.Transactions, model.Transaction{ID: "x", Type: model.TypeExpense})
	}

	data := stats.BuildDashboard(c, 1000, testNow())

	assert.Len(data.RecentGoals, 3)
	assert.Len(data.RecentTodos, 5)
	assert.Len(data.RecentTransactions, 5)
	assert.Len(data.RecentNotes, 3)
}

func TestStudyStreak(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := testNow()

	c := stats.Collections{
		Goals: []model.StudyGoal{{ID: "g1", CreatedAt: "2026-03-04"}},
		Todos: []model.TodoItem{
			{ID: "t1", CreatedAt: time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)},
		},
		Notes: []model.Note{
			{ID: "n1", CreatedAt: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
		},
	}

	assert.Equal(3, stats.StudyStreak(c, now))
}

func TestStudyStreakQuietToday(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	// nothing created today keeps yesterday's streak alive
	c := stats.Collections{
		Goals: []model.StudyGoal{
			{ID: "g1", CreatedAt: "2026-03-03"},
			{ID: "g2", CreatedAt: "2026-03-02"},
		},
	}

	assert.Equal(2, stats.StudyStreak(c, testNow()))
}

func TestStudyStreakBroken(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c := stats.Collections{
		Goals: []model.StudyGoal{
			{ID: "g1", CreatedAt: "2026-03-04"},
			{ID: "g2", CreatedAt: "2026-03-01"},
		},
	}

	assert.Equal(1, stats.StudyStreak(c, testNow()))
}

func TestStudyStreakEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Zero(stats.StudyStreak(stats.Collections{}, testNow()))
}
