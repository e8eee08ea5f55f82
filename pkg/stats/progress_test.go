package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matt-steen/zenith/pkg/model"
	"github.com/matt-steen/zenith/pkg/stats"
)

func progress(v float64) *float64 {
	return &v
}

func TestDerivedProgress(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	goal := model.StudyGoal{ID: "g1", Tasks: []model.Task{
		{ID: "t1", Completed: true},
		{ID: "t2", Completed: true},
		{ID: "t3"},
		{ID: "t4"},
	}}

	assert.InDelta(50.0, stats.DerivedProgress(goal), 0.001)
}

func TestDerivedProgressNoTasks(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Zero(stats.DerivedProgress(model.StudyGoal{ID: "g1"}))
}

func TestGoalProgressOverrideWins(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	goal := model.StudyGoal{
		ID:       "g1",
		Progress: progress(75),
		Tasks:    []model.Task{{ID: "t1", Completed: true}},
	}

	// every task is complete, but the manual override stands until cleared
	assert.InDelta(75.0, stats.GoalProgress(goal), 0.001)

	goal.Progress = nil
	assert.InDelta(100.0, stats.GoalProgress(goal), 0.001)
}

func TestOverallProgress(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	goals := []model.StudyGoal{
		{ID: "g1", Progress: progress(80)},
		{ID: "g2", Tasks: []model.Task{{ID: "t1", Completed: true}, {ID: "t2"}}},
		{ID: "g3"},
	}

	// (80 + 50 + 0) / 3
	assert.InDelta(43.333, stats.OverallProgress(goals), 0.001)
}

func TestOverallProgressEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Zero(stats.OverallProgress([]model.StudyGoal{}))
}

func TestTaskCounts(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	goals := []model.StudyGoal{
		{ID: "g1", Tasks: []model.Task{{ID: "t1", Completed: true}, {ID: "t2"}}},
		{ID: "g2", Tasks: []model.Task{{ID: "t3", Completed: true}}},
	}

	completed, pending := stats.TaskCounts(goals)
	assert.Equal(2, completed)
	assert.Equal(1, pending)
}
