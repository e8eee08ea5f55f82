package stats

import "github.com/matt-steen/zenith/pkg/model"

// DerivedProgress is the task-completion ratio of a goal as a 0-100
// value, 0 for a goal with no tasks.
func DerivedProgress(g model.StudyGoal) float64 {
	if len(g.Tasks) == 0 {
		return 0
	}

	completed := 0

	for _, t := range g.Tasks {
		if t.Completed {
			completed++
		}
	}

	return float64(completed) / float64(len(g.Tasks)) * 100
}

// GoalProgress is the effective progress of a goal: the manual
// override when one was set, the derived ratio otherwise. An override
// persists until explicitly cleared, even after task completion
// changes again.
func GoalProgress(g model.StudyGoal) float64 {
	if g.Progress != nil {
		return *g.Progress
	}

	return DerivedProgress(g)
}

// OverallProgress is the arithmetic mean of every goal's effective
// progress, 0 for an empty goal list.
func OverallProgress(goals []model.StudyGoal) float64 {
	if len(goals) == 0 {
		return 0
	}

	total := 0.0

	for _, g := range goals {
		total += GoalProgress(g)
	}

	return total / float64(len(goals))
}

// TaskCounts returns the completed and pending task totals across all
// goals.
func TaskCounts(goals []model.StudyGoal) (completed, pending int) {
	for _, g := range goals {
		for _, t := range g.Tasks {
			if t.Completed {
				completed++
			} else {
				pending++
			}
		}
	}

	return completed, pending
}
