package api

import (
	"context"
	"net/http"
)

// TaskRecord is a study-goal task as the server sends it. Tasks live
// inside exactly one goal and have no endpoints of their own.
type TaskRecord struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
	DueDate     string `json:"dueDate,omitempty"`
}

// GoalRecord is a study goal as the server sends it.
type GoalRecord struct {
	ID          string       `json:"_id"`
	UserID      string       `json:"userId"`
	GoalTitle   string       `json:"goalTitle"`
	Description string       `json:"description,omitempty"`
	Tasks       []TaskRecord `json:"tasks"`
	CreatedAt   string       `json:"createdAt"`
	Deadline    string       `json:"deadline,omitempty"`
	// Progress is the manual override; nil when the user never set one.
	Progress *float64 `json:"progress,omitempty"`
}

// GoalInput is the payload for creating a study goal.
type GoalInput struct {
	UserID      string `json:"userId,omitempty"`
	GoalTitle   string `json:"goalTitle"`
	Description string `json:"description,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// TaskInput is the payload for adding a task to a goal.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// ListGoals fetches every study goal for the session user.
func (c *Client) ListGoals(ctx context.Context) ([]GoalRecord, error) {
	if c.userID == "" {
		return []GoalRecord{}, nil
	}

	raw, err := c.do(ctx, "study-planner", http.MethodGet, "/study-planner", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[GoalRecord]("study-planner", raw), nil
}

// GoalsProgress fetches the server's per-goal progress summary.
// Callers treat a failure here as non-fatal and recompute locally.
func (c *Client) GoalsProgress(ctx context.Context) (map[string]float64, error) {
	if c.userID == "" {
		return map[string]float64{}, nil
	}

	raw, err := c.do(ctx, "study-planner", http.MethodGet, "/study-planner/progress", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	out, err := decodeItem[map[string]float64]("study-planner", raw)
	if err != nil {
		return nil, err
	}

	return *out, nil
}

// CreateGoal creates a study goal for the session user.
func (c *Client) CreateGoal(ctx context.Context, in GoalInput) error {
	if c.userID == "" {
		return nil
	}

	in.UserID = c.userID

	_, err := c.do(ctx, "study-planner", http.MethodPost, "/study-planner", nil, in)

	return err
}

// AddGoalTask appends a task to a goal.
func (c *Client) AddGoalTask(ctx context.Context, goalID string, task TaskInput) error {
	payload := map[string]interface{}{"task": task}

	_, err := c.do(ctx, "study-planner", http.MethodPatch, "/study-planner/"+goalID, nil, payload)

	return err
}

// SetTaskCompleted marks one task of a goal completed or not.
func (c *Client) SetTaskCompleted(ctx context.Context, goalID, taskID string, completed bool) error {
	payload := map[string]interface{}{"taskId": taskID, "isCompleted": completed}

	_, err := c.do(ctx, "study-planner", http.MethodPatch, "/study-planner/"+goalID, nil, payload)

	return err
}

// SetGoalProgress stores a manual progress override for a goal; a nil
// progress clears the override so the derived value takes over again.
func (c *Client) SetGoalProgress(ctx context.Context, goalID string, progress *float64) error {
	payload := map[string]interface{}{"progress": progress}

	_, err := c.do(ctx, "study-planner", http.MethodPatch, "/study-planner/"+goalID, nil, payload)

	return err
}

// DeleteGoal deletes a whole goal together with its tasks.
func (c *Client) DeleteGoal(ctx context.Context, goalID string) error {
	_, err := c.do(ctx, "study-planner", http.MethodDelete, "/study-planner/"+goalID, nil, nil)

	return err
}

// DeleteGoalTask deletes a single task from a goal. The task id rides
// in the request body; the route stays the goal's.
func (c *Client) DeleteGoalTask(ctx context.Context, goalID, taskID string) error {
	payload := map[string]string{"taskId": taskID}

	_, err := c.do(ctx, "study-planner", http.MethodDelete, "/study-planner/"+goalID, nil, payload)

	return err
}
