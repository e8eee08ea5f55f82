package api

import (
	"context"
	"net/http"
)

// TodoRecord is a todo item as the server sends it.
type TodoRecord struct {
	ID          string `json:"_id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Category    string `json:"category,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// TodoInput is the payload for creating or updating a todo.
type TodoInput struct {
	UserID      string `json:"userId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Category    string `json:"category,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// ListTodos fetches every todo for the session user.
func (c *Client) ListTodos(ctx context.Context) ([]TodoRecord, error) {
	if c.userID == "" {
		return []TodoRecord{}, nil
	}

	raw, err := c.do(ctx, "todo", http.MethodGet, "/todo", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[TodoRecord]("todo", raw), nil
}

// GetTodo fetches one todo by id.
func (c *Client) GetTodo(ctx context.Context, id string) (*TodoRecord, error) {
	raw, err := c.do(ctx, "todo", http.MethodGet, "/todo/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeItem[TodoRecord]("todo", raw)
}

// ListTodosByCategory fetches the todos in one category.
func (c *Client) ListTodosByCategory(ctx context.Context, category string) ([]TodoRecord, error) {
	if c.userID == "" {
		return []TodoRecord{}, nil
	}

	raw, err := c.do(ctx, "todo", http.MethodGet, "/todo/category/"+category, c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[TodoRecord]("todo", raw), nil
}

// CreateTodo creates a todo for the session user.
func (c *Client) CreateTodo(ctx context.Context, in TodoInput) error {
	if c.userID == "" {
		return nil
	}

	in.UserID = c.userID

	_, err := c.do(ctx, "todo", http.MethodPost, "/todo", nil, in)

	return err
}

// UpdateTodo replaces the editable fields of a todo.
func (c *Client) UpdateTodo(ctx context.Context, id string, in TodoInput) error {
	in.UserID = ""

	_, err := c.do(ctx, "todo", http.MethodPatch, "/todo/"+id, nil, in)

	return err
}

// UpdateTodoStatus moves a todo to the given status.
func (c *Client) UpdateTodoStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}

	_, err := c.do(ctx, "todo", http.MethodPatch, "/todo/"+id+"/status", nil, payload)

	return err
}

// DeleteTodo deletes a todo by id.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	_, err := c.do(ctx, "todo", http.MethodDelete, "/todo/"+id, nil, nil)

	return err
}
