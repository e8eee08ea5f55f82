package api

import (
	"context"
	"net/http"
)

// ClassRecord is a class schedule entry as the server sends it.
// The slot is a fixed weekly one: day of week plus start/end times,
// not a date range.
type ClassRecord struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RoomNo    string `json:"roomno"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ClassInput is the payload for creating or updating a class entry.
type ClassInput struct {
	UserID    string `json:"userId,omitempty"`
	Subject   string `json:"subject"`
	Teacher   string `json:"teacher"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RoomNo    string `json:"roomno"`
}

// ListClasses fetches the full class schedule for the session user.
func (c *Client) ListClasses(ctx context.Context) ([]ClassRecord, error) {
	if c.userID == "" {
		return []ClassRecord{}, nil
	}

	raw, err := c.do(ctx, "class-schedule", http.MethodGet, "/class-schedule", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ClassRecord]("class-schedule", raw), nil
}

// GetClass fetches one schedule entry by id.
func (c *Client) GetClass(ctx context.Context, id string) (*ClassRecord, error) {
	raw, err := c.do(ctx, "class-schedule", http.MethodGet, "/class-schedule/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeItem[ClassRecord]("class-schedule", raw)
}

// ListWeek fetches the schedule grouped for the current week.
func (c *Client) ListWeek(ctx context.Context) ([]ClassRecord, error) {
	if c.userID == "" {
		return []ClassRecord{}, nil
	}

	raw, err := c.do(ctx, "class-schedule", http.MethodGet, "/class-schedule/week", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ClassRecord]("class-schedule", raw), nil
}

// ListClassesByDay fetches the entries for one weekday.
func (c *Client) ListClassesByDay(ctx context.Context, day string) ([]ClassRecord, error) {
	if c.userID == "" {
		return []ClassRecord{}, nil
	}

	raw, err := c.do(ctx, "class-schedule", http.MethodGet, "/class-schedule/day/"+day, c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ClassRecord]("class-schedule", raw), nil
}

// ListClassesBySubject fetches the entries for one subject.
func (c *Client) ListClassesBySubject(ctx context.Context, subject string) ([]ClassRecord, error) {
	if c.userID == "" {
		return []ClassRecord{}, nil
	}

	raw, err := c.do(ctx, "class-schedule", http.MethodGet, "/class-schedule/subject/"+subject, c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ClassRecord]("class-schedule", raw), nil
}

// ListClassesByTeacher fetches the entries taught by one teacher.
func (c *Client) ListClassesByTeacher(ctx context.Context, teacher string) ([]ClassRecord, error) {
	if c.userID == "" {
		return []ClassRecord{}, nil
	}

	raw, err := c.do(ctx, "class-schedule", http.MethodGet, "/class-schedule/teacher/"+teacher, c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ClassRecord]("class-schedule", raw), nil
}

// CreateClass adds a schedule entry for the session user.
func (c *Client) CreateClass(ctx context.Context, in ClassInput) error {
	if c.userID == "" {
		return nil
	}

	in.UserID = c.userID

	_, err := c.do(ctx, "class-schedule", http.MethodPost, "/class-schedule", nil, in)

	return err
}

// UpdateClass replaces a schedule entry.
func (c *Client) UpdateClass(ctx context.Context, id string, in ClassInput) error {
	in.UserID = ""

	_, err := c.do(ctx, "class-schedule", http.MethodPut, "/class-schedule/"+id, nil, in)

	return err
}

// DeleteClass deletes a schedule entry by id.
func (c *Client) DeleteClass(ctx context.Context, id string) error {
	_, err := c.do(ctx, "class-schedule", http.MethodDelete, "/class-schedule/"+id, nil, nil)

	return err
}
