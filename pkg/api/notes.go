package api

import (
	"context"
	"net/http"
)

// NoteRecord is a note as the server sends it.
type NoteRecord struct {
	ID        string   `json:"_id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Subject   string   `json:"subject"`
	Tags      []string `json:"tags"`
	Status    string   `json:"status,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// NoteInput is the payload for creating or updating a note.
type NoteInput struct {
	UserID  string   `json:"userId,omitempty"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Subject string   `json:"subject"`
	Tags    []string `json:"tags"`
}

// ListNotes fetches every note for the session user.
func (c *Client) ListNotes(ctx context.Context) ([]NoteRecord, error) {
	if c.userID == "" {
		return []NoteRecord{}, nil
	}

	raw, err := c.do(ctx, "notes", http.MethodGet, "/notes", c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[NoteRecord]("notes", raw), nil
}

// GetNote fetches one note by id.
func (c *Client) GetNote(ctx context.Context, id string) (*NoteRecord, error) {
	raw, err := c.do(ctx, "notes", http.MethodGet, "/notes/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeItem[NoteRecord]("notes", raw)
}

// ListNotesBySubject fetches the notes filed under one subject.
func (c *Client) ListNotesBySubject(ctx context.Context, subject string) ([]NoteRecord, error) {
	if c.userID == "" {
		return []NoteRecord{}, nil
	}

	raw, err := c.do(ctx, "notes", http.MethodGet, "/notes/category/"+subject, c.userQuery(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[NoteRecord]("notes", raw), nil
}

// CreateNote creates a note for the session user.
func (c *Client) CreateNote(ctx context.Context, in NoteInput) error {
	if c.userID == "" {
		return nil
	}

	in.UserID = c.userID

	_, err := c.do(ctx, "notes", http.MethodPost, "/notes", nil, in)

	return err
}

// UpdateNote replaces the editable fields of a note.
func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) error {
	in.UserID = ""

	_, err := c.do(ctx, "notes", http.MethodPatch, "/notes/"+id, nil, in)

	return err
}

// UpdateNoteStatus toggles a note between active and archived.
func (c *Client) UpdateNoteStatus(ctx context.Context, id, status string) error {
	payload := map[string]string{"status": status}

	_, err := c.do(ctx, "notes", http.MethodPatch, "/notes/"+id+"/status", nil, payload)

	return err
}

// DeleteNote deletes a note by id.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	_, err := c.do(ctx, "notes", http.MethodDelete, "/notes/"+id, nil, nil)

	return err
}
