package api

import (
	"context"
	"fmt"
	"net/http"
)

// UserRecord is the user profile as the server sends it. Some routes
// use "_id" and some "id"; ProfileID resolves whichever is set.
type UserRecord struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProfileID returns the usable user id regardless of which field the
// server populated.
func (u UserRecord) ProfileID() string {
	if u.AltID != "" {
		return u.AltID
	}

	return u.ID
}

// LoginResult carries the credentials handed back by a successful
// login or registration.
type LoginResult struct {
	Token  string
	UserID string
	User   UserRecord
}

type loginResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	UserID  string     `json:"userId"`
	User    UserRecord `json:"user"`
}

type profileResponse struct {
	User UserRecord `json:"user"`
}

// Login exchanges credentials for a bearer token. It does not mutate
// the client; callers decide when to adopt the new session.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}

	raw, err := c.do(ctx, "user", http.MethodPost, "/user/login", nil, payload)
	if err != nil {
		return nil, err
	}

	resp, err := decodeItem[loginResponse]("user", raw)
	if err != nil {
		return nil, err
	}

	if !resp.Success || resp.Token == "" {
		return nil, fmt.Errorf("error logging in: invalid login response")
	}

	return &LoginResult{Token: resp.Token, UserID: resp.UserID, User: resp.User}, nil
}

// Register creates an account with the student role and returns the
// credentials when the server issues them right away.
func (c *Client) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     "student",
	}

	raw, err := c.do(ctx, "user", http.MethodPost, "/user", nil, payload)
	if err != nil {
		return nil, err
	}

	resp, err := decodeItem[loginResponse]("user", raw)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: resp.Token, UserID: resp.User.ProfileID(), User: resp.User}, nil
}

// Profile fetches the profile of the session user.
func (c *Client) Profile(ctx context.Context) (*UserRecord, error) {
	raw, err := c.do(ctx, "user", http.MethodGet, "/user/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := decodeItem[profileResponse]("user", raw)
	if err != nil {
		return nil, err
	}

	return &resp.User, nil
}
