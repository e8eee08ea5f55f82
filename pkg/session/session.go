// Package session persists the bearer token and minimal user profile
// between runs, the way the browser client keeps them in local
// storage. The session file is an explicit object with init/teardown:
// login populates it, logout clears it, nothing reads ambient global
// state.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/golang-jwt/jwt/v5"
)

const filePerms = 0o600

// User is the minimal profile stored alongside the token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is a restored or freshly issued login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Expired reports whether the token's exp claim has passed. Tokens
// without a readable exp claim are treated as still valid; the server
// is the authority and will reject them anyway.
func (s *Session) Expired(now time.Time) bool {
	if s == nil || s.Token == "" {
		return true
	}

	var claims jwt.RegisteredClaims

	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Before(now)
}

// Store reads and writes the session file. Writes take a file lock so
// two concurrently running commands don't interleave.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store for the given session file path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Load reads the persisted session. A missing file means a logged-out
// state and returns (nil, nil).
func (s *Store) Load() (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("error reading session file %s: %w", s.path, err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("error parsing session file %s: %w", s.path, err)
	}

	if sess.Token == "" || sess.User.ID == "" {
		// a partial session forces a logged-out state
		return nil, nil
	}

	return &sess, nil
}

// Save persists the session, creating the parent directory when
// needed.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("error locking session file: %w", err)
	}
	defer s.lock.Unlock()

	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, raw, filePerms); err != nil {
		return fmt.Errorf("error writing session file %s: %w", s.path, err)
	}

	return nil
}

// Clear removes the persisted session; clearing an absent session is
// not an error.
func (s *Store) Clear() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("error locking session file: %w", err)
	}
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing session file %s: %w", s.path, err)
	}

	return nil
}
