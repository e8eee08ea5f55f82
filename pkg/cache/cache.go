// Package cache keeps the last successfully fetched collections in a
// local sqlite file so the dashboard can still render when the
// backend is unreachable. It also persists the user's per-category
// budget limits, which have no server-side endpoint.
package cache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/matt-steen/zenith/pkg/model"
)

//go:embed base.sql
var baseSQL string

// ErrMiss is returned when no snapshot exists for a resource.
var ErrMiss = errors.New("no cached snapshot")

// Cache manages the sqlite connection.
type Cache struct {
	conn *sql.DB
}

// New opens (and initializes, when empty) the cache at the given
// filename.
func New(ctx context.Context, filename string) (*Cache, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := conn.ExecContext(ctx, baseSQL); err != nil {
		conn.Close()

		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &Cache{conn: conn}, nil
}

// Close closes the sqlite connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

// PutSnapshot stores one resource's collection, replacing the
// previous snapshot.
func (c *Cache) PutSnapshot(ctx context.Context, resource string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %s snapshot: %w", resource, err)
	}

	_, err = c.conn.ExecContext(ctx,
		`INSERT INTO snapshot (resource, payload, fetched_at) VALUES ($1, $2, $3)
		     ON CONFLICT (resource) DO UPDATE SET payload = $2, fetched_at = $3`,
		resource, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error storing %s snapshot: %w", resource, err)
	}

	return nil
}

// GetSnapshot loads one resource's collection into v and returns when
// it was fetched. ErrMiss means the resource was never cached.
func (c *Cache) GetSnapshot(ctx context.Context, resource string, v interface{}) (time.Time, error) {
	var (
		payload   string
		fetchedAt time.Time
	)

	row := c.conn.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM snapshot WHERE resource = $1`, resource)

	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrMiss
		}

		return time.Time{}, fmt.Errorf("error loading %s snapshot: %w", resource, err)
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return time.Time{}, fmt.Errorf("error decoding %s snapshot: %w", resource, err)
	}

	return fetchedAt, nil
}

// SaveBudget stores or replaces one per-category budget limit.
func (c *Cache) SaveBudget(ctx context.Context, b model.Budget) error {
	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO budget_limit (id, category, monthly_limit, month) VALUES ($1, $2, $3, $4)
		     ON CONFLICT (id) DO UPDATE SET category = $2, monthly_limit = $3, month = $4`,
		b.ID, b.Category, b.Limit, b.Month,
	)
	if err != nil {
		return fmt.Errorf("error storing budget for %s: %w", b.Category, err)
	}

	return nil
}

// DeleteBudget removes one budget limit by id.
func (c *Cache) DeleteBudget(ctx context.Context, id string) error {
	if _, err := c.conn.ExecContext(ctx, `DELETE FROM budget_limit WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting budget %s: %w", id, err)
	}

	return nil
}

// LoadBudgets loads every stored budget limit. Spent is left zero;
// the aggregator fills it from the transaction set.
func (c *Cache) LoadBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT id, category, monthly_limit, month FROM budget_limit ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("error loading budgets: %w", err)
	}
	defer rows.Close()

	budgets := []model.Budget{}

	for rows.Next() {
		var b model.Budget

		if err := rows.Scan(&b.ID, &b.Category, &b.Limit, &b.Month); err != nil {
			return nil, fmt.Errorf("error scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning budgets: %w", err)
	}

	return budgets, nil
}
