package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matt-steen/zenith/pkg/cache"
	"github.com/matt-steen/zenith/pkg/model"
)

func getCache(t *testing.T, assert *assert.Assertions) *cache.Cache {
	t.Helper()

	c, err := cache.New(context.Background(), filepath.Join(t.TempDir(), "cache.sqlite"))
	assert.NotNil(c)
	assert.Nil(err)

	return c
}

func TestNewBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c, err := cache.New(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(c)
	assert.NotNil(err)
}

func TestNewIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	filename := filepath.Join(t.TempDir(), "cache.sqlite")

	c, err := cache.New(ctx, filename)
	assert.Nil(err)
	assert.Nil(c.Close())

	c2, err := cache.New(ctx, filename)
	assert.NotNil(c2)
	assert.Nil(err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	c := getCache(t, assert)

	notes := []model.Note{{ID: "n1", Title: "kinematics", Tags: []string{"mechanics"}}}
	assert.Nil(c.PutSnapshot(ctx, "notes", notes))

	var loaded []model.Note

	fetchedAt, err := c.GetSnapshot(ctx, "notes", &loaded)
	assert.Nil(err)
	assert.False(fetchedAt.IsZero())
	assert.Equal(notes, loaded)
}

func TestSnapshotReplaced(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	c := getCache(t, assert)

	assert.Nil(c.PutSnapshot(ctx, "notes", []model.Note{{ID: "n1"}}))
	assert.Nil(c.PutSnapshot(ctx, "notes", []model.Note{{ID: "n2"}, {ID: "n3"}}))

	var loaded []model.Note

	_, err := c.GetSnapshot(ctx, "notes", &loaded)
	assert.Nil(err)
	assert.Len(loaded, 2)
	assert.Equal("n2", loaded[0].ID)
}

func TestSnapshotMiss(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var loaded []model.Note

	_, err := getCache(t, assert).GetSnapshot(context.Background(), "never-stored", &loaded)
	assert.ErrorIs(err, cache.ErrMiss)
}

func TestBudgetRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	c := getCache(t, assert)

	assert.Nil(c.SaveBudget(ctx, model.Budget{ID: "b1", Category: "food", Limit: 30, Month: "2026-03"}))
	assert.Nil(c.SaveBudget(ctx, model.Budget{ID: "b2", Category: "books", Limit: 50, Month: "2026-03"}))

	budgets, err := c.LoadBudgets(ctx)
	assert.Nil(err)
	assert.Len(budgets, 2)

	// ordered by category
	assert.Equal("books", budgets[0].Category)
	assert.Equal("food", budgets[1].Category)
	assert.Zero(budgets[1].Spent)
}

func TestBudgetUpsertAndDelete(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ctx := context.Background()
	c := getCache(t, assert)

	assert.Nil(c.SaveBudget(ctx, model.Budget{ID: "b1", Category: "food", Limit: 30, Month: "2026-03"}))
	assert.Nil(c.SaveBudget(ctx, model.Budget{ID: "b1", Category: "food", Limit: 45, Month: "2026-03"}))

	budgets, err := c.LoadBudgets(ctx)
	assert.Nil(err)
	assert.Len(budgets, 1)
	assert.InDelta(45.0, budgets[0].Limit, 0.001)

	assert.Nil(c.DeleteBudget(ctx, "b1"))

	budgets, err = c.LoadBudgets(ctx)
	assert.Nil(err)
	assert.Empty(budgets)
}
