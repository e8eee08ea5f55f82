package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/matt-steen/zenith/pkg/model"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(2026, model.ParseTimestamp("2026-03-01T10:30:00Z").Year())
	assert.Equal(2026, model.ParseTimestamp("2026-03-01T10:30:00.123Z").Year())
	assert.Equal(2026, model.ParseTimestamp("2026-03-01T10:30:00").Year())
	assert.Equal(2026, model.ParseTimestamp("2026-03-01").Year())

	assert.True(model.ParseTimestamp("").IsZero())
	assert.True(model.ParseTimestamp("yesterday").IsZero())
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal("2026-03-01", model.NormalizeDate("2026-03-01T10:30:00Z"))
	assert.Equal("2026-03-01", model.NormalizeDate("2026-03-01"))
	assert.Empty(model.NormalizeDate(""))
	assert.Empty(model.NormalizeDate("not a date"))
}

func TestToday(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2026, time.March, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal("2026-03-04", model.Today(now))
}
