package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime_SortsAsText(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	earlier := formatTime(base)
	later := formatTime(base.Add(500 * time.Millisecond))

	assert.Len(t, later, len(earlier))
	assert.Less(t, earlier, later)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 1, 9, 0, 0, 120000000, time.UTC)

	got, err := parseTime(formatTime(want))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseTime("2026-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	_, err = parseTime("yesterday")
	assert.ErrorContains(t, err, `parsing timestamp "yesterday"`)
}
