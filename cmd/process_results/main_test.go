package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)

	got, err := parseSince("36h", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC), got)

	got, err = parseSince("2025-11-09T19:00:00-05:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.November, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = parseSince("-2h", now)
	assert.Error(t, err)
	_, err = parseSince("last sunday", now)
	assert.Error(t, err)
}
