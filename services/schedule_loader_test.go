package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primetime-picks/models"
)

const scheduleJSON = `[
  {"id": 501, "season": 2025, "week": 13, "start_time": "2025-11-27T21:30:00Z", "home_team": "det", "away_team": "gb"},
  {"id": 502, "season": 2025, "week": 13, "game_type": "regular", "start_time": "2025-11-30 18:00:00",
   "home_team": "KC", "away_team": "DEN", "home_score": 27, "away_score": 24, "status": "final"},
  {"id": 503, "season": 2025, "week": 13, "start_time": "soon", "home_team": "NE", "away_team": "NYJ"},
  {"id": 504, "season": 2025, "week": 13, "home_team": "SF", "away_team": "SF"},
  {"id": 505, "season": 2025, "week": 13, "status": "halftime", "home_team": "SEA", "away_team": "LAR"},
  {"id": 506, "season": 2025, "week": 13, "home_team": "TB", "away_team": "CAR"}
]`

func TestScheduleLoaderLoad(t *testing.T) {
	repo := NewMemoryGameRepository()
	loader := NewScheduleLoader(repo)
	loader.now = func() time.Time { return time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC) }

	summary, err := loader.Load(context.Background(), strings.NewReader(scheduleJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Loaded)
	require.Len(t, summary.Errors, 3)
	assert.Equal(t, []int{503, 504, 505}, []int{summary.Errors[0].GameID, summary.Errors[1].GameID, summary.Errors[2].GameID})
	require.Len(t, summary.Finished, 1)
	assert.Equal(t, 502, summary.Finished[0].ID)

	g, err := repo.FindByID(context.Background(), 501)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "DET", g.HomeTeam)
	assert.Equal(t, models.GameTypeRegular, g.GameType)
	assert.Equal(t, models.GameStatusScheduled, g.Status)
	assert.True(t, g.StartTime.Equal(time.Date(2025, time.November, 27, 21, 30, 0, 0, time.UTC)))

	tbd, err := repo.FindByID(context.Background(), 506)
	require.NoError(t, err)
	assert.True(t, tbd.StartTime.IsZero())
}

func TestScheduleLoaderRejectsMalformedJSON(t *testing.T) {
	_, err := NewScheduleLoader(NewMemoryGameRepository()).Load(context.Background(), strings.NewReader(`{"id": 1}`))
	assert.ErrorContains(t, err, "failed to decode schedule")
}
