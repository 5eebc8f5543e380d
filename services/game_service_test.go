package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primetime-picks/models"
	"primetime-picks/primetime"
)

func newGameService(h *harness) *GameService {
	logos := func(team string) string { return "logo:" + team }
	s := NewGameService(h.games, h.picks, primetime.Default(), logos, 5*time.Minute)
	s.now = func() time.Time { return sundayMorning }
	return s
}

func TestWeekGames(t *testing.T) {
	s := newGameService(newHarness())

	views, err := s.WeekGames(context.Background(), season, week)
	require.NoError(t, err)
	require.Len(t, views, 4)

	byID := map[int]models.GameView{}
	for _, v := range views {
		byID[v.ID] = v
	}

	assert.False(t, byID[101].IsPrimetime)
	assert.True(t, byID[101].CanMakePicks)

	assert.Equal(t, "Sunday Night", byID[102].PrimetimeType)
	assert.Equal(t, 20, byID[102].KickoffET.Hour())
	assert.Equal(t, "logo:DET", byID[102].AwayLogo)
	assert.Equal(t, "logo:WAS", byID[102].HomeLogo)
	assert.Equal(t, "Upcoming", byID[102].StatusLabel)

	assert.Equal(t, "Thursday Night", byID[104].PrimetimeType)
	assert.False(t, byID[104].CanMakePicks)
	assert.Equal(t, "Final", byID[104].StatusLabel)
}

func TestPrimetimeGames(t *testing.T) {
	s := newGameService(newHarness())

	views, err := s.PrimetimeGames(context.Background(), season, week)
	require.NoError(t, err)

	var ids []int
	for _, v := range views {
		assert.True(t, v.IsPrimetime)
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []int{104, 102, 103}, ids)
}

func TestGamesNeedingPicks(t *testing.T) {
	h := newHarness()
	s := newGameService(h)
	h.submit(1, models.PickSubmission{GameID: 102, PickedTeam: "DET", Confidence: 7})

	views, err := s.GamesNeedingPicks(context.Background(), 1, league, season, week)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 103, views[0].ID)

	// another league has picked nothing yet
	views, err = s.GamesNeedingPicks(context.Background(), 1, models.GlobalLeague, season, week)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestGameLookup(t *testing.T) {
	s := newGameService(newHarness())

	v, err := s.Game(context.Background(), 103)
	require.NoError(t, err)
	assert.Equal(t, "Monday Night", v.PrimetimeType)

	_, err = s.Game(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
