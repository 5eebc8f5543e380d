package database

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"primetime-picks/models"
)

func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// setupMongo starts a throwaway MongoDB and connects to it. Skips when
// Docker is not available.
func setupMongo(t *testing.T) *MongoDB {
	t.Helper()
	if testing.Short() || !dockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	db, err := NewMongoConnection(ctx, Config{Host: host, Port: port.Port(), Database: "picks_test", Timeout: 20 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMongoRepositories(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()
	games := NewMongoGameRepository(db)
	picks := NewMongoPickRepository(db)
	stats := NewMongoStatsRepository(db)

	kickoff := time.Date(2025, time.November, 10, 1, 20, 0, 0, time.UTC)
	game := models.Game{ID: 9, Season: 2025, Week: 10, GameType: models.GameTypeRegular, StartTime: kickoff,
		HomeTeam: "WAS", AwayTeam: "DET", Status: models.GameStatusScheduled}
	require.NoError(t, games.Upsert(ctx, &game))

	t.Run("games", func(t *testing.T) {
		got, err := games.FindByID(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.StartTime.Equal(kickoff))

		missing, err := games.FindByID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, missing)

		week, err := games.FindByWeek(ctx, 2025, 10)
		require.NoError(t, err)
		assert.Len(t, week, 1)
	})

	t.Run("picks keep outcome across resubmission", func(t *testing.T) {
		pick := models.Pick{UserID: 1, GameID: 9, LeagueID: 3, Season: 2025, Week: 10, GameStart: kickoff, PickedTeam: "DET", Confidence: 4}
		require.NoError(t, picks.Upsert(ctx, &pick))
		assert.Equal(t, models.PickOutcomePending, pick.Outcome)
		require.False(t, pick.ID.IsZero())
		firstID := pick.ID

		scored := pick
		scored.Outcome, scored.Points = models.PickOutcomeCorrect, 4
		require.NoError(t, picks.UpdateOutcomes(ctx, []models.Pick{scored}))

		pick.Confidence = 6
		require.NoError(t, picks.Upsert(ctx, &pick))
		assert.Equal(t, firstID, pick.ID)
		assert.Equal(t, models.PickOutcomeCorrect, pick.Outcome, "returned pick carries the stored outcome")
		assert.Equal(t, 4, pick.Points)

		stored, err := picks.FindByGame(ctx, 9)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, 6, stored[0].Confidence)
		assert.Equal(t, models.PickOutcomeCorrect, stored[0].Outcome)

		byUser, err := picks.FindByUserLeague(ctx, 1, 3)
		require.NoError(t, err)
		assert.Len(t, byUser, 1)
	})

	t.Run("final games since", func(t *testing.T) {
		game.Status = models.GameStatusFinal
		game.HomeScore, game.AwayScore = models.IntPtr(20), models.IntPtr(24)
		game.UpdatedAt = time.Date(2025, time.November, 10, 4, 0, 0, 0, time.UTC)
		require.NoError(t, games.Upsert(ctx, &game))

		final, err := games.FindFinalUpdatedSince(ctx, game.UpdatedAt.Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, final, 1)
		assert.Equal(t, "DET", final[0].Winner())

		none, err := games.FindFinalUpdatedSince(ctx, game.UpdatedAt)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("stats replace overwrites", func(t *testing.T) {
		row := models.UserStats{UserID: 1, LeagueID: 3, TotalPicks: 1, CorrectPicks: 1, TotalPoints: 4}
		require.NoError(t, stats.Replace(ctx, &row))
		row.TotalPoints = 6
		require.NoError(t, stats.Replace(ctx, &row))

		got, err := stats.Get(ctx, row.Key())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 6, got.TotalPoints)

		rows, err := stats.ListByLeague(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}
