package services

import (
	"context"
	"errors"
	"time"

	"primetime-picks/models"
)

// ErrNotFound is returned by service lookups for missing records.
var ErrNotFound = errors.New("not found")

// GameRepository is the read side of the schedule feed plus the upsert the
// ingestion layer uses. Lookups by id return nil, nil when nothing matches.
type GameRepository interface {
	FindByID(ctx context.Context, id int) (*models.Game, error)
	FindByIDs(ctx context.Context, ids []int) ([]models.Game, error)
	FindByWeek(ctx context.Context, season, week int) ([]models.Game, error)
	FindFinalUpdatedSince(ctx context.Context, since time.Time) ([]models.Game, error)
	Upsert(ctx context.Context, game *models.Game) error
}

// PickRepository stores picks keyed by (user, game, league).
type PickRepository interface {
	// Upsert writes selection fields; outcome and points of an existing pick
	// are preserved.
	Upsert(ctx context.Context, pick *models.Pick) error
	FindByGame(ctx context.Context, gameID int) ([]models.Pick, error)
	FindByUserLeague(ctx context.Context, userID, leagueID int) ([]models.Pick, error)
	FindByUserWeek(ctx context.Context, userID, leagueID, season, week int) ([]models.Pick, error)
	// UpdateOutcomes overwrites outcome and points only.
	UpdateOutcomes(ctx context.Context, picks []models.Pick) error
}

// StatsRepository stores one derived row per (user, league).
type StatsRepository interface {
	Replace(ctx context.Context, stats *models.UserStats) error
	Get(ctx context.Context, key models.StatsKey) (*models.UserStats, error)
	ListByLeague(ctx context.Context, leagueID int) ([]models.UserStats, error)
}
