package interfaces

import (
	"context"

	"primetime-picks/models"
	"primetime-picks/services"
)

// GameService serves decorated schedule data.
type GameService interface {
	Game(ctx context.Context, id int) (models.GameView, error)
	WeekGames(ctx context.Context, season, week int) ([]models.GameView, error)
	PrimetimeGames(ctx context.Context, season, week int) ([]models.GameView, error)
	GamesNeedingPicks(ctx context.Context, userID, leagueID, season, week int) ([]models.GameView, error)
}

// PickService accepts and lists picks.
type PickService interface {
	SubmitPicks(ctx context.Context, userID, leagueID int, subs []models.PickSubmission) (services.SubmitResult, error)
	UserPicks(ctx context.Context, userID, leagueID, season, week int) ([]models.Pick, error)
}

// StatsService reads and rebuilds derived stats.
type StatsService interface {
	Get(ctx context.Context, key models.StatsKey) (*models.UserStats, error)
	Recompute(ctx context.Context, key models.StatsKey) (*models.UserStats, error)
	RecomputeMany(ctx context.Context, keys []models.StatsKey) error
}

// LeaderboardService ranks a league.
type LeaderboardService interface {
	Standings(ctx context.Context, leagueID, offset, limit int) ([]models.LeaderboardEntry, int, error)
	Position(ctx context.Context, leagueID, userID int) (*models.LeaderboardEntry, error)
}

// ResultsService scores finished games.
type ResultsService interface {
	ProcessGameCompletion(ctx context.Context, game *models.Game, dryRun bool) (services.ProcessSummary, error)
}
