// Package app assembles repositories and services from configuration. The
// server and the command-line tools share it.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"primetime-picks/cache"
	"primetime-picks/config"
	"primetime-picks/database"
	"primetime-picks/logging"
	"primetime-picks/primetime"
	"primetime-picks/scoring"
	"primetime-picks/services"
)

// Options control how the store is opened.
type Options struct {
	// AllowMemoryFallback keeps the process running on in-memory
	// repositories when MongoDB is unreachable.
	AllowMemoryFallback bool
}

// App holds the wired services.
type App struct {
	Config     *config.Config
	DB         *database.MongoDB
	Classifier *primetime.Classifier

	GameRepo  services.GameRepository
	PickRepo  services.PickRepository
	StatsRepo services.StatsRepository

	Games       *services.GameService
	Picks       *services.PickService
	Stats       *services.StatsService
	Leaderboard *services.LeaderboardService
	Results     *services.ResultCalculationService
	Tokens      *services.TokenService
	Scheduler   *services.ResultsScheduler

	redis *redis.Client
}

// New connects to the store and builds every service.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Classifier: classifier}

	db, err := database.NewMongoConnection(ctx, cfg.ToDatabaseConfig())
	switch {
	case err == nil:
		a.DB = db
		a.GameRepo = database.NewMongoGameRepository(db)
		a.PickRepo = database.NewMongoPickRepository(db)
		a.StatsRepo = database.NewMongoStatsRepository(db)
	case opts.AllowMemoryFallback:
		logging.Warnf("Database connection failed: %v", err)
		logging.Warn("Continuing with in-memory storage; data will not survive a restart")
		a.GameRepo = services.NewMemoryGameRepository()
		a.PickRepo = services.NewMemoryPickRepository()
		a.StatsRepo = services.NewMemoryStatsRepository()
	default:
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	app := cfg.App
	a.Games = services.NewGameService(a.GameRepo, a.PickRepo, classifier, config.TeamLogoURL, app.PickLockBuffer)
	a.Picks = services.NewPickService(a.GameRepo, a.PickRepo, app.PickLockBuffer)
	a.Stats = services.NewStatsService(a.PickRepo, a.GameRepo, a.StatsRepo, scoring.NewAggregator(classifier), app.RecomputeConcurrency)
	a.Leaderboard = services.NewLeaderboardService(a.StatsRepo)
	if cfg.Cache.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logging.Warnf("Standings cache disabled: %v", err)
		} else {
			a.redis = client
			standings := cache.NewRedisStandings(client, cfg.Cache.StandingsTTL)
			a.Stats.WithCache(standings)
			a.Leaderboard.WithCache(standings)
		}
	}
	a.Results = services.NewResultCalculationService(a.GameRepo, a.PickRepo)
	a.Tokens = services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	a.Scheduler = services.NewResultsScheduler(a.Results, a.Stats, app.ResultsSchedule, app.ResultsLookback)
	return a, nil
}

// Close stops the scheduler and disconnects from the store.
func (a *App) Close() error {
	a.Scheduler.Stop()
	if a.redis != nil {
		a.redis.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
