package interfaces

import (
	"primetime-picks/cache"
	"primetime-picks/database"
	"primetime-picks/services"
)

// Compile-time checks that the concrete types satisfy the interfaces the
// handlers and services depend on.
var (
	_ GameService        = (*services.GameService)(nil)
	_ PickService        = (*services.PickService)(nil)
	_ StatsService       = (*services.StatsService)(nil)
	_ LeaderboardService = (*services.LeaderboardService)(nil)
	_ ResultsService     = (*services.ResultCalculationService)(nil)

	_ services.GameRepository  = (*database.MongoGameRepository)(nil)
	_ services.PickRepository  = (*database.MongoPickRepository)(nil)
	_ services.StatsRepository = (*database.MongoStatsRepository)(nil)

	_ services.GameRepository  = (*services.MemoryGameRepository)(nil)
	_ services.PickRepository  = (*services.MemoryPickRepository)(nil)
	_ services.StatsRepository = (*services.MemoryStatsRepository)(nil)

	_ services.StandingsCache = (*cache.RedisStandings)(nil)
)
