package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/scoring"
)

// StatsService owns the derived stats rows. Every write is a full
// recomputation from pick history, and at most one recomputation per
// (user, league) runs at a time.
type StatsService struct {
	picks       PickRepository
	games       GameRepository
	stats       StatsRepository
	aggregator  *scoring.Aggregator
	cache       StandingsCache
	locks       *keyLock
	concurrency int
	now         func() time.Time
	logger      *logging.Logger
}

func NewStatsService(picks PickRepository, games GameRepository, stats StatsRepository, aggregator *scoring.Aggregator, concurrency int) *StatsService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &StatsService{
		picks:       picks,
		games:       games,
		stats:       stats,
		aggregator:  aggregator,
		locks:       newKeyLock(),
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logging.WithPrefix("Stats"),
	}
}

// WithCache invalidates the league's cached standings after every write.
func (s *StatsService) WithCache(c StandingsCache) *StatsService {
	s.cache = c
	return s
}

// Recompute rebuilds and stores the row for key.
func (s *StatsService) Recompute(ctx context.Context, key models.StatsKey) (*models.UserStats, error) {
	var result *models.UserStats
	err := s.locks.withLock(ctx, key, func() error {
		picks, err := s.picks.FindByUserLeague(ctx, key.UserID, key.LeagueID)
		if err != nil {
			return fmt.Errorf("failed to load picks for %s: %w", key, err)
		}

		games, err := s.gamesFor(ctx, picks)
		if err != nil {
			return err
		}

		stats := s.aggregator.Aggregate(key.UserID, key.LeagueID, picks, games)
		stats.UpdatedAt = s.now()
		if err := s.stats.Replace(ctx, &stats); err != nil {
			return err
		}
		result = &stats
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, key.LeagueID); err != nil {
			s.logger.Warnf("Failed to invalidate standings for league %d: %v", key.LeagueID, err)
		}
	}

	s.logger.Debugf("Recomputed %s: %d pts, %d/%d correct, streak %s",
		key, result.TotalPoints, result.CorrectPicks, result.TotalPicks, result.StreakLabel())
	return result, nil
}

func (s *StatsService) gamesFor(ctx context.Context, picks []models.Pick) (map[int]models.Game, error) {
	ids := make([]int, 0, len(picks))
	seen := make(map[int]bool, len(picks))
	for _, p := range picks {
		if !seen[p.GameID] {
			seen[p.GameID] = true
			ids = append(ids, p.GameID)
		}
	}

	list, err := s.games.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	games := make(map[int]models.Game, len(list))
	for _, g := range list {
		games[g.ID] = g
	}
	return games, nil
}

// RecomputeMany recomputes every key with bounded parallelism. Duplicate
// keys are recomputed once. The first error cancels the remaining work.
func (s *StatsService) RecomputeMany(ctx context.Context, keys []models.StatsKey) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	seen := make(map[models.StatsKey]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		key := key
		g.Go(func() error {
			_, err := s.Recompute(ctx, key)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("stats recomputation failed: %w", err)
	}
	s.logger.Infof("Recomputed %d stats rows", len(seen))
	return nil
}

// Get returns the stored row, computing it on first request. A user with no
// picks in the league gets an empty row that is not stored, so reads never
// add members to the standings.
func (s *StatsService) Get(ctx context.Context, key models.StatsKey) (*models.UserStats, error) {
	stats, err := s.stats.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		return stats, nil
	}

	picks, err := s.picks.FindByUserLeague(ctx, key.UserID, key.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for %s: %w", key, err)
	}
	if len(picks) == 0 {
		return &models.UserStats{UserID: key.UserID, LeagueID: key.LeagueID}, nil
	}
	return s.Recompute(ctx, key)
}
