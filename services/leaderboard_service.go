package services

import (
	"context"
	"fmt"

	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/scoring"
)

// StandingsCache holds ranked leagues between stats writes. Get reports the
// league's generation alongside the board, hit or miss. Set stores only if
// the generation is still the one Get returned; Invalidate drops the board
// and advances the generation, so a board built from rows read before an
// invalidation is never cached.
type StandingsCache interface {
	Get(ctx context.Context, leagueID int) (entries []models.LeaderboardEntry, gen int64, ok bool, err error)
	Set(ctx context.Context, leagueID int, gen int64, entries []models.LeaderboardEntry) (bool, error)
	Invalidate(ctx context.Context, leagueID int) error
}

// LeaderboardService serves standings from the stored stats rows.
type LeaderboardService struct {
	stats  StatsRepository
	cache  StandingsCache
	logger *logging.Logger
}

func NewLeaderboardService(stats StatsRepository) *LeaderboardService {
	return &LeaderboardService{stats: stats, logger: logging.WithPrefix("Leaderboard")}
}

// WithCache serves ranked leagues from c. Cache errors fall through to the
// stats store.
func (s *LeaderboardService) WithCache(c StandingsCache) *LeaderboardService {
	s.cache = c
	return s
}

// Standings ranks every row in the league. limit <= 0 means all rows.
func (s *LeaderboardService) Standings(ctx context.Context, leagueID, offset, limit int) ([]models.LeaderboardEntry, int, error) {
	board, err := s.board(ctx, leagueID)
	if err != nil {
		return nil, 0, err
	}
	return scoring.Page(board, offset, limit), len(board), nil
}

// Position returns userID's ranked entry in the league, or nil when the
// user has no stats row there.
func (s *LeaderboardService) Position(ctx context.Context, leagueID, userID int) (*models.LeaderboardEntry, error) {
	board, err := s.board(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	for i := range board {
		if board[i].UserID == userID {
			return &board[i], nil
		}
	}
	return nil, nil
}

func (s *LeaderboardService) board(ctx context.Context, leagueID int) ([]models.LeaderboardEntry, error) {
	cached := s.cache != nil
	var gen int64
	if cached {
		board, g, ok, err := s.cache.Get(ctx, leagueID)
		switch {
		case err != nil:
			s.logger.Warnf("Cache read for league %d failed: %v", leagueID, err)
			cached = false
		case ok:
			return board, nil
		}
		gen = g
	}

	rows, err := s.stats.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for league %d: %w", leagueID, err)
	}
	board := scoring.BuildLeaderboard(rows)

	if cached {
		stored, err := s.cache.Set(ctx, leagueID, gen, board)
		switch {
		case err != nil:
			s.logger.Warnf("Cache write for league %d failed: %v", leagueID, err)
		case !stored:
			s.logger.Debugf("League %d changed while ranking; board not cached", leagueID)
		}
	}
	return board, nil
}
