package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/scoring"
)

// ErrInvalidSubmission wraps struct-level validation failures.
var ErrInvalidSubmission = errors.New("invalid pick submission")

// PickError explains why one game's pick was rejected.
type PickError struct {
	GameID  int    `json:"game_id"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e PickError) Error() string { return e.Message }
func (e PickError) Unwrap() error { return e.Err }

// SubmitResult lists what was saved and what was rejected. A rejected pick
// never aborts the rest of the batch.
type SubmitResult struct {
	Saved  []models.Pick `json:"saved"`
	Errors []PickError   `json:"errors"`
}

// PickService accepts pick submissions while games are still open.
type PickService struct {
	games      GameRepository
	picks      PickRepository
	validate   *validator.Validate
	lockBuffer time.Duration
	now        func() time.Time
	logger     *logging.Logger
}

func NewPickService(games GameRepository, picks PickRepository, lockBuffer time.Duration) *PickService {
	return &PickService{
		games:      games,
		picks:      picks,
		validate:   validator.New(),
		lockBuffer: lockBuffer,
		now:        time.Now,
		logger:     logging.WithPrefix("Picks"),
	}
}

// SubmitPicks saves each valid submission for the user in the league.
// Re-submitting a game replaces the earlier selection while it is open.
func (s *PickService) SubmitPicks(ctx context.Context, userID, leagueID int, subs []models.PickSubmission) (SubmitResult, error) {
	result := SubmitResult{Saved: []models.Pick{}, Errors: []PickError{}}
	reject := func(gameID int, err error) {
		result.Errors = append(result.Errors, PickError{GameID: gameID, Message: err.Error(), Err: err})
	}

	ids := make([]int, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.GameID)
	}
	list, err := s.games.FindByIDs(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("failed to load games for submission: %w", err)
	}
	games := make(map[int]models.Game, len(list))
	for _, g := range list {
		games[g.ID] = g
	}

	now := s.now()
	seen := make(map[int]bool, len(subs))
	for _, sub := range subs {
		if err := s.validate.StructCtx(ctx, sub); err != nil {
			reject(sub.GameID, fmt.Errorf("%w: %v", ErrInvalidSubmission, err))
			continue
		}
		if seen[sub.GameID] {
			reject(sub.GameID, fmt.Errorf("%w: game %d submitted twice", ErrInvalidSubmission, sub.GameID))
			continue
		}
		seen[sub.GameID] = true

		game, ok := games[sub.GameID]
		if !ok {
			reject(sub.GameID, fmt.Errorf("game %d: %w", sub.GameID, ErrNotFound))
			continue
		}
		if err := scoring.ValidatePick(game, sub.PickedTeam, sub.Confidence, now, s.lockBuffer); err != nil {
			reject(sub.GameID, err)
			continue
		}

		pick := models.Pick{
			UserID:      userID,
			GameID:      game.ID,
			LeagueID:    leagueID,
			Season:      game.Season,
			Week:        game.Week,
			GameStart:   game.StartTime,
			PickedTeam:  sub.PickedTeam,
			Confidence:  sub.Confidence,
			SubmittedAt: now.UTC(),
		}
		if err := s.picks.Upsert(ctx, &pick); err != nil {
			return result, fmt.Errorf("failed to save pick for game %d: %w", game.ID, err)
		}
		result.Saved = append(result.Saved, pick)
	}

	s.logger.Infof("User %d league %d: saved %d picks, rejected %d", userID, leagueID, len(result.Saved), len(result.Errors))
	return result, nil
}

// UserPicks returns a user's picks for one week.
func (s *PickService) UserPicks(ctx context.Context, userID, leagueID, season, week int) ([]models.Pick, error) {
	return s.picks.FindByUserWeek(ctx, userID, leagueID, season, week)
}
