// Package scoring resolves picks against final games and folds pick history
// into standings. Nothing here performs I/O.
package scoring

import (
	"errors"
	"fmt"
	"time"

	"primetime-picks/models"
)

var (
	// ErrGameNotFinal is returned when a caller scores a game that has not
	// finished. It signals a caller bug, not bad data.
	ErrGameNotFinal = errors.New("game is not final")

	// ErrScoresMissing marks a final game without both scores. The pick stays
	// pending and the caller should report a data-quality warning.
	ErrScoresMissing = errors.New("final game is missing scores")

	ErrGameMismatch      = errors.New("pick does not belong to game")
	ErrPicksLocked       = errors.New("picks are closed")
	ErrInvalidTeam       = errors.New("invalid team selection")
	ErrInvalidConfidence = errors.New("invalid confidence")
)

const (
	MinConfidence = 1
	MaxConfidence = 10
)

// Result is the scored state of a pick.
type Result struct {
	Outcome models.PickOutcome
	Points  int
}

var pending = Result{Outcome: models.PickOutcomePending}

// Score resolves a pick against its game. A level final is a push worth
// nothing; otherwise a correct pick earns its confidence. Score depends only
// on its inputs, so re-running it after a score correction overwrites the
// previous result.
func Score(pick models.Pick, game models.Game) (Result, error) {
	if pick.GameID != game.ID {
		return pending, fmt.Errorf("%w: pick game %d, game %d", ErrGameMismatch, pick.GameID, game.ID)
	}
	if !game.IsFinal() {
		return pending, fmt.Errorf("%w: game %d is %s", ErrGameNotFinal, game.ID, game.Status)
	}
	if !game.HasScores() {
		return pending, fmt.Errorf("%w: game %d", ErrScoresMissing, game.ID)
	}

	switch winner := game.Winner(); {
	case winner == models.TieResult:
		return Result{Outcome: models.PickOutcomePush}, nil
	case pick.PickedTeam == winner:
		return Result{Outcome: models.PickOutcomeCorrect, Points: pick.Confidence}, nil
	default:
		return Result{Outcome: models.PickOutcomeIncorrect}, nil
	}
}

// Apply writes r onto p and reports whether anything changed.
func (r Result) Apply(p *models.Pick) bool {
	if p.Outcome == r.Outcome && p.Points == r.Points {
		return false
	}
	p.Outcome = r.Outcome
	p.Points = r.Points
	return true
}

// CanMakePicks is true while the game is scheduled and now is strictly before
// kickoff minus the lock buffer.
func CanMakePicks(game models.Game, now time.Time, lockBuffer time.Duration) bool {
	if game.Status != models.GameStatusScheduled || game.StartTime.IsZero() {
		return false
	}
	return now.Before(game.StartTime.Add(-lockBuffer))
}

// ValidatePick checks a selection against its game at submission time.
func ValidatePick(game models.Game, team string, confidence int, now time.Time, lockBuffer time.Duration) error {
	if !CanMakePicks(game, now, lockBuffer) {
		return fmt.Errorf("%w for %s", ErrPicksLocked, game.Matchup())
	}
	if !game.HasTeam(team) {
		return fmt.Errorf("%w: %q is not playing in %s", ErrInvalidTeam, team, game.Matchup())
	}
	if confidence < MinConfidence || confidence > MaxConfidence {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidConfidence, confidence, MinConfidence, MaxConfidence)
	}
	return nil
}

// IsValidationError reports whether err came from ValidatePick.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPicksLocked) || errors.Is(err, ErrInvalidTeam) || errors.Is(err, ErrInvalidConfidence)
}
