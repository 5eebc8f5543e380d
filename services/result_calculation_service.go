package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/scoring"
)

// ProcessSummary reports what a results run did.
type ProcessSummary struct {
	GamesProcessed int
	GamesSkipped   int
	PicksScored    int
	PicksChanged   int
	Touched        []models.StatsKey
	DryRun         bool
}

// ResultCalculationService scores the picks of finished games. It does not
// touch stats; callers pass the touched keys to StatsService.
type ResultCalculationService struct {
	games  GameRepository
	picks  PickRepository
	logger *logging.Logger
}

func NewResultCalculationService(games GameRepository, picks PickRepository) *ResultCalculationService {
	return &ResultCalculationService{
		games:  games,
		picks:  picks,
		logger: logging.WithPrefix("Results"),
	}
}

// ProcessGameCompletion scores every pick on a final game and returns the
// distinct (user, league) keys whose picks were scored. A final game without
// scores is reported and skipped, returning scoring.ErrScoresMissing.
func (s *ResultCalculationService) ProcessGameCompletion(ctx context.Context, game *models.Game, dryRun bool) (ProcessSummary, error) {
	summary := ProcessSummary{DryRun: dryRun}
	if !game.IsFinal() {
		return summary, fmt.Errorf("game %d: %w", game.ID, scoring.ErrGameNotFinal)
	}
	if !game.HasScores() {
		s.logger.Warnf("Game %d (%s) is final but has no scores; picks stay pending", game.ID, game.Matchup())
		return summary, fmt.Errorf("game %d: %w", game.ID, scoring.ErrScoresMissing)
	}

	picks, err := s.picks.FindByGame(ctx, game.ID)
	if err != nil {
		return summary, fmt.Errorf("failed to get picks for game %d: %w", game.ID, err)
	}

	s.logger.Infof("Processing %d picks for game %d: %s (Final: %s)",
		len(picks), game.ID, game.Matchup(), game.ScoreString())

	changed := make([]models.Pick, 0, len(picks))
	seen := make(map[models.StatsKey]bool)
	for i := range picks {
		result, err := scoring.Score(picks[i], *game)
		if err != nil {
			return summary, err
		}
		summary.PicksScored++
		if result.Apply(&picks[i]) {
			changed = append(changed, picks[i])
			s.logger.Debugf("User %d league %d picked %s (%d): %s, %d pts",
				picks[i].UserID, picks[i].LeagueID, picks[i].PickedTeam, picks[i].Confidence, result.Outcome, result.Points)
		}
		if key := picks[i].Key(); !seen[key] {
			seen[key] = true
			summary.Touched = append(summary.Touched, key)
		}
	}
	summary.PicksChanged = len(changed)
	summary.GamesProcessed = 1

	if dryRun {
		s.logger.Infof("Dry run: %d of %d picks would change for game %d", len(changed), len(picks), game.ID)
		return summary, nil
	}
	if err := s.picks.UpdateOutcomes(ctx, changed); err != nil {
		return summary, fmt.Errorf("failed to update pick outcomes: %w", err)
	}
	return summary, nil
}

// ProcessFinishedGamesSince scores every game that became (or was corrected
// as) final after since. Games with missing scores are skipped and counted.
func (s *ResultCalculationService) ProcessFinishedGamesSince(ctx context.Context, since time.Time, dryRun bool) (ProcessSummary, error) {
	games, err := s.games.FindFinalUpdatedSince(ctx, since)
	if err != nil {
		return ProcessSummary{DryRun: dryRun}, fmt.Errorf("failed to find finished games: %w", err)
	}
	if len(games) == 0 {
		s.logger.Debugf("No games finished since %s", since.Format(time.RFC3339))
		return ProcessSummary{DryRun: dryRun}, nil
	}
	return s.processGames(ctx, games, dryRun)
}

// ProcessWeek rescores every final game of a week, regardless of when it
// finished. Non-final games are ignored.
func (s *ResultCalculationService) ProcessWeek(ctx context.Context, season, week int, dryRun bool) (ProcessSummary, error) {
	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return ProcessSummary{DryRun: dryRun}, fmt.Errorf("failed to load week %d: %w", week, err)
	}
	final := games[:0]
	for _, g := range games {
		if g.IsFinal() {
			final = append(final, g)
		}
	}
	return s.processGames(ctx, final, dryRun)
}

func (s *ResultCalculationService) processGames(ctx context.Context, games []models.Game, dryRun bool) (ProcessSummary, error) {
	total := ProcessSummary{DryRun: dryRun}
	seen := make(map[models.StatsKey]bool)
	for i := range games {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		summary, err := s.ProcessGameCompletion(ctx, &games[i], dryRun)
		if errors.Is(err, scoring.ErrScoresMissing) {
			total.GamesSkipped++
			continue
		}
		if err != nil {
			return total, err
		}

		total.GamesProcessed += summary.GamesProcessed
		total.PicksScored += summary.PicksScored
		total.PicksChanged += summary.PicksChanged
		for _, key := range summary.Touched {
			if !seen[key] {
				seen[key] = true
				total.Touched = append(total.Touched, key)
			}
		}
	}

	s.logger.Infof("Processed %d games (%d skipped): %d picks scored, %d changed, %d aggregates touched",
		total.GamesProcessed, total.GamesSkipped, total.PicksScored, total.PicksChanged, len(total.Touched))
	return total, nil
}
