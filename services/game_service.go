package services

import (
	"context"
	"fmt"
	"time"

	"primetime-picks/models"
	"primetime-picks/primetime"
	"primetime-picks/scoring"
)

// LogoLookup resolves a team abbreviation to a logo URL.
type LogoLookup func(team string) string

// GameService decorates schedule data for display and pick entry.
type GameService struct {
	games      GameRepository
	picks      PickRepository
	classifier *primetime.Classifier
	logos      LogoLookup
	lockBuffer time.Duration
	now        func() time.Time
}

func NewGameService(games GameRepository, picks PickRepository, classifier *primetime.Classifier, logos LogoLookup, lockBuffer time.Duration) *GameService {
	if logos == nil {
		logos = func(string) string { return "" }
	}
	return &GameService{
		games:      games,
		picks:      picks,
		classifier: classifier,
		logos:      logos,
		lockBuffer: lockBuffer,
		now:        time.Now,
	}
}

// View decorates a single game.
func (s *GameService) View(g models.Game) models.GameView {
	c := s.classifier.ClassifyGame(&g)
	kickoff, _ := primetime.ToEastern(g.StartTime)
	return models.GameView{
		Game:          g,
		IsPrimetime:   c.IsPrimetime,
		PrimetimeType: string(c.Type),
		KickoffET:     kickoff,
		StatusLabel:   g.Status.Label(),
		CanMakePicks:  scoring.CanMakePicks(g, s.now(), s.lockBuffer),
		HomeLogo:      s.logos(g.HomeTeam),
		AwayLogo:      s.logos(g.AwayTeam),
	}
}

// WeekGames returns every game of the week in kickoff order.
func (s *GameService) WeekGames(ctx context.Context, season, week int) ([]models.GameView, error) {
	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load week %d: %w", week, err)
	}
	views := make([]models.GameView, 0, len(games))
	for _, g := range games {
		views = append(views, s.View(g))
	}
	return views, nil
}

// PrimetimeGames returns only the primetime games of the week.
func (s *GameService) PrimetimeGames(ctx context.Context, season, week int) ([]models.GameView, error) {
	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load week %d: %w", week, err)
	}
	primetimeGames := s.classifier.Filter(games)
	views := make([]models.GameView, 0, len(primetimeGames))
	for _, g := range primetimeGames {
		views = append(views, s.View(g))
	}
	return views, nil
}

// GamesNeedingPicks returns open primetime games the user has not picked.
func (s *GameService) GamesNeedingPicks(ctx context.Context, userID, leagueID, season, week int) ([]models.GameView, error) {
	views, err := s.PrimetimeGames(ctx, season, week)
	if err != nil {
		return nil, err
	}
	picks, err := s.picks.FindByUserWeek(ctx, userID, leagueID, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for user %d: %w", userID, err)
	}
	picked := make(map[int]bool, len(picks))
	for _, p := range picks {
		picked[p.GameID] = true
	}

	out := make([]models.GameView, 0, len(views))
	for _, v := range views {
		if v.CanMakePicks && !picked[v.ID] {
			out = append(out, v)
		}
	}
	return out, nil
}

// Game looks up one game, returning ErrNotFound when missing.
func (s *GameService) Game(ctx context.Context, id int) (models.GameView, error) {
	g, err := s.games.FindByID(ctx, id)
	if err != nil {
		return models.GameView{}, err
	}
	if g == nil {
		return models.GameView{}, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	return s.View(*g), nil
}
