package services

import (
	"context"
	"time"

	"primetime-picks/models"
	"primetime-picks/primetime"
	"primetime-picks/scoring"
)

const (
	season = 2025
	week   = 10
	league = 3
)

func eastern(month time.Month, day, hour, min int) time.Time {
	return time.Date(2025, month, day, hour, min, 0, 0, primetime.Eastern).UTC()
}

// Sunday of week 10, before any game kicks off.
var sundayMorning = eastern(time.November, 9, 12, 0)

func weekGames() []models.Game {
	return []models.Game{
		{ID: 101, Season: season, Week: week, GameType: models.GameTypeRegular, StartTime: eastern(time.November, 9, 13, 0),
			AwayTeam: "BUF", HomeTeam: "MIA", Status: models.GameStatusScheduled},
		{ID: 102, Season: season, Week: week, GameType: models.GameTypeRegular, StartTime: eastern(time.November, 9, 20, 20),
			AwayTeam: "DET", HomeTeam: "WAS", Status: models.GameStatusScheduled},
		{ID: 103, Season: season, Week: week, GameType: models.GameTypeRegular, StartTime: eastern(time.November, 10, 20, 15),
			AwayTeam: "PHI", HomeTeam: "GB", Status: models.GameStatusScheduled},
		{ID: 104, Season: season, Week: week, GameType: models.GameTypeRegular, StartTime: eastern(time.November, 6, 20, 15),
			AwayTeam: "LV", HomeTeam: "DEN", Status: models.GameStatusFinal,
			AwayScore: models.IntPtr(7), HomeScore: models.IntPtr(10), UpdatedAt: eastern(time.November, 6, 23, 30)},
	}
}

type harness struct {
	games   *MemoryGameRepository
	picks   *MemoryPickRepository
	stats   *MemoryStatsRepository
	pickSvc *PickService
	results *ResultCalculationService
	statSvc *StatsService
}

func newHarness() *harness {
	h := &harness{
		games: NewMemoryGameRepository(weekGames()...),
		picks: NewMemoryPickRepository(),
		stats: NewMemoryStatsRepository(),
	}
	h.pickSvc = NewPickService(h.games, h.picks, 5*time.Minute)
	h.pickSvc.now = func() time.Time { return sundayMorning }
	h.results = NewResultCalculationService(h.games, h.picks)
	h.statSvc = NewStatsService(h.picks, h.games, h.stats, scoring.NewAggregator(nil), 4)
	return h
}

// finish marks a game final with the given score, as the ingestion layer would.
func (h *harness) finish(id, away, home int, at time.Time) models.Game {
	g, _ := h.games.FindByID(context.Background(), id)
	g.Status = models.GameStatusFinal
	g.AwayScore = models.IntPtr(away)
	g.HomeScore = models.IntPtr(home)
	g.UpdatedAt = at
	_ = h.games.Upsert(context.Background(), g)
	return *g
}

func (h *harness) submit(userID int, subs ...models.PickSubmission) SubmitResult {
	res, err := h.pickSvc.SubmitPicks(context.Background(), userID, league, subs)
	if err != nil {
		panic(err)
	}
	return res
}
