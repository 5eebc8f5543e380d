package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"primetime-picks/models"
)

// MemoryGameRepository keeps games in memory. It backs demo mode when no
// database is reachable and the service tests.
type MemoryGameRepository struct {
	mu    sync.RWMutex
	games map[int]models.Game
}

func NewMemoryGameRepository(games ...models.Game) *MemoryGameRepository {
	r := &MemoryGameRepository{games: make(map[int]models.Game, len(games))}
	for _, g := range games {
		r.games[g.ID] = g
	}
	return r
}

func (r *MemoryGameRepository) FindByID(_ context.Context, id int) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *MemoryGameRepository) FindByIDs(_ context.Context, ids []int) ([]models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.games[id]; ok {
			out = append(out, g)
		}
	}
	sortGames(out)
	return out, nil
}

func (r *MemoryGameRepository) FindByWeek(_ context.Context, season, week int) ([]models.Game, error) {
	return r.filter(func(g models.Game) bool { return g.Season == season && g.Week == week }), nil
}

func (r *MemoryGameRepository) FindFinalUpdatedSince(_ context.Context, since time.Time) ([]models.Game, error) {
	return r.filter(func(g models.Game) bool { return g.IsFinal() && g.UpdatedAt.After(since) }), nil
}

func (r *MemoryGameRepository) Upsert(_ context.Context, game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if game.UpdatedAt.IsZero() {
		game.UpdatedAt = time.Now().UTC()
	}
	r.games[game.ID] = *game
	return nil
}

func (r *MemoryGameRepository) filter(keep func(models.Game) bool) []models.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Game{}
	for _, g := range r.games {
		if keep(g) {
			out = append(out, g)
		}
	}
	sortGames(out)
	return out
}

func sortGames(games []models.Game) {
	sort.Slice(games, func(i, j int) bool {
		if !games[i].StartTime.Equal(games[j].StartTime) {
			return games[i].StartTime.Before(games[j].StartTime)
		}
		return games[i].ID < games[j].ID
	})
}

type pickKey struct {
	userID, gameID, leagueID int
}

// MemoryPickRepository keeps picks in memory, unique per (user, game, league).
type MemoryPickRepository struct {
	mu    sync.RWMutex
	picks map[pickKey]models.Pick
	now   func() time.Time
}

func NewMemoryPickRepository() *MemoryPickRepository {
	return &MemoryPickRepository{
		picks: make(map[pickKey]models.Pick),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func keyOf(p *models.Pick) pickKey {
	return pickKey{userID: p.UserID, gameID: p.GameID, leagueID: p.LeagueID}
}

func (r *MemoryPickRepository) Upsert(_ context.Context, pick *models.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if pick.SubmittedAt.IsZero() {
		pick.SubmittedAt = now
	}
	pick.UpdatedAt = now

	if existing, ok := r.picks[keyOf(pick)]; ok {
		pick.ID = existing.ID
		pick.Outcome = existing.Outcome
		pick.Points = existing.Points
	} else {
		pick.ID = primitive.NewObjectID()
		pick.Outcome = models.PickOutcomePending
		pick.Points = 0
	}
	r.picks[keyOf(pick)] = *pick
	return nil
}

func (r *MemoryPickRepository) FindByGame(_ context.Context, gameID int) ([]models.Pick, error) {
	return r.filter(func(p models.Pick) bool { return p.GameID == gameID }), nil
}

func (r *MemoryPickRepository) FindByUserLeague(_ context.Context, userID, leagueID int) ([]models.Pick, error) {
	return r.filter(func(p models.Pick) bool { return p.UserID == userID && p.LeagueID == leagueID }), nil
}

func (r *MemoryPickRepository) FindByUserWeek(_ context.Context, userID, leagueID, season, week int) ([]models.Pick, error) {
	return r.filter(func(p models.Pick) bool {
		return p.UserID == userID && p.LeagueID == leagueID && p.Season == season && p.Week == week
	}), nil
}

func (r *MemoryPickRepository) UpdateOutcomes(_ context.Context, picks []models.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for i := range picks {
		k := keyOf(&picks[i])
		stored, ok := r.picks[k]
		if !ok {
			continue
		}
		stored.Outcome = picks[i].Outcome
		stored.Points = picks[i].Points
		stored.UpdatedAt = now
		r.picks[k] = stored
	}
	return nil
}

func (r *MemoryPickRepository) filter(keep func(models.Pick) bool) []models.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Pick{}
	for _, p := range r.picks {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameStart.Equal(out[j].GameStart) {
			return out[i].GameStart.Before(out[j].GameStart)
		}
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// MemoryStatsRepository keeps stats rows in memory.
type MemoryStatsRepository struct {
	mu   sync.RWMutex
	rows map[models.StatsKey]models.UserStats
}

func NewMemoryStatsRepository() *MemoryStatsRepository {
	return &MemoryStatsRepository{rows: make(map[models.StatsKey]models.UserStats)}
}

func (r *MemoryStatsRepository) Replace(_ context.Context, stats *models.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[stats.Key()] = *stats
	return nil
}

func (r *MemoryStatsRepository) Get(_ context.Context, key models.StatsKey) (*models.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *MemoryStatsRepository) ListByLeague(_ context.Context, leagueID int) ([]models.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.UserStats{}
	for k, row := range r.rows {
		if k.LeagueID == leagueID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
