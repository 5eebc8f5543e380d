package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/primetime"
)

// ScheduleRecord is one game as delivered by the ingestion layer, already
// mapped to canonical team codes and enums. StartTime is any format
// primetime.ParseKickoff accepts; empty means not yet scheduled.
type ScheduleRecord struct {
	ID        int               `json:"id" validate:"required,gt=0"`
	Season    int               `json:"season" validate:"required,gte=1920"`
	Week      int               `json:"week" validate:"required,gte=1,lte=23"`
	GameType  models.GameType   `json:"game_type" validate:"omitempty,oneof=regular wildcard divisional conference superbowl playoff"`
	StartTime string            `json:"start_time"`
	HomeTeam  string            `json:"home_team" validate:"required,max=4"`
	AwayTeam  string            `json:"away_team" validate:"required,max=4,nefield=HomeTeam"`
	HomeScore *int              `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore *int              `json:"away_score" validate:"omitempty,gte=0"`
	Status    models.GameStatus `json:"status" validate:"omitempty,oneof=scheduled in_progress final cancelled postponed"`
}

// RecordError explains why one schedule record was rejected.
type RecordError struct {
	Index   int    `json:"index"`
	GameID  int    `json:"game_id"`
	Message string `json:"message"`
}

// LoadSummary reports a schedule load.
type LoadSummary struct {
	Loaded   int
	Finished []models.Game
	Errors   []RecordError
}

// ScheduleLoader upserts canonical schedule records into the game store.
type ScheduleLoader struct {
	games    GameRepository
	validate *validator.Validate
	now      func() time.Time
	logger   *logging.Logger
}

func NewScheduleLoader(games GameRepository) *ScheduleLoader {
	return &ScheduleLoader{
		games:    games,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logging.WithPrefix("Schedule"),
	}
}

// Load reads a JSON array of records. Bad records are collected and skipped;
// storage failures abort the load.
func (l *ScheduleLoader) Load(ctx context.Context, r io.Reader) (LoadSummary, error) {
	var records []ScheduleRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return LoadSummary{}, fmt.Errorf("failed to decode schedule: %w", err)
	}

	summary := LoadSummary{}
	for i, rec := range records {
		game, err := l.toGame(ctx, rec)
		if err != nil {
			summary.Errors = append(summary.Errors, RecordError{Index: i, GameID: rec.ID, Message: err.Error()})
			continue
		}
		if err := l.games.Upsert(ctx, &game); err != nil {
			return summary, fmt.Errorf("failed to store game %d: %w", game.ID, err)
		}
		summary.Loaded++
		if game.IsFinal() {
			summary.Finished = append(summary.Finished, game)
		}
	}

	l.logger.Infof("Loaded %d games, rejected %d", summary.Loaded, len(summary.Errors))
	return summary, nil
}

func (l *ScheduleLoader) toGame(ctx context.Context, rec ScheduleRecord) (models.Game, error) {
	rec.HomeTeam = strings.ToUpper(strings.TrimSpace(rec.HomeTeam))
	rec.AwayTeam = strings.ToUpper(strings.TrimSpace(rec.AwayTeam))
	if err := l.validate.StructCtx(ctx, rec); err != nil {
		return models.Game{}, err
	}

	game := models.Game{
		ID:        rec.ID,
		Season:    rec.Season,
		Week:      rec.Week,
		GameType:  rec.GameType,
		HomeTeam:  rec.HomeTeam,
		AwayTeam:  rec.AwayTeam,
		HomeScore: rec.HomeScore,
		AwayScore: rec.AwayScore,
		Status:    rec.Status,
		UpdatedAt: l.now(),
	}
	if game.GameType == "" {
		game.GameType = models.GameTypeRegular
	}
	if game.Status == "" {
		game.Status = models.GameStatusScheduled
	}
	if rec.StartTime != "" {
		start, ok := primetime.ParseKickoff(rec.StartTime)
		if !ok {
			return models.Game{}, fmt.Errorf("unparseable start_time %q", rec.StartTime)
		}
		game.StartTime = start
	}
	if game.IsFinal() && !game.HasScores() {
		l.logger.Warnf("Game %d (%s) is final without scores", game.ID, game.Matchup())
	}
	return game, nil
}
