package models

import (
	"fmt"
	"time"
)

// StatsKey identifies one aggregate row.
type StatsKey struct {
	UserID   int `json:"user_id" bson:"user_id"`
	LeagueID int `json:"league_id" bson:"league_id"`
}

func (k StatsKey) String() string {
	return fmt.Sprintf("user=%d league=%d", k.UserID, k.LeagueID)
}

// UserStats is derived from pick history and always rewritten whole.
// TotalPicks counts resolved picks that were not pushes.
type UserStats struct {
	UserID         int     `json:"user_id" bson:"user_id"`
	LeagueID       int     `json:"league_id" bson:"league_id"`
	TotalPicks     int     `json:"total_picks" bson:"total_picks"`
	CorrectPicks   int     `json:"correct_picks" bson:"correct_picks"`
	IncorrectPicks int     `json:"incorrect_picks" bson:"incorrect_picks"`
	Pushes         int     `json:"pushes" bson:"pushes"`
	PendingPicks   int     `json:"pending_picks" bson:"pending_picks"`
	Accuracy       float64 `json:"accuracy_percentage" bson:"accuracy_percentage"`
	TotalPoints    int     `json:"total_points" bson:"total_points"`
	CurrentStreak  int     `json:"current_streak" bson:"current_streak"`
	BestStreak     int     `json:"best_streak" bson:"best_streak"`

	PrimetimePicks    int     `json:"primetime_picks" bson:"primetime_picks"`
	PrimetimeCorrect  int     `json:"primetime_correct" bson:"primetime_correct"`
	PrimetimeAccuracy float64 `json:"primetime_percentage" bson:"primetime_percentage"`

	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *UserStats) Key() StatsKey {
	return StatsKey{UserID: s.UserID, LeagueID: s.LeagueID}
}

// StreakLabel renders the current streak as "W3", "L2" or "-".
func (s *UserStats) StreakLabel() string {
	switch {
	case s.CurrentStreak > 0:
		return fmt.Sprintf("W%d", s.CurrentStreak)
	case s.CurrentStreak < 0:
		return fmt.Sprintf("L%d", -s.CurrentStreak)
	default:
		return "-"
	}
}

// LeaderboardEntry is a ranked stats row.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	UserStats
}
