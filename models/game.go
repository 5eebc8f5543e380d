package models

import (
	"fmt"
	"time"
)

// GameStatus is the lifecycle state reported by the schedule feed.
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
	GameStatusCancelled  GameStatus = "cancelled"
	GameStatusPostponed  GameStatus = "postponed"
)

// Label is the short status text shown next to a game.
func (s GameStatus) Label() string {
	switch s {
	case GameStatusScheduled:
		return "Upcoming"
	case GameStatusInProgress:
		return "Live"
	case GameStatusFinal:
		return "Final"
	case GameStatusCancelled:
		return "Cancelled"
	case GameStatusPostponed:
		return "Postponed"
	default:
		return string(s)
	}
}

// GameType distinguishes the regular season from the playoff rounds.
type GameType string

const (
	GameTypeRegular    GameType = "regular"
	GameTypeWildcard   GameType = "wildcard"
	GameTypeDivisional GameType = "divisional"
	GameTypeConference GameType = "conference"
	GameTypeSuperBowl  GameType = "superbowl"
	GameTypePlayoff    GameType = "playoff"
)

// IsPlayoff reports whether the type is any postseason variant.
func (t GameType) IsPlayoff() bool {
	switch t {
	case GameTypeWildcard, GameTypeDivisional, GameTypeConference, GameTypeSuperBowl, GameTypePlayoff:
		return true
	}
	return false
}

// Canonical maps an empty or unrecognized type to regular, the type every
// record has unless the feed says otherwise.
func (t GameType) Canonical() GameType {
	if t.IsPlayoff() {
		return t
	}
	return GameTypeRegular
}

// TieResult is returned by Winner when a final game ended level.
const TieResult = "TIE"

// Game is a scheduled matchup. Scores stay nil until the feed reports them.
// StartTime is stored in UTC.
type Game struct {
	ID        int        `json:"id" bson:"id"`
	Season    int        `json:"season" bson:"season"`
	Week      int        `json:"week" bson:"week"`
	GameType  GameType   `json:"game_type" bson:"game_type"`
	StartTime time.Time  `json:"start_time" bson:"start_time"`
	HomeTeam  string     `json:"home_team" bson:"home_team"`
	AwayTeam  string     `json:"away_team" bson:"away_team"`
	HomeScore *int       `json:"home_score,omitempty" bson:"home_score,omitempty"`
	AwayScore *int       `json:"away_score,omitempty" bson:"away_score,omitempty"`
	Status    GameStatus `json:"status" bson:"status"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// HasScores is true once both scores are present.
func (g *Game) HasScores() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// Winner returns the winning team, TieResult for a level final, or "" when
// the game is not final or scores are missing.
func (g *Game) Winner() string {
	if !g.IsFinal() || !g.HasScores() {
		return ""
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeam
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeam
	default:
		return TieResult
	}
}

// HasTeam reports whether team plays in this game.
func (g *Game) HasTeam(team string) bool {
	return team != "" && (team == g.HomeTeam || team == g.AwayTeam)
}

// Matchup returns "AWAY @ HOME".
func (g *Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// ScoreString returns "24-20" (away-home) or "vs" before results exist.
func (g *Game) ScoreString() string {
	if !g.HasScores() {
		return "vs"
	}
	return fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
}

// IntPtr is a small helper for building games with scores.
func IntPtr(v int) *int {
	return &v
}
