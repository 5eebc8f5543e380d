package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GlobalLeague is the league id of picks made outside any league.
const GlobalLeague = 0

// PickOutcome is the resolved state of a pick.
type PickOutcome string

const (
	PickOutcomePending   PickOutcome = "pending"
	PickOutcomeCorrect   PickOutcome = "correct"
	PickOutcomeIncorrect PickOutcome = "incorrect"
	PickOutcomePush      PickOutcome = "push"
)

// Pick is a user's selection for one game, unique per (user, game, league).
// PickedTeam and Confidence freeze at kickoff; Outcome and Points are owned by
// the scoring pipeline.
type Pick struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      int                `bson:"user_id" json:"user_id"`
	GameID      int                `bson:"game_id" json:"game_id"`
	LeagueID    int                `bson:"league_id" json:"league_id"`
	Season      int                `bson:"season" json:"season"`
	Week        int                `bson:"week" json:"week"`
	GameStart   time.Time          `bson:"game_start" json:"game_start"`
	PickedTeam  string             `bson:"picked_team" json:"picked_team"`
	Confidence  int                `bson:"confidence" json:"confidence"`
	Outcome     PickOutcome        `bson:"outcome" json:"outcome"`
	Points      int                `bson:"points" json:"points"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submitted_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsResolved is true for any outcome other than pending.
func (p *Pick) IsResolved() bool {
	return p.Outcome != "" && p.Outcome != PickOutcomePending
}

// Key returns the aggregate this pick feeds.
func (p *Pick) Key() StatsKey {
	return StatsKey{UserID: p.UserID, LeagueID: p.LeagueID}
}

// PickSubmission is one entry of a batch submitted by a user.
type PickSubmission struct {
	GameID     int    `json:"game_id" validate:"required,gt=0"`
	PickedTeam string `json:"picked_team" validate:"required"`
	Confidence int    `json:"confidence" validate:"min=1,max=10"`
}
