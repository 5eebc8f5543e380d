package models

import "time"

// GameView is a game decorated for display: primetime badge, Eastern kickoff,
// logos and whether picks are still open.
type GameView struct {
	Game
	IsPrimetime   bool      `json:"is_primetime"`
	PrimetimeType string    `json:"primetime_type,omitempty"`
	KickoffET     time.Time `json:"kickoff_et"`
	StatusLabel   string    `json:"status_label"`
	CanMakePicks  bool      `json:"can_make_picks"`
	HomeLogo      string    `json:"home_logo,omitempty"`
	AwayLogo      string    `json:"away_logo,omitempty"`
}
