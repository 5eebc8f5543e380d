package config

import (
	"fmt"
	"sort"
	"strings"

	"primetime-picks/models"
)

const logoURLFormat = "https://a.espncdn.com/combiner/i?img=/i/teamlogos/nfl/500/scoreboard/%s.png"

// teamNames is read-only after init; callers only get copies through the
// accessors below.
var teamNames = map[string]string{
	"ARI": "Arizona Cardinals", "ATL": "Atlanta Falcons", "BAL": "Baltimore Ravens", "BUF": "Buffalo Bills",
	"CAR": "Carolina Panthers", "CHI": "Chicago Bears", "CIN": "Cincinnati Bengals", "CLE": "Cleveland Browns",
	"DAL": "Dallas Cowboys", "DEN": "Denver Broncos", "DET": "Detroit Lions", "GB": "Green Bay Packers",
	"HOU": "Houston Texans", "IND": "Indianapolis Colts", "JAX": "Jacksonville Jaguars", "KC": "Kansas City Chiefs",
	"LAC": "Los Angeles Chargers", "LAR": "Los Angeles Rams", "LV": "Las Vegas Raiders", "MIA": "Miami Dolphins",
	"MIN": "Minnesota Vikings", "NE": "New England Patriots", "NO": "New Orleans Saints", "NYG": "New York Giants",
	"NYJ": "New York Jets", "PHI": "Philadelphia Eagles", "PIT": "Pittsburgh Steelers", "SEA": "Seattle Seahawks",
	"SF": "San Francisco 49ers", "TB": "Tampa Bay Buccaneers", "TEN": "Tennessee Titans", "WAS": "Washington Commanders",
}

// LookupTeam returns the display record for an abbreviation.
func LookupTeam(abbr string) (models.Team, bool) {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	name, ok := teamNames[abbr]
	if !ok {
		return models.Team{}, false
	}
	return models.Team{Name: name, Abbr: abbr, LogoURL: TeamLogoURL(abbr)}, true
}

// TeamLogoURL returns the CDN logo for a known team, or "" otherwise.
func TeamLogoURL(abbr string) string {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if _, ok := teamNames[abbr]; !ok {
		return ""
	}
	return fmt.Sprintf(logoURLFormat, strings.ToLower(abbr))
}

// Teams lists every team sorted by abbreviation.
func Teams() []models.Team {
	out := make([]models.Team, 0, len(teamNames))
	for abbr := range teamNames {
		t, _ := LookupTeam(abbr)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abbr < out[j].Abbr })
	return out
}
