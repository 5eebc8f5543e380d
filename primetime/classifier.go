// Package primetime decides which games are primetime. Everything here is a
// pure function of a game's kickoff instant, type and week.
package primetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"primetime-picks/models"
)

// Label names the kind of primetime slot. The empty label means none.
type Label string

const (
	LabelNone         Label = ""
	LabelWildCard     Label = "Wild Card"
	LabelDivisional   Label = "Divisional"
	LabelConference   Label = "Conference Championship"
	LabelSuperBowl    Label = "Super Bowl"
	LabelPlayoffs     Label = "Playoffs"
	LabelThanksgiving Label = "Thanksgiving"
	LabelChristmas    Label = "Christmas"
	LabelNewYears     Label = "New Year's"
	LabelHoliday      Label = "Holiday"
	LabelSundayNight  Label = "Sunday Night"
	LabelMondayNight  Label = "Monday Night"
	LabelThursday     Label = "Thursday Night"
	LabelSaturday     Label = "Saturday Night"
)

// playoffLabel names the round. Membership comes from GameType.IsPlayoff.
func playoffLabel(t models.GameType) Label {
	switch t {
	case models.GameTypeWildcard:
		return LabelWildCard
	case models.GameTypeDivisional:
		return LabelDivisional
	case models.GameTypeConference:
		return LabelConference
	case models.GameTypeSuperBowl:
		return LabelSuperBowl
	}
	return LabelPlayoffs
}

// Classification is the answer for one game.
type Classification struct {
	IsPrimetime bool  `json:"is_primetime"`
	Type        Label `json:"primetime_type,omitempty"`
}

var notPrimetime = Classification{}

// DefaultThreshold is the Eastern time of day from which evening kickoffs
// count as primetime.
const DefaultThreshold = 19 * time.Hour

// DefaultLateSeasonWeek is the first week in which every Saturday game is
// primetime.
const DefaultLateSeasonWeek = 17

// Rules configures a Classifier. Zero fields take the defaults.
type Rules struct {
	Threshold      time.Duration
	LateSeasonWeek int
	Calendar       *Calendar
}

// Classifier applies the primetime rules. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	threshold      time.Duration
	lateSeasonWeek int
	calendar       *Calendar
}

func NewClassifier(rules Rules) *Classifier {
	c := &Classifier{
		threshold:      rules.Threshold,
		lateSeasonWeek: rules.LateSeasonWeek,
		calendar:       rules.Calendar,
	}
	if c.threshold <= 0 {
		c.threshold = DefaultThreshold
	}
	if c.lateSeasonWeek <= 0 {
		c.lateSeasonWeek = DefaultLateSeasonWeek
	}
	if c.calendar == nil {
		c.calendar = NewCalendar()
	}
	return c
}

var defaultClassifier = NewClassifier(Rules{})

// Classify runs the default rules.
func Classify(start time.Time, gameType models.GameType, week int) Classification {
	return defaultClassifier.Classify(start, gameType, week)
}

// Default returns the classifier with default rules.
func Default() *Classifier {
	return defaultClassifier
}

// Threshold returns the evening cutoff as a time of day.
func (c *Classifier) Threshold() time.Duration {
	return c.threshold
}

// Classify evaluates, in order: playoff type, holiday date, then day of
// week against the evening threshold. An unknown kickoff is not primetime;
// an empty or unknown game type counts as regular.
func (c *Classifier) Classify(start time.Time, gameType models.GameType, week int) Classification {
	local, ok := ToEastern(start)
	if !ok {
		return notPrimetime
	}

	gameType = gameType.Canonical()
	if gameType.IsPlayoff() {
		return Classification{IsPrimetime: true, Type: playoffLabel(gameType)}
	}

	if label, ok := c.calendar.Lookup(DateOf(local)); ok {
		return Classification{IsPrimetime: true, Type: label}
	}

	evening := sinceMidnight(local) >= c.threshold
	switch local.Weekday() {
	case time.Sunday:
		if evening {
			return Classification{IsPrimetime: true, Type: LabelSundayNight}
		}
	case time.Monday:
		if evening {
			return Classification{IsPrimetime: true, Type: LabelMondayNight}
		}
	case time.Thursday:
		if evening {
			return Classification{IsPrimetime: true, Type: LabelThursday}
		}
	case time.Saturday:
		// postseason Saturdays already matched as playoffs
		if week >= c.lateSeasonWeek || evening {
			return Classification{IsPrimetime: true, Type: LabelSaturday}
		}
	}
	return notPrimetime
}

// ClassifyGame is Classify applied to a game record.
func (c *Classifier) ClassifyGame(g *models.Game) Classification {
	if g == nil {
		return notPrimetime
	}
	return c.Classify(g.StartTime, g.GameType, g.Week)
}

// Filter returns the primetime games in their original order.
func (c *Classifier) Filter(games []models.Game) []models.Game {
	out := make([]models.Game, 0, len(games))
	for i := range games {
		if c.ClassifyGame(&games[i]).IsPrimetime {
			out = append(out, games[i])
		}
	}
	return out
}

func sinceMidnight(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// ParseThreshold reads an "HH:MM" time of day.
func ParseThreshold(s string) (time.Duration, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid threshold %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid threshold hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid threshold minute in %q", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}
