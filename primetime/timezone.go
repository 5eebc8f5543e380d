package primetime

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// Eastern is the reference zone every rule is evaluated in.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// tzdata is embedded, so this only happens with a broken build
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// ToEastern converts an absolute instant to Eastern civil time. The zero time
// means "unknown" and yields ok=false.
func ToEastern(t time.Time) (time.Time, bool) {
	if t.IsZero() {
		return time.Time{}, false
	}
	return t.In(Eastern), true
}

// Layouts accepted by ParseKickoff. Layouts without a zone are read as UTC.
var kickoffLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseKickoff parses a stored or feed timestamp. Naive values are treated
// as UTC. An empty or unparseable string yields ok=false.
func ParseKickoff(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
