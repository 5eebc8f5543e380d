package primetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"primetime-picks/models"
)

func et(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, Eastern).UTC()
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		gameType models.GameType
		week     int
		want     Classification
	}{
		{"sunday night", et(2025, time.November, 9, 20, 15), models.GameTypeRegular, 10, Classification{true, LabelSundayNight}},
		{"sunday afternoon", et(2025, time.November, 9, 16, 25), models.GameTypeRegular, 10, notPrimetime},
		{"sunday exactly at threshold", et(2025, time.November, 9, 19, 0), models.GameTypeRegular, 10, Classification{true, LabelSundayNight}},
		{"monday night", et(2025, time.November, 10, 20, 15), models.GameTypeRegular, 10, Classification{true, LabelMondayNight}},
		{"monday just before threshold", et(2025, time.November, 10, 18, 59), models.GameTypeRegular, 10, notPrimetime},
		{"thursday night", et(2025, time.September, 11, 20, 15), models.GameTypeRegular, 2, Classification{true, LabelThursday}},
		{"saturday early season afternoon", et(2025, time.December, 6, 13, 0), models.GameTypeRegular, 14, notPrimetime},
		{"saturday early season evening", et(2025, time.October, 18, 20, 0), models.GameTypeRegular, 7, Classification{true, LabelSaturday}},
		{"saturday late season afternoon", et(2025, time.December, 27, 13, 0), models.GameTypeRegular, 17, Classification{true, LabelSaturday}},
		{"thanksgiving early game", et(2025, time.November, 27, 12, 30), models.GameTypeRegular, 13, Classification{true, LabelThanksgiving}},
		{"christmas beats thursday", et(2025, time.December, 25, 20, 15), models.GameTypeRegular, 17, Classification{true, LabelChristmas}},
		{"christmas eve", et(2025, time.December, 24, 13, 0), models.GameTypeRegular, 17, Classification{true, LabelHoliday}},
		{"new year's day", et(2026, time.January, 1, 13, 0), models.GameTypeRegular, 18, Classification{true, LabelNewYears}},
		{"wild card afternoon", et(2026, time.January, 10, 13, 0), models.GameTypeWildcard, 1, Classification{true, LabelWildCard}},
		{"super bowl", et(2026, time.February, 8, 18, 30), models.GameTypeSuperBowl, 5, Classification{true, LabelSuperBowl}},
		{"generic playoff", et(2026, time.January, 18, 15, 0), models.GameTypePlayoff, 3, Classification{true, LabelPlayoffs}},
		{"friday night", et(2025, time.July, 4, 20, 0), models.GameTypeRegular, 1, notPrimetime},
		{"saturday afternoon missing type", et(2025, time.December, 6, 13, 0), "", 14, notPrimetime},
		{"saturday afternoon unknown type", et(2025, time.December, 6, 13, 0), "exhibition", 14, notPrimetime},
		{"sunday night missing type", et(2025, time.November, 9, 20, 15), "", 10, Classification{true, LabelSundayNight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.start, tt.gameType, tt.week))
		})
	}
}

func TestClassifyGameMissingTypeIsRegular(t *testing.T) {
	g := &models.Game{StartTime: et(2025, time.December, 13, 13, 0), Week: 15}
	assert.Equal(t, notPrimetime, Default().ClassifyGame(g))

	g.Week = 17
	assert.Equal(t, Classification{true, LabelSaturday}, Default().ClassifyGame(g))
}

func TestClassifyUnknownKickoff(t *testing.T) {
	assert.Equal(t, notPrimetime, Classify(time.Time{}, models.GameTypeSuperBowl, 5))
}

func TestClassifyUsesDaylightSaving(t *testing.T) {
	// 23:30 UTC in September is 19:30 EDT; a fixed -5 offset would say 18:30.
	start := time.Date(2025, time.September, 7, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, Classification{true, LabelSundayNight}, Classify(start, models.GameTypeRegular, 1))

	// 23:30 UTC after the fall-back is 18:30 EST.
	start = time.Date(2025, time.November, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, notPrimetime, Classify(start, models.GameTypeRegular, 10))
}

func TestClassifyLateUTCSpillsIntoNextDay(t *testing.T) {
	// Monday 01:15 UTC is still Sunday night in Eastern time.
	start := time.Date(2025, time.November, 10, 1, 15, 0, 0, time.UTC)
	assert.Equal(t, Classification{true, LabelSundayNight}, Classify(start, models.GameTypeRegular, 10))
}

func TestCustomThreshold(t *testing.T) {
	c := NewClassifier(Rules{Threshold: 20 * time.Hour})
	assert.False(t, c.Classify(et(2025, time.November, 9, 19, 30), models.GameTypeRegular, 10).IsPrimetime)
	assert.True(t, c.Classify(et(2025, time.November, 9, 20, 20), models.GameTypeRegular, 10).IsPrimetime)
	assert.Equal(t, 20*time.Hour, c.Threshold())
}

func TestFilter(t *testing.T) {
	games := []models.Game{
		{ID: 1, GameType: models.GameTypeRegular, Week: 10, StartTime: et(2025, time.November, 9, 13, 0)},
		{ID: 2, GameType: models.GameTypeRegular, Week: 10, StartTime: et(2025, time.November, 9, 20, 20)},
		{ID: 3, GameType: models.GameTypeRegular, Week: 10, StartTime: et(2025, time.November, 10, 20, 15)},
	}
	got := Default().Filter(games)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.False(t, Default().ClassifyGame(nil).IsPrimetime)
}

func TestParseThreshold(t *testing.T) {
	d, err := ParseThreshold("19:00")
	require.NoError(t, err)
	assert.Equal(t, 19*time.Hour, d)

	d, err = ParseThreshold("20:15")
	require.NoError(t, err)
	assert.Equal(t, 20*time.Hour+15*time.Minute, d)

	for _, bad := range []string{"", "7pm", "24:00", "19:60"} {
		_, err := ParseThreshold(bad)
		assert.Error(t, err, bad)
	}
}

func drawKickoff(t *rapid.T, label string) time.Time {
	lo := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	hi := time.Date(2090, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	return time.Unix(rapid.Int64Range(lo, hi).Draw(t, label), 0).UTC()
}

var playoffTypes = []models.GameType{
	models.GameTypeWildcard,
	models.GameTypeDivisional,
	models.GameTypeConference,
	models.GameTypeSuperBowl,
	models.GameTypePlayoff,
}

var allTypes = append([]models.GameType{models.GameTypeRegular}, playoffTypes...)

func TestPlayoffGamesAlwaysPrimetime(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := drawKickoff(t, "start")
		gameType := rapid.SampledFrom(playoffTypes).Draw(t, "type")
		week := rapid.IntRange(1, 5).Draw(t, "week")

		got := Classify(start, gameType, week)
		if !got.IsPrimetime || got.Type != playoffLabel(gameType) || got.Type == LabelNone {
			t.Fatalf("playoff %s at %s classified %+v", gameType, start, got)
		}
	})
}

func TestClassifyIsOrderIndependent(t *testing.T) {
	type input struct {
		start    time.Time
		gameType models.GameType
		week     int
	}
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "n")
		inputs := make([]input, n)
		for i := range inputs {
			inputs[i] = input{
				start:    drawKickoff(t, "start"),
				gameType: rapid.SampledFrom(allTypes).Draw(t, "type"),
				week:     rapid.IntRange(1, 18).Draw(t, "week"),
			}
		}

		forward := make([]Classification, n)
		for i, in := range inputs {
			forward[i] = Classify(in.start, in.gameType, in.week)
		}
		for i := n - 1; i >= 0; i-- {
			in := inputs[i]
			if got := Classify(in.start, in.gameType, in.week); got != forward[i] {
				t.Fatalf("classification of %+v changed between calls: %+v vs %+v", in, forward[i], got)
			}
		}
	})
}

func TestNonPrimetimeHasNoLabel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		got := Classify(drawKickoff(t, "start"), models.GameTypeRegular, rapid.IntRange(1, 18).Draw(t, "week"))
		if got.IsPrimetime == (got.Type == LabelNone) {
			t.Fatalf("inconsistent classification %+v", got)
		}
	})
}
