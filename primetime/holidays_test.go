package primetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestThanksgivingKnownYears(t *testing.T) {
	cases := map[int]int{
		2019: 28,
		2020: 26,
		2021: 25,
		2022: 24,
		2023: 23,
		2024: 28,
		2025: 27,
		2026: 26,
	}
	for year, day := range cases {
		assert.Equal(t, Date{Year: year, Month: time.November, Day: day}, Thanksgiving(year), "year %d", year)
	}
}

func TestThanksgivingIsFourthThursday(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		year := rapid.IntRange(1900, 2400).Draw(t, "year")
		d := Thanksgiving(year)

		if d.Month != time.November || d.Year != year {
			t.Fatalf("thanksgiving %s not in November %d", d, year)
		}
		if d.Weekday() != time.Thursday {
			t.Fatalf("thanksgiving %s is a %s", d, d.Weekday())
		}
		// days 22..28 are exactly the fourth Thursday window
		if d.Day < 22 || d.Day > 28 {
			t.Fatalf("thanksgiving %s is not the fourth Thursday", d)
		}
	})
}

func TestSeasonYearFor(t *testing.T) {
	assert.Equal(t, 2025, SeasonYearFor(Date{Year: 2026, Month: time.January, Day: 1}))
	assert.Equal(t, 2025, SeasonYearFor(Date{Year: 2026, Month: time.January, Day: 31}))
	assert.Equal(t, 2026, SeasonYearFor(Date{Year: 2026, Month: time.February, Day: 8}))
	assert.Equal(t, 2025, SeasonYearFor(Date{Year: 2025, Month: time.December, Day: 31}))
}

func TestHolidayDates(t *testing.T) {
	got := HolidayDates(2025)
	require.Len(t, got, 5)

	want := []Holiday{
		{Date: Date{2025, time.November, 27}, Label: LabelThanksgiving},
		{Date: Date{2025, time.December, 24}, Label: LabelHoliday},
		{Date: Date{2025, time.December, 25}, Label: LabelChristmas},
		{Date: Date{2025, time.December, 31}, Label: LabelHoliday},
		{Date: Date{2026, time.January, 1}, Label: LabelNewYears},
	}
	assert.Equal(t, want, got)
}

func TestCalendarLookupJanuaryBoundary(t *testing.T) {
	cal := NewCalendar()

	label, ok := cal.Lookup(Date{2026, time.January, 1})
	require.True(t, ok)
	assert.Equal(t, LabelNewYears, label)

	// Jan 1 of the season year itself belongs to the previous season and is
	// still New Year's Day, never a lookup of next January.
	label, ok = cal.Lookup(Date{2025, time.January, 1})
	require.True(t, ok)
	assert.Equal(t, LabelNewYears, label)

	_, ok = cal.Lookup(Date{2026, time.January, 2})
	assert.False(t, ok)
}

func TestCalendarExtraHolidays(t *testing.T) {
	extra, err := ParseFixedHolidays("07-04:Independence Day, 01-19")
	require.NoError(t, err)
	cal := NewCalendar(extra...)

	label, ok := cal.Lookup(Date{2025, time.July, 4})
	require.True(t, ok)
	assert.Equal(t, Label("Independence Day"), label)

	label, ok = cal.Lookup(Date{2026, time.January, 19})
	require.True(t, ok)
	assert.Equal(t, LabelHoliday, label)

	// the default calendar is unaffected
	_, ok = NewCalendar().Lookup(Date{2025, time.July, 4})
	assert.False(t, ok)
}

func TestParseFixedHolidaysErrors(t *testing.T) {
	for _, in := range []string{"13-01", "12-32", "1225", "xx-01", "02-30"} {
		_, err := ParseFixedHolidays(in)
		assert.Error(t, err, in)
	}

	got, err := ParseFixedHolidays("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
