package primetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a civil calendar date with no zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Thanksgiving returns the fourth Thursday of November: November 1 plus the
// offset to the first Thursday, plus three weeks.
func Thanksgiving(year int) Date {
	first := time.Date(year, time.November, 1, 12, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(first.Weekday()) + 7) % 7
	return DateOf(first.AddDate(0, 0, offset+21))
}

// SeasonYearFor returns the season a civil date belongs to for holiday
// purposes. January dates belong to the previous year's season.
func SeasonYearFor(d Date) int {
	if d.Month == time.January {
		return d.Year - 1
	}
	return d.Year
}

// Holiday is a dated holiday with its display label.
type Holiday struct {
	Date  Date
	Label Label
}

// FixedHoliday recurs every season on the same month and day. January
// holidays fall in the calendar year after the season year.
type FixedHoliday struct {
	Month time.Month
	Day   int
	Label Label
}

func (h FixedHoliday) in(seasonYear int) Holiday {
	year := seasonYear
	if h.Month == time.January {
		year++
	}
	label := h.Label
	if label == "" {
		label = LabelHoliday
	}
	return Holiday{Date: Date{Year: year, Month: h.Month, Day: h.Day}, Label: label}
}

var standardFixed = []FixedHoliday{
	{Month: time.December, Day: 24, Label: LabelHoliday},
	{Month: time.December, Day: 25, Label: LabelChristmas},
	{Month: time.December, Day: 31, Label: LabelHoliday},
	{Month: time.January, Day: 1, Label: LabelNewYears},
}

// HolidayDates returns Thanksgiving, Christmas Eve, Christmas Day, New Year's
// Eve and the following New Year's Day for a season year.
func HolidayDates(seasonYear int) []Holiday {
	return NewCalendar().Holidays(seasonYear)
}

// Calendar answers holiday lookups. Extra fixed holidays may be configured on
// top of the standard set; the standard set is never modified.
type Calendar struct {
	extra []FixedHoliday
}

func NewCalendar(extra ...FixedHoliday) *Calendar {
	return &Calendar{extra: append([]FixedHoliday(nil), extra...)}
}

// Holidays lists every holiday of the given season year.
func (c *Calendar) Holidays(seasonYear int) []Holiday {
	out := make([]Holiday, 0, 1+len(standardFixed)+len(c.extra))
	out = append(out, Holiday{Date: Thanksgiving(seasonYear), Label: LabelThanksgiving})
	for _, h := range standardFixed {
		out = append(out, h.in(seasonYear))
	}
	for _, h := range c.extra {
		out = append(out, h.in(seasonYear))
	}
	return out
}

// Lookup reports whether d is a holiday and which label applies.
func (c *Calendar) Lookup(d Date) (Label, bool) {
	for _, h := range c.Holidays(SeasonYearFor(d)) {
		if h.Date == d {
			return h.Label, true
		}
	}
	return "", false
}

// ParseFixedHolidays reads "MM-DD[:Label],..." as used in configuration.
func ParseFixedHolidays(s string) ([]FixedHoliday, error) {
	var out []FixedHoliday
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		datePart, label, _ := strings.Cut(item, ":")
		mm, dd, ok := strings.Cut(strings.TrimSpace(datePart), "-")
		if !ok {
			return nil, fmt.Errorf("invalid holiday %q: expected MM-DD", item)
		}
		month, err := strconv.Atoi(mm)
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid holiday month in %q", item)
		}
		day, err := strconv.Atoi(dd)
		if err != nil || day < 1 || day > daysIn(time.Month(month)) {
			return nil, fmt.Errorf("invalid holiday day in %q", item)
		}
		out = append(out, FixedHoliday{
			Month: time.Month(month),
			Day:   day,
			Label: Label(strings.TrimSpace(label)),
		})
	}
	return out, nil
}

func daysIn(m time.Month) int {
	// leap year so Feb 29 is accepted
	return time.Date(2024, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
