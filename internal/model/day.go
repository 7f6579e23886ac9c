package model

import (
	"fmt"
	"time"
)

// Day is a weekday code where 0 is Monday and 6 is Sunday.
type Day int

// Weekday codes.
const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// NoDay marks a missing day selection.
const NoDay Day = -1

// DaysInWeek is the number of day buckets.
const DaysInWeek = 7

// Days lists every day in display order.
var Days = [DaysInWeek]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Locale selects the language of day labels.
type Locale string

const (
	LocaleEN Locale = "en"
	LocalePT Locale = "pt"
)

var dayLabels = map[Locale][DaysInWeek]string{
	LocaleEN: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	LocalePT: {"Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado", "Domingo"},
}

// Valid returns true if d is one of the seven day codes.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Label returns the English label of the day.
func (d Day) Label() string {
	return d.LocalLabel(LocaleEN)
}

// LocalLabel returns the label of the day in the given locale.
// Unknown locales fall back to English.
func (d Day) LocalLabel(locale Locale) string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	labels, ok := dayLabels[locale]
	if !ok {
		labels = dayLabels[LocaleEN]
	}
	return labels[d]
}

// String implements fmt.Stringer.
func (d Day) String() string {
	return d.Label()
}

// DayFromWeekday converts a Sunday-first time.Weekday into a Monday-first Day.
func DayFromWeekday(wd time.Weekday) Day {
	return Day((int(wd) + 6) % 7)
}

// DayOf returns the Day a point in time falls on.
func DayOf(t time.Time) Day {
	return DayFromWeekday(t.Weekday())
}

// ValidLocale reports whether labels exist for the locale.
func ValidLocale(locale Locale) bool {
	_, ok := dayLabels[locale]
	return ok
}
