// Package parser turns command-line input into days and priorities.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/weekly/internal/model"
)

// minPrefix is the shortest accepted abbreviation of a day name.
const minPrefix = 3

// dayNames lists the names matched by prefix, accents removed.
var dayNames = map[model.Day][]string{
	model.Monday:    {"monday", "segunda-feira"},
	model.Tuesday:   {"tuesday", "terca-feira"},
	model.Wednesday: {"wednesday", "quarta-feira"},
	model.Thursday:  {"thursday", "quinta-feira"},
	model.Friday:    {"friday", "sexta-feira"},
	model.Saturday:  {"saturday", "sabado"},
	model.Sunday:    {"sunday", "domingo"},
}

var relativeDays = map[string]int{
	"today":    0,
	"hoje":     0,
	"tomorrow": 1,
	"amanha":   1,
}

var accents = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u",
	"ç", "c",
)

// normalize lowercases input and strips Portuguese accents.
func normalize(s string) string {
	return accents.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// ParseDay parses a day selection relative to now. Empty input means no
// day was picked and returns model.NoDay without error.
func ParseDay(input string, now time.Time) (model.Day, error) {
	in := normalize(input)
	if in == "" {
		return model.NoDay, nil
	}

	if n, err := strconv.Atoi(in); err == nil {
		d := model.Day(n)
		if !d.Valid() {
			return model.NoDay, NewDayError(input, "day numbers go from 0 (Monday) to 6 (Sunday)")
		}
		return d, nil
	}

	if offset, ok := relativeDays[in]; ok {
		return model.DayOf(now.AddDate(0, 0, offset)), nil
	}

	if d, ok := matchDayName(in); ok {
		return d, nil
	}

	// Anything else is treated as a date; its weekday picks the bucket.
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return model.NoDay, NewDayError(input, "not a day name or date")
	}
	return model.DayOf(result.Time), nil
}

// matchDayName matches a full day name or an unambiguous prefix of at
// least minPrefix letters.
func matchDayName(in string) (model.Day, bool) {
	if len(in) < minPrefix {
		return model.NoDay, false
	}

	found := model.NoDay
	for _, d := range model.Days {
		for _, name := range dayNames[d] {
			if in == name {
				return d, true
			}
			if strings.HasPrefix(name, in) {
				if found != model.NoDay && found != d {
					return model.NoDay, false
				}
				found = d
			}
		}
	}
	return found, found != model.NoDay
}
