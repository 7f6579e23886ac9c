package parser

import (
	"strings"

	"github.com/manav03panchal/weekly/internal/model"
)

var priorityNames = map[string]model.Priority{
	"":       model.PriorityNone,
	"none":   model.PriorityNone,
	"1":      model.PriorityHigh,
	"high":   model.PriorityHigh,
	"h":      model.PriorityHigh,
	"alta":   model.PriorityHigh,
	"2":      model.PriorityMedium,
	"medium": model.PriorityMedium,
	"med":    model.PriorityMedium,
	"m":      model.PriorityMedium,
	"media":  model.PriorityMedium,
	"3":      model.PriorityLow,
	"low":    model.PriorityLow,
	"l":      model.PriorityLow,
	"baixa":  model.PriorityLow,
}

// ParsePriority parses a priority level. Empty input means no priority.
func ParsePriority(input string) (model.Priority, error) {
	p, ok := priorityNames[normalize(input)]
	if !ok {
		return model.PriorityNone, NewPriorityError(strings.TrimSpace(input))
	}
	return p, nil
}

// PriorityName returns the word for a priority level.
func PriorityName(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "high"
	case model.PriorityMedium:
		return "medium"
	case model.PriorityLow:
		return "low"
	}
	return "none"
}
