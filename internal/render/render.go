// Package render converts day buckets into display items that output
// adapters draw. It is pure and never fails.
package render

import (
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/week"
)

// Icon is the visual priority marker of an item.
type Icon string

const (
	IconNone   Icon = "none"
	IconLow    Icon = "low"
	IconMedium Icon = "medium"
	IconHigh   Icon = "high"
)

// Action is an operation offered on an item.
type Action string

const (
	ActionToggle Action = "toggle"
	ActionRename Action = "rename"
	ActionRemove Action = "remove"
)

// Actions is the action set every item exposes.
var Actions = []Action{ActionToggle, ActionRename, ActionRemove}

// Item is one rendered task.
type Item struct {
	Name      string   `json:"name"`
	Completed bool     `json:"completed"`
	Icon      Icon     `json:"icon"`
	Priority  string   `json:"priority,omitempty"`
	Actions   []Action `json:"actions"`
}

// IconFor maps a priority to its icon. Level 1 is the most urgent and
// gets the tallest marker.
func IconFor(p model.Priority) Icon {
	switch p {
	case model.PriorityHigh:
		return IconHigh
	case model.PriorityMedium:
		return IconMedium
	case model.PriorityLow:
		return IconLow
	default:
		return IconNone
	}
}

// NewItem renders a single task.
func NewItem(t model.Task) Item {
	return Item{
		Name:      t.Name,
		Completed: t.Checked,
		Icon:      IconFor(t.Priority),
		Priority:  string(t.Priority),
		Actions:   Actions,
	}
}

// Bucket renders an ordered bucket, one item per task in the same order.
func Bucket(tasks []model.Task) []Item {
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, NewItem(t))
	}
	return items
}

// Day is a rendered day section.
type Day struct {
	Day   model.Day `json:"day"`
	Label string    `json:"label"`
	Items []Item    `json:"items"`
}

// Week renders all seven buckets with labels in the given locale.
func Week(w week.Week, locale model.Locale) []Day {
	days := make([]Day, 0, model.DaysInWeek)
	for _, d := range model.Days {
		days = append(days, Day{
			Day:   d,
			Label: d.LocalLabel(locale),
			Items: Bucket(w.Bucket(d)),
		})
	}
	return days
}
