package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/week"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		priority model.Priority
		want     Icon
	}{
		{model.PriorityNone, IconNone},
		{model.PriorityLow, IconLow},
		{model.PriorityMedium, IconMedium},
		{model.PriorityHigh, IconHigh},
		{model.Priority("9"), IconNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.want)+"_"+string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.want, IconFor(tt.priority))
		})
	}
}

func TestBucket(t *testing.T) {
	items := Bucket([]model.Task{
		{Name: "Call mom", Priority: model.PriorityHigh},
		{Name: "Gym", Checked: true},
	})

	require.Len(t, items, 2)
	assert.Equal(t, Item{
		Name:     "Call mom",
		Icon:     IconHigh,
		Priority: "1",
		Actions:  []Action{ActionToggle, ActionRename, ActionRemove},
	}, items[0])
	assert.True(t, items[1].Completed)
	assert.Equal(t, IconNone, items[1].Icon)
}

func TestBucketEmpty(t *testing.T) {
	items := Bucket(nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestWeek(t *testing.T) {
	w := week.Group([]model.Task{
		{Name: "a", Day: model.Tuesday, Priority: model.PriorityLow},
		{Name: "b", Day: model.Tuesday, Priority: model.PriorityHigh},
	})

	days := Week(w, model.LocalePT)
	require.Len(t, days, model.DaysInWeek)
	assert.Equal(t, "Segunda-feira", days[0].Label)
	assert.Empty(t, days[0].Items)

	tue := days[model.Tuesday]
	require.Len(t, tue.Items, 2)
	assert.Equal(t, "b", tue.Items[0].Name)
	assert.Equal(t, IconHigh, tue.Items[0].Icon)
	assert.Equal(t, IconLow, tue.Items[1].Icon)
}
