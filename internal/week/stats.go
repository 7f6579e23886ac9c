package week

import "github.com/manav03panchal/weekly/internal/model"

// DayStats summarizes one day bucket.
type DayStats struct {
	Day        model.Day `json:"day"`
	Total      int       `json:"total"`
	Done       int       `json:"done"`
	High       int       `json:"high"`
	Medium     int       `json:"medium"`
	Low        int       `json:"low"`
	Unassigned int       `json:"unassigned"`
}

// Pending returns the number of unchecked tasks.
func (s DayStats) Pending() int {
	return s.Total - s.Done
}

// Stats summarizes the whole week.
type Stats struct {
	Days  [model.DaysInWeek]DayStats `json:"days"`
	Total int                        `json:"total"`
	Done  int                        `json:"done"`
}

// Percent returns the completion percentage, 0 for an empty week.
func (s Stats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total) * 100
}

// Stats computes per-day and overall counts.
func (w *Week) Stats() Stats {
	var s Stats
	for i, bucket := range w {
		ds := DayStats{Day: model.Day(i)}
		for _, t := range bucket {
			ds.Total++
			if t.Checked {
				ds.Done++
			}
			switch t.Priority {
			case model.PriorityHigh:
				ds.High++
			case model.PriorityMedium:
				ds.Medium++
			case model.PriorityLow:
				ds.Low++
			default:
				ds.Unassigned++
			}
		}
		s.Days[i] = ds
		s.Total += ds.Total
		s.Done += ds.Done
	}
	return s
}
