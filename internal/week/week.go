// Package week groups tasks into the seven day buckets and orders each
// bucket by priority.
package week

import (
	"cmp"
	"slices"

	"github.com/manav03panchal/weekly/internal/model"
)

// Week holds one bucket of tasks per day, indexed by model.Day.
type Week [model.DaysInWeek][]model.Task

// Group distributes tasks into day buckets and sorts each bucket.
// Day codes 0-5 map to their own bucket; anything else lands on Sunday.
// The input slice is not modified.
func Group(tasks []model.Task) Week {
	var w Week
	for _, t := range tasks {
		d := t.Day
		if d < model.Monday || d > model.Saturday {
			d = model.Sunday
		}
		w[d] = append(w[d], t)
	}
	for i := range w {
		SortBucket(w[i])
	}
	return w
}

// Compare orders two tasks for display. Prioritized tasks come first,
// ordered by level ("1" before "3"). Equal keys compare as 0 so that a
// stable sort keeps insertion order.
func Compare(a, b model.Task) int {
	la, lb := a.Priority.Level(), b.Priority.Level()
	switch {
	case la == lb:
		return 0
	case la == 0:
		return 1
	case lb == 0:
		return -1
	}
	return cmp.Compare(la, lb)
}

// SortBucket sorts a bucket in place with Compare.
func SortBucket(bucket []model.Task) {
	slices.SortStableFunc(bucket, Compare)
}

// Bucket returns the tasks for a day, or nil for an invalid day.
func (w *Week) Bucket(d model.Day) []model.Task {
	if !d.Valid() {
		return nil
	}
	return w[d]
}

// Len returns the number of tasks across all buckets.
func (w *Week) Len() int {
	n := 0
	for _, b := range w {
		n += len(b)
	}
	return n
}

// Find returns the day and position of the first task with the given
// name, scanning days in order.
func (w *Week) Find(name string) (model.Day, int, bool) {
	for _, d := range model.Days {
		if i := model.IndexOf(w[d], name); i >= 0 {
			return d, i, true
		}
	}
	return model.NoDay, -1, false
}

// Filter returns a copy of the week keeping only tasks for which keep
// returns true. Bucket order is preserved.
func (w *Week) Filter(keep func(model.Task) bool) Week {
	var out Week
	for i, b := range w {
		for _, t := range b {
			if keep(t) {
				out[i] = append(out[i], t)
			}
		}
	}
	return out
}
