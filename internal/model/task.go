package model

import "strconv"

// Priority is an optional priority level stored as "", "1", "2" or "3".
// Level 1 is the most urgent.
type Priority string

// Priority levels.
const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "1"
	PriorityMedium Priority = "2"
	PriorityLow    Priority = "3"
)

// IsSet returns true if a priority was assigned.
func (p Priority) IsSet() bool {
	return p != PriorityNone
}

// Level returns the numeric priority, or 0 when none is set or the value
// is not a number.
func (p Priority) Level() int {
	if !p.IsSet() {
		return 0
	}
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return 0
	}
	return n
}

// Valid returns true for the empty priority and levels 1 to 3.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is the persisted task record. Name is unique within a collection.
type Task struct {
	Name     string   `json:"name" validate:"required,max=256"`
	Checked  bool     `json:"checked"`
	Day      Day      `json:"day" validate:"min=0,max=6"`
	Priority Priority `json:"priority" validate:"omitempty,oneof=1 2 3"`
}

// NewTask creates an unchecked task.
func NewTask(name string, day Day, priority Priority) Task {
	return Task{
		Name:     name,
		Day:      day,
		Priority: priority,
	}
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Checked = !t.Checked
}

// Clone returns a copy of the given task slice.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the index of the first task with the given name, or -1.
func IndexOf(tasks []Task, name string) int {
	for i := range tasks {
		if tasks[i].Name == name {
			return i
		}
	}
	return -1
}
