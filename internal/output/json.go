package output

import (
	"time"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/render"
	"github.com/manav03panchal/weekly/internal/week"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// WeekResponse is the board in JSON.
type WeekResponse struct {
	Days  []render.Day `json:"days"`
	Total int          `json:"total"`
	Done  int          `json:"done"`
}

// NewWeekResponse builds a WeekResponse from rendered days.
func NewWeekResponse(days []render.Day) *WeekResponse {
	resp := &WeekResponse{Days: days}
	for _, d := range days {
		for _, it := range d.Items {
			resp.Total++
			if it.Completed {
				resp.Done++
			}
		}
	}
	return resp
}

// TaskResponse reports the result of a single-task command.
type TaskResponse struct {
	Status string      `json:"status"`
	Action string      `json:"action"`
	Task   *TaskOutput `json:"task,omitempty"`
}

// TaskOutput is a task in JSON output.
type TaskOutput struct {
	Name     string `json:"name"`
	Checked  bool   `json:"checked"`
	Day      int    `json:"day"`
	DayLabel string `json:"day_label"`
	Priority string `json:"priority,omitempty"`
	Icon     string `json:"icon"`
}

// NewTaskOutput creates a TaskOutput from a task.
func NewTaskOutput(t model.Task, locale model.Locale) *TaskOutput {
	return &TaskOutput{
		Name:     t.Name,
		Checked:  t.Checked,
		Day:      int(t.Day),
		DayLabel: t.Day.LocalLabel(locale),
		Priority: string(t.Priority),
		Icon:     string(render.IconFor(t.Priority)),
	}
}

// UndoResponse reports an undone change.
type UndoResponse struct {
	Status  string `json:"status"`
	Action  string `json:"action"`
	Task    string `json:"task,omitempty"`
	SavedAt string `json:"saved_at"`
}

// StatsResponse is the week summary in JSON.
type StatsResponse struct {
	Days    [model.DaysInWeek]week.DayStats `json:"days"`
	Total   int                             `json:"total"`
	Done    int                             `json:"done"`
	Percent float64                         `json:"percent"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	Category   string `json:"category"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewErrorResponse classifies err for JSON output.
func NewErrorResponse(err error) *ErrorResponse {
	return &ErrorResponse{
		Status:     "error",
		Error:      err.Error(),
		Kind:       string(errors.KindOf(err)),
		Category:   errors.Classify(err).String(),
		Suggestion: errors.GetSuggestion(err),
	}
}

// PrintWeek prints the board.
func (j *JSONFormatter) PrintWeek(days []render.Day) error {
	return j.JSON(NewWeekResponse(days))
}

// PrintTask prints the result of a task command.
func (j *JSONFormatter) PrintTask(action string, t *model.Task, locale model.Locale) error {
	resp := &TaskResponse{Status: "ok", Action: action}
	if t != nil {
		resp.Task = NewTaskOutput(*t, locale)
	}
	return j.JSON(resp)
}

// PrintUndo prints an undone change.
func (j *JSONFormatter) PrintUndo(state *model.UndoState) error {
	return j.JSON(&UndoResponse{
		Status:  "undone",
		Action:  string(state.Action),
		Task:    state.TaskName,
		SavedAt: state.SavedAt.Format(time.RFC3339),
	})
}

// PrintStats prints the week summary.
func (j *JSONFormatter) PrintStats(s week.Stats) error {
	return j.JSON(&StatsResponse{
		Days:    s.Days,
		Total:   s.Total,
		Done:    s.Done,
		Percent: s.Percent(),
	})
}

// PrintError prints an error.
func (j *JSONFormatter) PrintError(err error) error {
	return j.JSON(NewErrorResponse(err))
}
