// Package transfer reads and writes task collections for export and
// import.
package transfer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
	"github.com/manav03panchal/weekly/internal/storage"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates an export format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", errors.NewUserErrorWithField("type", s,
		"unknown export format", "Use json or csv.")
}

// FormatForPath picks CSV for .csv files and JSON otherwise.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// ExportVersion is written into JSON exports.
const ExportVersion = "1"

// Export is the JSON export document.
type Export struct {
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Tasks      []model.Task `json:"tasks"`
}

// csvHeader is the first row of a CSV export.
var csvHeader = []string{"name", "checked", "day", "priority"}

// Write encodes tasks in format f.
func Write(w io.Writer, f Format, tasks []model.Task, now time.Time) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	switch f {
	case FormatCSV:
		return writeCSV(w, tasks)
	default:
		return writeJSON(w, tasks, now)
	}
}

func writeJSON(w io.Writer, tasks []model.Task, now time.Time) error {
	doc := Export{
		Version:    ExportVersion,
		ExportedAt: now.Format(time.RFC3339),
		Count:      len(tasks),
		Tasks:      tasks,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func writeCSV(w io.Writer, tasks []model.Task) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := writer.Write([]string{
			t.Name,
			strconv.FormatBool(t.Checked),
			strconv.Itoa(int(t.Day)),
			string(t.Priority),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Read decodes tasks in format f. JSON input may be an export document
// or a bare array of records as stored under the tasks key.
func Read(data []byte, f Format) ([]model.Task, error) {
	switch f {
	case FormatCSV:
		return readCSV(data)
	default:
		return readJSON(data)
	}
}

func readJSON(data []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, invalidFile("file is empty")
	}

	if trimmed[0] == '{' {
		var doc struct {
			Version string          `json:"version"`
			Tasks   json.RawMessage `json:"tasks"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, invalidFile(err.Error())
		}
		if doc.Tasks == nil {
			return nil, invalidFile("no tasks array")
		}
		if doc.Version != "" && doc.Version != ExportVersion {
			return nil, errors.NewUserErrorWithField("version", doc.Version,
				"unsupported export version", "Export the file again with this version of weekly.")
		}
		trimmed = doc.Tasks
	}

	// Records share the stored layout, so the stored schema applies.
	if err := storage.ValidateDocument(trimmed); err != nil {
		return nil, invalidFile(err.Error())
	}
	var tasks []model.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, invalidFile(err.Error())
	}
	return tasks, nil
}

func readCSV(data []byte) ([]model.Task, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = len(csvHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, invalidFile(err.Error())
	}
	if len(rows) == 0 {
		return nil, invalidFile("file is empty")
	}
	if strings.Join(rows[0], ",") == strings.Join(csvHeader, ",") {
		rows = rows[1:]
	}

	tasks := make([]model.Task, 0, len(rows))
	for i, row := range rows {
		checked, err := strconv.ParseBool(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, invalidFile(fmt.Sprintf("row %d: checked: %v", i+1, err))
		}
		day, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, invalidFile(fmt.Sprintf("row %d: day: %v", i+1, err))
		}
		tasks = append(tasks, model.Task{
			Name:     row[0],
			Checked:  checked,
			Day:      model.Day(day),
			Priority: model.Priority(strings.TrimSpace(row[3])),
		})
	}
	return tasks, nil
}

func invalidFile(detail string) error {
	return errors.NewUserError("cannot read import file: "+detail,
		"Import a file written by 'weekly export'.")
}
