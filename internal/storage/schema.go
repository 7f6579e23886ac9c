package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var tasksSchemaJSON string

const tasksSchemaURL = "https://weekly.local/tasks.schema.json"

var (
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
	tasksSchemaOnce sync.Once
)

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaJSON)); err != nil {
			tasksSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		tasksSchema, tasksSchemaErr = compiler.Compile(tasksSchemaURL)
	})
	return tasksSchema, tasksSchemaErr
}

// SchemaError describes where a task document failed validation.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidateDocument checks raw JSON against the task collection schema.
func ValidateDocument(data []byte) error {
	schema, err := compiledTasksSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return &SchemaError{Message: err.Error()}
	}

	if err := schema.Validate(doc); err != nil {
		return mapSchemaError(err)
	}
	return nil
}

// mapSchemaError reduces a jsonschema error to its first leaf cause.
func mapSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &SchemaError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Path: ve.InstanceLocation, Message: ve.Message}
}
