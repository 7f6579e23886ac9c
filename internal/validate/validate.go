// Package validate checks task records and cleans user input before it
// reaches the store.
package validate

import (
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/manav03panchal/weekly/internal/errors"
	"github.com/manav03panchal/weekly/internal/model"
)

// MaxNameLength is the maximum length of a task name in runes.
const MaxNameLength = 256

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Task validates a record using its struct tags and maps the first
// failing field to the matching user error.
func Task(t model.Task) error {
	err := instance().Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validate task")
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return errors.Invalid(errors.ErrEmptyName, "name", "")
		}
		return errors.NewUserErrorWithField("name", t.Name,
			"task name too long",
			fmt.Sprintf("Task names must be %d characters or fewer", MaxNameLength))
	case "Day":
		if t.Day == model.NoDay {
			return errors.Invalid(errors.ErrMissingDay, "day", "")
		}
		return errors.Invalid(errors.ErrInvalidDay, "day", strconv.Itoa(int(t.Day)))
	case "Priority":
		return errors.Invalid(errors.ErrInvalidPriority, "priority", string(t.Priority))
	}
	return errors.NewUserErrorWithField(fe.Field(), fmt.Sprint(fe.Value()),
		fmt.Sprintf("%s is invalid", fe.Field()), "")
}

// Tasks validates every record and reports the first failure with its
// position. Names must also be unique.
func Tasks(tasks []model.Task) error {
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if err := Task(t); err != nil {
			return errors.WithContextf(err, "record %d", i)
		}
		if _, dup := seen[t.Name]; dup {
			return errors.WithContextf(errors.Invalid(errors.ErrDuplicateName, "name", t.Name), "record %d", i)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

// Name checks a single name without building a record.
func Name(name string) error {
	if name == "" {
		return errors.Invalid(errors.ErrEmptyName, "name", "")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"task name too long",
			fmt.Sprintf("Task names must be %d characters or fewer", MaxNameLength))
	}
	return nil
}
