package vocabulary

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one problem found in a vocabulary file.
type ValidationError struct {
	File        string
	Location    string
	Message     string
	Suggestions []string
}

func (e ValidationError) Error() string {
	location := ""
	if e.Location != "" {
		location = fmt.Sprintf(" (%s)", e.Location)
	}
	msg := fmt.Sprintf("%s%s: %s", e.File, location, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" [Suggestion: %s]", strings.Join(e.Suggestions, "; "))
	}
	return msg
}

// Validate checks required fields, unique ids and unique verbs, and returns every problem.
func Validate(file string, entries []Entry) []ValidationError {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})

	var errs []ValidationError
	ids := make(map[int]int, len(entries))
	verbs := make(map[string]int, len(entries))
	for i, entry := range entries {
		location := fmt.Sprintf("entry[%d]: %s", i, entry.Verb)

		if err := validate.Struct(entry); err != nil {
			fieldErrors, ok := err.(validator.ValidationErrors)
			if !ok {
				errs = append(errs, ValidationError{File: file, Location: location, Message: err.Error()})
				continue
			}
			for _, fieldError := range fieldErrors {
				errs = append(errs, ValidationError{
					File:     file,
					Location: location,
					Message:  fieldMessage(fieldError),
				})
			}
		}

		if first, ok := ids[entry.ID]; ok && entry.ID > 0 {
			errs = append(errs, ValidationError{
				File:        file,
				Location:    location,
				Message:     fmt.Sprintf("duplicate id %d, first used by entry[%d]", entry.ID, first),
				Suggestions: []string{"give every entry a unique id"},
			})
		} else {
			ids[entry.ID] = i
		}

		key := strings.ToLower(strings.TrimSpace(entry.Verb))
		if key == "" {
			continue
		}
		if first, ok := verbs[key]; ok {
			errs = append(errs, ValidationError{
				File:        file,
				Location:    location,
				Message:     fmt.Sprintf("duplicate verb %q, first used by entry[%d]", entry.Verb, first),
				Suggestions: []string{"remove one of the entries"},
			})
		} else {
			verbs[key] = i
		}
	}
	return errs
}

func fieldMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is empty", fieldError.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fieldError.Field(), fieldError.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fieldError.Field(), fieldError.Tag())
	}
}
