package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrEmptyDataset   = errors.New("empty dataset document")
)

const (
	minYear = 1900
	maxYear = 2100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report yaml field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("year", func(fl validator.FieldLevel) bool {
		y := fl.Field().Int()
		return y >= minYear && y <= maxYear
	})
	return v
}

// ValidateSchema checks field constraints and cross-record references.
// Returns a slice of all validation errors found.
func ValidateSchema(schema *Schema) []error {
	var errs []error

	if err := validate.Struct(schema); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{err}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	facultyIDs := make(map[int]bool, len(schema.Faculty))
	for i, f := range schema.Faculty {
		if f.ID <= 0 {
			continue
		}
		if facultyIDs[f.ID] {
			errs = append(errs, fmt.Errorf("faculty[%d].id: duplicate id %d", i, f.ID))
		}
		facultyIDs[f.ID] = true
	}

	for i, p := range schema.Publications {
		errs = append(errs, validateRefs(fmt.Sprintf("publications[%d]", i), p.FacultyIDs, facultyIDs)...)
	}

	projectIDs := make(map[int]bool, len(schema.Projects))
	for i, p := range schema.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if p.ID > 0 && projectIDs[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d", prefix, p.ID))
		}
		projectIDs[p.ID] = true
		errs = append(errs, validateRefs(prefix, p.FacultyIDs, facultyIDs)...)
	}

	patentIDs := make(map[int]bool, len(schema.Patents))
	for i, p := range schema.Patents {
		prefix := fmt.Sprintf("patents[%d]", i)
		if p.ID > 0 && patentIDs[p.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d", prefix, p.ID))
		}
		patentIDs[p.ID] = true
		errs = append(errs, validateRefs(prefix, p.FacultyIDs, facultyIDs)...)
	}

	for i, e := range schema.Events {
		errs = append(errs, validateRefs(fmt.Sprintf("events[%d]", i), e.FacultyIDs, facultyIDs)...)
	}

	return errs
}

func validateRefs(prefix string, ids []int, known map[int]bool) []error {
	var errs []error
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if !known[id] {
			errs = append(errs, fmt.Errorf("%s.faculty_ids: faculty %d not found", prefix, id))
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s.faculty_ids: faculty %d listed twice", prefix, id))
		}
		seen[id] = true
	}
	return errs
}

// fieldError renders a validator failure as "path: message" using the
// yaml path without the root struct name.
func fieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "notblank":
		return fmt.Errorf("%s cannot be blank", path)
	case "min":
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("must have at least %s item(s)", fe.Param())
		} else {
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "oneof":
		msg = fmt.Sprintf("invalid value %q (expected one of: %s)", fmt.Sprint(fe.Value()), fe.Param())
	case "year":
		msg = fmt.Sprintf("year %v out of range %d-%d", fe.Value(), minYear, maxYear)
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return fmt.Errorf("%s: %s", path, msg)
}

// Join wraps a list of validation errors into one ErrInvalidDataset error.
func Join(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataset, errors.Join(errs...))
}
