package fields

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Violation describes why one field value was rejected.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in a record.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the fields shown for values. Defaults are applied first, so
// a record with no publication type is validated as a book. Hidden fields are
// ignored even when they hold a value.
func (g Group) Validate(values Values) error {
	withDefaults := g.WithDefaults(values)

	var violations []Violation
	for _, f := range g.Fields {
		if !f.ConditionalLogic.Visible(withDefaults) {
			continue
		}
		if msg := f.check(withDefaults[f.Key]); msg != "" {
			violations = append(violations, Violation{Field: f.Key, Message: msg})
		}
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func (f Field) check(v Value) string {
	if v.Empty() {
		if f.Required {
			return fmt.Sprintf("%s is required", f.Label)
		}
		return ""
	}

	var (
		target any
		tag    string
	)
	switch f.Type {
	case TypeURL:
		target, tag = v.Text, "url"
	case TypeDatePicker:
		target, tag = v.Text, "datetime="+StoredDateLayout
	case TypeRadio:
		target, tag = v.Text, "oneof="+strings.Join(f.ChoiceValues(), " ")
	case TypeRelationship:
		target, tag = v.Refs, boundsTag(f.Min, f.Max)
	case TypeRepeater:
		target, tag = v.Rows, boundsTag(f.Min, f.Max)
	default:
		return ""
	}
	if tag == "" {
		return ""
	}

	err := validate.Var(target, tag)
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fmt.Sprintf("%s is invalid", f.Label)
	}

	e := errs[0]
	switch e.Tag() {
	case "url":
		return fmt.Sprintf("%s must be a valid URL", f.Label)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYYMMDD form", f.Label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f.Label, e.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", f.Label, e.Param())
	case "max":
		return fmt.Sprintf("%s allows at most %s entries", f.Label, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", f.Label)
	}
}

func boundsTag(min, max int) string {
	var parts []string
	if min > 0 {
		parts = append(parts, fmt.Sprintf("min=%d", min))
	}
	if max > 0 {
		parts = append(parts, fmt.Sprintf("max=%d", max))
	}
	return strings.Join(parts, ",")
}
