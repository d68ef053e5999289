package validation

import (
	"fmt"
	"strings"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/errors"
)

// FieldError is a single argument problem found during validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates argument problems across checks so a tool can
// report every bad field at once instead of stopping at the first.
type Validator struct {
	problems []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(field, message string) {
	v.problems = append(v.problems, FieldError{Field: field, Message: message})
}

// Required flags empty or whitespace-only values.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// Positive flags values that are not greater than zero. IDs, limits,
// and collector numbers all fall in this bucket.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.add(field, "must be positive")
	}
	return v
}

// Range flags values outside [minVal, maxVal].
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	if value < minVal || value > maxVal {
		v.add(field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
	}
	return v
}

// OneOf flags non-empty values outside the allowed set. Empty values
// pass so optional enum arguments can be omitted.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Custom flags a failed caller-supplied condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.add(field, message)
	}
	return v
}

// Errors returns the problems found so far.
func (v *Validator) Errors() []FieldError {
	return v.problems
}

// Validate folds the accumulated problems into a single INVALID_INPUT
// error, nil when everything passed.
func (v *Validator) Validate() error {
	if len(v.problems) == 0 {
		return nil
	}
	parts := make([]string, len(v.problems))
	for i, p := range v.problems {
		parts[i] = p.Field + " " + p.Message
	}
	return errors.InvalidInput(strings.Join(parts, "; "))
}

// Required validates a single required field.
func Required(field, value string) error {
	return New().Required(field, value).Validate()
}

// PositiveID validates a single required positive identifier.
func PositiveID(field string, value int) error {
	return New().Positive(field, value).Validate()
}
