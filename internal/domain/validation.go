package domain

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every rejected field of an input. A calculation
// never runs when Validate returns a non-nil ValidationErrors.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Fields returns the names of the rejected fields in order.
func (errs ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

// validator accumulates field errors while an input is checked.
type validator struct {
	errs ValidationErrors
}

func (v *validator) add(field, message string) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: message})
}

// rangeCheck rejects NaN and values outside [min, max] with the matching message.
func (v *validator) rangeCheck(field string, value, min, max float64, minMsg, maxMsg string) {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		v.add(field, "valor numérico inválido")
	case value < min:
		v.add(field, minMsg)
	case value > max:
		v.add(field, maxMsg)
	}
}

func (v *validator) intRange(field string, value, min, max int, minMsg, maxMsg string) {
	switch {
	case value < min:
		v.add(field, minMsg)
	case value > max:
		v.add(field, maxMsg)
	}
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}
