// Affinity - Cross-Media Recommendation Engine
// Copyright 2026 João P. Vasconcelos (jpvasconcelos)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jpvasconcelos/affinity

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton and translates its field errors into the API's error shape.
//
// Usage:
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    details := verr.Details()
//	    respondError(w, http.StatusBadRequest, models.ErrCodeValidation, verr.Error(), details)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed constraint on one struct field.
type FieldError struct {
	field   string
	tag     string
	param   string
	message string
}

// Field returns the name of the field that failed.
func (e FieldError) Field() string { return e.field }

// Tag returns the validator tag that failed, e.g. "min".
func (e FieldError) Tag() string { return e.tag }

// Param returns the tag parameter, e.g. "3" for "min=3".
func (e FieldError) Param() string { return e.param }

// Error returns the translated human-readable message.
func (e FieldError) Error() string { return e.message }

// RequestValidationError aggregates all field errors from one struct.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the individual field errors.
func (ve *RequestValidationError) Fields() []FieldError { return ve.fields }

// Error joins all field messages into one line.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.fields))
	for i, fe := range ve.fields {
		messages[i] = fe.message
	}
	return strings.Join(messages, "; ")
}

// Details returns a field→message map for the API error payload.
func (ve *RequestValidationError) Details() map[string]string {
	details := make(map[string]string, len(ve.fields))
	for _, fe := range ve.fields {
		details[fe.field] = fe.message
	}
	return details
}

// GetValidator returns the singleton validator. The instance caches struct
// metadata, so sharing one across goroutines is both safe and faster.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s and returns nil on success or a
// *RequestValidationError describing every failed field.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{fields: []FieldError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			message: translate(fe),
		}
	}
	return &RequestValidationError{fields: fields}
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be at least %s",
	"lte":      "%s must be at most %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tpl, ok := messageTemplates[tag]; ok {
		if strings.Contains(tpl, "%s must be") && param != "" {
			return fmt.Sprintf(tpl, field, param)
		}
		return fmt.Sprintf(tpl, field)
	}

	isString := fe.Kind().String() == "string"
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must contain at least %s items", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must contain at most %s items", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
