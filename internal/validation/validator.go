// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/tomtom215/mcutracker/internal/apperr"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError represents a single field validation error with structured information.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the JSON name of the field that failed validation.
func (e *ValidationError) Field() string {
	return e.field
}

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "100" for "max=100").
func (e *ValidationError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	return e.message
}

// RequestValidationError represents a collection of validation errors.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "Dados inválidos"
	}

	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, ", ")
}

// Details returns the per-field breakdown carried in the error envelope.
func (ve *RequestValidationError) Details() map[string]interface{} {
	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return map[string]interface{}{
			"field": err.field,
			"tag":   err.tag,
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
	}
	return map[string]interface{}{"fields": fields}
}

// Unwrap classifies the failure as apperr.Validation so the HTTP layer maps
// it to 400.
func (ve *RequestValidationError) Unwrap() error {
	return apperr.New(apperr.Validation, ve.Error())
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names so messages match the request body.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// notblank rejects strings that are empty after trimming.
		//nolint:errcheck // registration only fails for an empty tag
		validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError if validation fails.
//
// Example:
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondValidationError(w, r, verr)
//	    return
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// fieldLabels are the display names used in messages.
var fieldLabels = map[string]string{
	"name":         "Nome",
	"email":        "Email",
	"password":     "Senha",
	"watchedItems": "Lista de itens",
	"itemId":       "ID do item",
}

// fieldMessages override the generic template for specific field/tag pairs.
var fieldMessages = map[string]string{
	"name.max":              "Nome muito longo",
	"password.max":          "Senha muito longa",
	"watchedItems.max":      "Limite de itens excedido",
	"watchedItems.required": "Lista de itens é obrigatória",
	"itemId.required":       "ID do item é obrigatório",
	"itemId.notblank":       "ID do item é obrigatório",
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required": "%s é obrigatório",
	"notblank": "%s é obrigatório",
	"email":    "%s inválido",
	"url":      "%s deve ser uma URL válida",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s deve ser um de: %s",
	"gte":   "%s deve ser maior ou igual a %s",
	"lte":   "%s deve ser menor ou igual a %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if msg, ok := fieldMessages[field+"."+tag]; ok {
		return msg
	}

	label := field
	if l, ok := fieldLabels[field]; ok {
		label = l
	}

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, label)
	}

	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, label, param)
	}

	return translateMinMax(fe, label, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, label, tag, param string) string {
	kind := fe.Kind()
	isString := kind == reflect.String
	isList := kind == reflect.Slice || kind == reflect.Array

	switch {
	case tag == "min" && isString:
		return fmt.Sprintf("%s deve ter pelo menos %s caracteres", label, param)
	case tag == "max" && isString:
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", label, param)
	case tag == "max" && isList:
		return fmt.Sprintf("%s deve ter no máximo %s itens", label, param)
	case tag == "min":
		return fmt.Sprintf("%s deve ser no mínimo %s", label, param)
	case tag == "max":
		return fmt.Sprintf("%s deve ser no máximo %s", label, param)
	default:
		return fmt.Sprintf("%s falhou na validação %s", label, tag)
	}
}
