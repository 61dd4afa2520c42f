// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer, never in storage. It ensures that
// business logic only operates on semantically valid data. Messages are
// client-facing and written in Spanish.
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
)

// MsgValidation is the summary message of every validation error.
const MsgValidation = "Datos inválidos."

var (
	// NamePattern matches person names: Spanish letters, spaces, hyphens, apostrophes and dots.
	NamePattern = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s\-'.]{2,50}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest(apperr.MsgInvalidJSON)
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "Este campo es obligatorio.")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Máximo %d caracteres.", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Mínimo %d caracteres.", min))
	}
	return v
}

// Min fails if value is below min.
func (v *Validator) Min(field string, value, min float64) *Validator {
	if value < min {
		v.add(field, fmt.Sprintf("Debe ser mayor o igual a %g.", min))
	}
	return v
}

// Positive fails unless value > 0.
func (v *Validator) Positive(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, "Debe ser un número entero positivo.")
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address.
//
// Display-name forms such as "Juan <juan@example.com>" are rejected.
func (v *Validator) Email(field, value string) *Validator {
	if !IsEmail(value) {
		v.add(field, "El email no es válido.")
	}
	return v
}

// Pattern fails if value does not match re.
func (v *Validator) Pattern(field, value string, re *regexp.Regexp, message string) *Validator {
	if !re.MatchString(value) {
		v.add(field, message)
	}
	return v
}

// URL fails unless value is an absolute http or https URL.
func (v *Validator) URL(field, value string) *Validator {
	if !IsHTTPURL(value) {
		v.add(field, "Debe ser una URL http o https válida.")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Debe ser uno de: %s.", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("stock", stock < 0, "El stock no puede ser negativo.")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(MsgValidation, v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldError is a shortcut to create a single-field validation error.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError(MsgValidation, apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

// IsEmail reports whether value is a bare email address.
func IsEmail(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return at > 0 && strings.Contains(value[at+1:], ".")
}

// IsHTTPURL reports whether value is an absolute http(s) URL with a host.
func IsHTTPURL(value string) bool {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
