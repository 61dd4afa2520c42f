// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package apperr defines the centralized error type of the backend.

It bridges low-level domain and storage errors with the HTTP error envelope:

  - AppError: machine-readable Code, client-safe Message, HTTP status.
  - Details: per-field validation failures rendered as a message object.
  - Cause: the wrapped error, logged server-side and never serialized.

Every error that leaves the service layer should be an [AppError] or wrap one.
Anything else is reported to the client as a generic 500.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-facing messages shared by several packages.
const (
	MsgInternal         = "Error interno del servidor."
	MsgNotFound         = "Ruta no encontrada."
	MsgMethodNotAllowed = "Método no permitido."
	MsgInvalidID        = "El ID debe ser un número entero positivo."
	MsgUnauthorized     = "Acceso no autorizado, o Token inválido."
	MsgTokenRejected    = "Token inválido o revocado."
	MsgAccessDenied     = "Acceso denegado. No tienes permiso para realizar esta acción."
	MsgInvalidJSON      = "El cuerpo de la solicitud no es un JSON válido."
)

// AppError is the canonical error type of the API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (SQL, driver messages).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"-"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"code"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e carrying cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError] for malformed or missing input.
func BadRequest(msg string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Unauthorized creates a 401 [AppError]: no credential or an unreadable one.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError]: credential present but insufficient,
// invalid, revoked or expired.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError].
//
// Example:
//
//	apperr.NotFound("Usuario no encontrado.")
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// MethodNotAllowed creates a 405 [AppError] for a known path hit with the wrong verb.
func MethodNotAllowed() *AppError {
	return &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    MsgMethodNotAllowed,
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Demasiadas solicitudes. Intenta de nuevo en %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError].
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// StatusOf returns the HTTP status carried by err, or 500 for foreign errors.
func StatusOf(err error) int {
	if ae := As(err); ae != nil {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}
