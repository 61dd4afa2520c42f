// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Classification relies on the SQLSTATE carried by [pgconn.PgError], never on
// driver message text.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
)

// ErrNotFound is returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Recurso no encontrado.")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	cause := fmt.Errorf("%s: %w", action, err)

	// 2. Constraint violations
	switch Code(err) {
	case pgerrcode.UniqueViolation:
		return apperr.Conflict("El recurso ya existe.").WithCause(cause)
	case pgerrcode.ForeignKeyViolation:
		return apperr.Conflict("El recurso está referenciado por otros registros.").WithCause(cause)
	case pgerrcode.InvalidTextRepresentation, pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return apperr.BadRequest("Datos inválidos.").WithCause(cause)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(cause)
}

// Code returns the SQLSTATE of err, or "" when err is not a Postgres error.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a 23505 on any constraint.
func IsUniqueViolation(err error) bool {
	return Code(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err is a 23503.
func IsForeignKeyViolation(err error) bool {
	return Code(err) == pgerrcode.ForeignKeyViolation
}

// ConstraintName returns the violated constraint, or "".
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
