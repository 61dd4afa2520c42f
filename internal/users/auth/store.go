// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package auth

import (
	"context"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// ErrUserNotFound is returned by every lookup that matches no row.
var ErrUserNotFound = apperr.NotFound(MsgUserNotFound)

// # User Data Access

// UserRepository defines the credential store used by the auth flows.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: hydrated entity, including the password hash
		  - error: ErrUserNotFound or storage failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the account with the given id, or ErrUserNotFound.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByToken returns the account whose stored token equals token, or ErrUserNotFound.
	FindByToken(ctx context.Context, token string) (*User, error)

	// FindRole returns only the role column. Used by the guard on every private request.
	FindRole(ctx context.Context, id int64) (sec.Role, error)

	/*
		Create inserts a new account and returns the generated id.

		Returns:
		  - int64: the id from RETURNING
		  - error: apperr.Conflict on duplicate email, or storage failures
	*/
	Create(ctx context.Context, user *User) (int64, error)

	// SetToken overwrites the stored session token. An empty token stores NULL.
	SetToken(ctx context.Context, id int64, token string) error

	// MarkConnected stamps connected_at.
	MarkConnected(ctx context.Context, id int64, at time.Time) error

	// ClearToken nulls the token and stamps disconnected_at on the row holding
	// token. It reports whether a row matched.
	ClearToken(ctx context.Context, token string, at time.Time) (bool, error)

	// UpdatePassword replaces only the password hash.
	UpdatePassword(ctx context.Context, id int64, hash string) error
}
