// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package account implements the users administration endpoints under /api/users.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Projection: [Account] is the only shape sent to clients. Password hashes
    and session tokens never leave the repository.
  - Authorization: route-level role checks live in the guard; the per-target
    rules (self-service edits, role escalation) live in [Service].
*/
package account

import (
	"context"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/users/auth"
)

// # Projections

// Account is the public view of a user row.
type Account struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	RoleValue      string     `json:"role_value"`
	ConnectedAt    *time.Time `json:"connected_at"`
	DisconnectedAt *time.Time `json:"disconnected_at"`
	CreatedAt      *time.Time `json:"created_at"`
}

func newAccount(user *auth.User) Account {
	return Account{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Role:           user.Role.DisplayName(),
		RoleValue:      string(user.Role),
		ConnectedAt:    user.ConnectedAt,
		DisconnectedAt: user.DisconnectedAt,
		CreatedAt:      user.CreatedAt,
	}
}

// Actor is the authenticated caller of an admin operation.
type Actor struct {
	ID   int64
	Role sec.Role
}

// Patch is a validated partial update. Nil fields are left untouched.
type Patch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	PasswordHash   *string
	Role           *sec.Role
	ConnectedAt    *time.Time
	DisconnectedAt *time.Time
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.PasswordHash == nil && p.Role == nil &&
		p.ConnectedAt == nil && p.DisconnectedAt == nil
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user administration.
type AccountRepository interface {
	// List returns every user ordered by id.
	List(ctx context.Context) ([]*auth.User, error)

	// FindByID returns [auth.ErrUserNotFound] when the id does not exist.
	FindByID(ctx context.Context, id int64) (*auth.User, error)

	// EmailTaken reports whether another user than exceptID owns email.
	// Pass exceptID 0 to check against every user.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)

	/*
		Create inserts a user and returns its id.

		Returns:
		  - int64: id assigned by the sequence
		  - error: apperr.Conflict on a duplicate email
	*/
	Create(ctx context.Context, user *auth.User) (int64, error)

	// Update applies a non-empty patch. A missing id gives [auth.ErrUserNotFound].
	Update(ctx context.Context, id int64, patch Patch) error

	// Delete removes the user. A missing id gives [auth.ErrUserNotFound].
	Delete(ctx context.Context, id int64) error
}

// # Messages

const (
	MsgEmailInUse     = "El email ya está en uso por otro usuario."
	MsgInvalidRole    = "Rol inválido."
	MsgNothingToPatch = "No hay campos para actualizar."
	MsgInvalidDate    = "Fecha inválida, se espera formato RFC3339."
	MsgEmptyName      = "El nombre no puede estar vacío."

	msgUpdated = "El usuario con id %d fue actualizado correctamente."
	msgDeleted = "El usuario con id %d fue eliminado correctamente."
)

// # Field Identifiers

const (
	FieldUsers          = "users"
	FieldRoleValue      = "role_value"
	FieldConnectedAt    = "connected_at"
	FieldDisconnectedAt = "disconnected_at"
	FieldID             = "id"
)

// maxNameLength bounds first_name and last_name.
const maxNameLength = 50

// errForbidden is returned for every per-target authorization failure.
var errForbidden = apperr.Forbidden(apperr.MsgAccessDenied)
