// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package auth implements the identity lifecycle of the shop: registration,
login, logout, account activation and password recovery.

It defines the credential entity and the projections returned to clients.
Storage is reached through [UserRepository]; tokens through [TokenCodec].
*/
package auth

import (
	"strings"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// # Domain Entities

// User is a row of the users table as seen by the auth flows.
type User struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	Role           sec.Role
	Token          string
	ConnectedAt    *time.Time
	DisconnectedAt *time.Time
	CreatedAt      *time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// claims builds the token payload for this user.
func (u *User) claims(ip string) sec.AuthClaims {
	return sec.AuthClaims{
		UserID:   u.ID,
		FullName: u.FullName(),
		Email:    u.Email,
		Role:     u.Role.DisplayName(),
		IP:       ip,
	}
}

// # Projections

// Session is returned by a successful login under the "user" key.
type Session struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RoleNumber int    `json:"role_number"`
	RoleValue  string `json:"role_value"`
	Token      string `json:"token"`
}

// Registered is returned by a successful registration under the "user" key.
type Registered struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	RoleValue string `json:"role_value"`
}

func newSession(user *User, token string) *Session {
	return &Session{
		ID:         user.ID,
		FullName:   user.FullName(),
		Email:      user.Email,
		Role:       user.Role.DisplayName(),
		RoleNumber: user.Role.Rank(),
		RoleValue:  string(user.Role),
		Token:      token,
	}
}

func newRegistered(user *User) *Registered {
	return &Registered{
		ID:        user.ID,
		Name:      user.FullName(),
		Email:     user.Email,
		Role:      user.Role.DisplayName(),
		RoleValue: string(user.Role),
	}
}

// # Field Identifiers

const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldToken     = "token"
	FieldUser      = "user"
)
