// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package schema holds table and column names for hand-written SQL.
package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table          string
	ID             string
	FirstName      string
	LastName       string
	Email          string
	Password       string
	Role           string
	Token          string
	ConnectedAt    string
	DisconnectedAt string
	CreatedAt      string
}

// User is the schema definition for users
var User = UserTable{
	Table:          "users",
	ID:             "id",
	FirstName:      "first_name",
	LastName:       "last_name",
	Email:          "email",
	Password:       "password",
	Role:           "role",
	Token:          "token",
	ConnectedAt:    "connected_at",
	DisconnectedAt: "disconnected_at",
	CreatedAt:      "created_at",
}

// Columns returns every column except the password hash and token.
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.FirstName, t.LastName, t.Email, t.Role,
		t.ConnectedAt, t.DisconnectedAt, t.CreatedAt,
	}
}
