// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/database/schema"
	"github.com/losreyesdelusado/backend/internal/platform/dberr"
	"github.com/losreyesdelusado/backend/internal/platform/postgres"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db postgres.Querier
}

// NewUserRepository creates a PostgreSQL implementation of [UserRepository].
func NewUserRepository(db postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var cols = schema.User

// selectUser projects every column the auth flows need. Nullable text is
// coalesced so it scans into plain strings.
var selectUser = fmt.Sprintf(`
	SELECT %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s, COALESCE(%s, ''), %s, %s, %s
	FROM %s`,
	cols.ID, cols.FirstName, cols.LastName, cols.Email, cols.Password, cols.Role, cols.Token,
	cols.ConnectedAt, cols.DisconnectedAt, cols.CreatedAt,
	cols.Table,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.Token,
		&user.ConnectedAt,
		&user.DisconnectedAt,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = sec.ParseRole(role)
	return user, nil
}

func (repository *PostgresUserRepository) findOne(ctx context.Context, action, column string, arg any) (*User, error) {
	query := selectUser + fmt.Sprintf(" WHERE %s = $1 LIMIT 1", column)

	user, err := scanUser(repository.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", action, err)
	}
	return user, nil
}

// FindByEmail matches the email case-insensitively.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, "find_by_email", "LOWER("+cols.Email+")", strings.ToLower(strings.TrimSpace(email)))
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return repository.findOne(ctx, "find_by_id", cols.ID, id)
}

func (repository *PostgresUserRepository) FindByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUserNotFound
	}
	return repository.findOne(ctx, "find_by_token", cols.Token, token)
}

// FindRole satisfies the guard's role loader.
func (repository *PostgresUserRepository) FindRole(ctx context.Context, id int64) (sec.Role, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, cols.Role, cols.Table, cols.ID)

	var role string
	if err := repository.db.QueryRow(ctx, query, id).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("postgres_user_repo_find_role_failed: %w", err)
	}
	return sec.ParseRole(role), nil
}

/*
Create inserts the account and returns the id assigned by the sequence.

The unique index on email is the authoritative duplicate check: a 23505 is
reported as a Conflict even when a concurrent registration won the race.
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5, NOW())
		RETURNING %s`,
		cols.Table, cols.FirstName, cols.LastName, cols.Email, cols.Password, cols.Role, cols.CreatedAt,
		cols.ID,
	)

	var id int64
	err := repository.db.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		string(user.Role),
	).Scan(&id)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return 0, apperr.Conflict(MsgEmailTaken).WithCause(err)
		}
		return 0, fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return id, nil
}

func (repository *PostgresUserRepository) SetToken(ctx context.Context, id int64, token string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULLIF($2, '') WHERE %s = $1`, cols.Table, cols.Token, cols.ID)
	return repository.exec(ctx, "set_token", query, id, token)
}

func (repository *PostgresUserRepository) MarkConnected(ctx context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, cols.Table, cols.ConnectedAt, cols.ID)
	return repository.exec(ctx, "mark_connected", query, id, at)
}

func (repository *PostgresUserRepository) ClearToken(ctx context.Context, token string, at time.Time) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL, %s = $2 WHERE %s = $1`,
		cols.Table, cols.Token, cols.DisconnectedAt, cols.Token)

	tag, err := repository.db.Exec(ctx, query, token, at)
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_clear_token_failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, cols.Table, cols.Password, cols.ID)
	return repository.exec(ctx, "update_password", query, id, hash)
}

// exec runs a single-row update and reports ErrUserNotFound when nothing matched.
func (repository *PostgresUserRepository) exec(ctx context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_%s_failed: %w", action, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
