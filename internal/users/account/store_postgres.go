// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
	"github.com/losreyesdelusado/backend/internal/platform/database/schema"
	"github.com/losreyesdelusado/backend/internal/platform/dberr"
	"github.com/losreyesdelusado/backend/internal/platform/postgres"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
	"github.com/losreyesdelusado/backend/internal/users/auth"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	db postgres.DB
}

// NewAccountRepository creates a PostgreSQL implementation of [AccountRepository].
func NewAccountRepository(db postgres.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

var cols = schema.User

var selectAccount = fmt.Sprintf(`
	SELECT %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s, %s, %s
	FROM %s`,
	cols.ID, cols.FirstName, cols.LastName, cols.Email, cols.Role,
	cols.ConnectedAt, cols.DisconnectedAt, cols.CreatedAt,
	cols.Table,
)

func scanAccount(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	var role string
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&role,
		&user.ConnectedAt,
		&user.DisconnectedAt,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = sec.ParseRole(role)
	return user, nil
}

func (repository *PostgresAccountRepository) List(ctx context.Context) ([]*auth.User, error) {
	rows, err := repository.db.Query(ctx, selectAccount+" ORDER BY "+cols.ID+" ASC")
	if err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_account_repo_list_rows_failed: %w", err)
	}
	return users, nil
}

func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	query := selectAccount + fmt.Sprintf(" WHERE %s = $1", cols.ID)

	user, err := scanAccount(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}
	return user, nil
}

func (repository *PostgresAccountRepository) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE LOWER(%s) = LOWER($1) AND %s <> $2)`,
		cols.Table, cols.Email, cols.ID)

	var taken bool
	if err := repository.db.QueryRow(ctx, query, strings.TrimSpace(email), exceptID).Scan(&taken); err != nil {
		return false, fmt.Errorf("postgres_account_repo_email_taken_failed: %w", err)
	}
	return taken, nil
}

func (repository *PostgresAccountRepository) Create(ctx context.Context, user *auth.User) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5, NOW())
		RETURNING %s`,
		cols.Table, cols.FirstName, cols.LastName, cols.Email, cols.Password, cols.Role, cols.CreatedAt,
		cols.ID,
	)

	var id int64
	err := repository.db.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, string(user.Role),
	).Scan(&id)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return 0, apperr.Conflict(MsgEmailInUse).WithCause(err)
		}
		return 0, fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}
	return id, nil
}

/*
Update builds the SET clause from the non-nil patch fields.

Column names come from the schema package only; values are always bound.
*/
func (repository *PostgresAccountRepository) Update(ctx context.Context, id int64, patch Patch) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FirstName != nil {
		set(cols.FirstName, *patch.FirstName)
	}
	if patch.LastName != nil {
		set(cols.LastName, *patch.LastName)
	}
	if patch.Email != nil {
		set(cols.Email, *patch.Email)
	}
	if patch.PasswordHash != nil {
		set(cols.Password, *patch.PasswordHash)
	}
	if patch.Role != nil {
		set(cols.Role, string(*patch.Role))
	}
	if patch.ConnectedAt != nil {
		set(cols.ConnectedAt, *patch.ConnectedAt)
	}
	if patch.DisconnectedAt != nil {
		set(cols.DisconnectedAt, *patch.DisconnectedAt)
	}
	if len(sets) == 0 {
		return apperr.BadRequest(MsgNothingToPatch)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		cols.Table, strings.Join(sets, ", "), cols.ID, len(args))

	tag, err := repository.db.Exec(ctx, query, args...)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(MsgEmailInUse).WithCause(err)
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// Delete locks the row, then removes it, in one transaction.
func (repository *PostgresAccountRepository) Delete(ctx context.Context, id int64) error {
	return postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		lock := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, cols.ID, cols.Table, cols.ID)

		var found int64
		if err := tx.QueryRow(ctx, lock, id).Scan(&found); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return auth.ErrUserNotFound
			}
			return fmt.Errorf("postgres_account_repo_delete_lock_failed: %w", err)
		}

		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, cols.Table, cols.ID), id); err != nil {
			return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
		}
		return nil
	})
}
