// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package banner

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/losreyesdelusado/backend/internal/platform/database/schema"
	"github.com/losreyesdelusado/backend/internal/platform/dberr"
	"github.com/losreyesdelusado/backend/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a PostgreSQL implementation of [Repository].
func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var b = schema.Banner

func (repository *PostgresRepository) List(ctx context.Context) ([]*Banner, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s DESC, %s DESC`,
		b.ID, b.URL, b.FechaCreacion, b.Table, b.FechaCreacion, b.ID)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_banners")
	}
	defer rows.Close()

	banners := []*Banner{}
	for rows.Next() {
		item := &Banner{}
		if err := rows.Scan(&item.ID, &item.URL, &item.FechaCreacion); err != nil {
			return nil, dberr.Wrap(err, "scan_banner")
		}
		banners = append(banners, item)
	}
	return banners, dberr.Wrap(rows.Err(), "iterate_banners")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Banner, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		b.ID, b.URL, b.FechaCreacion, b.Table, b.ID)

	item := &Banner{}
	if err := repository.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.URL, &item.FechaCreacion); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound(id)
		}
		return nil, dberr.Wrap(err, "get_banner")
	}
	return item, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, url string) (*Banner, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s, %s, %s`,
		b.Table, b.URL, b.ID, b.URL, b.FechaCreacion)

	item := &Banner{}
	if err := repository.db.QueryRow(ctx, query, url).Scan(&item.ID, &item.URL, &item.FechaCreacion); err != nil {
		return nil, dberr.Wrap(err, "create_banner")
	}
	return item, nil
}

func (repository *PostgresRepository) Update(ctx context.Context, id int64, url string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, b.Table, b.URL, b.ID)

	tag, err := repository.db.Exec(ctx, query, id, url)
	if err != nil {
		return dberr.Wrap(err, "update_banner")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound(id)
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, b.Table, b.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_banner")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound(id)
	}
	return nil
}
