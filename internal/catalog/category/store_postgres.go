// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/losreyesdelusado/backend/internal/platform/apperr"
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

var (
	cat  = schema.Categoria
	prod = schema.Producto
)

func (repository *PostgresRepository) List(ctx context.Context) ([]*Categoria, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, COUNT(p.%s)
		FROM %s c
		LEFT JOIN %s p ON p.%s = c.%s
		GROUP BY c.%s, c.%s, c.%s
		ORDER BY c.%s ASC`,
		cat.ID, cat.Nombre, cat.FechaCreacion, prod.ID,
		cat.Table,
		prod.Table, prod.CategoriaID, cat.ID,
		cat.ID, cat.Nombre, cat.FechaCreacion,
		cat.Nombre,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categorias")
	}
	defer rows.Close()

	categorias := []*Categoria{}
	for rows.Next() {
		item := &Categoria{}
		var count int64
		if err := rows.Scan(&item.ID, &item.Nombre, &item.FechaCreacion, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_categoria")
		}
		item.Productos = &count
		categorias = append(categorias, item)
	}
	return categorias, dberr.Wrap(rows.Err(), "iterate_categorias")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Categoria, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		cat.ID, cat.Nombre, cat.FechaCreacion, cat.Table, cat.ID)

	item := &Categoria{}
	if err := repository.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Nombre, &item.FechaCreacion); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound(id)
		}
		return nil, dberr.Wrap(err, "get_categoria")
	}
	return item, nil
}

func (repository *PostgresRepository) NameTaken(ctx context.Context, nombre string, exceptID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE LOWER(%s) = LOWER($1) AND %s <> $2)`,
		cat.Table, cat.Nombre, cat.ID)

	var taken bool
	if err := repository.db.QueryRow(ctx, query, nombre, exceptID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "categoria_name_taken")
	}
	return taken, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, nombre string) (*Categoria, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s, %s, %s`,
		cat.Table, cat.Nombre, cat.ID, cat.Nombre, cat.FechaCreacion)

	item := &Categoria{}
	if err := repository.db.QueryRow(ctx, query, nombre).Scan(&item.ID, &item.Nombre, &item.FechaCreacion); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, ErrNameTaken(nombre).WithCause(err)
		}
		return nil, dberr.Wrap(err, "create_categoria")
	}
	return item, nil
}

func (repository *PostgresRepository) Rename(ctx context.Context, id int64, nombre string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, cat.Table, cat.Nombre, cat.ID)

	tag, err := repository.db.Exec(ctx, query, id, nombre)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrNameTaken(nombre).WithCause(err)
		}
		return dberr.Wrap(err, "rename_categoria")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound(id)
	}
	return nil
}

func (repository *PostgresRepository) CountProducts(ctx context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, prod.Table, prod.CategoriaID)

	var count int64
	if err := repository.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_productos_by_categoria")
	}
	return count, nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, cat.Table, cat.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.Conflict(MsgHasProducts).WithCause(err)
		}
		return dberr.Wrap(err, "delete_categoria")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound(id)
	}
	return nil
}
