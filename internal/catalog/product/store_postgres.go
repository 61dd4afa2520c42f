// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/losreyesdelusado/backend/internal/platform/database/schema"
	"github.com/losreyesdelusado/backend/internal/platform/dberr"
	"github.com/losreyesdelusado/backend/internal/platform/postgres"
	"github.com/losreyesdelusado/backend/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewRepository creates a PostgreSQL implementation of [Repository].
func NewRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	prod = schema.Producto
	cat  = schema.Categoria
)

// selectColumns reads imagen_principal as an empty array when null.
func selectColumns() string {
	columns := prod.Columns()
	out := make([]string, len(columns))
	for i, column := range columns {
		if column == prod.Imagenes {
			column = fmt.Sprintf("COALESCE(%s, '[]'::jsonb)", prod.Imagenes)
		}
		out[i] = column
	}
	return strings.Join(out, ", ")
}

func scanProducto(row pgx.Row) (*Producto, error) {
	item := &Producto{}
	err := row.Scan(
		&item.ID, &item.Nombre, &item.Descripcion, &item.CategoriaID, &item.Stock, &item.Precio,
		&item.Marca, &item.Modelo, &item.Caracteristicas, &item.CodigoInterno, &item.Imagenes,
		&item.VideoURL, &item.Favorito, &item.Activo, &item.FechaCreacion, &item.FechaActualizacion,
	)
	if item.Imagenes == nil {
		item.Imagenes = []string{}
	}
	return item, err
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Producto, int, error) {
	query := buildListQuery(filter, page)

	var total int
	if err := repository.db.QueryRow(ctx, query.count, query.countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_productos")
	}

	rows, err := repository.db.Query(ctx, query.list, query.listArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_productos")
	}
	defer rows.Close()

	items := []*Producto{}
	for rows.Next() {
		item, err := scanProducto(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_producto")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_productos")
	}
	return items, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Producto, error) {
	return findByID(ctx, repository.db, id, "")
}

func findByID(ctx context.Context, db postgres.Querier, id int64, lock string) (*Producto, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1%s`, selectColumns(), prod.Table, prod.ID, lock)

	item, err := scanProducto(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound(id)
		}
		return nil, dberr.Wrap(err, "get_producto")
	}
	return item, nil
}

// lockCategoria keeps the category from being deleted until the transaction ends.
func lockCategoria(ctx context.Context, tx pgx.Tx, id int64) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR SHARE`, cat.Table, cat.ID)

	var one int
	if err := tx.QueryRow(ctx, query, id).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnknownCategoria(id)
		}
		return dberr.Wrap(err, "lock_categoria")
	}
	return nil
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	return string(encoded), err
}

func (repository *PostgresRepository) Create(ctx context.Context, p *Producto) error {
	images, err := encodeImages(p.Imagenes)
	if err != nil {
		return fmt.Errorf("encode_imagenes: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11, $12, $13)
		RETURNING %s, %s, %s`,
		prod.Table,
		prod.Nombre, prod.Descripcion, prod.CategoriaID, prod.Stock, prod.Precio,
		prod.Marca, prod.Modelo, prod.Caracteristicas, prod.CodigoInterno, prod.Imagenes,
		prod.VideoURL, prod.Favorito, prod.Activo,
		prod.ID, prod.FechaCreacion, prod.FechaActualizacion,
	)

	return postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := lockCategoria(ctx, tx, p.CategoriaID); err != nil {
			return err
		}
		err := tx.QueryRow(ctx, query,
			p.Nombre, p.Descripcion, p.CategoriaID, p.Stock, p.Precio,
			p.Marca, p.Modelo, p.Caracteristicas, p.CodigoInterno, images,
			p.VideoURL, p.Favorito, p.Activo,
		).Scan(&p.ID, &p.FechaCreacion, &p.FechaActualizacion)
		if err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return ErrUnknownCategoria(p.CategoriaID).WithCause(err)
			}
			return dberr.Wrap(err, "create_producto")
		}
		return nil
	})
}

func (repository *PostgresRepository) Update(ctx context.Context, p *Producto) error {
	images, err := encodeImages(p.Imagenes)
	if err != nil {
		return fmt.Errorf("encode_imagenes: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11::jsonb, %s = $12, %s = $13, %s = $14,
			%s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		prod.Table,
		prod.Nombre, prod.Descripcion, prod.CategoriaID, prod.Stock, prod.Precio, prod.Marca, prod.Modelo,
		prod.Caracteristicas, prod.CodigoInterno, prod.Imagenes, prod.VideoURL, prod.Favorito, prod.Activo,
		prod.FechaActualizacion,
		prod.ID,
		prod.FechaActualizacion,
	)

	return postgres.WithTx(ctx, repository.db, func(tx pgx.Tx) error {
		if _, err := findByID(ctx, tx, p.ID, " FOR UPDATE"); err != nil {
			return err
		}
		if err := lockCategoria(ctx, tx, p.CategoriaID); err != nil {
			return err
		}
		err := tx.QueryRow(ctx, query,
			p.ID, p.Nombre, p.Descripcion, p.CategoriaID, p.Stock, p.Precio, p.Marca, p.Modelo,
			p.Caracteristicas, p.CodigoInterno, images, p.VideoURL, p.Favorito, p.Activo,
		).Scan(&p.FechaActualizacion)
		if err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return ErrUnknownCategoria(p.CategoriaID).WithCause(err)
			}
			return dberr.Wrap(err, "update_producto")
		}
		return nil
	})
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, prod.Table, prod.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_producto")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound(id)
	}
	return nil
}
