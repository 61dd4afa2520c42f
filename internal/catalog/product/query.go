// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/losreyesdelusado/backend/internal/platform/database/schema"
	"github.com/losreyesdelusado/backend/pkg/convert"
	"github.com/losreyesdelusado/backend/pkg/pagination"
)

// Filter narrows GET /auth/productos. Zero values match everything.
type Filter struct {
	CategoryID *int64
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	Brand      string
	Model      string
	SortBy     string
	SortDir    string
}

var sortColumns = map[string]string{
	"fecha_creacion": schema.Producto.FechaCreacion,
	"precio":         schema.Producto.Precio,
	"id_producto":    schema.Producto.ID,
	"nombre":         schema.Producto.Nombre,
}

const (
	defaultSortBy  = "fecha_creacion"
	defaultSortDir = "DESC"
)

// FilterFromQuery reads the list filters. Malformed numbers and unknown sort
// keys fall back to no filter and the default order.
func FilterFromQuery(values url.Values) Filter {
	filter := Filter{
		Search:  strings.TrimSpace(values.Get("search")),
		Brand:   strings.TrimSpace(values.Get("brand")),
		Model:   strings.TrimSpace(values.Get("model")),
		SortBy:  defaultSortBy,
		SortDir: defaultSortDir,
	}

	if id, ok := convert.ParseInt64(values.Get("category")); ok && id > 0 {
		filter.CategoryID = &id
	}
	if price, ok := convert.ParseFloat(values.Get("min_price")); ok {
		filter.MinPrice = &price
	}
	if price, ok := convert.ParseFloat(values.Get("max_price")); ok {
		filter.MaxPrice = &price
	}
	if inStock, ok := convert.ParseBool(values.Get("in_stock")); ok {
		filter.InStock = &inStock
	}

	if sortBy := strings.ToLower(strings.TrimSpace(values.Get("sort_by"))); sortColumns[sortBy] != "" {
		filter.SortBy = sortBy
	}
	if strings.EqualFold(strings.TrimSpace(values.Get("sort_dir")), "ASC") {
		filter.SortDir = "ASC"
	}
	return filter
}

// Applied echoes the active filters in the list payload.
func (filter Filter) Applied() map[string]any {
	applied := map[string]any{
		"sort_by":  filter.SortBy,
		"sort_dir": filter.SortDir,
	}
	if filter.CategoryID != nil {
		applied["category"] = *filter.CategoryID
	}
	if filter.Search != "" {
		applied["search"] = filter.Search
	}
	if filter.MinPrice != nil {
		applied["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		applied["max_price"] = *filter.MaxPrice
	}
	if filter.InStock != nil {
		applied["in_stock"] = *filter.InStock
	}
	if filter.Brand != "" {
		applied["brand"] = filter.Brand
	}
	if filter.Model != "" {
		applied["model"] = filter.Model
	}
	return applied
}

// listQuery holds the count and page statements sharing one WHERE clause.
type listQuery struct {
	count     string
	countArgs []any
	list      string
	listArgs  []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func buildListQuery(filter Filter, page pagination.Params) listQuery {
	p := schema.Producto
	var (
		conditions []string
		args       []any
	)
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("%s = %s", p.CategoriaID, arg(*filter.CategoryID)))
	}
	if filter.Search != "" {
		pattern := arg("%" + likeEscaper.Replace(filter.Search) + "%")
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE %s OR %s ILIKE %s)",
			p.Nombre, pattern, p.Descripcion, pattern))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("%s >= %s", p.Precio, arg(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("%s <= %s", p.Precio, arg(*filter.MaxPrice)))
	}
	if filter.InStock != nil {
		if *filter.InStock {
			conditions = append(conditions, p.Stock+" > 0")
		} else {
			conditions = append(conditions, p.Stock+" = 0")
		}
	}
	if filter.Brand != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", p.Marca, arg("%"+likeEscaper.Replace(filter.Brand)+"%")))
	}
	if filter.Model != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", p.Modelo, arg("%"+likeEscaper.Replace(filter.Model)+"%")))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = sortColumns[defaultSortBy]
	}
	sortDir := defaultSortDir
	if filter.SortDir == "ASC" {
		sortDir = "ASC"
	}
	order := fmt.Sprintf(" ORDER BY %s %s", sortColumn, sortDir)
	if sortColumn != p.ID {
		order += fmt.Sprintf(", %s DESC", p.ID)
	}

	query := listQuery{
		count:     fmt.Sprintf("SELECT COUNT(*) FROM %s%s", p.Table, where),
		countArgs: append([]any{}, args...),
	}

	list := fmt.Sprintf("SELECT %s FROM %s%s%s", selectColumns(), p.Table, where, order)
	if !page.All {
		list += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(page.PerPage), arg(page.Offset()))
	}
	query.list = list
	query.listArgs = args
	return query
}
