// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/losreyesdelusado/backend/pkg/pagination"
	"github.com/losreyesdelusado/backend/pkg/pointer"
)

/*
TestBuildListQuery checks the WHERE clause, ordering and paging.
*/
func TestBuildListQuery(t *testing.T) {
	firstPage := pagination.Params{Page: 1, PerPage: 20}

	tests := []struct {
		name      string
		filter    Filter
		page      pagination.Params
		contains  []string
		suffix    string
		countArgs []any
		listArgs  []any
	}{
		{
			name:      "defaults",
			filter:    Filter{SortBy: "fecha_creacion", SortDir: "DESC"},
			page:      firstPage,
			suffix:    " FROM productos ORDER BY fecha_creacion DESC, id_producto DESC LIMIT $1 OFFSET $2",
			countArgs: []any{},
			listArgs:  []any{20, 0},
		},
		{
			name: "every_filter",
			filter: Filter{
				CategoryID: pointer.To(int64(3)),
				Search:     "50%_off",
				MinPrice:   pointer.To(10.0),
				MaxPrice:   pointer.To(99.5),
				InStock:    pointer.To(true),
				Brand:      "Sony",
				SortBy:     "precio",
				SortDir:    "ASC",
			},
			page: pagination.Params{Page: 3, PerPage: 10},
			contains: []string{
				"id_categoria = $1",
				"(nombre ILIKE $2 OR descripcion ILIKE $2)",
				"precio >= $3",
				"precio <= $4",
				"stock > 0",
				"marca ILIKE $5",
			},
			suffix:    " ORDER BY precio ASC, id_producto DESC LIMIT $6 OFFSET $7",
			countArgs: []any{int64(3), `%50\%\_off%`, 10.0, 99.5, "%Sony%"},
			listArgs:  []any{int64(3), `%50\%\_off%`, 10.0, 99.5, "%Sony%", 10, 20},
		},
		{
			name:      "out_of_stock_without_paging",
			filter:    Filter{InStock: pointer.To(false), SortBy: "id_producto", SortDir: "ASC"},
			page:      pagination.Params{Page: 1, All: true},
			contains:  []string{" WHERE stock = 0"},
			suffix:    " ORDER BY id_producto ASC",
			countArgs: []any{},
			listArgs:  []any{},
		},
		{
			name:      "unknown_sort_falls_back",
			filter:    Filter{SortBy: "1; DROP TABLE productos", SortDir: "sideways"},
			page:      firstPage,
			suffix:    " ORDER BY fecha_creacion DESC, id_producto DESC LIMIT $1 OFFSET $2",
			countArgs: []any{},
			listArgs:  []any{20, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := buildListQuery(tt.filter, tt.page)

			require.True(t, strings.HasPrefix(query.count, "SELECT COUNT(*) FROM productos"))
			assert.True(t, strings.HasSuffix(query.list, tt.suffix), query.list)
			for _, fragment := range tt.contains {
				assert.Contains(t, query.count, fragment)
				assert.Contains(t, query.list, fragment)
			}
			assert.NotContains(t, query.list, "DROP")
			assert.ElementsMatch(t, tt.countArgs, query.countArgs)
			assert.Equal(t, len(tt.listArgs), len(query.listArgs))
			if len(tt.listArgs) > 0 {
				assert.Equal(t, tt.listArgs, query.listArgs)
			}
		})
	}
}

/*
TestFilterFromQuery covers parsing and fallbacks of the list filters.
*/
func TestFilterFromQuery(t *testing.T) {
	filter := FilterFromQuery(url.Values{
		"category":  {"abc"},
		"search":    {"  cámara  "},
		"min_price": {"10,5"},
		"max_price": {"nope"},
		"in_stock":  {"0"},
		"sort_by":   {"DROP TABLE"},
		"sort_dir":  {"asc"},
	})

	assert.Nil(t, filter.CategoryID)
	assert.Equal(t, "cámara", filter.Search)
	require.NotNil(t, filter.MinPrice)
	assert.Equal(t, 10.5, *filter.MinPrice)
	assert.Nil(t, filter.MaxPrice)
	require.NotNil(t, filter.InStock)
	assert.False(t, *filter.InStock)
	assert.Equal(t, "fecha_creacion", filter.SortBy)
	assert.Equal(t, "ASC", filter.SortDir)

	assert.Equal(t, map[string]any{
		"search":    "cámara",
		"min_price": 10.5,
		"in_stock":  false,
		"sort_by":   "fecha_creacion",
		"sort_dir":  "ASC",
	}, filter.Applied())

	filter = FilterFromQuery(url.Values{"category": {"7"}, "sort_by": {"Precio"}})
	require.NotNil(t, filter.CategoryID)
	assert.Equal(t, int64(7), *filter.CategoryID)
	assert.Equal(t, "precio", filter.SortBy)
	assert.Equal(t, "DESC", filter.SortDir)
}
