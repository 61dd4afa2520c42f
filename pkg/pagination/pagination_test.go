// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestFromRequest checks defaults, clamping and the "all" switch.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, PerPage: DefaultPerPage}},
		{"explicit", "?page=3&per_page=10", Params{Page: 3, PerPage: 10}},
		{"clamped", "?per_page=500", Params{Page: 1, PerPage: MaxPerPage}},
		{"garbage", "?page=x&per_page=-4", Params{Page: 1, PerPage: DefaultPerPage}},
		{"all", "?page=2&per_page=ALL", Params{Page: 1, All: true}},
		{"zero_means_all", "?per_page=0", Params{Page: 1, All: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromRequest(httptest.NewRequest("GET", "/auth/productos"+tt.query, nil)))
		})
	}
}

/*
TestNewMeta checks offsets and page counts.
*/
func TestNewMeta(t *testing.T) {
	params := Params{Page: 3, PerPage: 10}
	assert.Equal(t, 20, params.Offset())
	assert.Equal(t, Meta{Page: 3, PerPage: 10, Total: 21, TotalPages: 3}, NewMeta(params, 21))

	all := Params{Page: 1, All: true}
	assert.Equal(t, 0, all.Offset())
	assert.Equal(t, Meta{Page: 1, PerPage: 7, Total: 7, TotalPages: 1}, NewMeta(all, 7))
	assert.Equal(t, 0, NewMeta(all, 0).TotalPages)
}
