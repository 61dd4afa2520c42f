// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Pages are requested with "page" and "per_page". A per_page of "all" or 0
// disables paging and returns the whole result set.
package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 20
	// MaxPerPage is the upper bound for items per page.
	MaxPerPage = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and page size of a request.
type Params struct {
	Page    int
	PerPage int
	// All disables LIMIT/OFFSET.
	All bool
}

// Offset returns the SQL OFFSET value derived from Page and PerPage.
func (p Params) Offset() int {
	if p.All || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta builds the response metadata for total matching rows.
//
// Without paging the whole set is a single page.
func NewMeta(p Params, total int) Meta {
	if p.All {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Meta{Page: 1, PerPage: total, Total: total, TotalPages: pages}
	}

	return Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: (total + p.PerPage - 1) / p.PerPage,
	}
}

// FromRequest parses "page" and "per_page" from the query string.
//
// # Clamping
//
// A missing or malformed page is 1. A missing or malformed per_page is
// [DefaultPerPage]; anything above [MaxPerPage] is clamped to it.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	page := parseInt(query.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	rawPerPage := strings.TrimSpace(query.Get("per_page"))
	if strings.EqualFold(rawPerPage, "all") || rawPerPage == "0" {
		return Params{Page: DefaultPage, All: true}
	}

	perPage := parseInt(rawPerPage, DefaultPerPage)
	switch {
	case perPage < 1:
		perPage = DefaultPerPage
	case perPage > MaxPerPage:
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
