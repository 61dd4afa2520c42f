// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package schema

// BannerTable represents the 'banners' table
type BannerTable struct {
	Table         string
	ID            string
	URL           string
	FechaCreacion string
}

// Banner is the schema definition for banners
var Banner = BannerTable{
	Table:         "banners",
	ID:            "id_banner",
	URL:           "banner",
	FechaCreacion: "fecha_creacion",
}

func (t BannerTable) Columns() []string {
	return []string{t.ID, t.URL, t.FechaCreacion}
}
