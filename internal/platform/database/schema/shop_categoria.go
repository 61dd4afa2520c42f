// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package schema

// CategoriaTable represents the 'categorias' table
type CategoriaTable struct {
	Table         string
	ID            string
	Nombre        string
	FechaCreacion string
}

// Categoria is the schema definition for categorias
var Categoria = CategoriaTable{
	Table:         "categorias",
	ID:            "id_cat",
	Nombre:        "nombre",
	FechaCreacion: "fecha_creacion",
}

func (t CategoriaTable) Columns() []string {
	return []string{t.ID, t.Nombre, t.FechaCreacion}
}
