// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package schema

// ProductoTable represents the 'productos' table
type ProductoTable struct {
	Table              string
	ID                 string
	Nombre             string
	Descripcion        string
	CategoriaID        string
	Stock              string
	Precio             string
	Marca              string
	Modelo             string
	Caracteristicas    string
	CodigoInterno      string
	Imagenes           string
	VideoURL           string
	Favorito           string
	Activo             string
	FechaCreacion      string
	FechaActualizacion string
}

// Producto is the schema definition for productos
var Producto = ProductoTable{
	Table:              "productos",
	ID:                 "id_producto",
	Nombre:             "nombre",
	Descripcion:        "descripcion",
	CategoriaID:        "id_categoria",
	Stock:              "stock",
	Precio:             "precio",
	Marca:              "marca",
	Modelo:             "modelo",
	Caracteristicas:    "caracteristicas",
	CodigoInterno:      "codigo_interno",
	Imagenes:           "imagen_principal",
	VideoURL:           "video_url",
	Favorito:           "favorito",
	Activo:             "activo",
	FechaCreacion:      "fecha_creacion",
	FechaActualizacion: "fecha_actualizacion",
}

// Columns returns all standard column names
func (t ProductoTable) Columns() []string {
	return []string{
		t.ID, t.Nombre, t.Descripcion, t.CategoriaID, t.Stock, t.Precio,
		t.Marca, t.Modelo, t.Caracteristicas, t.CodigoInterno, t.Imagenes,
		t.VideoURL, t.Favorito, t.Activo, t.FechaCreacion, t.FechaActualizacion,
	}
}
