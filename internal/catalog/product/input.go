// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package product

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/losreyesdelusado/backend/internal/platform/validate"
	"github.com/losreyesdelusado/backend/pkg/convert"
	"github.com/losreyesdelusado/backend/pkg/pointer"
	"github.com/losreyesdelusado/backend/pkg/query"
	"github.com/losreyesdelusado/backend/pkg/slice"
)

// Text is an optional, nullable text field. Set without Value clears the column.
type Text struct {
	Set   bool
	Value *string
}

// Input is a create or update request after loose decoding. Absent fields
// are nil or unset.
type Input struct {
	Nombre          *string
	Descripcion     Text
	CategoriaID     *int64
	Stock           *int64
	Precio          *float64
	Marca           Text
	Modelo          Text
	Caracteristicas Text
	CodigoInterno   Text
	VideoURL        Text
	Favorito        *bool
	Activo          *bool

	// Imagenes replaces the image list when ImagenesSet.
	Imagenes    []string
	ImagenesSet bool

	// Update flags.
	ReplaceImages bool
	RemoveImages  []string
	KeepImages    []string
	KeepSet       bool
	RemoveVideo   bool

	// Multipart uploads.
	ImageFiles []*multipart.FileHeader
	VideoFile  *multipart.FileHeader
}

// Field aliases accepted from clients.
var (
	keysNombre          = []string{"nombre"}
	keysDescripcion     = []string{"descripcion"}
	keysCategoria       = []string{"id_categoria", "idCategoria"}
	keysStock           = []string{"stock"}
	keysPrecio          = []string{"precio"}
	keysMarca           = []string{"marca"}
	keysModelo          = []string{"modelo"}
	keysCaracteristicas = []string{"caracteristicas"}
	keysCodigoInterno   = []string{"codigo_interno", "codigoInterno"}
	keysImagenes        = []string{"imagen_principal", "imagenPrincipal", "imagenes"}
	keysVideoURL        = []string{"video_url", "videoUrl"}
	keysFavorito        = []string{"favorito"}
	keysActivo          = []string{"activo"}

	imageFileFields = []string{"imagenes", "imagenes[]", "images", "image"}
	videoFileFields = []string{"video", "video_file"}
)

/*
ParseInput decodes loosely typed values: JSON numbers or numeric strings,
booleans or form flags ("1", "on"), and lists as arrays, JSON text or CSV.

Returns a ValidationError listing every field with an unreadable value.
*/
func ParseInput(values map[string]any) (Input, error) {
	var input Input
	validator := &validate.Validator{}

	if raw, ok := lookup(values, keysNombre...); ok {
		input.Nombre = pointer.OrZero(asText(raw))
	}
	input.Descripcion = text(values, keysDescripcion)
	input.Marca = text(values, keysMarca)
	input.Modelo = text(values, keysModelo)
	input.Caracteristicas = text(values, keysCaracteristicas)
	input.CodigoInterno = text(values, keysCodigoInterno)
	input.VideoURL = text(values, keysVideoURL)

	if raw, ok := lookup(values, keysCategoria...); ok && raw != nil {
		id, valid := asInt(raw)
		validator.Custom(keysCategoria[0], !valid, MsgCategoriaRequired)
		input.CategoriaID = &id
	}
	if raw, ok := lookup(values, keysStock...); ok && raw != nil {
		stock, valid := asInt(raw)
		validator.Custom(keysStock[0], !valid, MsgInvalidNumber)
		input.Stock = &stock
	}
	if raw, ok := lookup(values, keysPrecio...); ok && raw != nil {
		precio, valid := asFloat(raw)
		validator.Custom(keysPrecio[0], !valid, MsgInvalidNumber)
		input.Precio = &precio
	}
	input.Favorito = flag(validator, values, keysFavorito)
	input.Activo = flag(validator, values, keysActivo)

	if raw, ok := lookup(values, keysImagenes...); ok {
		input.Imagenes = asList(raw)
		input.ImagenesSet = true
	}

	input.ReplaceImages = pointer.Val(flag(validator, values, []string{"replace_images"}))
	input.RemoveVideo = pointer.Val(flag(validator, values, []string{"remove_video"}))
	if raw, ok := lookup(values, "remove_images"); ok {
		input.RemoveImages = asList(raw)
	}
	if raw, ok := lookup(values, "keep_images"); ok {
		input.KeepImages = asList(raw)
		input.KeepSet = true
	}

	return input, validator.Err()
}

// FormValues flattens a multipart form. Repeated keys become lists and a
// trailing "[]" is dropped from key names.
func FormValues(form *multipart.Form) map[string]any {
	values := make(map[string]any, len(form.Value))
	for key, vals := range form.Value {
		key = strings.TrimSuffix(key, "[]")
		switch {
		case len(vals) == 1:
			if existing, ok := values[key]; ok {
				values[key] = append(asList(existing), vals[0])
			} else {
				values[key] = vals[0]
			}
		case len(vals) > 1:
			values[key] = slice.Map(vals, func(v string) any { return v })
		}
	}
	return values
}

// AttachFiles picks the image and video uploads of a multipart form.
func (input *Input) AttachFiles(form *multipart.Form) {
	for _, field := range imageFileFields {
		input.ImageFiles = append(input.ImageFiles, form.File[field]...)
	}
	for _, field := range videoFileFields {
		if files := form.File[field]; len(files) > 0 {
			input.VideoFile = files[0]
			return
		}
	}
}

// # Loose decoding

func lookup(values map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := values[key]; ok {
			return value, true
		}
	}
	return nil, false
}

func text(values map[string]any, keys []string) Text {
	raw, ok := lookup(values, keys...)
	if !ok {
		return Text{}
	}
	return Text{Set: true, Value: asText(raw)}
}

func flag(validator *validate.Validator, values map[string]any, keys []string) *bool {
	raw, ok := lookup(values, keys...)
	if !ok || raw == nil {
		return nil
	}
	value, valid := asBool(raw)
	validator.Custom(keys[0], !valid, MsgInvalidBool)
	return &value
}

// asText trims strings and maps "" and null to nil.
func asText(raw any) *string {
	var value string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		value = strings.TrimSpace(v)
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		value = strconv.FormatBool(v)
	default:
		return nil
	}
	if value == "" {
		return nil
	}
	return &value
}

func asInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case string:
		return convert.ParseInt64(v)
	}
	return 0, false
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		return convert.ParseFloat(v)
	}
	return 0, false
}

func asBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, v == 0 || v == 1
	case string:
		return convert.ParseBool(v)
	}
	return false, false
}

// asList accepts a JSON array, a JSON array encoded as text, or CSV.
func asList(raw any) []string {
	switch v := raw.(type) {
	case []any:
		var out []string
		for _, item := range v {
			if s := asText(item); s != nil {
				out = append(out, *s)
			}
		}
		return out
	case []string:
		return query.List(v)
	case string:
		return query.List([]string{v})
	}
	return nil
}
