// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestFrom folds accents and collapses separators.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cámara Canon", "camara-canon"},
		{"Fotografía", "fotografia"},
		{"  Ñandú -- 2x1!! ", "nandu-2x1"},
		{"Heladera_No_Frost", "heladera-no-frost"},
		{"¡¿?!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.in))
		})
	}
}

/*
TestFrom_Truncates keeps long names within MaxLength without a trailing hyphen.
*/
func TestFrom_Truncates(t *testing.T) {
	out := From(strings.Repeat("abc ", 30))
	assert.LessOrEqual(t, len(out), MaxLength)
	assert.False(t, strings.HasSuffix(out, "-"))
}

/*
TestOr falls back when the name has no usable characters.
*/
func TestOr(t *testing.T) {
	assert.Equal(t, "producto", Or("???", "producto"))
	assert.Equal(t, "hogar", Or("Hogar", "categoria"))
}
