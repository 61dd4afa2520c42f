// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package convert parses loosely typed values from query strings and form fields.

The To* helpers silence errors and fall back to a default. The Parse* helpers
report whether a value was present and well formed, for filters where "absent"
and "zero" mean different things.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt converts s to an int, returning 0 when it is empty or malformed.
func ToInt(s string) int {
	return ToIntD(s, 0)
}

// ToIntD converts s to an int, returning def when it is empty or malformed.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToBool reports whether s is a truthy flag: 1, true, yes, on, si.
func ToBool(s string) bool {
	v, ok := ParseBool(s)
	return ok && v
}

// ToFloat64 converts s to a float64, returning 0 when it is empty or malformed.
func ToFloat64(s string) float64 {
	v, _ := ParseFloat(s)
	return v
}

// ParseFloat accepts a decimal point or a decimal comma.
func ParseFloat(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInt64 parses a base-10 integer.
func ParseInt64(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseBool recognizes the common truthy and falsy spellings of HTML forms.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "si", "sí":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
