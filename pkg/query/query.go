// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package query parses list-valued request parameters.
package query

import (
	"encoding/json"
	"strconv"
	"strings"
)

// IntSlice parses integers, ignoring malformed entries.
func IntSlice(vals []string) []int {
	var res []int
	for _, v := range vals {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			res = append(res, i)
		}
	}
	return res
}

// StringSlice splits a comma-separated value into trimmed, non-empty parts.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// List reads a form field that may hold a JSON array, a comma-separated
// string, or be repeated. Repeated values are flattened.
func List(vals []string) []string {
	var res []string
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var items []string
			if err := json.Unmarshal([]byte(v), &items); err == nil {
				for _, item := range items {
					if item = strings.TrimSpace(item); item != "" {
						res = append(res, item)
					}
				}
				continue
			}
		}
		res = append(res, StringSlice(v)...)
	}
	return res
}
