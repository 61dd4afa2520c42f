// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

// Package pointer builds and reads the optional fields of partial updates.
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// OrZero returns p, or a pointer to the zero value when p is nil.
// A required field sent as null then fails validation as empty.
func OrZero[T any](p *T) *T {
	if p == nil {
		return new(T)
	}
	return p
}
