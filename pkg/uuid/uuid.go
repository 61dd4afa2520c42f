// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package uuid generates identifiers for request tracing and stored file names.

  - New: time-ordered UUIDv7, used for X-Request-ID.
  - ShortHex: 8 random hex characters, used as an upload name suffix.
*/
package uuid

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()
	// entropy failure is unrecoverable
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// ShortHex returns the first 8 hex characters of a random UUIDv4.
func ShortHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
