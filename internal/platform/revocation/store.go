// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

/*
Package revocation keeps the list of bearer tokens invalidated before their
natural expiry.

Only a one-way fingerprint of each token is stored ([sec.Fingerprint]),
mapped to the token's own expiry. An entry is revoked while now < expiry and
inert afterwards. Two implementations exist:

  - [RedisStore]: shared by every instance, expiry enforced by key TTL.
  - [MemoryStore]: single process, stale entries pruned lazily on access.
*/
package revocation

import (
	"context"
	"time"
)

// Store records and answers revocations.
type Store interface {
	// Revoke marks token as revoked until expiresAt. Revoking an already
	// revoked token never shortens its entry.
	Revoke(ctx context.Context, token string, expiresAt time.Time) error

	// IsRevoked reports whether token is revoked right now.
	IsRevoked(ctx context.Context, token string) (bool, error)
}
