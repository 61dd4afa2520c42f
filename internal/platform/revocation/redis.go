// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package revocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/losreyesdelusado/backend/internal/platform/constants"
	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// RedisStore is a [Store] shared by every API instance.
//
// Key: auth:revoked:<fingerprint>. Value: expiry as unix seconds.
// TTL: expiry minus now.
type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisStore wraps client. A nil clock means [time.Now].
func NewRedisStore(client redis.Cmdable, now func() time.Time) *RedisStore {
	if now == nil {
		now = time.Now
	}
	return &RedisStore{client: client, now: now}
}

// Key returns the Redis key for token.
func Key(token string) string {
	return constants.RedisPrefixRevoked + sec.Fingerprint(token)
}

// Revoke implements [Store] with SET NX, so a second revocation keeps the first entry.
func (s *RedisStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	value := strconv.FormatInt(expiresAt.Unix(), 10)
	if err := s.client.SetNX(ctx, Key(token), value, ttl).Err(); err != nil {
		return fmt.Errorf("revocation: redis set failed: %w", err)
	}
	return nil
}

// IsRevoked implements [Store]. The stored expiry is compared again so a
// lagging key eviction never extends a revocation.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	raw, err := s.client.Get(ctx, Key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("revocation: redis get failed: %w", err)
	}

	expiresUnix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Unreadable value: the key exists, so treat the token as revoked.
		return true, nil
	}
	return s.now().Before(time.Unix(expiresUnix, 0)), nil
}
