// Copyright (c) 2026 Los Reyes del Usado. All rights reserved.
// Author: Los Reyes del Usado Engineering

package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/losreyesdelusado/backend/internal/platform/sec"
)

// MemoryStore is an in-process [Store].
//
// Every call runs read, prune, write under one mutex.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore returns an empty store. A nil clock means [time.Now].
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

// Revoke implements [Store]. Entries already past expiresAt are not stored.
func (s *MemoryStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	fingerprint := sec.Fingerprint(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	if !now.Before(expiresAt) {
		return nil
	}
	if current, ok := s.entries[fingerprint]; ok && !current.Before(expiresAt) {
		return nil
	}
	s.entries[fingerprint] = expiresAt
	return nil
}

// IsRevoked implements [Store].
func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	fingerprint := sec.Fingerprint(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	expiresAt, ok := s.entries[fingerprint]
	return ok && now.Before(expiresAt), nil
}

// Len returns the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	return len(s.entries)
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	for fingerprint, expiresAt := range s.entries {
		if !now.Before(expiresAt) {
			delete(s.entries, fingerprint)
		}
	}
}
