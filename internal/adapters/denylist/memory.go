// Package denylist holds the process-wide credential revocation set.
package denylist

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory revocation set. Each entry carries the revoked
// credential's own expiry: once the credential would have expired anyway,
// the entry is dead weight and is dropped, so membership stays bounded by
// the number of outstanding unexpired revocations.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]time.Time)}
}

// Revoke records the jti until expiresAt. Revoking an already revoked jti
// leaves the set unchanged.
func (m *Memory) Revoke(jti string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[jti]; ok {
		return
	}
	m.entries[jti] = expiresAt
}

// IsRevoked reports whether the jti is in the set. Entries past their
// expiry are treated as absent; the credential itself is expired by then.
func (m *Memory) IsRevoked(jti string) bool {
	m.mu.RLock()
	expiresAt, ok := m.entries[jti]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return time.Now().Before(expiresAt)
}

// Sweep removes expired entries.
func (m *Memory) Sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for jti, expiresAt := range m.entries {
		if !now.Before(expiresAt) {
			delete(m.entries, jti)
		}
	}
}

// Run sweeps periodically until the context is cancelled.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
