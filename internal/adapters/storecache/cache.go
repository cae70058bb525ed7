// Package storecache wraps a ports.LedgerStore with a short-lived read cache.
// The cache exists to bound read load on the remote table; it is an explicit
// object owned by whoever wires the store, never package-global state.
package storecache

import (
	"context"
	"sync"
	"time"

	"skinledger/internal/domain"
	"skinledger/internal/ports"
)

// DefaultTTL bounds how stale a cached read may be.
const DefaultTTL = 60 * time.Second

// Store caches ReadAll results for a fixed interval and invalidates on every
// successful write. A failed write leaves the cache untouched, so cached
// content only ever reflects confirmed store state.
type Store struct {
	inner ports.LedgerStore
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	records   []*domain.TradeRecord
	fetchedAt time.Time
}

// New wraps the given store. A non-positive ttl falls back to DefaultTTL.
func New(inner ports.LedgerStore, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{inner: inner, ttl: ttl, now: time.Now}
}

// ReadAll serves the cached row set while it is fresh, otherwise reads
// through to the underlying store. A read-through failure is returned as-is
// and does not clear previously cached content.
func (s *Store) ReadAll(ctx context.Context) ([]*domain.TradeRecord, error) {
	s.mu.RLock()
	if s.records != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		cached := make([]*domain.TradeRecord, len(s.records))
		copy(cached, s.records)
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	records, err := s.inner.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.records = records
	s.fetchedAt = s.now()
	s.mu.Unlock()

	out := make([]*domain.TradeRecord, len(records))
	copy(out, records)
	return out, nil
}

// Append writes through to the underlying store and drops the cache on success.
func (s *Store) Append(ctx context.Context, rec *domain.TradeRecord) error {
	if err := s.inner.Append(ctx, rec); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// UpdateDisposition writes through to the underlying store and drops the
// cache on success.
func (s *Store) UpdateDisposition(ctx context.Context, tradeID string, d domain.Disposition) error {
	if err := s.inner.UpdateDisposition(ctx, tradeID, d); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// Invalidate drops the cached row set; the next ReadAll refetches.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.records = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}
