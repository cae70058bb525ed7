package storecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinledger/internal/domain"
)

// countingStore is a fake LedgerStore that records how often it is hit.
type countingStore struct {
	records   []*domain.TradeRecord
	readCalls int
	appendErr error
	updateErr error
}

func (c *countingStore) ReadAll(ctx context.Context) ([]*domain.TradeRecord, error) {
	c.readCalls++
	return c.records, nil
}

func (c *countingStore) Append(ctx context.Context, rec *domain.TradeRecord) error {
	if c.appendErr != nil {
		return c.appendErr
	}
	c.records = append(c.records, rec)
	return nil
}

func (c *countingStore) UpdateDisposition(ctx context.Context, tradeID string, d domain.Disposition) error {
	return c.updateErr
}

func TestReadAllCachesWithinTTL(t *testing.T) {
	inner := &countingStore{records: []*domain.TradeRecord{{TradeID: "T-1"}}}
	s := New(inner, time.Minute)

	ctx := context.Background()
	first, err := s.ReadAll(ctx)
	require.NoError(t, err)
	second, err := s.ReadAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.readCalls, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestReadAllRefetchesAfterTTL(t *testing.T) {
	inner := &countingStore{records: []*domain.TradeRecord{{TradeID: "T-1"}}}
	s := New(inner, time.Minute)

	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	ctx := context.Background()
	_, err := s.ReadAll(ctx)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = s.ReadAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.readCalls)
}

func TestSuccessfulWriteInvalidates(t *testing.T) {
	inner := &countingStore{records: []*domain.TradeRecord{{TradeID: "T-1"}}}
	s := New(inner, time.Minute)

	ctx := context.Background()
	_, err := s.ReadAll(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Append(ctx, &domain.TradeRecord{TradeID: "T-2"}))

	records, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.readCalls, "read after write must refetch")
	require.Len(t, records, 2)
	assert.Equal(t, "T-2", records[1].TradeID)
}

func TestFailedWriteKeepsCache(t *testing.T) {
	inner := &countingStore{records: []*domain.TradeRecord{{TradeID: "T-1"}}}
	s := New(inner, time.Minute)

	ctx := context.Background()
	_, err := s.ReadAll(ctx)
	require.NoError(t, err)

	inner.appendErr = errors.New("append rejected")
	require.Error(t, s.Append(ctx, &domain.TradeRecord{TradeID: "T-2"}))
	inner.updateErr = errors.New("update rejected")
	require.Error(t, s.UpdateDisposition(ctx, "T-1", domain.Disposition{}))

	_, err = s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.readCalls, "failed writes must not drop the cache")
}
