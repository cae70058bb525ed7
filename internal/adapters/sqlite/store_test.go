package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinledger/internal/domain"
	"skinledger/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestStore creates a temporary database for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "skinledger-test-*")
	require.NoError(t, err)

	store, err := New(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		os.RemoveAll(tmpDir)
	})
	return store
}

func testRecord(id string) *domain.TradeRecord {
	return &domain.TradeRecord{
		TradeID:        id,
		DateBought:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TradableOn:     time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		SkinID:         "skin-ak47_redline",
		SkinName:       "AK-47 | Redline (Field-Tested)",
		Condition:      domain.FieldTested,
		PlatformBought: domain.CSGORoll,
		PriceBought:    decimal.RequireFromString("100.00"),
		MarketPrice:    decimal.RequireFromString("110.50"),
		Buyer:          domain.Buyer("GGE"),
	}
}

func TestStore_AppendAndReadAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testRecord("T-aaaa1111")))
	require.NoError(t, store.Append(ctx, testRecord("T-bbbb2222")))

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Insertion order is preserved.
	assert.Equal(t, "T-aaaa1111", records[0].TradeID)
	assert.Equal(t, "T-bbbb2222", records[1].TradeID)

	got := records[0]
	want := testRecord("T-aaaa1111")
	assert.Equal(t, want.DateBought, got.DateBought)
	assert.Equal(t, want.TradableOn, got.TradableOn)
	assert.Equal(t, want.SkinID, got.SkinID)
	assert.Equal(t, want.SkinName, got.SkinName)
	assert.Equal(t, want.Condition, got.Condition)
	assert.Equal(t, want.PlatformBought, got.PlatformBought)
	assert.True(t, want.PriceBought.Equal(got.PriceBought))
	assert.True(t, want.MarketPrice.Equal(got.MarketPrice))
	assert.Equal(t, want.Buyer, got.Buyer)
	assert.True(t, got.IsOpen())
}

func TestStore_AppendDuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testRecord("T-aaaa1111")))
	err := store.Append(ctx, testRecord("T-aaaa1111"))
	assert.ErrorIs(t, err, ports.ErrStoreWrite)
}

func TestStore_UpdateDisposition(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testRecord("T-aaaa1111")))

	d := domain.Disposition{
		Platform:   domain.SteamMarket,
		Date:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Price:      decimal.RequireFromString("150.00"),
		Fee:        decimal.RequireFromString("5.00"),
		ProfitLoss: decimal.RequireFromString("45.00"),
		ROI:        decimal.RequireFromString("45"),
	}
	require.NoError(t, store.UpdateDisposition(ctx, "T-aaaa1111", d))

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.False(t, got.IsOpen())
	assert.Equal(t, domain.SteamMarket, got.PlatformSold)
	assert.Equal(t, d.Date, got.DateSold)
	assert.True(t, d.Price.Equal(got.PriceSold))
	assert.True(t, d.Fee.Equal(got.SellFee))
	assert.True(t, d.ProfitLoss.Equal(got.ProfitLoss))
	assert.True(t, d.ROI.Equal(got.ROI))
}

func TestStore_UpdateDispositionNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.UpdateDisposition(ctx, "T-missing", domain.Disposition{Date: time.Now()})
	assert.ErrorIs(t, err, ports.ErrRecordNotFound)
}

func TestStore_UpdateDispositionAlreadyClosed(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, testRecord("T-aaaa1111")))

	d := domain.Disposition{
		Platform: domain.SteamMarket,
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.UpdateDisposition(ctx, "T-aaaa1111", d))

	// A closed record can never be re-closed.
	err := store.UpdateDisposition(ctx, "T-aaaa1111", d)
	assert.ErrorIs(t, err, ports.ErrRecordNotFound)
}
