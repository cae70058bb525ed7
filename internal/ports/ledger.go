package ports

import (
	"context"

	"skinledger/internal/domain"
)

// LedgerStore defines the complete interface to the durable trade ledger.
// The backing table has no query language, so filtering happens in memory on
// the result of ReadAll; this bounds the engine to ledgers that fit in memory,
// which is fine for a personal trading log.
type LedgerStore interface {
	// ReadAll returns every ledger row in store (append) order.
	ReadAll(ctx context.Context) ([]*domain.TradeRecord, error)
	// Append writes one new open record as a new row.
	Append(ctx context.Context, rec *domain.TradeRecord) error
	// UpdateDisposition closes the open record with the given trade ID by
	// writing all sale fields in one batch. Returns ErrRecordNotFound if no
	// open record carries that ID.
	UpdateDisposition(ctx context.Context, tradeID string, d domain.Disposition) error
}

// CatalogClient loads the external skin reference catalog.
type CatalogClient interface {
	// Load returns the full catalog indexed by skin ID, possibly from cache.
	Load(ctx context.Context) (domain.Catalog, error)
}
