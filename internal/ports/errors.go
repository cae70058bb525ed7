package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying infrastructure errors with these standard errors
// so callers can branch with errors.Is without knowing the backend.
var (
	// General errors
	ErrConfiguration = errors.New("invalid or missing configuration")
	ErrInvalidInput  = errors.New("invalid input")

	// Ledger errors
	ErrRecordNotFound = errors.New("trade record not found or already sold")
	ErrStoreRead      = errors.New("ledger read failed")
	ErrStoreWrite     = errors.New("ledger write failed")

	// Catalog errors
	ErrCatalogUnavailable = errors.New("skin catalog is unavailable")
)
