// Package cmd implements the CLI commands of the skin ledger. Commands only
// collect input and render output; every rule lives in the packages below.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"skinledger/config"
	"skinledger/internal/adapters/catalog"
	"skinledger/internal/adapters/logger"
	"skinledger/internal/adapters/sheets"
	"skinledger/internal/adapters/sqlite"
	"skinledger/internal/adapters/storecache"
	"skinledger/internal/app"
	"skinledger/internal/ports"
)

// Register registers every ledger command on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "ledger")
	c.Register(&sellCmd{}, "ledger")
	c.Register(&inventoryCmd{}, "views")
	c.Register(&historyCmd{}, "views")
}

// appEnv bundles the wired service with its shutdown hook.
type appEnv struct {
	svc   *app.LedgerService
	close func()
}

// buildApp wires configuration, logger, catalog client, the selected ledger
// backend and its read cache into the ledger service.
func buildApp(ctx context.Context) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var log ports.Logger
	closeLog := func() {}
	switch cfg.LogBackend {
	case "zap":
		zl, err := logger.NewZapLogger(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("initializing zap logger: %w", err)
		}
		log = zl
		closeLog = func() { _ = zl.Sync() }
	default:
		log = logger.NewStdLogger(cfg.LogLevel)
	}

	cat, err := catalog.New(catalog.Config{
		URL:    cfg.CatalogURL,
		TTL:    cfg.CatalogTTL,
		Logger: log,
	})
	if err != nil {
		closeLog()
		return nil, err
	}

	var store ports.LedgerStore
	closeStore := func() {}
	switch cfg.LedgerBackend {
	case config.BackendSQLite:
		st, err := sqlite.New(sqlite.Config{DBPath: cfg.DBPath, Logger: log})
		if err != nil {
			closeLog()
			return nil, err
		}
		store = st
		closeStore = func() { _ = st.Close() }
	default:
		st, err := sheets.New(sheets.Config{
			BaseURL:       cfg.SheetBaseURL,
			SpreadsheetID: cfg.SpreadsheetID,
			Worksheet:     cfg.Worksheet,
			Token:         cfg.SheetToken,
			Logger:        log,
		})
		if err != nil {
			closeLog()
			return nil, err
		}
		store = st
	}

	svc, err := app.NewLedgerService(app.Config{
		Logger:     log,
		Store:      storecache.New(store, cfg.LedgerCacheTTL),
		Catalog:    cat,
		Conditions: cfg.Conditions,
		Platforms:  cfg.Platforms,
		Buyers:     cfg.Buyers,
	})
	if err != nil {
		closeStore()
		closeLog()
		return nil, err
	}

	return &appEnv{
		svc: svc,
		close: func() {
			closeStore()
			closeLog()
		},
	}, nil
}

// parseMoney converts an optional flag value into the nullable money shape
// the service expects: an empty string means the field was left blank.
func parseMoney(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return &d, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
