// Package sqlite implements ports.LedgerStore on a local SQLite file, for
// running the ledger without the remote table service.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/shopspring/decimal"

	"skinledger/internal/domain"
	"skinledger/internal/ports"
)

const dateLayout = "2006-01-02"

// Store implements the ports.LedgerStore interface using SQLite.
type Store struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite ledger store.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// New creates a new SQLite ledger store.
func New(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite store: %w", ports.ErrConfiguration)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/skinledger.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, logger: cfg.Logger}
	if err := s.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite ledger store ready", map[string]interface{}{"path": dbPath})
	return s, nil
}

// initializeSchema creates the trades table if it doesn't exist. Money
// columns are TEXT so decimal values survive exactly.
func (s *Store) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		trade_id        TEXT PRIMARY KEY,
		date_bought     TEXT NOT NULL,
		tradable_on     TEXT NOT NULL,
		skin_id         TEXT NOT NULL,
		skin_name       TEXT NOT NULL,
		condition       TEXT NOT NULL,
		stattrak        INTEGER NOT NULL,
		platform_bought TEXT NOT NULL,
		price_bought    TEXT NOT NULL,
		market_price    TEXT NOT NULL,
		buyer           TEXT NOT NULL,
		platform_sold   TEXT DEFAULT NULL,
		date_sold       TEXT DEFAULT NULL,
		price_sold      TEXT DEFAULT NULL,
		sell_fee        TEXT DEFAULT NULL,
		profit_loss     TEXT DEFAULT NULL,
		roi             TEXT DEFAULT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_date_sold ON trades (date_sold);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		s.logger.Info(context.Background(), "Closing SQLite ledger store")
		return s.db.Close()
	}
	return nil
}

// ReadAll returns every trade in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]*domain.TradeRecord, error) {
	const query = `
	SELECT trade_id, date_bought, tradable_on, skin_id, skin_name, condition,
	       stattrak, platform_bought, price_bought, market_price, buyer,
	       platform_sold, date_sold, price_sold, sell_fee, profit_loss, roi
	FROM trades
	ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying trades: %w: %v", ports.ErrStoreRead, err)
	}
	defer rows.Close()

	records := make([]*domain.TradeRecord, 0)
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning trade: %w: %v", ports.ErrStoreRead, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trades: %w: %v", ports.ErrStoreRead, err)
	}
	return records, nil
}

// Append inserts one new open record. The sale columns stay NULL.
func (s *Store) Append(ctx context.Context, rec *domain.TradeRecord) error {
	const query = `
	INSERT INTO trades (trade_id, date_bought, tradable_on, skin_id, skin_name,
	                    condition, stattrak, platform_bought, price_bought,
	                    market_price, buyer)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		rec.TradeID,
		rec.DateBought.Format(dateLayout),
		rec.TradableOn.Format(dateLayout),
		rec.SkinID,
		rec.SkinName,
		string(rec.Condition),
		rec.StatTrak,
		string(rec.PlatformBought),
		rec.PriceBought.String(),
		rec.MarketPrice.String(),
		string(rec.Buyer),
	)
	if err != nil {
		return fmt.Errorf("inserting trade %s: %w: %v", rec.TradeID, ports.ErrStoreWrite, err)
	}
	s.logger.Debug(ctx, "Trade inserted", map[string]interface{}{"tradeID": rec.TradeID})
	return nil
}

// UpdateDisposition closes an open record with a single UPDATE, so the six
// sale columns change together or not at all. A missing or already-closed
// trade reports ErrRecordNotFound.
func (s *Store) UpdateDisposition(ctx context.Context, tradeID string, d domain.Disposition) error {
	const query = `
	UPDATE trades
	SET platform_sold = ?, date_sold = ?, price_sold = ?, sell_fee = ?,
	    profit_loss = ?, roi = ?
	WHERE trade_id = ? AND date_sold IS NULL`

	result, err := s.db.ExecContext(ctx, query,
		string(d.Platform),
		d.Date.Format(dateLayout),
		d.Price.String(),
		d.Fee.String(),
		d.ProfitLoss.String(),
		d.ROI.String(),
		tradeID,
	)
	if err != nil {
		return fmt.Errorf("closing trade %s: %w: %v", tradeID, ports.ErrStoreWrite, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing trade %s: %w: %v", tradeID, ports.ErrStoreWrite, err)
	}
	if affected == 0 {
		return fmt.Errorf("trade %s: %w", tradeID, ports.ErrRecordNotFound)
	}
	s.logger.Debug(ctx, "Trade closed", map[string]interface{}{"tradeID": tradeID})
	return nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(sc scanner) (*domain.TradeRecord, error) {
	rec := &domain.TradeRecord{}
	var (
		dateBought, tradableOn, condition, platformBought, buyer string
		priceBought, marketPrice                                 string
		platformSold, dateSold, priceSold, sellFee, pl, roi      sql.NullString
	)
	err := sc.Scan(
		&rec.TradeID, &dateBought, &tradableOn, &rec.SkinID, &rec.SkinName,
		&condition, &rec.StatTrak, &platformBought, &priceBought, &marketPrice,
		&buyer, &platformSold, &dateSold, &priceSold, &sellFee, &pl, &roi,
	)
	if err != nil {
		return nil, err
	}

	rec.Condition = domain.Condition(condition)
	rec.PlatformBought = domain.Platform(platformBought)
	rec.Buyer = domain.Buyer(buyer)
	if rec.DateBought, err = time.Parse(dateLayout, dateBought); err != nil {
		return nil, fmt.Errorf("date bought: %w", err)
	}
	if rec.TradableOn, err = time.Parse(dateLayout, tradableOn); err != nil {
		return nil, fmt.Errorf("tradable on: %w", err)
	}
	if rec.PriceBought, err = decimal.NewFromString(priceBought); err != nil {
		return nil, fmt.Errorf("price bought: %w", err)
	}
	if rec.MarketPrice, err = decimal.NewFromString(marketPrice); err != nil {
		return nil, fmt.Errorf("market price: %w", err)
	}

	if !dateSold.Valid {
		return rec, nil
	}
	rec.PlatformSold = domain.Platform(platformSold.String)
	if rec.DateSold, err = time.Parse(dateLayout, dateSold.String); err != nil {
		return nil, fmt.Errorf("date sold: %w", err)
	}
	if rec.PriceSold, err = decimal.NewFromString(priceSold.String); err != nil {
		return nil, fmt.Errorf("price sold: %w", err)
	}
	if rec.SellFee, err = decimal.NewFromString(sellFee.String); err != nil {
		return nil, fmt.Errorf("sell fee: %w", err)
	}
	if rec.ProfitLoss, err = decimal.NewFromString(pl.String); err != nil {
		return nil, fmt.Errorf("profit loss: %w", err)
	}
	if rec.ROI, err = decimal.NewFromString(roi.String); err != nil {
		return nil, fmt.Errorf("roi: %w", err)
	}
	return rec, nil
}
