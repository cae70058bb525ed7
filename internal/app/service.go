// Package app implements the ledger workflows: logging a purchase, logging a
// sale, and producing the inventory and history views.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skinledger/internal/analytics"
	"skinledger/internal/domain"
	"skinledger/internal/ports"
)

// tradeIDPrefix marks ledger-generated identifiers.
const tradeIDPrefix = "T-"

// LedgerService orchestrates the trade ledger on top of the catalog client
// and the ledger store.
type LedgerService struct {
	logger  ports.Logger
	store   ports.LedgerStore
	catalog ports.CatalogClient

	conditions []string
	platforms  []string
	buyers     []string

	now   func() time.Time
	newID func() string
}

// Config holds the dependencies and rosters of the ledger service.
type Config struct {
	Logger  ports.Logger
	Store   ports.LedgerStore
	Catalog ports.CatalogClient

	// Rosters of accepted values; the domain defaults apply when empty.
	Conditions []string
	Platforms  []string
	Buyers     []string

	// Now and NewID override time and identifier generation in tests.
	Now   func() time.Time
	NewID func() string
}

// NewLedgerService creates the ledger service.
func NewLedgerService(cfg Config) (*LedgerService, error) {
	if cfg.Logger == nil || cfg.Store == nil || cfg.Catalog == nil {
		return nil, fmt.Errorf("missing required dependencies for LedgerService: %w", ports.ErrConfiguration)
	}
	if len(cfg.Conditions) == 0 {
		cfg.Conditions = domain.DefaultConditions
	}
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = domain.DefaultPlatforms
	}
	if len(cfg.Buyers) == 0 {
		cfg.Buyers = domain.DefaultBuyers
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return tradeIDPrefix + uuid.NewString()[:8] }
	}
	return &LedgerService{
		logger:     cfg.Logger,
		store:      cfg.Store,
		catalog:    cfg.Catalog,
		conditions: cfg.Conditions,
		platforms:  cfg.Platforms,
		buyers:     cfg.Buyers,
		now:        cfg.Now,
		newID:      cfg.NewID,
	}, nil
}

// PurchaseInput carries the user-supplied values for a new purchase. Nil
// prices are treated as zero, mirroring a blank form field.
type PurchaseInput struct {
	SkinID      string
	Condition   domain.Condition
	StatTrak    bool
	Price       *decimal.Decimal
	MarketPrice *decimal.Decimal
	Platform    domain.Platform
	Buyer       domain.Buyer
}

// SaleInput carries the user-supplied values for a sale. Nil price and fee
// are treated as zero.
type SaleInput struct {
	Price    *decimal.Decimal
	Fee      *decimal.Decimal
	Platform domain.Platform
}

// LogPurchase creates a new open trade record and appends it to the ledger.
// The skin must resolve in the catalog; condition, platform and buyer must be
// on their rosters. A store failure is returned as-is and nothing is retained
// locally.
func (s *LedgerService) LogPurchase(ctx context.Context, in PurchaseInput) (*domain.TradeRecord, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := catalog[in.SkinID]
	if !ok {
		return nil, fmt.Errorf("unknown skin %q: %w", in.SkinID, ports.ErrInvalidInput)
	}

	if !contains(s.conditions, string(in.Condition)) {
		return nil, fmt.Errorf("unknown condition %q: %w", in.Condition, ports.ErrInvalidInput)
	}
	if !contains(s.platforms, string(in.Platform)) {
		return nil, fmt.Errorf("unknown platform %q: %w", in.Platform, ports.ErrInvalidInput)
	}
	if !contains(s.buyers, string(in.Buyer)) {
		return nil, fmt.Errorf("unknown buyer %q: %w", in.Buyer, ports.ErrInvalidInput)
	}

	price, err := normalizeMoney(in.Price, "price bought")
	if err != nil {
		return nil, err
	}
	marketPrice, err := normalizeMoney(in.MarketPrice, "market price")
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	rec := &domain.TradeRecord{
		TradeID:        s.newID(),
		DateBought:     today,
		TradableOn:     domain.TradableDate(today),
		SkinID:         entry.SkinID,
		SkinName:       domain.DisplayName(entry.Name, in.Condition, in.StatTrak),
		Condition:      in.Condition,
		StatTrak:       in.StatTrak,
		PlatformBought: in.Platform,
		PriceBought:    price,
		MarketPrice:    marketPrice,
		Buyer:          in.Buyer,
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Purchase logged", map[string]interface{}{
		"tradeID": rec.TradeID, "skin": rec.SkinName, "priceBought": rec.PriceBought,
	})
	return rec, nil
}

// LogSale closes the open record with the given trade ID: it computes profit
// and return on the spot and writes the full sale block in one store update.
// The ID must belong to an open record; anything else is ErrRecordNotFound.
// A sale, once written, is final.
func (s *LedgerService) LogSale(ctx context.Context, tradeID string, in SaleInput) (*domain.TradeRecord, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	var rec *domain.TradeRecord
	for _, open := range analytics.OpenPositions(records) {
		if open.TradeID == tradeID {
			rec = open
			break
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("trade %s: %w", tradeID, ports.ErrRecordNotFound)
	}

	if !contains(s.platforms, string(in.Platform)) {
		return nil, fmt.Errorf("unknown platform %q: %w", in.Platform, ports.ErrInvalidInput)
	}
	price, err := normalizeMoney(in.Price, "price sold")
	if err != nil {
		return nil, err
	}
	fee, err := normalizeMoney(in.Fee, "sell fee")
	if err != nil {
		return nil, err
	}

	profitLoss := domain.ProfitLoss(price, fee, rec.PriceBought)
	d := domain.Disposition{
		Platform:   in.Platform,
		Date:       dateOnly(s.now()),
		Price:      price,
		Fee:        fee,
		ProfitLoss: profitLoss,
		ROI:        domain.ReturnOnInvestment(profitLoss, rec.PriceBought),
	}

	if err := s.store.UpdateDisposition(ctx, tradeID, d); err != nil {
		return nil, err
	}
	rec.Close(d)
	s.logger.Info(ctx, "Sale logged", map[string]interface{}{
		"tradeID": tradeID, "profitLoss": d.ProfitLoss, "roi": d.ROI,
	})
	return rec, nil
}

// Inventory returns the open positions in store order.
func (s *LedgerService) Inventory(ctx context.Context) ([]*domain.TradeRecord, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.OpenPositions(records), nil
}

// History returns the closed positions in store order along with their
// profit summary.
func (s *LedgerService) History(ctx context.Context) ([]*domain.TradeRecord, analytics.Summary, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, analytics.Summary{}, err
	}
	closed := analytics.ClosedPositions(records)
	return closed, analytics.Summarize(closed), nil
}

// normalizeMoney applies the blank-field policy: nil becomes zero, negative
// values are rejected.
func normalizeMoney(v *decimal.Decimal, what string) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative: %w", what, ports.ErrInvalidInput)
	}
	return *v, nil
}

// dateOnly truncates a timestamp to day precision.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
