package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldDays is the trade-hold period Steam applies to a freshly bought skin.
// A skin becomes tradable exactly this many days after the purchase date.
const HoldDays = 7

// StatTrakPrefix is prepended to the display name of StatTrak variants.
const StatTrakPrefix = "StatTrak™ "

// TradeRecord is one row of the ledger: a single physical skin across its
// lifecycle. The purchase block is written once at acquisition and never
// changes; the sale block is zero-valued until the record is closed.
type TradeRecord struct {
	TradeID        string          // Opaque unique identifier ("T-xxxxxxxx")
	DateBought     time.Time       // Purchase date (day precision)
	TradableOn     time.Time       // DateBought + HoldDays
	SkinID         string          // Catalog identifier of the skin
	SkinName       string          // Derived display name (prefix + catalog name + condition)
	Condition      Condition       // Wear grade, or NotApplicable
	StatTrak       bool            // StatTrak variant flag
	PlatformBought Platform        // Marketplace the skin was bought on
	PriceBought    decimal.Decimal // Purchase price
	MarketPrice    decimal.Decimal // Market price estimate at purchase time
	Buyer          Buyer           // Who funded the purchase

	// Sale block. Populated together when the record is closed, never partially.
	PlatformSold Platform        // Marketplace the skin was sold on
	DateSold     time.Time       // Sale date (zero value while open)
	PriceSold    decimal.Decimal // Sale price
	SellFee      decimal.Decimal // Marketplace fee on the sale
	ProfitLoss   decimal.Decimal // (PriceSold - SellFee) - PriceBought
	ROI          decimal.Decimal // ProfitLoss / PriceBought * 100, 0 when PriceBought is 0
}

// IsOpen reports whether the skin is still held (not yet sold).
func (r *TradeRecord) IsOpen() bool {
	return r.DateSold.IsZero()
}

// Disposition carries every value of a completed sale as one unit, so a
// record can only ever be closed with the full sale block.
type Disposition struct {
	Platform   Platform
	Date       time.Time
	Price      decimal.Decimal
	Fee        decimal.Decimal
	ProfitLoss decimal.Decimal
	ROI        decimal.Decimal
}

// Close applies a completed sale to the record, populating all six sale
// fields together.
func (r *TradeRecord) Close(d Disposition) {
	r.PlatformSold = d.Platform
	r.DateSold = d.Date
	r.PriceSold = d.Price
	r.SellFee = d.Fee
	r.ProfitLoss = d.ProfitLoss
	r.ROI = d.ROI
}

// TradableDate returns the first day a skin bought on the given date can be
// traded again.
func TradableDate(dateBought time.Time) time.Time {
	return dateBought.AddDate(0, 0, HoldDays)
}

// DisplayName composes the ledger display name from the catalog name, wear
// grade and StatTrak flag, e.g. "StatTrak™ AK-47 | Redline (Field-Tested)".
// NotApplicable conditions carry no suffix.
func DisplayName(catalogName string, cond Condition, statTrak bool) string {
	name := catalogName
	if statTrak {
		name = StatTrakPrefix + name
	}
	if cond != NotApplicable {
		name += " (" + string(cond) + ")"
	}
	return name
}

// ProfitLoss computes the realized profit of a sale net of the marketplace fee.
func ProfitLoss(priceSold, sellFee, priceBought decimal.Decimal) decimal.Decimal {
	return priceSold.Sub(sellFee).Sub(priceBought)
}

// ReturnOnInvestment computes the realized return as a percentage of the
// purchase price. A free acquisition (price 0) yields 0 rather than a
// division error; any profit on it is infinite in spirit but meaningless as
// a percentage.
func ReturnOnInvestment(profitLoss, priceBought decimal.Decimal) decimal.Decimal {
	if priceBought.IsZero() {
		return decimal.Zero
	}
	return profitLoss.Div(priceBought).Mul(decimal.NewFromInt(100))
}
