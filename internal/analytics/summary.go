// Package analytics derives the ledger views: the open/closed partition of
// the row set and the profit summary over completed trades.
package analytics

import (
	"github.com/shopspring/decimal"

	"skinledger/internal/domain"
)

// Summary holds aggregate metrics over a set of completed trades.
type Summary struct {
	TotalProfit decimal.Decimal // Sum of realized profit/loss
	TradeCount  int             // Number of completed trades
	AverageROI  decimal.Decimal // Arithmetic mean of per-trade ROI percentages
}

// OpenPositions returns the records still held, preserving store order.
func OpenPositions(records []*domain.TradeRecord) []*domain.TradeRecord {
	open := make([]*domain.TradeRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsOpen() {
			open = append(open, rec)
		}
	}
	return open
}

// ClosedPositions returns the records already sold, preserving store order.
func ClosedPositions(records []*domain.TradeRecord) []*domain.TradeRecord {
	closed := make([]*domain.TradeRecord, 0, len(records))
	for _, rec := range records {
		if !rec.IsOpen() {
			closed = append(closed, rec)
		}
	}
	return closed
}

// Summarize aggregates completed trades. An empty input yields the zero
// Summary; the average of no trades is defined as 0 so callers never divide
// by zero, though display layers should gate on TradeCount anyway.
func Summarize(closed []*domain.TradeRecord) Summary {
	s := Summary{TotalProfit: decimal.Zero, AverageROI: decimal.Zero}
	if len(closed) == 0 {
		return s
	}

	roiSum := decimal.Zero
	for _, rec := range closed {
		s.TotalProfit = s.TotalProfit.Add(rec.ProfitLoss)
		roiSum = roiSum.Add(rec.ROI)
		s.TradeCount++
	}
	s.AverageROI = roiSum.Div(decimal.NewFromInt(int64(s.TradeCount)))
	return s
}
