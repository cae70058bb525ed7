package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinledger/internal/domain"
)

func closedRecord(id, profit, roi string) *domain.TradeRecord {
	return &domain.TradeRecord{
		TradeID:    id,
		DateSold:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		ProfitLoss: decimal.RequireFromString(profit),
		ROI:        decimal.RequireFromString(roi),
	}
}

func TestPartition(t *testing.T) {
	records := []*domain.TradeRecord{
		{TradeID: "T-open1"},
		closedRecord("T-done1", "45.00", "45"),
		{TradeID: "T-open2"},
		closedRecord("T-done2", "-10.00", "-10"),
	}

	open := OpenPositions(records)
	require.Len(t, open, 2)
	assert.Equal(t, "T-open1", open[0].TradeID)
	assert.Equal(t, "T-open2", open[1].TradeID)

	closed := ClosedPositions(records)
	require.Len(t, closed, 2)
	assert.Equal(t, "T-done1", closed[0].TradeID)
	assert.Equal(t, "T-done2", closed[1].TradeID)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name            string
		closed          []*domain.TradeRecord
		wantTotalProfit string
		wantCount       int
		wantAverageROI  string
	}{
		{
			name:            "empty ledger",
			closed:          nil,
			wantTotalProfit: "0",
			wantCount:       0,
			wantAverageROI:  "0",
		},
		{
			name: "mixed win and loss",
			closed: []*domain.TradeRecord{
				closedRecord("T-done1", "45.00", "45"),
				closedRecord("T-done2", "-10.00", "-11.5"),
			},
			wantTotalProfit: "35.00",
			wantCount:       2,
			wantAverageROI:  "16.75",
		},
		{
			name: "single trade average is its own roi",
			closed: []*domain.TradeRecord{
				closedRecord("T-done1", "20.00", "0"),
			},
			wantTotalProfit: "20.00",
			wantCount:       1,
			wantAverageROI:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.closed)
			assert.Equal(t, tt.wantCount, s.TradeCount)
			assert.True(t, s.TotalProfit.Equal(decimal.RequireFromString(tt.wantTotalProfit)), "total profit %s", s.TotalProfit)
			assert.True(t, s.AverageROI.Equal(decimal.RequireFromString(tt.wantAverageROI)), "average roi %s", s.AverageROI)
		})
	}
}
