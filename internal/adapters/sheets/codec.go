package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"skinledger/internal/domain"
)

// dateLayout is the day-precision format used for every date cell.
const dateLayout = "2006-01-02"

// columnCount is the fixed width of the ledger table: 11 purchase cells
// followed by the 6 sale cells.
const columnCount = 17

// header is row 1 of the worksheet, in fixed column order.
var header = []string{
	"Trade_ID", "Date_Bought", "Tradable_On", "Skin_ID", "Skin_Name",
	"Condition", "StatTrak", "Platform_Bought", "Price_Bought",
	"Market_Price_Estimate", "Buyer",
	"Platform_Sold", "Date_Sold", "Price_Sold", "Sell_Fee", "P_L", "ROI",
}

// encodeRow renders a record as one sheet row. Open records carry blank sale
// cells so the row is append-ready.
func encodeRow(rec *domain.TradeRecord) []string {
	row := []string{
		rec.TradeID,
		rec.DateBought.Format(dateLayout),
		rec.TradableOn.Format(dateLayout),
		rec.SkinID,
		rec.SkinName,
		string(rec.Condition),
		encodeBool(rec.StatTrak),
		string(rec.PlatformBought),
		rec.PriceBought.String(),
		rec.MarketPrice.String(),
		string(rec.Buyer),
	}
	if rec.IsOpen() {
		return append(row, "", "", "", "", "", "")
	}
	return append(row,
		string(rec.PlatformSold),
		rec.DateSold.Format(dateLayout),
		rec.PriceSold.String(),
		rec.SellFee.String(),
		rec.ProfitLoss.String(),
		rec.ROI.String(),
	)
}

// encodeDisposition renders the six sale cells written by the batch update.
func encodeDisposition(d domain.Disposition) []string {
	return []string{
		string(d.Platform),
		d.Date.Format(dateLayout),
		d.Price.String(),
		d.Fee.String(),
		d.ProfitLoss.String(),
		d.ROI.String(),
	}
}

// decodeRow parses one data row. Rows narrower than the full width are padded
// with blanks, matching how the table service omits trailing empty cells.
func decodeRow(cells []string) (*domain.TradeRecord, error) {
	if len(cells) > columnCount {
		return nil, fmt.Errorf("row has %d cells, want at most %d", len(cells), columnCount)
	}
	padded := make([]string, columnCount)
	copy(padded, cells)
	cells = padded

	rec := &domain.TradeRecord{
		TradeID:        cells[0],
		SkinID:         cells[3],
		SkinName:       cells[4],
		Condition:      domain.Condition(cells[5]),
		PlatformBought: domain.Platform(cells[7]),
		Buyer:          domain.Buyer(cells[10]),
	}

	var err error
	if rec.DateBought, err = time.Parse(dateLayout, cells[1]); err != nil {
		return nil, fmt.Errorf("date bought: %w", err)
	}
	if rec.TradableOn, err = time.Parse(dateLayout, cells[2]); err != nil {
		return nil, fmt.Errorf("tradable on: %w", err)
	}
	if rec.StatTrak, err = strconv.ParseBool(strings.ToLower(cells[6])); err != nil {
		return nil, fmt.Errorf("stattrak flag: %w", err)
	}
	if rec.PriceBought, err = decodeMoney(cells[8]); err != nil {
		return nil, fmt.Errorf("price bought: %w", err)
	}
	if rec.MarketPrice, err = decodeMoney(cells[9]); err != nil {
		return nil, fmt.Errorf("market price: %w", err)
	}

	// A blank sale date means the record is still open; the remaining sale
	// cells are then ignored.
	if cells[12] == "" {
		return rec, nil
	}

	rec.PlatformSold = domain.Platform(cells[11])
	if rec.DateSold, err = time.Parse(dateLayout, cells[12]); err != nil {
		return nil, fmt.Errorf("date sold: %w", err)
	}
	if rec.PriceSold, err = decodeMoney(cells[13]); err != nil {
		return nil, fmt.Errorf("price sold: %w", err)
	}
	if rec.SellFee, err = decodeMoney(cells[14]); err != nil {
		return nil, fmt.Errorf("sell fee: %w", err)
	}
	if rec.ProfitLoss, err = decodeMoney(cells[15]); err != nil {
		return nil, fmt.Errorf("profit loss: %w", err)
	}
	if rec.ROI, err = decodeMoney(cells[16]); err != nil {
		return nil, fmt.Errorf("roi: %w", err)
	}
	return rec, nil
}

func decodeMoney(cell string) (decimal.Decimal, error) {
	if cell == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cell)
}

func encodeBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// isBlankRow reports whether every cell of the row is empty. The table keeps
// such rows after manual edits; they are not records.
func isBlankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
