// Package sheets implements ports.LedgerStore against the spreadsheet table
// service holding the ledger. The table is a plain value grid: row 1 is the
// header, data rows append below, and every mutation is row- or range-level.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"skinledger/internal/domain"
	"skinledger/internal/ports"
)

// Client implements ports.LedgerStore over the table service's values API.
type Client struct {
	baseURL       string
	spreadsheetID string
	worksheet     string
	token         string
	httpClient    *http.Client
	logger        ports.Logger
}

// Config holds configuration specific to the sheets adapter.
type Config struct {
	BaseURL       string // Table service endpoint, e.g. "https://sheets.googleapis.com"
	SpreadsheetID string // Identifier of the spreadsheet holding the ledger
	Worksheet     string // Tab name, e.g. "Trades"
	Token         string // Optional bearer token
	HTTPClient    *http.Client
	Logger        ports.Logger
}

// New creates a sheets ledger store.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for sheets client: %w", ports.ErrConfiguration)
	}
	if cfg.BaseURL == "" || cfg.SpreadsheetID == "" || cfg.Worksheet == "" {
		return nil, fmt.Errorf("base URL, spreadsheet ID and worksheet are required: %w", ports.ErrConfiguration)
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
		token:         cfg.Token,
		httpClient:    cfg.HTTPClient,
		logger:        cfg.Logger,
	}, nil
}

// valueRange is the wire shape of a block of cells.
type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

// ReadAll reads every data row in store order. Fully blank rows are skipped;
// a malformed row fails the whole read rather than silently dropping data.
func (c *Client) ReadAll(ctx context.Context) ([]*domain.TradeRecord, error) {
	rows, err := c.fetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w: %v", ports.ErrStoreRead, err)
	}

	records := make([]*domain.TradeRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue // header row and manual-edit leftovers
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("reading ledger row %d: %w: %v", i+1, ports.ErrStoreRead, err)
		}
		records = append(records, rec)
	}
	c.logger.Debug(ctx, "Ledger read", map[string]interface{}{"rows": len(records)})
	return records, nil
}

// Append writes one new row below the existing data.
func (c *Client) Append(ctx context.Context, rec *domain.TradeRecord) error {
	body := valueRange{Values: [][]string{encodeRow(rec)}}
	endpoint := c.valuesURL(c.worksheet) + ":append"
	if err := c.call(ctx, http.MethodPost, endpoint, body); err != nil {
		return fmt.Errorf("appending trade %s: %w: %v", rec.TradeID, ports.ErrStoreWrite, err)
	}
	c.logger.Info(ctx, "Trade appended to ledger", map[string]interface{}{
		"tradeID": rec.TradeID, "skin": rec.SkinName,
	})
	return nil
}

// UpdateDisposition closes the open row carrying the given trade ID. The six
// sale cells are written with a single ranged update so the row can never
// persist a partial sale. The row is located by a fresh read, never through
// any cache.
func (c *Client) UpdateDisposition(ctx context.Context, tradeID string, d domain.Disposition) error {
	rows, err := c.fetchRows(ctx)
	if err != nil {
		return fmt.Errorf("locating trade %s: %w: %v", tradeID, ports.ErrStoreRead, err)
	}

	rowNum := 0 // 1-based sheet row
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if row[0] != tradeID {
			continue
		}
		// Column 13 is Date_Sold; a value there means the row is already closed.
		if len(row) > 12 && row[12] != "" {
			return fmt.Errorf("trade %s: %w", tradeID, ports.ErrRecordNotFound)
		}
		rowNum = i + 1
		break
	}
	if rowNum == 0 {
		return fmt.Errorf("trade %s: %w", tradeID, ports.ErrRecordNotFound)
	}

	// Sale cells live in columns L..Q of the located row.
	rangeRef := fmt.Sprintf("%s!L%d:Q%d", c.worksheet, rowNum, rowNum)
	body := valueRange{Range: rangeRef, Values: [][]string{encodeDisposition(d)}}
	if err := c.call(ctx, http.MethodPut, c.valuesURL(rangeRef), body); err != nil {
		return fmt.Errorf("closing trade %s: %w: %v", tradeID, ports.ErrStoreWrite, err)
	}
	c.logger.Info(ctx, "Trade closed in ledger", map[string]interface{}{
		"tradeID": tradeID, "row": rowNum,
	})
	return nil
}

func (c *Client) fetchRows(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.valuesURL(c.worksheet), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("table service returned status %d", resp.StatusCode)
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decoding value range: %w", err)
	}
	return vr.Values, nil
}

// call performs a JSON mutation request and checks for a 2xx response.
func (c *Client) call(ctx context.Context, method, endpoint string, body valueRange) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("table service returned status %d: %s", resp.StatusCode, msg)
	}
	return nil
}

func (c *Client) valuesURL(rangeRef string) string {
	return fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, c.spreadsheetID, url.PathEscape(rangeRef))
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
