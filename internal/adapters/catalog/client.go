// Package catalog implements ports.CatalogClient against the public CS:GO
// skin API: a bulk JSON feed of every skin, fetched and indexed by ID.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"skinledger/internal/domain"
	"skinledger/internal/ports"
)

// DefaultURL is the ByMykel CSGO-API skins feed.
const DefaultURL = "https://raw.githubusercontent.com/ByMykel/CSGO-API/main/public/api/en/skins.json"

// DefaultTTL is how long a fetched catalog stays fresh. The feed changes on
// game updates only, so a long interval is fine.
const DefaultTTL = 24 * time.Hour

// Client fetches and caches the skin catalog.
type Client struct {
	url        string
	ttl        time.Duration
	httpClient *http.Client
	logger     ports.Logger
	now        func() time.Time

	mu        sync.Mutex
	cached    domain.Catalog
	fetchedAt time.Time
}

// Config holds configuration for the catalog client.
type Config struct {
	URL        string        // Feed URL; DefaultURL if empty
	TTL        time.Duration // Cache interval; DefaultTTL if non-positive
	HTTPClient *http.Client  // Optional; http.DefaultClient if nil
	Logger     ports.Logger
}

// New creates a catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for catalog client: %w", ports.ErrConfiguration)
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		url:        cfg.URL,
		ttl:        cfg.TTL,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		now:        time.Now,
	}, nil
}

// skinItem mirrors the relevant slice of one feed entry. Rarity and weapon
// are pointers so entries lacking either classification can be filtered out;
// both are needed to compose a display name.
type skinItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Rarity *struct {
		Name string `json:"name"`
	} `json:"rarity"`
	Weapon *struct {
		Name string `json:"name"`
	} `json:"weapon"`
}

// Load returns the catalog, refetching when the cached copy has expired.
// When a refresh fails but a previous catalog exists, the stale copy is
// served and the failure only logged; with nothing cached the failure is
// returned as ErrCatalogUnavailable and dependent workflows cannot proceed.
func (c *Client) Load(ctx context.Context) (domain.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	catalog, err := c.fetch(ctx)
	if err != nil {
		if c.cached != nil {
			c.logger.Warn(ctx, "Catalog refresh failed, serving stale copy", map[string]interface{}{
				"error":     err.Error(),
				"fetchedAt": c.fetchedAt,
			})
			return c.cached, nil
		}
		c.logger.Error(ctx, err, "Catalog fetch failed with no cached copy")
		return nil, fmt.Errorf("fetching skin catalog: %w: %v", ports.ErrCatalogUnavailable, err)
	}

	c.cached = catalog
	c.fetchedAt = c.now()
	c.logger.Info(ctx, "Skin catalog refreshed", map[string]interface{}{"skins": len(catalog)})
	return c.cached, nil
}

func (c *Client) fetch(ctx context.Context) (domain.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var items []skinItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding catalog feed: %w", err)
	}

	catalog := make(domain.Catalog, len(items))
	for _, item := range items {
		if item.Rarity == nil || item.Weapon == nil {
			continue
		}
		catalog[item.ID] = domain.CatalogEntry{
			SkinID:   item.ID,
			Name:     item.Weapon.Name + " | " + item.Name,
			ImageURL: item.Image,
		}
	}
	return catalog, nil
}
