package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinledger/internal/ports"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

const feedJSON = `[
	{
		"id": "skin-ak47_redline",
		"name": "Redline",
		"image": "https://img.example/redline.png",
		"rarity": {"name": "Classified"},
		"weapon": {"name": "AK-47"}
	},
	{
		"id": "agent-no_weapon",
		"name": "Special Agent Ava",
		"image": "https://img.example/ava.png",
		"rarity": {"name": "Distinguished"}
	},
	{
		"id": "vanilla-no_rarity",
		"name": "Bayonet",
		"image": "https://img.example/bayonet.png",
		"weapon": {"name": "Bayonet"}
	}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL, Logger: nopLogger{}})
	require.NoError(t, err)
	return c, srv
}

func TestLoadFiltersAndIndexes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedJSON))
	})

	catalog, err := c.Load(context.Background())
	require.NoError(t, err)

	// Entries missing a weapon or a rarity classification are excluded.
	require.Len(t, catalog, 1)
	entry, ok := catalog["skin-ak47_redline"]
	require.True(t, ok)
	assert.Equal(t, "AK-47 | Redline", entry.Name)
	assert.Equal(t, "https://img.example/redline.png", entry.ImageURL)
}

func TestLoadUsesCacheWithinTTL(t *testing.T) {
	hits := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(feedJSON))
	})

	ctx := context.Background()
	_, err := c.Load(ctx)
	require.NoError(t, err)
	_, err = c.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
}

func TestLoadServesStaleCopyOnRefreshFailure(t *testing.T) {
	fail := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(feedJSON))
	})

	ctx := context.Background()
	_, err := c.Load(ctx)
	require.NoError(t, err)

	// Expire the cache and make the feed fail; the stale copy must be served.
	fail = true
	c.fetchedAt = time.Now().Add(-48 * time.Hour)

	catalog, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, catalog, "skin-ak47_redline")
}

func TestLoadFailsHardWithoutCache(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrCatalogUnavailable)
}
