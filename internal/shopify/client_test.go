package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storewise/storewise/internal/config"
)

func testClient(transport, baseURL string) *Client {
	return NewClient(config.ShopifyConfig{
		Transport:  transport,
		APIVersion: "2024-01",
		Timeout:    5 * time.Second,
	}, WithBaseURL(baseURL))
}

func TestFetchRESTUnwrapsResource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders.json", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "250", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders": [{"id": 1, "total_price": 49.98}, {"id": 2, "total_price": 8.99}]}`))
	}))
	defer ts.Close()

	client := testClient("rest", ts.URL)
	records, err := client.Fetch(context.Background(), "demo.myshopify.com", "secret-token", "orders", nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].Int("id"))
	assert.Equal(t, 8.99, records[1].Float("total_price"))
}

func TestFetchRESTErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := testClient("rest", ts.URL)
	_, err := client.Fetch(context.Background(), "demo.myshopify.com", "bad-token", "orders", nil)
	assert.Error(t, err)
}

func TestFetchRESTUnsupportedResource(t *testing.T) {
	client := testClient("rest", "http://unused")
	_, err := client.Fetch(context.Background(), "demo.myshopify.com", "token", "collections", nil)
	assert.ErrorContains(t, err, "unsupported resource")
}

func TestFetchRESTPassesTimeFilter(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "last 30 days", r.URL.Query().Get("time_filter"))
		_, _ = w.Write([]byte(`{"orders": []}`))
	}))
	defer ts.Close()

	client := testClient("rest", ts.URL)
	records, err := client.Fetch(context.Background(), "demo.myshopify.com", "token", "orders",
		map[string]string{"time_filter": "last 30 days"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchGraphQLFlattensNodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql.json", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("X-Shopify-Access-Token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"orders": {"nodes": [{"id": 10, "total_price": 24.99, "customer_id": 3001}]}}}`))
	}))
	defer ts.Close()

	client := testClient("graphql", ts.URL)
	records, err := client.Fetch(context.Background(), "demo.myshopify.com", "secret-token", "orders", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(3001), records[0].Int("customer_id"))
}

func TestNormalizeList(t *testing.T) {
	assert.Empty(t, normalizeList(nil))
	assert.Empty(t, normalizeList("not a list"))

	// A non-list payload becomes a one-record list.
	single := normalizeList(map[string]any{"id": 1.0})
	require.Len(t, single, 1)
	assert.Equal(t, int64(1), single[0].Int("id"))

	many := normalizeList([]any{map[string]any{"id": 1.0}, map[string]any{"id": 2.0}})
	assert.Len(t, many, 2)
}
