package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storewise/storewise/internal/config"
	"github.com/storewise/storewise/internal/shopify"
)

func specFor(resources ...string) QuerySpec {
	calls := make([]APICall, 0, len(resources))
	for _, r := range resources {
		calls = append(calls, APICall{Resource: r, Method: "list", Filters: map[string]string{}})
	}
	return QuerySpec{APICalls: calls, Filters: map[string]string{}}
}

func TestExecuteMockPath(t *testing.T) {
	e := NewExecutor(nil, shopify.NewFixtureProvider())

	raw := e.Execute(context.Background(), specFor("orders", "products"), "demo.myshopify.com", "", true)

	assert.True(t, raw.IsMock)
	assert.Equal(t, []string{"orders", "products"}, raw.Resources)
	assert.Len(t, raw.Data["orders"], 45)
	assert.Len(t, raw.Data["products"], 5)
	assert.Equal(t, 50, raw.RecordCount)
}

func TestExecuteMockWhenTokenAbsent(t *testing.T) {
	e := NewExecutor(nil, shopify.NewFixtureProvider())

	// use_mock false, but no credential: fixture path anyway.
	raw := e.Execute(context.Background(), specFor("orders"), "demo.myshopify.com", "", false)
	assert.True(t, raw.IsMock)
}

func TestExecuteMockUnknownResourceYieldsEmptyList(t *testing.T) {
	e := NewExecutor(nil, shopify.NewFixtureProvider())

	raw := e.Execute(context.Background(), specFor("orders", "gift_cards"), "demo.myshopify.com", "", true)

	assert.Empty(t, raw.Data["gift_cards"])
	assert.Equal(t, []string{"orders", "gift_cards"}, raw.Resources)
	assert.Equal(t, len(raw.Data["orders"]), raw.RecordCount)
}

func TestExecuteRecordCountMatchesData(t *testing.T) {
	e := NewExecutor(nil, shopify.NewFixtureProvider())

	raw := e.Execute(context.Background(), specFor("orders", "products", "inventory_levels", "customers"),
		"demo.myshopify.com", "", true)

	sum := 0
	for _, records := range raw.Data {
		sum += len(records)
	}
	assert.Equal(t, sum, raw.RecordCount)
}

func TestExecuteLivePartialFailureIsolation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders.json":
			_, _ = w.Write([]byte(`{"orders": [{"id": 1}, {"id": 2}, {"id": 3}]}`))
		case "/products.json":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/customers.json":
			_, _ = w.Write([]byte(`{"customers": [{"id": 3001}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	client := shopify.NewClient(config.ShopifyConfig{
		Transport: "rest",
		Timeout:   5 * time.Second,
	}, shopify.WithBaseURL(ts.URL))
	e := NewExecutor(client, nil)

	raw := e.Execute(context.Background(), specFor("orders", "products", "customers"),
		"demo.myshopify.com", "live-token", false)

	assert.False(t, raw.IsMock)
	require.Len(t, raw.Data["orders"], 3)
	assert.Empty(t, raw.Data["products"], "failed resource becomes empty list")
	require.Len(t, raw.Data["customers"], 1, "siblings of the failed call still fetched")
	assert.Equal(t, 4, raw.RecordCount)
	assert.Equal(t, []string{"orders", "products", "customers"}, raw.Resources)
}
