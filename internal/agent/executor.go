package agent

import (
	"context"
	"log/slog"

	"github.com/storewise/storewise/internal/shopify"
)

// Executor runs a query spec against either the live Admin API or the
// synthetic fixture provider, merging the results into one record set per
// resource.
type Executor struct {
	client   *shopify.Client
	fixtures *shopify.FixtureProvider
}

func NewExecutor(client *shopify.Client, fixtures *shopify.FixtureProvider) *Executor {
	return &Executor{client: client, fixtures: fixtures}
}

// Execute routes to fixtures when mock mode is requested or no credential is
// supplied; otherwise it fetches live. A failing live fetch for one resource
// is substituted with an empty list and never blocks the remaining calls.
func (e *Executor) Execute(ctx context.Context, spec QuerySpec, storeID, accessToken string, useMock bool) RawData {
	if useMock || accessToken == "" {
		slog.Info("Executing query spec against fixtures", "calls", len(spec.APICalls))
		return e.executeMock(spec)
	}
	slog.Info("Executing query spec against Shopify Admin API", "store", storeID, "calls", len(spec.APICalls))
	return e.executeLive(ctx, spec, storeID, accessToken)
}

func (e *Executor) executeMock(spec QuerySpec) RawData {
	data := make(map[string]shopify.Records, len(spec.APICalls))
	resources := make([]string, 0, len(spec.APICalls))

	for _, call := range spec.APICalls {
		var records shopify.Records
		switch call.Resource {
		case "orders":
			records = e.fixtures.Orders(spec.Filters)
		case "products":
			records = e.fixtures.Products(spec.Filters)
		case "inventory_levels":
			records = e.fixtures.Inventory(spec.Filters)
		case "customers":
			records = e.fixtures.Customers(spec.Filters)
		default:
			records = shopify.Records{}
		}

		if _, seen := data[call.Resource]; !seen {
			resources = append(resources, call.Resource)
		}
		data[call.Resource] = records
	}

	return RawData{
		Data:        data,
		RecordCount: countRecords(data),
		Resources:   resources,
		IsMock:      true,
	}
}

func (e *Executor) executeLive(ctx context.Context, spec QuerySpec, storeID, accessToken string) RawData {
	data := make(map[string]shopify.Records, len(spec.APICalls))
	resources := make([]string, 0, len(spec.APICalls))

	for _, call := range spec.APICalls {
		records, err := e.client.Fetch(ctx, storeID, accessToken, call.Resource, call.Filters)
		if err != nil {
			// Partial-failure isolation: one bad resource never aborts the
			// remaining calls.
			slog.Error("Error fetching resource, substituting empty list", "resource", call.Resource, "error", err)
			records = shopify.Records{}
		}

		if _, seen := data[call.Resource]; !seen {
			resources = append(resources, call.Resource)
		}
		data[call.Resource] = records
	}

	return RawData{
		Data:        data,
		RecordCount: countRecords(data),
		Resources:   resources,
		IsMock:      false,
	}
}

// countRecords totals processed records across the merged record sets, so
// duplicate calls for the same resource are not counted twice.
func countRecords(data map[string]shopify.Records) int {
	total := 0
	for _, records := range data {
		total += len(records)
	}
	return total
}
