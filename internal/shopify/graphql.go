package shopify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Khan/genqlient/graphql"
)

// Admin GraphQL queries per resource. Field aliases map the GraphQL schema
// onto the snake_case record keys the pipeline aggregates over, so REST and
// GraphQL fetches are interchangeable downstream.
var graphqlQueries = map[string]string{
	"orders": `query Orders($first: Int!) {
  orders(first: $first) {
    nodes {
      id
      created_at: createdAt
      total_price: totalPrice
      customer_id: customerId
      line_items: lineItems {
        product_id: productId
        title
        quantity
        price
      }
    }
  }
}`,
	"products": `query Products($first: Int!) {
  products(first: $first) {
    nodes {
      id
      title
      price
      sku
    }
  }
}`,
	"inventory_levels": `query InventoryLevels($first: Int!) {
  inventory_levels: inventoryLevels(first: $first) {
    nodes {
      product_id: productId
      location_id: locationId
      available
    }
  }
}`,
	"customers": `query Customers($first: Int!) {
  customers(first: $first) {
    nodes {
      id
      first_name: firstName
      last_name: lastName
      email
      orders_count: ordersCount
    }
  }
}`,
}

func (c *Client) fetchGraphQL(ctx context.Context, storeID, accessToken, resource string) (Records, error) {
	query, ok := graphqlQueries[resource]
	if !ok {
		return nil, fmt.Errorf("unsupported resource: %s", resource)
	}

	endpoint := c.baseURL(storeID) + "/graphql.json"
	gql := graphql.NewClient(endpoint, &http.Client{
		Timeout:   c.cfg.Timeout,
		Transport: &tokenTransport{token: accessToken},
	})

	slog.Debug("Executing Admin GraphQL query", "resource", resource, "endpoint", endpoint)

	req := graphql.Request{
		Query:     query,
		Variables: map[string]any{"first": 250},
	}
	var payload map[string]any
	resp := graphql.Response{Data: &payload}

	if err := gql.MakeRequest(ctx, &req, &resp); err != nil {
		return nil, fmt.Errorf("shopify graphql query failed: %w", err)
	}

	wrapper, _ := payload[resource].(map[string]any)
	return normalizeList(wrapper["nodes"]), nil
}

// tokenTransport attaches the store access token to every GraphQL request.
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Shopify-Access-Token", t.token)
	return http.DefaultTransport.RoundTrip(req)
}
