package shopify

import (
	"fmt"
	"math/rand"
	"time"
)

// FixtureProvider serves synthetic store data for requests without a live
// credential. Fixtures are generated once at construction from a fixed seed
// and never mutated, so the provider is safe to share across requests.
type FixtureProvider struct {
	products  Records
	orders    Records
	inventory Records
	customers Records
}

const fixtureSeed = 7

func NewFixtureProvider() *FixtureProvider {
	rng := rand.New(rand.NewSource(fixtureSeed))

	p := &FixtureProvider{}
	p.products = fixtureProducts()
	p.orders = fixtureOrders(rng, time.Now(), p.products)
	p.inventory = fixtureInventory(rng, p.products)
	p.customers = fixtureCustomers(rng)
	return p
}

// Orders returns the synthetic order history. Filters are accepted for
// interface parity with the live client but not applied.
func (p *FixtureProvider) Orders(filters map[string]string) Records { return p.orders }

func (p *FixtureProvider) Products(filters map[string]string) Records { return p.products }

func (p *FixtureProvider) Inventory(filters map[string]string) Records { return p.inventory }

func (p *FixtureProvider) Customers(filters map[string]string) Records { return p.customers }

func fixtureProducts() Records {
	return Records{
		{"id": int64(1001), "title": "Premium Organic Coffee Beans", "price": 24.99, "sku": "COFFEE-001"},
		{"id": int64(1002), "title": "Stainless Steel Travel Mug", "price": 19.99, "sku": "MUG-002"},
		{"id": int64(1003), "title": "Artisan Dark Chocolate Bar", "price": 8.99, "sku": "CHOC-003"},
		{"id": int64(1004), "title": "Organic Green Tea Set", "price": 32.99, "sku": "TEA-004"},
		{"id": int64(1005), "title": "Ceramic Coffee Grinder", "price": 45.99, "sku": "GRIND-005"},
	}
}

// fixtureOrders spreads 45 orders over the 30 days before now across 20
// customers.
func fixtureOrders(rng *rand.Rand, now time.Time, products Records) Records {
	orders := make(Records, 0, 45)

	for i := 0; i < 45; i++ {
		daysAgo := rng.Intn(31)
		orderDate := now.AddDate(0, 0, -daysAgo)

		numItems := 1 + rng.Intn(3)
		lineItems := make([]Record, 0, numItems)
		total := 0.0

		for j := 0; j < numItems; j++ {
			product := products[rng.Intn(len(products))]
			quantity := int64(1 + rng.Intn(5))
			price := product.Float("price")

			lineItems = append(lineItems, Record{
				"product_id": product.Int("id"),
				"title":      product.Str("title"),
				"quantity":   quantity,
				"price":      price,
			})
			total += price * float64(quantity)
		}

		orders = append(orders, Record{
			"id":          int64(2000 + i),
			"created_at":  orderDate.Format(time.RFC3339),
			"total_price": roundCents(total),
			"customer_id": int64(3000 + rng.Intn(21)),
			"line_items":  lineItems,
		})
	}

	return orders
}

func fixtureInventory(rng *rand.Rand, products Records) Records {
	stockLevels := []int64{5, 12, 25, 45, 100, 15, 8, 30}

	inventory := make(Records, 0, len(products))
	for _, product := range products {
		inventory = append(inventory, Record{
			"product_id":  product.Int("id"),
			"location_id": int64(5000),
			"available":   stockLevels[rng.Intn(len(stockLevels))],
		})
	}
	return inventory
}

func fixtureCustomers(rng *rand.Rand) Records {
	firstNames := []string{"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry"}
	lastNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller"}

	customers := make(Records, 0, 20)
	for i := 0; i < 20; i++ {
		customers = append(customers, Record{
			"id":           int64(3000 + i),
			"first_name":   firstNames[rng.Intn(len(firstNames))],
			"last_name":    lastNames[rng.Intn(len(lastNames))],
			"email":        fmt.Sprintf("customer%d@example.com", i),
			"orders_count": int64(1 + rng.Intn(5)),
		})
	}
	return customers
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
