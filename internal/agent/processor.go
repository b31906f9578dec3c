package agent

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/storewise/storewise/internal/shopify"
)

// Processor turns raw record sets into summary statistics and derived
// calculations. It is pure: no gateway calls, everything is in-memory
// aggregation routed by intent family.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (p *Processor) Process(raw RawData, intent IntentResult, plan Plan) ProcessedResult {
	switch intent.Intent {
	case IntentInventoryProjection, IntentReorderRecommendations:
		return p.processInventoryProjection(raw.Data, intent)
	case IntentSalesAnalysis, IntentTopProducts:
		return p.processSalesAnalysis(raw.Data, intent)
	case IntentCustomerBehavior, IntentCustomerRetention:
		return p.processCustomerBehavior(raw.Data, intent)
	default:
		return p.processGeneral(raw.Data, intent)
	}
}

// processInventoryProjection derives a daily sales rate from order line items,
// projects demand over the requested window and compares it to current stock.
func (p *Processor) processInventoryProjection(data map[string]shopify.Records, intent IntentResult) ProcessedResult {
	orders := data["orders"]
	inventory := data["inventory_levels"]

	var totalUnits int64
	for _, order := range orders {
		for _, item := range order.List("line_items") {
			totalUnits += item.Int("quantity")
		}
	}

	var dailyRate float64
	if len(orders) > 0 {
		days := daysFromPeriod(intent.TimePeriod)
		if days < 1 {
			days = 1
		}
		dailyRate = float64(totalUnits) / float64(days)
	}

	var currentStock int64
	for _, inv := range inventory {
		currentStock += inv.Int("available")
	}

	projectionDays := projectionDaysFromPeriod(intent.TimePeriod)
	projectedNeed := dailyRate * float64(projectionDays)
	shortage := math.Max(0, projectedNeed-float64(currentStock))

	daysOfInventory := math.Inf(1)
	if dailyRate > 0 {
		daysOfInventory = round1(float64(currentStock) / dailyRate)
	}

	recommendation := "sufficient_stock"
	if shortage > 0 {
		recommendation = "reorder"
	}

	return ProcessedResult{
		Summary: map[string]any{
			"total_units_sold":  totalUnits,
			"daily_sales_rate":  round2(dailyRate),
			"current_stock":     currentStock,
			"days_of_inventory": daysOfInventory,
		},
		Calculations: map[string]any{
			"projection_period_days": projectionDays,
			"projected_units_needed": math.Round(projectedNeed),
			"shortage":               math.Round(shortage),
			"recommendation":         recommendation,
		},
		Insights: []string{},
	}
}

// processSalesAnalysis ranks products by units sold across all order line
// items and reports totals plus the top five.
func (p *Processor) processSalesAnalysis(data map[string]shopify.Records, intent IntentResult) ProcessedResult {
	orders := data["orders"]
	products := data["products"]

	if len(orders) == 0 {
		return emptyResult()
	}

	type productTotals struct {
		quantity int64
		revenue  float64
	}
	totals := map[int64]*productTotals{}
	seenOrder := []int64{} // first-seen order keeps ranking stable on ties

	var totalRevenue float64
	for _, order := range orders {
		totalRevenue += order.Float("total_price")
		for _, item := range order.List("line_items") {
			productID := item.Int("product_id")
			quantity := item.Int("quantity")
			price := item.Float("price")

			t, ok := totals[productID]
			if !ok {
				t = &productTotals{}
				totals[productID] = t
				seenOrder = append(seenOrder, productID)
			}
			t.quantity += quantity
			t.revenue += float64(quantity) * price
		}
	}

	ranked := append([]int64(nil), seenOrder...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return totals[ranked[i]].quantity > totals[ranked[j]].quantity
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	titles := map[int64]string{}
	for _, product := range products {
		titles[product.Int("id")] = product.Str("title")
	}

	topList := make([]map[string]any, 0, len(ranked))
	for _, id := range ranked {
		title, ok := titles[id]
		if !ok || title == "" {
			title = fmt.Sprintf("Product %d", id)
		}
		topList = append(topList, map[string]any{
			"product":  title,
			"quantity": totals[id].quantity,
			"revenue":  totals[id].revenue,
		})
	}

	totalOrders := len(orders)
	avgOrderValue := 0.0
	if totalOrders > 0 {
		avgOrderValue = round2(totalRevenue / float64(totalOrders))
	}

	return ProcessedResult{
		Summary: map[string]any{
			"total_orders":  totalOrders,
			"total_revenue": round2(totalRevenue),
			"top_products":  topList,
		},
		Calculations: map[string]any{
			"average_order_value": avgOrderValue,
			"products_analyzed":   len(totals),
		},
		Insights: []string{},
	}
}

// processCustomerBehavior counts orders per customer; a customer is "repeat"
// when they placed more than one order. Orders without a customer id are
// excluded.
func (p *Processor) processCustomerBehavior(data map[string]shopify.Records, intent IntentResult) ProcessedResult {
	orders := data["orders"]

	orderCounts := map[int64]int{}
	for _, order := range orders {
		customerID := order.Int("customer_id")
		if customerID == 0 {
			continue
		}
		orderCounts[customerID]++
	}

	repeatCustomers := 0
	for _, count := range orderCounts {
		if count > 1 {
			repeatCustomers++
		}
	}
	totalCustomers := len(orderCounts)

	repeatRate := 0.0
	avgOrders := 0.0
	if totalCustomers > 0 {
		repeatRate = round1(float64(repeatCustomers) / float64(totalCustomers) * 100)
		avgOrders = round2(float64(len(orders)) / float64(totalCustomers))
	}

	return ProcessedResult{
		Summary: map[string]any{
			"total_customers":  totalCustomers,
			"repeat_customers": repeatCustomers,
			"repeat_rate":      repeatRate,
		},
		Calculations: map[string]any{
			"average_orders_per_customer": avgOrders,
		},
		Insights: []string{},
	}
}

func (p *Processor) processGeneral(data map[string]shopify.Records, intent IntentResult) ProcessedResult {
	total := 0
	for _, records := range data {
		total += len(records)
	}

	return ProcessedResult{
		Summary: map[string]any{
			"records_found": total,
		},
		Calculations: map[string]any{},
		Insights:     []string{},
	}
}

func emptyResult() ProcessedResult {
	return ProcessedResult{
		Summary:      map[string]any{"message": "No data found"},
		Calculations: map[string]any{},
		Insights:     []string{},
	}
}

// daysFromPeriod extracts a day count from a free-text period string. The
// first matching unit wins; all digit runs in the string are concatenated
// before parsing ("2 weeks" -> 2, "last 30 days" -> 30).
func daysFromPeriod(period string) int {
	lower := strings.ToLower(period)
	digits := digitsIn(period)

	switch {
	case strings.Contains(lower, "week"):
		return atoiDefault(digits, 1) * 7
	case strings.Contains(lower, "month"):
		return atoiDefault(digits, 1) * 30
	case strings.Contains(lower, "day"):
		return atoiDefault(digits, 30)
	default:
		return 30
	}
}

// projectionDaysFromPeriod determines the forward-looking window: a period
// mentioning "next" has the word stripped and the remainder reparsed as a day
// count; anything else projects one week ahead.
func projectionDaysFromPeriod(period string) int {
	if strings.Contains(strings.ToLower(period), "next") {
		return daysFromPeriod(strings.ReplaceAll(period, "next", ""))
	}
	return 7
}

func digitsIn(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
