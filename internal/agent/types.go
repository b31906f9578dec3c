// Package agent implements the six-stage analytics pipeline: classify intent,
// plan required data, generate a query spec, execute it, aggregate metrics,
// and explain the result in business language.
package agent

import "github.com/storewise/storewise/internal/shopify"

// Intent is one of the fixed classification categories assigned to a question.
type Intent string

const (
	IntentInventoryProjection     Intent = "inventory_projection"
	IntentInventoryStatus         Intent = "inventory_status"
	IntentSalesAnalysis           Intent = "sales_analysis"
	IntentTopProducts             Intent = "top_products"
	IntentCustomerBehavior        Intent = "customer_behavior"
	IntentCustomerRetention       Intent = "customer_retention"
	IntentReorderRecommendations  Intent = "reorder_recommendations"
	IntentGeneralQuery            Intent = "general_query"
)

var validIntents = map[Intent]struct{}{
	IntentInventoryProjection:    {},
	IntentInventoryStatus:        {},
	IntentSalesAnalysis:          {},
	IntentTopProducts:            {},
	IntentCustomerBehavior:       {},
	IntentCustomerRetention:      {},
	IntentReorderRecommendations: {},
	IntentGeneralQuery:           {},
}

// Valid reports whether i is one of the recognized categories.
func (i Intent) Valid() bool {
	_, ok := validIntents[i]
	return ok
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// IntentResult is the classifier's output. After normalization every field is
// populated and Intent is always a recognized category.
type IntentResult struct {
	Intent     Intent     `json:"intent"`
	TimePeriod string     `json:"time_period"`
	Products   string     `json:"products"`
	Metrics    []string   `json:"metrics"`
	Confidence Confidence `json:"confidence"`
}

// Plan describes which store resources and fields are needed. ResourcesNeeded
// is never empty after normalization.
type Plan struct {
	ShopifyQL       string              `json:"shopifyql"`
	ResourcesNeeded []string            `json:"resources_needed"`
	FieldsRequired  map[string][]string `json:"fields_required"`
	PostProcessing  string              `json:"post_processing"`
}

// APICall is one concrete fetch operation against a store resource.
type APICall struct {
	Resource string            `json:"resource"`
	Method   string            `json:"method"`
	Fields   []string          `json:"fields"`
	Filters  map[string]string `json:"filters"`
}

// QuerySpec is the resource-by-resource fetch plan derived from a Plan and an
// IntentResult.
type QuerySpec struct {
	ShopifyQL      string            `json:"shopifyql"`
	APICalls       []APICall         `json:"api_calls"`
	Filters        map[string]string `json:"filters"`
	Aggregations   []string          `json:"aggregations"`
	PostProcessing string            `json:"post_processing"`
}

// RawData holds the fetched record sets keyed by resource name.
type RawData struct {
	Data        map[string]shopify.Records
	RecordCount int
	Resources   []string
	IsMock      bool
}

// ProcessedResult carries the aggregates computed for one intent family.
// Insights is reserved for future enrichment and currently always empty.
type ProcessedResult struct {
	Summary      map[string]any
	Calculations map[string]any
	Insights     []string
}

// ExplanationResult is the explainer's output, always fully populated.
type ExplanationResult struct {
	Answer           string     `json:"answer"`
	Insights         []string   `json:"insights"`
	Confidence       Confidence `json:"confidence"`
	ConfidenceReason string     `json:"confidence_reason"`
}
