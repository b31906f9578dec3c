package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSpecOneCallPerResource(t *testing.T) {
	plan := Plan{
		ShopifyQL:       "FROM orders SHOW sum(quantity)",
		ResourcesNeeded: []string{"orders", "products", "inventory_levels"},
		FieldsRequired: map[string][]string{
			"orders": {"line_items", "created_at"},
		},
	}
	intent := IntentResult{Intent: IntentInventoryProjection, TimePeriod: "last 30 days", Products: "all"}

	spec := GenerateSpec(plan, intent)

	require.Len(t, spec.APICalls, 3)
	for i, resource := range plan.ResourcesNeeded {
		assert.Equal(t, resource, spec.APICalls[i].Resource, "call order follows plan order")
		assert.Equal(t, "list", spec.APICalls[i].Method)
	}

	assert.Equal(t, []string{"line_items", "created_at"}, spec.APICalls[0].Fields)
	assert.Equal(t, []string{}, spec.APICalls[1].Fields, "unplanned fields default to empty")
	assert.Equal(t, plan.ShopifyQL, spec.ShopifyQL)
}

func TestGenerateSpecTimeFilterOnlyForOrdersAndCustomers(t *testing.T) {
	plan := Plan{ResourcesNeeded: []string{"orders", "products", "customers", "inventory_levels"}}
	intent := IntentResult{Intent: IntentSalesAnalysis, TimePeriod: "last week", Products: "all"}

	spec := GenerateSpec(plan, intent)

	assert.Equal(t, "last week", spec.APICalls[0].Filters["time_filter"])
	assert.Empty(t, spec.APICalls[1].Filters)
	assert.Equal(t, "last week", spec.APICalls[2].Filters["time_filter"])
	assert.Empty(t, spec.APICalls[3].Filters)
}

func TestGenerateSpecTopLevelFilters(t *testing.T) {
	plan := Plan{ResourcesNeeded: []string{"orders"}}

	spec := GenerateSpec(plan, IntentResult{Intent: IntentSalesAnalysis, TimePeriod: "last month", Products: "all"})
	assert.Equal(t, map[string]string{"time_period": "last month"}, spec.Filters)

	spec = GenerateSpec(plan, IntentResult{Intent: IntentSalesAnalysis, Products: "coffee beans"})
	assert.Equal(t, map[string]string{"products": "coffee beans"}, spec.Filters)
}

func TestGenerateSpecAggregations(t *testing.T) {
	plan := Plan{ResourcesNeeded: []string{"orders"}}

	tests := []struct {
		intent Intent
		want   []string
	}{
		{IntentInventoryProjection, []string{"sum", "average", "trend"}},
		{IntentSalesAnalysis, []string{"sum", "count", "average"}},
		{IntentTopProducts, []string{"sum", "count", "rank"}},
		{IntentCustomerBehavior, []string{"count", "frequency"}},
		{IntentReorderRecommendations, []string{"average", "projection"}},
		{IntentGeneralQuery, []string{"sum", "count"}},
		{IntentInventoryStatus, []string{"sum", "count"}},
	}

	for _, tt := range tests {
		spec := GenerateSpec(plan, IntentResult{Intent: tt.intent, Products: "all"})
		assert.Equal(t, tt.want, spec.Aggregations, "intent %s", tt.intent)
	}
}

func TestValidateSpec(t *testing.T) {
	valid := QuerySpec{APICalls: []APICall{{Resource: "orders"}}}
	assert.True(t, ValidateSpec(valid))

	assert.False(t, ValidateSpec(QuerySpec{}), "no api calls")
	assert.False(t, ValidateSpec(QuerySpec{APICalls: []APICall{{Resource: "orders"}, {}}}),
		"every call needs a resource")
}
