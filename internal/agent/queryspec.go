package agent

// Query-spec generation is pure: it turns a Plan plus the classified intent
// into concrete per-resource fetch operations. No gateway call is involved.

// aggregationTags maps each intent category to the aggregation kinds the
// processor will need. Unmatched categories default to sum/count.
var aggregationTags = map[Intent][]string{
	IntentInventoryProjection:    {"sum", "average", "trend"},
	IntentSalesAnalysis:          {"sum", "count", "average"},
	IntentTopProducts:            {"sum", "count", "rank"},
	IntentCustomerBehavior:       {"count", "frequency"},
	IntentReorderRecommendations: {"average", "projection"},
}

// GenerateSpec emits one list call per planned resource, in plan order. Orders
// and customers calls carry the intent's time period as a fetch filter.
func GenerateSpec(plan Plan, intent IntentResult) QuerySpec {
	apiCalls := make([]APICall, 0, len(plan.ResourcesNeeded))
	for _, resource := range plan.ResourcesNeeded {
		call := APICall{
			Resource: resource,
			Method:   "list",
			Fields:   plan.FieldsRequired[resource],
			Filters:  map[string]string{},
		}
		if call.Fields == nil {
			call.Fields = []string{}
		}

		if intent.TimePeriod != "" && (resource == "orders" || resource == "customers") {
			call.Filters["time_filter"] = intent.TimePeriod
		}

		apiCalls = append(apiCalls, call)
	}

	return QuerySpec{
		ShopifyQL:      plan.ShopifyQL,
		APICalls:       apiCalls,
		Filters:        extractFilters(intent),
		Aggregations:   aggregationsFor(intent.Intent),
		PostProcessing: plan.PostProcessing,
	}
}

func extractFilters(intent IntentResult) map[string]string {
	filters := map[string]string{}
	if intent.TimePeriod != "" {
		filters["time_period"] = intent.TimePeriod
	}
	if intent.Products != "all" {
		filters["products"] = intent.Products
	}
	return filters
}

func aggregationsFor(intent Intent) []string {
	tags, ok := aggregationTags[intent]
	if !ok {
		tags = []string{"sum", "count"}
	}
	return append([]string(nil), tags...)
}

// ValidateSpec reports whether a spec is executable: it must carry at least
// one call and every call must name a resource.
func ValidateSpec(spec QuerySpec) bool {
	if len(spec.APICalls) == 0 {
		return false
	}
	for _, call := range spec.APICalls {
		if call.Resource == "" {
			return false
		}
	}
	return true
}
