package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/storewise/storewise/internal/helpers"
	"github.com/storewise/storewise/internal/llm"
)

// Planner decides which store resources and fields are needed to answer the
// question. On gateway or parse failure it serves a hand-authored plan for the
// intent instead of failing the request.
type Planner struct {
	llm llm.Provider
}

func NewPlanner(provider llm.Provider) *Planner {
	return &Planner{llm: provider}
}

func (p *Planner) Plan(ctx context.Context, intent IntentResult, question string) Plan {
	prompt := fmt.Sprintf(llm.QueryPlannerPrompt,
		intent.Intent,
		intent.TimePeriod,
		intent.Products,
		strings.Join(intent.Metrics, ", "),
		question,
	)

	response, err := p.llm.Generate(ctx, prompt,
		llm.WithSystemPrompt(llm.QueryPlannerSystem),
		llm.WithTemperature(0.4),
	)
	if err != nil {
		slog.Warn("Query planning failed, using fallback plan", "intent", intent.Intent, "error", err)
		return fallbackPlan(intent.Intent)
	}

	plan, err := parsePlan(response)
	if err != nil {
		slog.Warn("Could not parse query plan, using fallback plan", "intent", intent.Intent, "error", err)
		return fallbackPlan(intent.Intent)
	}

	return normalizePlan(plan)
}

func parsePlan(response string) (Plan, error) {
	raw, err := helpers.ExtractJSONBlock(response)
	if err != nil {
		return Plan{}, err
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return Plan{}, fmt.Errorf("decoding query plan: %w", err)
	}
	return plan, nil
}

// normalizePlan backfills anything the gateway omitted. ResourcesNeeded must
// never be empty; the rest get generic defaults.
func normalizePlan(plan Plan) Plan {
	if plan.ShopifyQL == "" {
		plan.ShopifyQL = "SELECT * FROM orders"
	}
	if len(plan.ResourcesNeeded) == 0 {
		plan.ResourcesNeeded = []string{"orders"}
	}
	if plan.FieldsRequired == nil {
		plan.FieldsRequired = map[string][]string{}
	}
	if plan.PostProcessing == "" {
		plan.PostProcessing = "Aggregate and analyze data"
	}
	return plan
}

// fallbackPlans maps intent categories to hand-authored data needs. Intents
// without an entry fall back to the sales_analysis plan.
var fallbackPlans = map[Intent]Plan{
	IntentInventoryProjection: {
		ShopifyQL:       "SELECT * FROM orders JOIN inventory_levels",
		ResourcesNeeded: []string{"orders", "products", "inventory_levels"},
		FieldsRequired: map[string][]string{
			"orders":           {"created_at", "line_items", "quantity"},
			"inventory_levels": {"available", "product_id"},
		},
		PostProcessing: "Calculate daily sales rate and project future needs",
	},
	IntentSalesAnalysis: {
		ShopifyQL:       "SELECT * FROM orders",
		ResourcesNeeded: []string{"orders"},
		FieldsRequired: map[string][]string{
			"orders": {"created_at", "total_price", "line_items"},
		},
		PostProcessing: "Aggregate sales by time period",
	},
	IntentTopProducts: {
		ShopifyQL:       "SELECT product_id, SUM(quantity) FROM orders GROUP BY product_id",
		ResourcesNeeded: []string{"orders", "products"},
		FieldsRequired: map[string][]string{
			"orders":   {"line_items", "created_at"},
			"products": {"title", "id"},
		},
		PostProcessing: "Sum quantities and rank products",
	},
}

func fallbackPlan(intent Intent) Plan {
	plan, ok := fallbackPlans[intent]
	if !ok {
		plan = fallbackPlans[IntentSalesAnalysis]
	}
	return clonePlan(plan)
}

// clonePlan copies the slices and maps so callers can't mutate the shared
// fallback table.
func clonePlan(plan Plan) Plan {
	out := plan
	out.ResourcesNeeded = append([]string(nil), plan.ResourcesNeeded...)
	out.FieldsRequired = make(map[string][]string, len(plan.FieldsRequired))
	for resource, fields := range plan.FieldsRequired {
		out.FieldsRequired[resource] = append([]string(nil), fields...)
	}
	return out
}
