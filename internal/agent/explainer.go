package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/storewise/storewise/internal/helpers"
	"github.com/storewise/storewise/internal/llm"
)

const fallbackReason = "Template-based explanation used as fallback"

// Explainer renders processed metrics as a business-friendly answer. When the
// gateway fails or returns unparseable output it falls back to deterministic
// templates per intent category.
type Explainer struct {
	llm llm.Provider
}

func NewExplainer(provider llm.Provider) *Explainer {
	return &Explainer{llm: provider}
}

func (e *Explainer) Explain(ctx context.Context, question string, intent IntentResult, summary, calculations map[string]any) ExplanationResult {
	prompt := fmt.Sprintf(llm.ExplainerPrompt,
		question,
		intent.Intent,
		formatForPrompt(summary),
		formatForPrompt(calculations),
	)

	response, err := e.llm.Generate(ctx, prompt,
		llm.WithSystemPrompt(llm.ExplainerSystem),
		llm.WithTemperature(0.7), // favor natural phrasing
	)
	if err != nil {
		slog.Warn("Explanation generation failed, using template fallback", "intent", intent.Intent, "error", err)
		return templateExplanation(intent, summary, calculations)
	}

	result, err := parseExplanation(response)
	if err != nil {
		slog.Warn("Could not parse explanation, using template fallback", "intent", intent.Intent, "error", err)
		return templateExplanation(intent, summary, calculations)
	}

	return result
}

func parseExplanation(response string) (ExplanationResult, error) {
	raw, err := helpers.ExtractJSONBlock(response)
	if err != nil {
		return ExplanationResult{}, err
	}

	var result ExplanationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return ExplanationResult{}, fmt.Errorf("decoding explanation: %w", err)
	}

	if result.Answer == "" {
		result.Answer = "Unable to generate explanation"
	}
	if result.Insights == nil {
		result.Insights = []string{}
	}
	if result.Confidence == "" {
		result.Confidence = ConfidenceMedium
	}
	if result.ConfidenceReason == "" {
		result.ConfidenceReason = "Standard analysis"
	}

	return result, nil
}

// formatForPrompt serializes aggregates for the prompt. Non-finite values
// (days_of_inventory when nothing sells) are rendered as strings since JSON
// has no literal for them.
func formatForPrompt(m map[string]any) string {
	safe := make(map[string]any, len(m))
	for k, v := range m {
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			safe[k] = fmt.Sprintf("%v", f)
			continue
		}
		safe[k] = v
	}

	out, err := json.MarshalIndent(safe, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", m)
	}
	return string(out)
}

// templateExplanation builds a deterministic answer from the aggregates.
func templateExplanation(intent IntentResult, summary, calculations map[string]any) ExplanationResult {
	var answer string
	confidence := ConfidenceLow

	switch intent.Intent {
	case IntentInventoryProjection:
		dailyRate := numberFrom(summary, "daily_sales_rate")
		projectedNeed := numberFrom(calculations, "projected_units_needed")
		shortage := numberFrom(calculations, "shortage")

		if shortage > 0 {
			answer = fmt.Sprintf(
				"Based on your recent sales data, you sell approximately %v units per day. "+
					"To meet demand for the upcoming period, you'll need about %v units. "+
					"You should reorder at least %v units to avoid stockouts.",
				dailyRate, projectedNeed, shortage)
		} else {
			answer = fmt.Sprintf(
				"Based on your sales rate of %v units per day, your current inventory "+
					"should be sufficient for the upcoming period.",
				dailyRate)
		}
		confidence = ConfidenceMedium

	case IntentSalesAnalysis, IntentTopProducts:
		totalOrders := numberFrom(summary, "total_orders")
		totalRevenue := numberFrom(summary, "total_revenue")

		if names := topProductNames(summary, 3); len(names) > 0 {
			answer = fmt.Sprintf("Based on %v orders totaling $%v, your top selling products are: %s.",
				totalOrders, totalRevenue, strings.Join(names, ", "))
		} else {
			answer = fmt.Sprintf("Analyzed %v orders totaling $%v.", totalOrders, totalRevenue)
		}

		confidence = ConfidenceMedium
		if totalOrders > 10 {
			confidence = ConfidenceHigh
		}

	case IntentCustomerBehavior:
		repeatCustomers := numberFrom(summary, "repeat_customers")
		repeatRate := numberFrom(summary, "repeat_rate")

		answer = fmt.Sprintf("You have %v repeat customers, representing %v%% of your customer base.",
			repeatCustomers, repeatRate)
		confidence = ConfidenceMedium

	default:
		answer = "I've analyzed your data and found the requested information."
		confidence = ConfidenceLow
	}

	return ExplanationResult{
		Answer:           answer,
		Insights:         []string{},
		Confidence:       confidence,
		ConfidenceReason: fallbackReason,
	}
}

// numberFrom coerces a summary value to float64; aggregates may hold int,
// int64 or float64 depending on which routine produced them.
func numberFrom(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func topProductNames(summary map[string]any, limit int) []string {
	entries, ok := summary["top_products"].([]map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, limit)
	for _, entry := range entries {
		if len(names) == limit {
			break
		}
		if name, ok := entry["product"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}
