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

// Classifier maps a free-text question onto an intent category plus extracted
// parameters. It never fails: when the gateway errors or returns unparseable
// output it falls back to keyword matching.
type Classifier struct {
	llm llm.Provider
}

func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{llm: provider}
}

// intentPayload is the wire shape of the gateway's classification output.
// Pointer fields distinguish "absent" from "explicitly empty" so defaults are
// only applied to genuinely missing fields.
type intentPayload struct {
	Intent     *string  `json:"intent"`
	TimePeriod *string  `json:"time_period"`
	Products   *string  `json:"products"`
	Metrics    []string `json:"metrics"`
	Confidence *string  `json:"confidence"`
}

func (c *Classifier) Classify(ctx context.Context, question string) IntentResult {
	prompt := fmt.Sprintf(llm.IntentClassifierPrompt, question)

	response, err := c.llm.Generate(ctx, prompt,
		llm.WithSystemPrompt(llm.IntentClassifierSystem),
		llm.WithTemperature(0.1), // favor deterministic classification
	)
	if err != nil {
		slog.Warn("Intent classification failed, using keyword fallback", "error", err)
		return keywordFallback(question)
	}

	payload, err := parseIntentPayload(response)
	if err != nil {
		slog.Warn("Could not parse classification output, using keyword fallback", "error", err)
		return keywordFallback(question)
	}

	return normalizeIntent(payload)
}

func parseIntentPayload(response string) (intentPayload, error) {
	raw, err := helpers.ExtractJSONBlock(response)
	if err != nil {
		return intentPayload{}, err
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return intentPayload{}, fmt.Errorf("decoding classification: %w", err)
	}
	return payload, nil
}

// normalizeIntent applies defaults in one pass. Unrecognized categories are
// coerced to general_query with confidence forced to low.
func normalizeIntent(p intentPayload) IntentResult {
	result := IntentResult{
		TimePeriod: "recent",
		Products:   "all",
		Metrics:    []string{"general"},
		Confidence: ConfidenceMedium,
	}

	if p.TimePeriod != nil {
		result.TimePeriod = *p.TimePeriod
	}
	if p.Products != nil {
		result.Products = *p.Products
	}
	if p.Metrics != nil {
		result.Metrics = p.Metrics
	}
	if p.Confidence != nil {
		result.Confidence = Confidence(*p.Confidence)
	}

	if p.Intent != nil {
		result.Intent = Intent(*p.Intent)
	}
	if !result.Intent.Valid() {
		result.Intent = IntentGeneralQuery
		result.Confidence = ConfidenceLow
	}

	return result
}

// keywordFallback picks an intent from question keywords when the gateway is
// unavailable, so obviously phrased questions still get a useful answer.
func keywordFallback(question string) IntentResult {
	lower := strings.ToLower(question)

	intent := IntentGeneralQuery
	confidence := ConfidenceLow

	switch {
	case containsAny(lower, "top", "best", "selling", "popular"):
		intent = IntentTopProducts
		confidence = ConfidenceMedium
	case containsAny(lower, "reorder", "need", "inventory", "stock"):
		intent = IntentInventoryProjection
		confidence = ConfidenceMedium
	case containsAny(lower, "customer", "repeat", "loyal"):
		intent = IntentCustomerBehavior
		confidence = ConfidenceMedium
	}

	return IntentResult{
		Intent:     intent,
		TimePeriod: "recent",
		Products:   "all",
		Metrics:    []string{"general"},
		Confidence: confidence,
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
