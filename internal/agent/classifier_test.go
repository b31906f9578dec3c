package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storewise/storewise/internal/llm"
)

// stubLLM returns a fixed response or error for every call.
type stubLLM struct {
	response string
	err      error
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.response, s.err
}

// scriptedLLM pops one response per call, in order. It errors once the script
// runs out.
type scriptedLLM struct {
	responses []string
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	if len(s.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func TestClassifyParsesFencedJSON(t *testing.T) {
	c := NewClassifier(&stubLLM{response: "```json\n" +
		`{"intent": "top_products", "time_period": "last month", "products": "all", "metrics": ["units", "revenue"], "confidence": "high"}` +
		"\n```"})

	result := c.Classify(context.Background(), "What are my top selling products?")

	assert.Equal(t, IntentTopProducts, result.Intent)
	assert.Equal(t, "last month", result.TimePeriod)
	assert.Equal(t, "all", result.Products)
	assert.Equal(t, []string{"units", "revenue"}, result.Metrics)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
}

func TestClassifyBackfillsMissingFields(t *testing.T) {
	c := NewClassifier(&stubLLM{response: `{"intent": "sales_analysis"}`})

	result := c.Classify(context.Background(), "How are sales?")

	assert.Equal(t, IntentSalesAnalysis, result.Intent)
	assert.Equal(t, "recent", result.TimePeriod)
	assert.Equal(t, "all", result.Products)
	assert.Equal(t, []string{"general"}, result.Metrics)
	assert.Equal(t, ConfidenceMedium, result.Confidence)
}

func TestClassifyCoercesUnknownIntent(t *testing.T) {
	c := NewClassifier(&stubLLM{response: `{"intent": "world_domination", "confidence": "high"}`})

	result := c.Classify(context.Background(), "Take over the world")

	assert.Equal(t, IntentGeneralQuery, result.Intent)
	assert.Equal(t, ConfidenceLow, result.Confidence)
}

func TestClassifyAlwaysReturnsRecognizedIntent(t *testing.T) {
	providers := []llm.Provider{
		&stubLLM{response: `{"intent": "nonsense"}`},
		&stubLLM{response: "not json at all"},
		&stubLLM{response: "```json\n{\"intent\":"},
		&stubLLM{err: errors.New("gateway down")},
	}

	for _, p := range providers {
		result := NewClassifier(p).Classify(context.Background(), "anything")
		assert.True(t, result.Intent.Valid(), "intent %q must be recognized", result.Intent)
	}
}

func TestClassifyKeywordFallback(t *testing.T) {
	tests := []struct {
		question   string
		intent     Intent
		confidence Confidence
	}{
		{"What are my best selling products?", IntentTopProducts, ConfidenceMedium},
		{"Do I need to reorder stock?", IntentInventoryProjection, ConfidenceMedium},
		{"How loyal are my customers?", IntentCustomerBehavior, ConfidenceMedium},
		{"asdf", IntentGeneralQuery, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			c := NewClassifier(&stubLLM{err: errors.New("gateway down")})
			result := c.Classify(context.Background(), tt.question)

			assert.Equal(t, tt.intent, result.Intent)
			assert.Equal(t, tt.confidence, result.Confidence)
			assert.Equal(t, "recent", result.TimePeriod)
			assert.Equal(t, "all", result.Products)
		})
	}
}

func TestClassifyUnparseableOutputFallsBack(t *testing.T) {
	c := NewClassifier(&stubLLM{response: "Sure! Your top products are probably coffee."})

	// "top" and "products" in the question steer the keyword fallback.
	result := c.Classify(context.Background(), "What are my top products?")
	assert.Equal(t, IntentTopProducts, result.Intent)
	assert.Equal(t, ConfidenceMedium, result.Confidence)
}
