package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/storewise/storewise/apimodels"
	"github.com/storewise/storewise/internal/helpers"
	"github.com/storewise/storewise/internal/llm"
	"github.com/storewise/storewise/internal/metrics"
	"github.com/storewise/storewise/internal/shopify"
)

var errSpecNotExecutable = errors.New("generated query spec is not executable")

// Orchestrator sequences the pipeline stages in fixed forward order:
// classify, plan, generate spec, execute, process, explain. A low-confidence
// classification short-circuits to a clarification response; any failure past
// the stage-local fallbacks resolves to a graceful error envelope.
type Orchestrator struct {
	classifier *Classifier
	planner    *Planner
	executor   *Executor
	processor  *Processor
	explainer  *Explainer
}

func NewOrchestrator(provider llm.Provider, client *shopify.Client, fixtures *shopify.FixtureProvider) *Orchestrator {
	return &Orchestrator{
		classifier: NewClassifier(provider),
		planner:    NewPlanner(provider),
		executor:   NewExecutor(client, fixtures),
		processor:  NewProcessor(),
		explainer:  NewExplainer(provider),
	}
}

// Process answers one question. It always returns a well-formed envelope; a
// well-formed request can never produce a hard failure.
func (o *Orchestrator) Process(ctx context.Context, req apimodels.AnalyzeRequest) (resp apimodels.AnalyzeResponse) {
	start := time.Now()
	trail := []string{}

	defer func() {
		metrics.PipelineDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			slog.Error("Agent orchestration panicked", "panic", r)
			resp = errorResponse(fmt.Errorf("%v", r), trail)
		}
	}()

	resp, err := o.run(ctx, req, start, &trail)
	if err != nil {
		slog.Error("Agent orchestration error", "error", err)
		return errorResponse(err, trail)
	}
	return resp
}

func (o *Orchestrator) run(ctx context.Context, req apimodels.AnalyzeRequest, start time.Time, trail *[]string) (apimodels.AnalyzeResponse, error) {
	slog.Info("Classifying intent", "question", req.Question)
	intent := o.classifier.Classify(ctx, req.Question)
	*trail = append(*trail, fmt.Sprintf("Classified as: %s", intent.Intent))
	metrics.IntentsClassified.WithLabelValues(string(intent.Intent)).Inc()

	if intent.Confidence == ConfidenceLow {
		metrics.RequestsTotal.WithLabelValues("ambiguous").Inc()
		return ambiguousResponse(intent), nil
	}

	slog.Info("Planning query", "intent", intent.Intent)
	plan := o.planner.Plan(ctx, intent, req.Question)
	*trail = append(*trail, fmt.Sprintf("Need data from: %s", strings.Join(plan.ResourcesNeeded, ", ")))

	slog.Info("Generating query spec")
	spec := GenerateSpec(plan, intent)
	if !ValidateSpec(spec) {
		return apimodels.AnalyzeResponse{}, errSpecNotExecutable
	}
	*trail = append(*trail, "Generated query plan")

	slog.Info("Executing queries", "mock", req.UseMock || req.AccessToken == "")
	raw := o.executor.Execute(ctx, spec, req.StoreID, req.AccessToken, req.UseMock)
	*trail = append(*trail, fmt.Sprintf("Retrieved %d data points", raw.RecordCount))
	metrics.DataPointsAnalyzed.Add(float64(raw.RecordCount))

	slog.Info("Processing results", "records", raw.RecordCount)
	processed := o.processor.Process(raw, intent, plan)
	*trail = append(*trail, "Calculated metrics and insights")

	slog.Info("Generating explanation")
	explanation := o.explainer.Explain(ctx, req.Question, intent, processed.Summary, processed.Calculations)

	metrics.RequestsTotal.WithLabelValues("answered").Inc()

	query := spec.ShopifyQL
	if query == "" {
		query = "N/A"
	}

	return apimodels.AnalyzeResponse{
		Answer:       explanation.Answer,
		Confidence:   string(explanation.Confidence),
		ShopifyQuery: helpers.Ptr(query),
		Reasoning:    *trail,
		Metadata: map[string]any{
			"execution_time":       fmt.Sprintf("%.2fs", time.Since(start).Seconds()),
			"data_points_analyzed": raw.RecordCount,
			"intent":               string(intent.Intent),
			"confidence_reason":    explanation.ConfidenceReason,
		},
	}, nil
}

// ambiguousResponse asks the user for the details a confident analysis would
// need. Triggered solely by low-confidence classification.
func ambiguousResponse(intent IntentResult) apimodels.AnalyzeResponse {
	var clarifications []string
	if intent.TimePeriod == "" {
		clarifications = append(clarifications, "- What time period are you interested in?")
	}
	if intent.Products == "" {
		clarifications = append(clarifications, "- Which products should I analyze?")
	}

	clarificationText := "the specific metrics or products you're interested in"
	if len(clarifications) > 0 {
		clarificationText = strings.Join(clarifications, "\n")
	}

	return apimodels.AnalyzeResponse{
		Answer: fmt.Sprintf(
			"I'd like to help, but I need a bit more information. Could you clarify:\n%s\n\n"+
				"For example: 'What were the top 5 selling products last month?'",
			clarificationText),
		Confidence:   string(ConfidenceLow),
		ShopifyQuery: nil,
		Reasoning:    []string{"Question too ambiguous for confident analysis"},
		Metadata: map[string]any{
			"requires_clarification": true,
		},
	}
}

// errorResponse is the terminal ERROR envelope. It must never itself fail.
func errorResponse(err error, trail []string) apimodels.AnalyzeResponse {
	metrics.RequestsTotal.WithLabelValues("error").Inc()

	return apimodels.AnalyzeResponse{
		Answer: fmt.Sprintf(
			"I encountered an issue processing your question: %v. "+
				"Please try rephrasing your question or contact support.", err),
		Confidence:   string(ConfidenceLow),
		ShopifyQuery: nil,
		Reasoning:    append(append([]string(nil), trail...), fmt.Sprintf("Error: %v", err)),
		Metadata: map[string]any{
			"error":          err.Error(),
			"execution_time": "N/A",
		},
	}
}
