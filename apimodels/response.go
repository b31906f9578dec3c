package apimodels

type AnalyzeResponse struct {
	// Business-friendly answer to the question
	Answer string `json:"answer"`

	// Confidence level: low, medium or high
	Confidence string `json:"confidence"`

	// Advisory ShopifyQL-style query, nil when the pipeline never produced one
	ShopifyQuery *string `json:"shopify_query"`

	// Ordered reasoning trail accumulated while processing
	Reasoning []string `json:"reasoning"`

	// Metadata about the analysis (execution time, data points, intent, ...)
	Metadata map[string]any `json:"metadata"`
}
