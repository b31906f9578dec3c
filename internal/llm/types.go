package llm

import "context"

// Provider is the text-generation gateway consumed by the agent pipeline.
type Provider interface {
	// Generate takes a user prompt and returns the raw model output.
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

type Option func(*Options)

type Options struct {
	Model        string
	SystemPrompt string
	MaxTokens    int64
	Temperature  float64
}

// WithSystemPrompt sets the system instructions for the call.
func WithSystemPrompt(p string) Option {
	return func(o *Options) { o.SystemPrompt = p }
}

// WithTemperature overrides the provider's default temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int64) Option {
	return func(o *Options) { o.MaxTokens = n }
}
