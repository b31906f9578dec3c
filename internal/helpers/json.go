package helpers

import (
	"errors"
	"strings"
)

// ErrUnterminatedFence is returned when a code fence is opened but never closed.
var ErrUnterminatedFence = errors.New("unterminated code fence")

// ExtractJSONBlock returns the JSON payload from an LLM response. Models often
// wrap JSON in a markdown code fence; we look for a ```json fence first, then a
// generic ``` fence, and otherwise treat the whole response as raw JSON.
func ExtractJSONBlock(s string) (string, error) {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		return insideFence(s[idx+len("```json"):])
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		return insideFence(s[idx+len("```"):])
	}
	return strings.TrimSpace(s), nil
}

func insideFence(rest string) (string, error) {
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", ErrUnterminatedFence
	}
	return strings.TrimSpace(rest[:end]), nil
}
