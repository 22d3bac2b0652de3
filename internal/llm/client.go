// Package llm abstracts the text generation service behind a small client
// interface so the pipeline can run against Anthropic, any OpenAI-compatible
// endpoint, or a scripted test double.
package llm

import "context"

// Request is one completion call. Temperature and TopP are passed through
// unchanged; MaxTokens must be positive.
type Request struct {
	System      string
	User        string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Client sends a Request to a generation backend and returns the text reply.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
