package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-haiku-20240307"

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey string
	Model  string
	Retry  RetryConfig
	// CallsPerMinute throttles outgoing requests; 0 disables throttling.
	CallsPerMinute int
}

// Anthropic is a Client backed by the Anthropic Messages API.
type Anthropic struct {
	client  anthropic.Client
	model   string
	retry   RetryConfig
	limiter *rate.Limiter
}

// NewAnthropic creates an Anthropic client from the configuration.
func NewAnthropic(cfg AnthropicConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	if cfg.Retry == (RetryConfig{}) {
		cfg.Retry = DefaultRetryConfig()
	}
	var limiter *rate.Limiter
	if cfg.CallsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.CallsPerMinute)/60.0), 1)
	}
	return &Anthropic{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		retry:   cfg.Retry,
		limiter: limiter,
	}, nil
}

// Complete sends one completion request and returns the concatenated text
// blocks of the response.
func (a *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = anthropic.Float(req.TopP)
	}

	var text string
	err := retryWithBackoff(ctx, a.retry, "completion", func(ctx context.Context) error {
		resp, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return fmt.Errorf("messages.new: %w", err)
		}
		var sb strings.Builder
		for _, block := range resp.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		text = strings.TrimSpace(sb.String())
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
