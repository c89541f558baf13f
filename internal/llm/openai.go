package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// OpenAIDescriber implements the Describer interface for OpenAI models
type OpenAIDescriber struct {
	client  *openai.Client
	config  Config
	limiter *rate.Limiter
}

// NewOpenAIDescriber creates a new OpenAI describer
func NewOpenAIDescriber(config Config) (*OpenAIDescriber, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &OpenAIDescriber{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}, nil
}

// Name returns the describer name
func (d *OpenAIDescriber) Name() string {
	return "openai"
}

// IsAvailable checks if the describer is properly configured
func (d *OpenAIDescriber) IsAvailable(ctx context.Context) bool {
	// Simple check: try to list models (lightweight API call)
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := d.client.ListModels(checkCtx); err != nil {
		// Log the actual error for debugging (this helps users diagnose API key issues)
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Describe asks the model for a document label and summary using the
// Chat Completions API
func (d *OpenAIDescriber) Describe(ctx context.Context, req Request) (*Description, error) {
	// Local rate limiting keeps large folders under the API quota
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	// Determine model
	model := d.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	// Determine max tokens
	maxTokens := d.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 400
	}

	// Create timeout context
	timeout := time.Duration(d.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise document cataloging assistant. Respond with JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3, // Lower temperature for more focused, factual output
	}

	resp, err := d.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseDescription(resp.Choices[0].Message.Content, req.MaxSentences)
}

// parseDescription decodes the model's JSON reply, tolerating code
// fences and stray prose around the object
func parseDescription(raw string, maxSentences int) (*Description, error) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var desc Description
	if err := json.Unmarshal([]byte(raw), &desc); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	desc.Label = strings.TrimSpace(desc.Label)
	if desc.Label == "" {
		return nil, fmt.Errorf("response has no label")
	}

	sentences := make([]string, 0, len(desc.Sentences))
	for _, s := range desc.Sentences {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("response has no sentences")
	}
	if maxSentences > 0 && len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	desc.Sentences = sentences

	return &desc, nil
}
