package llm

import (
	"context"
	"fmt"

	"github.com/ndanilov/docket/internal/model"
)

// Description is a typed label and summary for one document
type Description struct {
	Label     string   `json:"label"`
	Sentences []string `json:"sentences"`
}

// Request carries the document signals a describer may use. Content is
// already decoded and capped by the caller.
type Request struct {
	Filename     string
	Ext          string
	Content      string
	MaxSentences int
}

// Describer produces a document description. Implementations range from
// the OpenAI API to the local heuristic engine, all behind the same
// contract so they can be chained.
type Describer interface {
	Name() string
	Describe(ctx context.Context, req Request) (*Description, error)
	IsAvailable(ctx context.Context) bool
}

// Config holds describer configuration
type Config struct {
	Provider          string // "openai" or empty for heuristics only
	Model             string
	APIKey            string
	BaseURL           string
	Timeout           int // seconds
	MaxTokens         int
	RequestsPerMinute int
}

// DefaultConfig returns default describer configuration
func DefaultConfig() Config {
	return Config{
		Timeout:           30,
		MaxTokens:         400,
		RequestsPerMinute: 20,
	}
}

// ConfigFromModel converts the application config section
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		RequestsPerMinute: mc.RequestsPerMinute,
	}
}

// BuildPrompt constructs the description prompt. The reply contract is
// strict JSON so parsing stays trivial.
func BuildPrompt(req Request) string {
	content := req.Content
	if content == "" {
		content = "(no text could be extracted)"
	}
	maxSentences := req.MaxSentences
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return fmt.Sprintf(`You are cataloging business documents.

Return ONLY a JSON object with exactly these fields:
  "label": a 1-3 word document type, for example "Invoice" or "Meeting Notes"
  "sentences": an array of at most %d short plain sentences summarizing the document

Do not invent facts that are not in the text. No markdown, no extra keys.

Filename: %s
Content:
%s`, maxSentences, req.Filename, content)
}
