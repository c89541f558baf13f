package llm

import (
	"fmt"
	"strings"
)

// NewDescriber creates a describer based on configuration
func NewDescriber(config Config) (Describer, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIDescriber(config)

	case "":
		// No provider configured - return nil (remote tier disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown describer provider: %s (supported: openai)", config.Provider)
	}
}
