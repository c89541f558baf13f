package llm

import (
	"context"
	"fmt"
	"os"
)

// Chain tries describers in order and returns the first success
type Chain struct {
	describers []Describer
}

// NewChain creates a chain. Callers are expected to end the chain with
// the heuristic describer, which cannot fail.
func NewChain(describers ...Describer) *Chain {
	return &Chain{describers: describers}
}

// Describe walks the chain, skipping unavailable describers and falling
// through on errors. The returned name identifies which describer
// answered.
func (c *Chain) Describe(ctx context.Context, req Request) (*Description, string, error) {
	var lastErr error
	for _, d := range c.describers {
		if !d.IsAvailable(ctx) {
			continue
		}
		desc, err := d.Describe(ctx, req)
		if err != nil {
			lastErr = err
			fmt.Fprintf(os.Stderr, "Warning: %s describer failed for %s: %v\n", d.Name(), req.Filename, err)
			continue
		}
		return desc, d.Name(), nil
	}
	if lastErr != nil {
		return nil, "", fmt.Errorf("all describers failed: %w", lastErr)
	}
	return nil, "", fmt.Errorf("no describer available")
}
