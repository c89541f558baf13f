package llm

import (
	"context"

	"github.com/ndanilov/docket/internal/classify"
	"github.com/ndanilov/docket/internal/summarize"
)

// HeuristicDescriber answers with the local classification and
// summarization engine. It is always available and never errors, which
// makes it the terminator of any describer chain.
type HeuristicDescriber struct {
	classifier *classify.Classifier
	summarizer *summarize.Summarizer
}

// NewHeuristicDescriber creates the local describer
func NewHeuristicDescriber() *HeuristicDescriber {
	return &HeuristicDescriber{
		classifier: classify.NewClassifier(),
		summarizer: summarize.NewSummarizer(),
	}
}

// Name returns the describer name
func (d *HeuristicDescriber) Name() string {
	return "heuristic"
}

// IsAvailable always reports true
func (d *HeuristicDescriber) IsAvailable(ctx context.Context) bool {
	return true
}

// Describe classifies and summarizes locally
func (d *HeuristicDescriber) Describe(ctx context.Context, req Request) (*Description, error) {
	return &Description{
		Label:     d.classifier.Classify(req.Filename, req.Content, req.Ext),
		Sentences: d.summarizer.Summarize(req.Content, req.Ext, req.MaxSentences),
	}, nil
}
