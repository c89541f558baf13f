package worker

import (
	"context"
	"sort"

	"github.com/ndanilov/docket/internal/model"
)

// Analyzer defines the interface for analyzing a single file
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Analysis, error)
}

// FileJob represents a single-file analysis job
type FileJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *FileJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return &FileResult{
			Path:     j.Path,
			Analysis: nil,
			Error:    err,
		}
	}
	return &FileResult{
		Path:     j.Path,
		Analysis: analysis,
		Error:    nil,
	}
}

// FileResult represents the result of an analysis job
type FileResult struct {
	Path     string
	Analysis *model.Analysis
	Error    error
}

// Err returns the error from the analysis result
func (r *FileResult) Err() error {
	return r.Error
}

// BatchAnalyzer analyzes multiple files concurrently
type BatchAnalyzer struct {
	analyzer Analyzer
	workers  int
}

// NewBatchAnalyzer creates a new batch analyzer
func NewBatchAnalyzer(analyzer Analyzer, workers int) *BatchAnalyzer {
	return &BatchAnalyzer{
		analyzer: analyzer,
		workers:  workers,
	}
}

// ProcessFiles analyzes the given files concurrently. Results are
// ordered by path, not by completion.
func (b *BatchAnalyzer) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(ctx, b.workers)
	pool.Start()

	go func() {
		for _, path := range paths {
			pool.Submit(&FileJob{
				Path:     path,
				Analyzer: b.analyzer,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}

	sort.Slice(fileResults, func(i, j int) bool {
		return fileResults[i].Path < fileResults[j].Path
	})

	return fileResults
}
