package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ndanilov/docket/internal/cache"
	"github.com/ndanilov/docket/internal/classify"
	"github.com/ndanilov/docket/internal/dates"
	"github.com/ndanilov/docket/internal/extract"
	"github.com/ndanilov/docket/internal/llm"
	"github.com/ndanilov/docket/internal/model"
	"github.com/ndanilov/docket/internal/ocr"
	"github.com/ndanilov/docket/internal/summarize"
)

// llmContentChars caps the text sent to a remote describer. The local
// heuristics see the full extracted text.
const llmContentChars = 4000

// Pipeline orchestrates the complete analysis process
type Pipeline struct {
	registry    *extract.Registry
	cache       cache.Cache // nil when caching is disabled
	resolver    *dates.Resolver
	classifier  *classify.Classifier
	summarizer  *summarize.Summarizer
	chain       *llm.Chain // nil unless a remote describer is configured
	config      *model.Config
	defaultDate time.Time
}

// NewPipeline creates a new pipeline with the given configuration. The
// default date fills in whenever no date can be resolved for a file.
func NewPipeline(cfg *model.Config, defaultDate time.Time) *Pipeline {
	// Set up OCR if enabled. A missing tesseract install downgrades
	// images and scanned PDFs to filename-only analysis, never a hard
	// failure.
	var images extract.Extractor
	if cfg.OCR.Enabled {
		ocrCfg := ocr.DefaultConfig()
		ocrCfg.Tesseract = cfg.OCR.Binary
		ocrCfg.Language = cfg.OCR.Language
		ocrCfg.PSM = cfg.OCR.PSM
		ocrCfg.MaxPages = cfg.OCR.MaxPages
		ocrCfg.Timeout = cfg.OCR.Timeout
		e, err := ocr.NewExtractor(ocrCfg, ocr.NewRunner())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: OCR unavailable: %v\n", err)
		} else {
			images = e
		}
	}

	var textCache cache.Cache
	if cfg.Cache.Enabled {
		textCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	// Create the describer chain if a remote provider is configured.
	// The heuristic terminates the chain, so a description is always
	// produced even when the provider is down.
	var chain *llm.Chain
	if cfg.LLM.Provider != "" {
		describer, err := llm.NewDescriber(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize describer: %v\n", err)
		} else if describer != nil {
			chain = llm.NewChain(describer, llm.NewHeuristicDescriber())
		}
	}

	return &Pipeline{
		registry:    extract.NewRegistry(images),
		cache:       textCache,
		resolver:    dates.NewResolver(),
		classifier:  classify.NewClassifier(),
		summarizer:  summarize.NewSummarizer(),
		chain:       chain,
		config:      cfg,
		defaultDate: defaultDate,
	}
}

// AnalyzeFile analyzes a single file and produces its date, label,
// summary, and metadata. The file is not modified.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Analysis, error) {
	// 1. Stat
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	name := info.Name()
	analysis := &model.Analysis{
		Path:      path,
		Name:      name,
		Ext:       strings.ToLower(filepath.Ext(name)),
		SizeBytes: info.Size(),
	}

	// 2. Extract text, through the cache when enabled
	text, readErr := p.extractText(ctx, path, info)
	if readErr != nil && p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", name, readErr)
	}
	if utf8.RuneCountInString(text) > p.config.Scan.MaxTextChars {
		text = truncateRunes(text, p.config.Scan.MaxTextChars)
		analysis.Truncated = true
	}

	// 3. Resolve the document date: content first, filename second, the
	// run's default last
	analysis.Date, analysis.DateSource = p.resolveDate(name, text)

	// 4. Label and summary
	p.describe(ctx, analysis, text, readErr)

	return analysis, nil
}

// extractText returns the file's text, consulting the cache first.
// Oversized files yield empty text without an error.
func (p *Pipeline) extractText(ctx context.Context, path string, info fs.FileInfo) (string, error) {
	if p.config.Scan.MaxFileBytes > 0 && info.Size() > p.config.Scan.MaxFileBytes {
		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Skipping content of %s: %d bytes over limit\n", info.Name(), info.Size())
		}
		return "", nil
	}

	var key string
	if p.cache != nil {
		key = cache.Key(path, info.ModTime(), info.Size())
		if text, ok := p.cache.Get(key); ok {
			return text, nil
		}
	}

	text, err := p.registry.Extract(ctx, path)
	if err != nil {
		return "", err
	}

	if p.cache != nil {
		_ = p.cache.Set(key, text, 0)
	}

	return text, nil
}

// resolveDate infers the document date. Content patterns are checked
// before filename patterns because the text inside a document names its
// date more reliably than whoever saved the file did.
func (p *Pipeline) resolveDate(name, text string) (time.Time, model.DateSource) {
	if !p.config.Scan.DateFromFiles {
		return p.defaultDate, model.DateDefaulted
	}

	window := text
	if utf8.RuneCountInString(window) > p.config.Scan.DateScanChars {
		window = truncateRunes(window, p.config.Scan.DateScanChars)
	}
	if date, ok := p.resolver.Resolve(window, dates.ModeContent, p.defaultDate); ok {
		return date, model.DateFromContent
	}
	if date, ok := p.resolver.Resolve(name, dates.ModeFilename, p.defaultDate); ok {
		return date, model.DateFromFilename
	}
	return p.defaultDate, model.DateDefaulted
}

// describe fills in the label and summary, via the describer chain when
// a remote provider is configured and the local heuristics otherwise.
func (p *Pipeline) describe(ctx context.Context, analysis *model.Analysis, text string, readErr error) {
	maxSentences := p.config.Scan.MaxSentences
	if maxSentences <= 0 {
		maxSentences = summarize.DefaultMaxSentences
	}

	if p.chain != nil {
		content := text
		if utf8.RuneCountInString(content) > llmContentChars {
			content = truncateRunes(content, llmContentChars)
		}
		desc, who, err := p.chain.Describe(ctx, llm.Request{
			Filename:     analysis.Name,
			Ext:          analysis.Ext,
			Content:      content,
			MaxSentences: maxSentences,
		})
		if err == nil {
			analysis.Label = desc.Label
			analysis.Summary = desc.Sentences
			analysis.Describer = who
			return
		}
		fmt.Fprintf(os.Stderr, "Warning: describers failed for %s: %v\n", analysis.Name, err)
	}

	window := text
	if utf8.RuneCountInString(window) > p.config.Scan.ClassifyChars {
		window = truncateRunes(window, p.config.Scan.ClassifyChars)
	}
	analysis.Label = p.classifier.Classify(analysis.Name, window, analysis.Ext)
	if readErr != nil {
		analysis.Summary = summarize.Unreadable()
	} else {
		analysis.Summary = p.summarizer.Summarize(text, analysis.Ext, maxSentences)
	}
	analysis.Describer = "heuristic"
}

// truncateRunes cuts s to at most n runes without splitting a
// multibyte sequence.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
