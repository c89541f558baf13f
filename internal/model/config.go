package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete docket configuration
type Config struct {
	Scan        ScanConfig        `yaml:"scan"`
	Cache       CacheConfig       `yaml:"cache"`
	OCR         OCRConfig         `yaml:"ocr"`
	LLM         LLMConfig         `yaml:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ScanConfig controls text extraction and analysis limits
type ScanConfig struct {
	// Extensions restricts analysis to the listed extensions (with dot).
	// Empty means every regular file is analyzed; files with no text
	// extractor still get filename-based dating and classification.
	Extensions    []string `yaml:"extensions"`
	MaxFileBytes  int64    `yaml:"max_file_bytes"`  // extraction skipped above this size
	MaxTextChars  int      `yaml:"max_text_chars"`  // extracted text cap
	DateScanChars int      `yaml:"date_scan_chars"` // content window for date resolution
	ClassifyChars int      `yaml:"classify_chars"`  // content window for classification
	MaxSentences  int      `yaml:"max_sentences"`   // summary length cap
	DateFromFiles bool     `yaml:"date_from_files"` // false forces the default date everywhere
}

// CacheConfig controls the extracted-text cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OCRConfig controls the external tesseract toolchain
type OCRConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Binary   string        `yaml:"binary"` // empty means discover on PATH and known locations
	Language string        `yaml:"language"`
	PSM      int           `yaml:"psm"`
	MaxPages int           `yaml:"max_pages"` // page cap when rasterizing PDFs
	Timeout  time.Duration `yaml:"timeout"`
}

// LLMConfig controls the optional remote describer
type LLMConfig struct {
	Provider          string `yaml:"provider"` // empty disables the remote tier
	Model             string `yaml:"model"`
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	Timeout           int    `yaml:"timeout"` // seconds
	MaxTokens         int    `yaml:"max_tokens"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// ConcurrencyConfig controls the analysis worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose      bool `yaml:"verbose"`
	SummaryDoc   bool `yaml:"summary_doc"`   // write the markdown summary document after organizing
	IncludeStats bool `yaml:"include_stats"` // append per-year and per-type statistics
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxFileBytes:  50 * 1024 * 1024,
			MaxTextChars:  100000,
			DateScanChars: 2000,
			ClassifyChars: 1000,
			MaxSentences:  3,
			DateFromFiles: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		OCR: OCRConfig{
			Enabled:  true,
			Language: "eng",
			PSM:      3,
			MaxPages: 5,
			Timeout:  2 * time.Minute,
		},
		LLM: LLMConfig{
			Timeout:           30,
			MaxTokens:         400,
			RequestsPerMinute: 20,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			SummaryDoc:   true,
			IncludeStats: true,
		},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "docket")
	}
	return filepath.Join(os.TempDir(), "docket-cache")
}
