package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config controls the external OCR toolchain
type Config struct {
	Tesseract string        // binary path; empty means discover
	Pdftoppm  string        // rasterizer for scanned PDFs; empty means discover
	Language  string        // tesseract language pack
	PSM       int           // page segmentation mode
	MaxPages  int           // page cap when rasterizing PDFs
	Timeout   time.Duration // wall clock budget per file
}

// DefaultConfig returns the standard OCR settings
func DefaultConfig() Config {
	return Config{
		Language: "eng",
		PSM:      3,
		MaxPages: 5,
		Timeout:  2 * time.Minute,
	}
}

// tesseractCandidates are checked after PATH, covering the usual
// package-manager install locations
var tesseractCandidates = []string{
	"/usr/bin/tesseract",
	"/usr/local/bin/tesseract",
	"/opt/homebrew/bin/tesseract",
	"/snap/bin/tesseract",
}

var pdftoppmCandidates = []string{
	"/usr/bin/pdftoppm",
	"/usr/local/bin/pdftoppm",
	"/opt/homebrew/bin/pdftoppm",
}

// Extractor runs tesseract over images and rasterized PDF pages
type Extractor struct {
	cfg    Config
	runner Runner
}

// NewExtractor resolves the binary locations up front so a missing
// tesseract surfaces here and the caller can disable OCR cleanly. A
// missing pdftoppm is tolerated; scanned PDFs just stop working.
func NewExtractor(cfg Config, runner Runner) (*Extractor, error) {
	if runner == nil {
		runner = NewRunner()
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.Tesseract == "" {
		path, err := findBinary("tesseract", tesseractCandidates)
		if err != nil {
			return nil, err
		}
		cfg.Tesseract = path
	}
	if cfg.Pdftoppm == "" {
		if path, err := findBinary("pdftoppm", pdftoppmCandidates); err == nil {
			cfg.Pdftoppm = path
		}
	}
	return &Extractor{cfg: cfg, runner: runner}, nil
}

// Name identifies the extractor
func (e *Extractor) Name() string {
	return "ocr"
}

// Extract OCRs an image file, or rasterizes and OCRs the leading pages
// of a PDF
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return e.extractPDF(ctx, path)
	}
	return e.runTesseract(ctx, path)
}

func (e *Extractor) runTesseract(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	stdout, stderr, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w: %s", filepath.Base(imagePath), err, truncate(stderr, 200))
	}
	return strings.TrimSpace(string(stdout)), nil
}

func (e *Extractor) extractPDF(ctx context.Context, pdfPath string) (string, error) {
	if e.cfg.Pdftoppm == "" {
		return "", fmt.Errorf("pdftoppm not installed, cannot OCR %s", filepath.Base(pdfPath))
	}
	tmpDir, err := os.MkdirTemp("", "docket-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-png", "-r", "300", "-f", "1", "-l", strconv.Itoa(e.cfg.MaxPages), pdfPath, prefix}
	if _, stderr, err := e.runner.Run(ctx, e.cfg.Pdftoppm, args...); err != nil {
		return "", fmt.Errorf("pdftoppm %s: %w: %s", filepath.Base(pdfPath), err, truncate(stderr, 200))
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("no pages rasterized from %s", filepath.Base(pdfPath))
	}
	sort.Strings(pages)

	var buf strings.Builder
	for _, page := range pages {
		text, err := e.runTesseract(ctx, page)
		if err != nil {
			return "", err
		}
		if text != "" {
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

// findBinary checks PATH first, then the known install locations
func findBinary(name string, candidates []string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s not found on PATH or in known locations", name)
}
