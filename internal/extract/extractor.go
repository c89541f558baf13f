package extract

import (
	"context"
	"path/filepath"
	"strings"
)

// Extractor pulls plain text out of one family of file formats
type Extractor interface {
	Name() string
	Extract(ctx context.Context, path string) (string, error)
}

// Registry dispatches extraction by file extension
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry wires the standard extractor set. images may be nil when
// OCR is unavailable; image files then yield no text and analysis falls
// back to the filename.
func NewRegistry(images Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}

	plain := &PlainTextExtractor{}
	for _, ext := range []string{".txt", ".md", ".csv", ".log"} {
		r.Register(ext, plain)
	}

	web := &HTMLExtractor{}
	r.Register(".html", web)
	r.Register(".htm", web)

	r.Register(".pdf", &PDFExtractor{OCR: images})
	r.Register(".docx", &DocxExtractor{})
	r.Register(".xlsx", &XLSXExtractor{})

	if images != nil {
		for _, ext := range []string{".png", ".jpg", ".jpeg", ".tiff"} {
			r.Register(ext, images)
		}
	}
	return r
}

// Register maps an extension (with leading dot) to an extractor
func (r *Registry) Register(ext string, e Extractor) {
	r.byExt[strings.ToLower(ext)] = e
}

// Supported reports whether ext has a registered extractor
func (r *Registry) Supported(ext string) bool {
	_, ok := r.byExt[strings.ToLower(ext)]
	return ok
}

// Extract returns the text for path. An extension nobody handles is not
// an error; the file simply has no extractable text and analysis runs
// on the filename alone.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	e, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", nil
	}
	return e.Extract(ctx, path)
}
