package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer of a PDF. Scanned PDFs often have
// no text layer at all; those fall through to OCR when it is available.
type PDFExtractor struct {
	OCR Extractor
}

// Name identifies the extractor
func (e *PDFExtractor) Name() string {
	return "pdf"
}

// Extract returns the PDF's embedded text, or the OCR result when the
// text layer is empty
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	text, err := textLayer(path)
	if err != nil {
		if e.OCR != nil {
			return e.OCR.Extract(ctx, path)
		}
		return "", err
	}
	if text == "" && e.OCR != nil {
		return e.OCR.Extract(ctx, path)
	}
	return text, nil
}

func textLayer(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf strings.Builder
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(content)
		buf.WriteString("\n")
	}
	return strings.TrimSpace(buf.String()), nil
}
