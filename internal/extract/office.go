package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DocxExtractor pulls text out of the main document part of a .docx
// archive. Stripping the WordprocessingML tags directly avoids a full
// OOXML schema dependency for what is a flat text read.
type DocxExtractor struct{}

// Name identifies the extractor
func (e *DocxExtractor) Name() string {
	return "docx"
}

var (
	docxParagraphs = regexp.MustCompile(`</w:p>`)
	docxTags       = regexp.MustCompile(`<[^>]+>`)
)

// Extract reads word/document.xml and strips its markup
func (e *DocxExtractor) Extract(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document part: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document part: %w", err)
		}

		text := docxParagraphs.ReplaceAllString(string(data), "\n")
		text = docxTags.ReplaceAllString(text, "")
		return strings.TrimSpace(html.UnescapeString(text)), nil
	}
	return "", fmt.Errorf("no document part in archive")
}

// XLSXExtractor reads workbook cells row by row so dates and keywords
// in spreadsheets participate in analysis
type XLSXExtractor struct{}

// Name identifies the extractor
func (e *XLSXExtractor) Name() string {
	return "xlsx"
}

// Extract joins every sheet's cell values into lines
func (e *XLSXExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line != "" {
				buf.WriteString(line)
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
