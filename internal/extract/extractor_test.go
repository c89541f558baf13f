package extract

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

type stubOCR struct {
	text string
	err  error
}

func (s *stubOCR) Name() string { return "stub" }

func (s *stubOCR) Extract(ctx context.Context, path string) (string, error) {
	return s.text, s.err
}

func TestRegistry_DispatchAndSupport(t *testing.T) {
	r := NewRegistry(nil)

	for _, ext := range []string{".txt", ".md", ".csv", ".log", ".html", ".htm", ".pdf", ".docx", ".xlsx"} {
		if !r.Supported(ext) {
			t.Errorf("expected %s to be supported", ext)
		}
	}
	if r.Supported(".png") {
		t.Error("images should be unsupported without OCR")
	}

	text, err := r.Extract(context.Background(), "/nowhere/file.zip")
	if err != nil {
		t.Fatalf("Expected no error for unhandled extension, got %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for unhandled extension, got %q", text)
	}
}

func TestRegistry_ImagesNeedOCR(t *testing.T) {
	r := NewRegistry(&stubOCR{text: "scanned words"})

	for _, ext := range []string{".png", ".jpg", ".jpeg", ".tiff"} {
		if !r.Supported(ext) {
			t.Errorf("expected %s to be supported with OCR wired", ext)
		}
	}

	text, err := r.Extract(context.Background(), "/tmp/scan.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if text != "scanned words" {
		t.Errorf("expected OCR text, got %q", text)
	}
}

func TestPlainText_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	content := "Meeting on 2024-03-15 went well.\nFollow-up in April."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (&PlainTextExtractor{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != content {
		t.Errorf("expected content unchanged, got %q", got)
	}
}

func TestDecodeText_Windows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in Windows-1252 and invalid UTF-8.
	data := []byte{'s', 'a', 'i', 'd', ' ', 0x93, 'h', 'i', 0x94}
	got := DecodeText(data)
	if !strings.Contains(got, "“hi”") {
		t.Errorf("expected curly quotes decoded, got %q", got)
	}
}

func TestDocxExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Invoice Date: March 5, 2024</w:t></w:r></w:p>
<w:p><w:r><w:t>Payment &amp; terms attached.</w:t></w:r></w:p>
</w:body>
</w:document>`)

	got, err := (&DocxExtractor{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(got, "Invoice Date: March 5, 2024") {
		t.Errorf("expected paragraph text, got %q", got)
	}
	if !strings.Contains(got, "Payment & terms attached.") {
		t.Errorf("expected entities unescaped, got %q", got)
	}
	if strings.Contains(got, "<w:") {
		t.Errorf("markup leaked into text: %q", got)
	}
}

func TestDocxExtract_MissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("word/other.xml")
	_, _ = w.Write([]byte("<x/>"))
	_ = zw.Close()
	_ = f.Close()

	if _, err := (&DocxExtractor{}).Extract(context.Background(), path); err == nil {
		t.Error("expected an error for an archive without document.xml")
	}
}

func TestXLSXExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	wb := excelize.NewFile()
	_ = wb.SetCellValue("Sheet1", "A1", "Report Date:")
	_ = wb.SetCellValue("Sheet1", "B1", "2024-05-01")
	_ = wb.SetCellValue("Sheet1", "A2", "Revenue")
	_ = wb.SetCellValue("Sheet1", "B2", 125000)
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = wb.Close()

	got, err := (&XLSXExtractor{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(got, "Report Date: 2024-05-01") {
		t.Errorf("expected row text joined, got %q", got)
	}
	if !strings.Contains(got, "Revenue") {
		t.Errorf("expected second row present, got %q", got)
	}
}

func TestHTMLExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	page := `<html><head><title>Q3</title><script>var x = "ignore me";</script>
<style>.a{color:red}</style></head>
<body><h1>Quarterly Report</h1><p>Date: 2024-09-30</p>
<p>Revenue grew steadily across all regions this quarter.</p></body></html>`
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (&HTMLExtractor{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(got, "ignore me") || strings.Contains(got, "color:red") {
		t.Errorf("script or style leaked: %q", got)
	}
	if !strings.Contains(got, "Revenue grew steadily") {
		t.Errorf("expected body text, got %q", got)
	}

	// Block elements produce line breaks, so the date field stays on
	// its own line.
	var dateLine string
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "Date:") {
			dateLine = strings.TrimSpace(line)
		}
	}
	if dateLine != "Date: 2024-09-30" {
		t.Errorf("expected the date on its own line, got %q", dateLine)
	}
}

func TestPDFExtract_FallsBackToOCR(t *testing.T) {
	// Not a real PDF, so the text layer fails and OCR takes over.
	path := filepath.Join(t.TempDir(), "scan.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := (&PDFExtractor{OCR: &stubOCR{text: "ocr result"}}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected OCR fallback, got error %v", err)
	}
	if got != "ocr result" {
		t.Errorf("expected OCR text, got %q", got)
	}

	if _, err := (&PDFExtractor{}).Extract(context.Background(), path); err == nil {
		t.Error("expected an error without OCR available")
	}
}

func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
