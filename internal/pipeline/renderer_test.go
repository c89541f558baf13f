package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ndanilov/docket/internal/model"
)

func sampleReport(root string) *model.Report {
	return &model.Report{
		Root:        root,
		GeneratedAt: time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC),
		DefaultDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Files: []model.FileResult{
			{
				Analysis: model.Analysis{
					Name:       "board_meeting_notes.md",
					Ext:        ".md",
					Date:       time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
					DateSource: model.DateFromContent,
					Label:      "Meeting Notes",
					Summary:    []string{"The board approved the budget.", "Revenue exceeded projections this quarter."},
				},
				RenamedTo: "2024.09.15_board_meeting_notes.md",
			},
			{
				Analysis: model.Analysis{
					Name:       "invoice_001.txt",
					Ext:        ".txt",
					Date:       time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC),
					DateSource: model.DateFromFilename,
					Label:      "Invoice",
					Summary:    []string{"Amount due for consulting services rendered."},
				},
				RenamedTo: "2023.03.05_invoice_001.txt",
			},
			{
				Analysis: model.Analysis{Name: ".hidden", Ext: ""},
				Skipped:  "hidden file",
			},
			{
				Analysis: model.Analysis{Name: "corrupt.pdf", Ext: ".pdf"},
				Error:    "extract: malformed PDF",
			},
		},
		Stats: model.Stats{
			Scanned:  4,
			Analyzed: 2,
			Renamed:  2,
			Skipped:  1,
			Failed:   1,
			ByYear:   map[int]int{2023: 1, 2024: 1},
			ByLabel:  map[string]int{"Meeting Notes": 1, "Invoice": 1},
			Elapsed:  1200 * time.Millisecond,
		},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(true).RenderSummary(&buf, sampleReport("/docs"))

	out := buf.String()
	for _, needle := range []string{
		"Docket Analysis",
		"Folder:    /docs",
		"Scanned:   4 files",
		"Analyzed:  2",
		"Renamed:   2",
		"By type:",
		"Invoice",
		"By year:",
		"2023",
	} {
		if !strings.Contains(out, needle) {
			t.Errorf("summary missing %q", needle)
		}
	}
}

func TestRenderSummary_NoStats(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(false).RenderSummary(&buf, sampleReport("/docs"))

	if strings.Contains(buf.String(), "By type:") {
		t.Error("expected the type breakdown to be omitted")
	}
}

func TestRenderFiles(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(true).RenderFiles(&buf, sampleReport("/docs"), false)

	out := buf.String()
	for _, needle := range []string{
		"✓ 2024-09-15",
		"renamed to 2024.09.15_board_meeting_notes.md",
		"- .hidden (hidden file)",
		"✗ corrupt.pdf: extract: malformed PDF",
	} {
		if !strings.Contains(out, needle) {
			t.Errorf("file listing missing %q", needle)
		}
	}
	if strings.Contains(out, "The board approved") {
		t.Error("summaries should only print in verbose mode")
	}
}

func TestRenderFiles_Verbose(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(true).RenderFiles(&buf, sampleReport("/docs"), true)

	if !strings.Contains(buf.String(), "The board approved the budget.") {
		t.Error("verbose listing should include summary sentences")
	}
}

func TestRenderFiles_ProposedOnly(t *testing.T) {
	report := sampleReport("/docs")
	report.Files[0].RenamedTo = ""
	report.Files[0].Analysis.ProposedName = "2024.09.15_board_meeting_notes.md"

	var buf bytes.Buffer
	NewRenderer(true).RenderFiles(&buf, report, false)

	if !strings.Contains(buf.String(), "would become 2024.09.15_board_meeting_notes.md") {
		t.Error("expected the proposed name for a dry run")
	}
}

func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := NewRenderer(true).RenderJSON(sampleReport("/docs"), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if decoded.Root != "/docs" {
		t.Errorf("Expected /docs, got %q", decoded.Root)
	}
	if len(decoded.Files) != 4 {
		t.Errorf("Expected 4 files, got %d", len(decoded.Files))
	}
	if decoded.Stats.Renamed != 2 {
		t.Errorf("Expected 2 renamed, got %d", decoded.Stats.Renamed)
	}
}

func TestRenderSummaryDoc(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport(dir)

	path, err := NewRenderer(true).RenderSummaryDoc(report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	name := filepath.Base(path)
	if !regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}_Document_Summary\.md$`).MatchString(name) {
		t.Errorf("unexpected summary document name %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary document: %v", err)
	}
	doc := string(data)
	for _, needle := range []string{
		"# Document Summary",
		"**Files Processed:** 2",
		"## board meeting notes",
		"**File:** `2024.09.15_board_meeting_notes.md`",
		"**Date:** 2024-09-15",
		"1. The board approved the budget.",
		"2. Revenue exceeded projections this quarter.",
		"## invoice 001",
		"- **Total Documents:** 2",
		"- 2023: 1 documents",
		"- 2024: 1 documents",
	} {
		if !strings.Contains(doc, needle) {
			t.Errorf("summary document missing %q", needle)
		}
	}

	// The failed and skipped files never reach the document.
	if strings.Contains(doc, "corrupt.pdf") || strings.Contains(doc, ".hidden") {
		t.Error("unprocessed files leaked into the summary document")
	}
}

func TestRenderSummaryDoc_CollisionSuffix(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport(dir)

	first, err := NewRenderer(true).RenderSummaryDoc(report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := NewRenderer(true).RenderSummaryDoc(report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first == second {
		t.Fatal("expected a collision suffix on the second document")
	}
	if !strings.HasSuffix(second, "_Document_Summary_1.md") {
		t.Errorf("unexpected second document name %q", second)
	}
}

func TestRenderSummaryDoc_NoRenames(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport(dir)
	for i := range report.Files {
		report.Files[i].RenamedTo = ""
	}

	path, err := NewRenderer(true).RenderSummaryDoc(report)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if path != "" {
		t.Errorf("expected no document, got %q", path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected an empty folder, found %d entries", len(entries))
	}
}

func TestRenderSummaryDoc_NoStats(t *testing.T) {
	dir := t.TempDir()

	path, err := NewRenderer(false).RenderSummaryDoc(sampleReport(dir))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "## Summary Statistics") {
		t.Error("expected the statistics section to be omitted")
	}
}

func TestDocTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024.09.15_board_meeting_notes.md", "board meeting notes"},
		{"2023.03.05_invoice_001.txt", "invoice 001"},
		{"no_prefix.txt", "no prefix"},
		{"bare", "bare"},
	}
	for _, tc := range cases {
		if got := docTitle(tc.in); got != tc.want {
			t.Errorf("docTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
