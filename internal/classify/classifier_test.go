package classify

import "testing"

func TestClassify_FilenameKeywords(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		filename string
		want     string
	}{
		{"invoice_2024_001.txt", "Invoice"},
		{"quarterly_report_2024-Q3.txt", "Report"},
		{"contract_amendment_2024.txt", "Contract"},
		{"research_paper_draft.txt", "Research"},
		{"meeting_notes_sept_15_2024.md", "Meeting Notes"},
	}
	for _, tc := range cases {
		got := c.Classify(tc.filename, "", extOf(tc.filename))
		if got != tc.want {
			t.Errorf("%s: Expected %q, got %q", tc.filename, tc.want, got)
		}
	}
}

func TestClassify_ContentCuesScore(t *testing.T) {
	c := NewClassifier()

	content := "Bill To: ABC Corporation\nAmount Due: $450.00\nPayment Terms: Net 30\n"
	got := c.Classify("document1.txt", content, ".txt")
	if got != "Invoice" {
		t.Errorf("Expected Invoice from content cues, got %q", got)
	}
}

func TestClassify_FilenameAndContentCombine(t *testing.T) {
	c := NewClassifier()

	// The filename alone says Notes; the content cues outvote it.
	content := "Attendees: CEO, CFO\nAction items: review the budget\nNext meeting in May.\n"
	got := c.Classify("notes_march.txt", content, ".txt")
	if got != "Meeting Notes" {
		t.Errorf("Expected Meeting Notes, got %q", got)
	}
}

func TestClassify_TieBreaksToEarlierRule(t *testing.T) {
	c := NewClassifier()

	// "meeting" and "notes" each score one for different labels; the
	// earlier table entry wins.
	got := c.Classify("meeting_notes.txt", "", ".txt")
	if got != "Meeting Notes" {
		t.Errorf("Expected Meeting Notes on tie, got %q", got)
	}
}

func TestClassify_ExtensionFallback(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		filename string
		ext      string
		want     string
	}{
		{"", ".docx", "Word Document"},
		{"data_export.xlsx", ".xlsx", "Spreadsheet"},
		{"page.html", ".html", "Web Document"},
		{"dump.xyz", ".xyz", "XYZ Document"},
		{"README", "", "Document"},
	}
	for _, tc := range cases {
		got := c.Classify(tc.filename, "", tc.ext)
		if got != tc.want {
			t.Errorf("%s (%s): expected %q, got %q", tc.filename, tc.ext, tc.want, got)
		}
	}
}

func TestClassify_PDFFallbackKeepsAcronym(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("scan_0042.pdf", "", ".pdf")
	if got != "PDF Document" {
		t.Errorf("Expected PDF Document with acronym intact, got %q", got)
	}
}

func TestClassify_DatePrefixIgnored(t *testing.T) {
	c := NewClassifier()

	plain := c.Classify("meeting_notes.txt", "", ".txt")
	prefixed := c.Classify("2024.03.15_meeting_notes.txt", "", ".txt")
	if plain != prefixed {
		t.Errorf("date prefix changed the label: %q vs %q", plain, prefixed)
	}
}

func TestClassify_NeverEmpty(t *testing.T) {
	c := NewClassifier()

	for _, ext := range []string{".txt", ".pdf", ".docx", ".weird", ""} {
		if got := c.Classify("x"+ext, "", ext); got == "" {
			t.Errorf("empty label for extension %q", ext)
		}
	}
}

func TestNormalizeFilename(t *testing.T) {
	got := normalizeFilename("2024.03.15_Invoice_Q3-final.PDF")
	if got != "invoice q3 final" {
		t.Errorf("expected %q, got %q", "invoice q3 final", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()

	content := "Attendees: CEO\nAction items: none\n"
	first := c.Classify("notes_march.txt", content, ".txt")
	second := c.Classify("notes_march.txt", content, ".txt")
	if first != second {
		t.Errorf("repeated call changed the label: %q vs %q", first, second)
	}
}

func extOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}
