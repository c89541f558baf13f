package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier assigns a document-type label from filename and content
// keyword signals
type Classifier struct {
	filenameRules []Rule
	contentRules  []Rule
}

// NewClassifier creates a classifier with the standard rule tables
func NewClassifier() *Classifier {
	return &Classifier{
		filenameRules: filenameRules,
		contentRules:  contentRules,
	}
}

var datePrefix = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}_`)

// Classify scores every label against the filename and content tables
// and returns the best label in title case. Filename and content hits
// for the same label add up. When nothing scores, the extension decides,
// so a label is always produced.
func (c *Classifier) Classify(filename, content, ext string) string {
	nameText := normalizeFilename(filename)
	contentText := strings.ToLower(content)

	scores := make(map[string]int)
	for _, rule := range c.filenameRules {
		scores[rule.Label] += countKeywords(nameText, rule.Keywords)
	}
	for _, rule := range c.contentRules {
		scores[rule.Label] += countKeywords(contentText, rule.Keywords)
	}

	// Ties resolve to the earlier table entry, so iterate in rule order
	// rather than over the map.
	best := ""
	bestScore := 0
	for _, rule := range c.filenameRules {
		if s := scores[rule.Label]; s > bestScore {
			best, bestScore = rule.Label, s
		}
	}
	if bestScore == 0 {
		return titleCase(fallbackLabel(filename, ext))
	}
	return titleCase(best)
}

// countKeywords counts how many of the keywords occur in text. Each
// keyword counts once no matter how often it repeats.
func countKeywords(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// normalizeFilename lowers the name and turns separators into spaces so
// keyword matching sees words, not underscore runs. Any date prefix and
// the extension are dropped first.
func normalizeFilename(filename string) string {
	name := datePrefix.ReplaceAllString(filename, "")
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	return strings.ToLower(name)
}

// fallbackLabel maps an extension to a generic label. PDF names get a
// second look because scanned PDFs are so often invoices.
func fallbackLabel(filename, ext string) string {
	if ext == ".pdf" {
		lower := strings.ToLower(filename)
		if strings.Contains(lower, "invoice") || strings.Contains(lower, "bill") {
			return "Invoice"
		}
		return "PDF Document"
	}
	if label, ok := extensionLabels[ext]; ok {
		return label
	}
	if ext == "" {
		return "Document"
	}
	return strings.ToUpper(strings.TrimPrefix(ext, ".")) + " Document"
}

// titleCase uppercases the first letter of each word without folding the
// rest, so acronym labels like "PDF Document" survive intact
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if unicode.IsLower(r) {
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
	}
	return strings.Join(words, " ")
}
