package summarize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSentences is the summary length used when the caller passes
// no explicit cap
const DefaultMaxSentences = 3

const (
	minSentenceRunes = 20
	maxSentenceRunes = 200
	minLineRunes     = 10
)

// metadataMarkers flag lines that are structured header fields rather
// than prose
var metadataMarkers = []string{"date:", "time:", "location:", "attendees:", "customer:", "invoice"}

// sentenceDelimiters are tried in order; the first one that splits the
// text at all defines the sentence boundaries
var sentenceDelimiters = []string{". ", "! ", "? "}

// Summarizer produces short extractive summaries
type Summarizer struct{}

// NewSummarizer creates a summarizer
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize extracts up to maxSentences sentences from content. Three
// strategies run in order, each engaged only when the previous one
// produced fewer than two usable sentences: delimiter splitting, word
// chunking, and finally a canned description keyed on the content. The
// last tier always answers, so the result is never empty.
func (s *Summarizer) Summarize(content, ext string, maxSentences int) []string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	cleaned := cleanLines(content)

	sentences := filterUsable(splitDelimited(cleaned))
	if len(sentences) < 2 {
		sentences = filterUsable(chunkWords(cleaned, maxSentences))
	}
	if len(sentences) < 2 {
		sentences = cannedSummary(content, ext)
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	return sentences
}

// cleanLines drops headings, bullets, short fragments and metadata
// fields, then joins what remains into one prose block
func cleanLines(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineRunes {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}
		if isMetadataLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

func isMetadataLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range metadataMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// splitDelimited splits text on the first delimiter that yields more
// than one part, reattaching the terminator to every part except the
// last
func splitDelimited(text string) []string {
	for _, delim := range sentenceDelimiters {
		parts := strings.Split(text, delim)
		if len(parts) <= 1 {
			continue
		}
		terminator := strings.TrimSpace(delim)
		out := make([]string, 0, len(parts))
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if i < len(parts)-1 {
				part += terminator
			}
			out = append(out, part)
		}
		return out
	}
	return nil
}

// chunkWords slices the text into word-count chunks sized so that long
// texts yield roughly maxSentences pieces and short texts stay whole
func chunkWords(text string, maxSentences int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	chunkSize := len(words)
	if len(words) > maxSentences*10 {
		chunkSize = len(words) / maxSentences
	}
	var chunks []string
	for i := 0; i < len(words); i += chunkSize {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// filterUsable keeps sentences whose rune length is strictly between the
// bounds, dropping fragments and run-ons
func filterUsable(sentences []string) []string {
	var usable []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		n := utf8.RuneCountInString(sentence)
		if n > minSentenceRunes && n < maxSentenceRunes {
			usable = append(usable, sentence)
		}
	}
	return usable
}

// cannedSummary picks a fixed three-sentence description from keywords
// in the raw content, with a generic template naming the word count and
// extension as the final resort
func cannedSummary(content, ext string) []string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "invoice"):
		return []string{
			"This is an invoice document for business services or products.",
			"It contains billing information, itemized charges, and payment terms.",
			"The document includes customer details and financial calculations.",
		}
	case strings.Contains(lower, "meeting"), strings.Contains(lower, "minutes"):
		return []string{
			"This document contains meeting minutes or notes from a business meeting.",
			"It includes attendee information, agenda items, and discussion points.",
			"Action items and follow-up tasks are documented for future reference.",
		}
	case strings.Contains(lower, "report"), strings.Contains(lower, "financial"):
		return []string{
			"This is a business report containing performance or financial data.",
			"It includes analysis, metrics, and key performance indicators.",
			"The report provides insights and recommendations for business decisions.",
		}
	case strings.Contains(lower, "project"):
		return []string{
			"This document relates to project management and planning activities.",
			"It contains project status updates, timelines, and deliverables.",
			"Team information and project milestones are documented.",
		}
	}
	wordCount := len(strings.Fields(content))
	docType := strings.ToUpper(strings.TrimPrefix(ext, "."))
	return []string{
		fmt.Sprintf("This is a %s document containing %d words of text content.", docType, wordCount),
		"The document appears to contain business or organizational information.",
		"It includes structured information relevant to its intended purpose.",
	}
}

// Unreadable is the fixed summary for files whose content could not be
// decoded at all
func Unreadable() []string {
	return []string{
		"Unable to read document content.",
		"The file may be in an unsupported format.",
		"No content summary available.",
	}
}
