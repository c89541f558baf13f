package dates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Mode selects which pattern table and selection rule a resolution uses
type Mode string

const (
	ModeFilename Mode = "filename"
	ModeContent  Mode = "content"
)

const (
	minYear = 1900
	maxYear = 2100

	earlyWindow = 200 // rune offset below which a match counts as near the top
	earlyBoost  = 20
)

// Resolver infers a single calendar date from filenames or document text
type Resolver struct{}

// NewResolver creates a date resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve scans text for dates under the given mode. The boolean reports
// whether any valid date was found; when it is false the returned date
// is fallback, so callers always receive a usable date.
func (r *Resolver) Resolve(text string, mode Mode, fallback time.Time) (time.Time, bool) {
	switch mode {
	case ModeFilename:
		return r.resolveFilename(text, fallback)
	case ModeContent:
		return r.resolveContent(text, fallback)
	}
	return fallback, false
}

// resolveFilename returns the first valid date in pattern-table order.
// Filenames are short and rarely hold more than one date, so the scan
// short-circuits instead of collecting and ranking like content mode.
func (r *Resolver) resolveFilename(name string, fallback time.Time) (time.Time, bool) {
	for _, p := range filenamePatterns {
		for _, m := range p.Regexp.FindAllStringSubmatch(name, -1) {
			if d, ok := parseMatch(m, p.Shape); ok {
				return d, true
			}
		}
	}
	return fallback, false
}

// candidate is one scored parse of a content date match
type candidate struct {
	value    time.Time
	priority int
}

// resolveContent collects every valid date across all patterns and picks
// the highest-priority one, breaking ties toward the more recent date.
// Matches starting within the first 200 characters get a boost so header
// fields outrank dates buried in body text.
func (r *Resolver) resolveContent(text string, fallback time.Time) (time.Time, bool) {
	var candidates []candidate
	for _, p := range contentPatterns {
		for _, loc := range p.Regexp.FindAllStringSubmatchIndex(text, -1) {
			d, ok := parseMatch(groupsAt(text, loc, p.Regexp.NumSubexp()), p.Shape)
			if !ok {
				continue
			}
			priority := p.Priority
			if utf8.RuneCountInString(text[:loc[0]]) < earlyWindow {
				priority += earlyBoost
			}
			candidates = append(candidates, candidate{value: d, priority: priority})
		}
	}
	if len(candidates) == 0 {
		return fallback, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority > candidates[j].priority
		}
		return candidates[i].value.After(candidates[j].value)
	})
	return candidates[0].value, true
}

// groupsAt converts a submatch index slice into group strings, with the
// whole match at index 0
func groupsAt(text string, loc []int, groups int) []string {
	m := make([]string, 0, groups+1)
	for g := 0; g <= groups; g++ {
		start, end := loc[2*g], loc[2*g+1]
		if start < 0 {
			m = append(m, "")
			continue
		}
		m = append(m, text[start:end])
	}
	return m
}

// parseMatch interprets a match's capture groups according to the shape
func parseMatch(m []string, shape Shape) (time.Time, bool) {
	switch shape {
	case ShapeMonthName:
		if len(m) < 2 {
			return time.Time{}, false
		}
		return parseMonthName(m[1])
	case ShapeNumericYMD:
		if len(m) < 4 {
			return time.Time{}, false
		}
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	case ShapeNumericMDY:
		if len(m) < 4 {
			return time.Time{}, false
		}
		return makeDate(atoi(m[3]), atoi(m[1]), atoi(m[2]))
	case ShapeMonthYear:
		if len(m) < 3 {
			return time.Time{}, false
		}
		return makeDate(atoi(m[2]), atoi(m[1]), 1)
	case ShapeYearMonth:
		if len(m) < 3 {
			return time.Time{}, false
		}
		return makeDate(atoi(m[1]), atoi(m[2]), 1)
	}
	return time.Time{}, false
}

// parseMonthName parses "March 5, 2024" style text. The month token must
// be in the name table, so day-first forms like "5 March 2024" and
// unrecognized abbreviations like "sept" are rejected.
func parseMonthName(s string) (time.Time, bool) {
	parts := strings.Fields(s)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.ToLower(strings.ReplaceAll(parts[0], ",", ""))]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSuffix(parts[1], ","))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	return makeDate(year, int(month), day)
}

// makeDate validates the components and builds a UTC midnight date.
// time.Date silently normalizes impossible dates (February 31 becomes
// March 2), so the components are compared after construction and any
// drift means the source text was not a real calendar date.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < minYear || year > maxYear || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// ParseDefault parses a YYYY-MM-DD default-date override, rejecting
// malformed input before any file is touched
func ParseDefault(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date override must be in YYYY-MM-DD format: %w", err)
	}
	return d, nil
}
