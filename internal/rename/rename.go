package rename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// datePrefix matches the YYYY.MM.DD_ naming convention this tool applies
var datePrefix = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}_`)

// HasDatePrefix reports whether name already carries a date prefix
func HasDatePrefix(name string) bool {
	return datePrefix.MatchString(name)
}

// StripDatePrefix removes a leading date prefix if present
func StripDatePrefix(name string) string {
	return datePrefix.ReplaceAllString(name, "")
}

// ShouldSkip returns the reason a file is excluded from organizing, or
// an empty string to proceed. Hidden files and files already carrying a
// date prefix are left alone, which keeps repeated runs idempotent.
func ShouldSkip(name string) string {
	if strings.HasPrefix(name, ".") {
		return "hidden file"
	}
	if HasDatePrefix(name) {
		return "already dated"
	}
	return ""
}

// Sanitize strips characters that are unsafe in filenames, converts
// spaces to underscores and collapses underscore runs
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			continue
		case ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// Coordinator plans collision-free dated filenames for one folder run.
// Names planned earlier in the run are reserved, so a batch of files
// resolving to the same date and stem gets distinct suffixes even
// before anything is renamed on disk.
type Coordinator struct {
	exists   func(path string) bool
	reserved map[string]bool
}

// NewCoordinator creates a coordinator. exists reports whether a
// candidate target is already taken on disk; nil confines collision
// checks to names planned within this run.
func NewCoordinator(exists func(string) bool) *Coordinator {
	if exists == nil {
		exists = func(string) bool { return false }
	}
	return &Coordinator{
		exists:   exists,
		reserved: make(map[string]bool),
	}
}

// Plan returns the dated, sanitized filename for name in dir, appending
// a numeric suffix until the target is free
func (c *Coordinator) Plan(dir, name string, date time.Time) string {
	ext := filepath.Ext(name)
	stem := StripDatePrefix(strings.TrimSuffix(name, ext))
	base := date.Format("2006.01.02") + "_" + Sanitize(stem)

	candidate := base + ext
	n := 1
	for c.taken(filepath.Join(dir, candidate)) {
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
		n++
	}
	c.reserved[filepath.Join(dir, candidate)] = true
	return candidate
}

func (c *Coordinator) taken(path string) bool {
	return c.reserved[path] || c.exists(path)
}
