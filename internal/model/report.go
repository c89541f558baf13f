package model

import "time"

// FileResult pairs one file's analysis with its organizing outcome.
// Exactly one of the outcome fields is populated: RenamedTo after a
// successful rename, Skipped with a reason when the file was excluded,
// Error when analysis or renaming failed.
type FileResult struct {
	Analysis  Analysis `json:"analysis"`
	RenamedTo string   `json:"renamed_to,omitempty"`
	Skipped   string   `json:"skipped,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Report is the full outcome of processing one folder
type Report struct {
	Root        string       `json:"root"`
	GeneratedAt time.Time    `json:"generated_at"`
	DefaultDate time.Time    `json:"default_date"`
	Files       []FileResult `json:"files"`
	Stats       Stats        `json:"stats"`
}

// Stats aggregates counts across a folder run
type Stats struct {
	Scanned  int            `json:"scanned"`
	Analyzed int            `json:"analyzed"`
	Renamed  int            `json:"renamed"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	ByYear   map[int]int    `json:"by_year,omitempty"`
	ByLabel  map[string]int `json:"by_label,omitempty"`
	Elapsed  time.Duration  `json:"elapsed"`
}
