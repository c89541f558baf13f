package model

import "time"

// DateSource identifies which resolution path produced a document's date
type DateSource string

const (
	DateFromContent  DateSource = "content"  // matched inside the extracted text
	DateFromFilename DateSource = "filename" // matched in the filename
	DateDefaulted    DateSource = "default"  // no match anywhere, fallback applied
)

// Analysis is the complete result of analyzing a single document
type Analysis struct {
	Path         string     `json:"path"`                    // location at analysis time
	Name         string     `json:"name"`                    // base name at analysis time
	Ext          string     `json:"ext"`                     // lowercased extension with dot
	SizeBytes    int64      `json:"size_bytes"`              // file size on disk
	Date         time.Time  `json:"date"`                    // inferred document date
	DateSource   DateSource `json:"date_source"`             // where the date came from
	Label        string     `json:"label"`                   // document type, title case
	Summary      []string   `json:"summary"`                 // extracted summary sentences
	Describer    string     `json:"describer,omitempty"`     // which describer produced label and summary
	ProposedName string     `json:"proposed_name,omitempty"` // collision-free dated filename
	Truncated    bool       `json:"truncated,omitempty"`     // extracted text hit the configured cap
}
