package dates

import (
	"regexp"
	"time"
)

// Shape describes how a pattern's capture groups map onto a calendar date
type Shape string

const (
	ShapeMonthName  Shape = "month_name"  // one group holding "March 5, 2024" style text
	ShapeNumericYMD Shape = "numeric_ymd" // three groups: year, month, day
	ShapeNumericMDY Shape = "numeric_mdy" // three groups: month, day, year
	ShapeMonthYear  Shape = "month_year"  // two groups: month, year; day becomes 1
	ShapeYearMonth  Shape = "year_month"  // two groups: year, month; day becomes 1
)

// Pattern pairs a compiled expression with the priority and group layout
// used to interpret its matches
type Pattern struct {
	Regexp   *regexp.Regexp
	Priority int
	Shape    Shape
}

// filenamePatterns are tried in order and the first valid match wins.
// Year-first forms outrank US month-first forms, which outrank the
// partial month/year forms.
var filenamePatterns = []Pattern{
	{regexp.MustCompile(`(\d{4})[._-](\d{1,2})[._-](\d{1,2})`), 90, ShapeNumericYMD},
	{regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`), 80, ShapeNumericYMD},
	{regexp.MustCompile(`(\d{1,2})[._-](\d{1,2})[._-](\d{4})`), 60, ShapeNumericMDY},
	{regexp.MustCompile(`(\d{2})(\d{2})(\d{4})`), 50, ShapeNumericMDY},
	{regexp.MustCompile(`(\d{1,2})[._-](\d{4})`), 20, ShapeMonthYear},
	{regexp.MustCompile(`(\d{4})[._-](\d{1,2})`), 10, ShapeYearMonth},
}

const (
	documentDateLabels = `(?i)(?:invoice\s+date|document\s+date|report\s+date|meeting\s+date|created):\s*`
	bareDateLabel      = `(?i)(?:^|\n|\s)date:\s*`
	updatedLabel       = `(?i)last\s+updated:\s*`
	futureDateLabels   = `(?i)(?:due\s+date|next\s+meeting|deadline):\s*`

	monthNameDate  = `([A-Za-z]+\s+\d{1,2},?\s+\d{4})`
	numericYMDDate = `(\d{4})[/-](\d{1,2})[/-](\d{1,2})`
	numericMDYDate = `(\d{1,2})[/-](\d{1,2})[/-](\d{4})`
)

// contentPatterns all run over the text; every valid match becomes a
// candidate. Labelled document dates carry the highest priority,
// future-looking labels rank low so a due date never beats a document
// date, and bare numeric dates are the weakest signal.
var contentPatterns = []Pattern{
	{regexp.MustCompile(documentDateLabels + monthNameDate), 100, ShapeMonthName},
	{regexp.MustCompile(documentDateLabels + numericYMDDate), 100, ShapeNumericYMD},
	{regexp.MustCompile(documentDateLabels + numericMDYDate), 100, ShapeNumericMDY},
	{regexp.MustCompile(bareDateLabel + monthNameDate), 90, ShapeMonthName},
	{regexp.MustCompile(bareDateLabel + numericYMDDate), 90, ShapeNumericYMD},
	{regexp.MustCompile(bareDateLabel + numericMDYDate), 90, ShapeNumericMDY},
	{regexp.MustCompile(updatedLabel + monthNameDate), 80, ShapeMonthName},
	{regexp.MustCompile(updatedLabel + numericYMDDate), 80, ShapeNumericYMD},
	{regexp.MustCompile(updatedLabel + numericMDYDate), 80, ShapeNumericMDY},
	{regexp.MustCompile(monthNameDate), 50, ShapeMonthName},
	{regexp.MustCompile(futureDateLabels + monthNameDate), 20, ShapeMonthName},
	{regexp.MustCompile(futureDateLabels + numericYMDDate), 20, ShapeNumericYMD},
	{regexp.MustCompile(futureDateLabels + numericMDYDate), 20, ShapeNumericMDY},
	{regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`), 10, ShapeNumericYMD},
	{regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`), 5, ShapeNumericMDY},
}

// monthNames accepts full month names and the three-letter forms
var monthNames = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
	"jan":       time.January,
	"feb":       time.February,
	"mar":       time.March,
	"apr":       time.April,
	"jun":       time.June,
	"jul":       time.July,
	"aug":       time.August,
	"sep":       time.September,
	"oct":       time.October,
	"nov":       time.November,
	"dec":       time.December,
}
