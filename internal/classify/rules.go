package classify

// Rule associates a document-type label with the keywords that signal it
type Rule struct {
	Label    string
	Keywords []string
}

// filenameRules score tokens that show up in file names. Slice order is
// the tie-break order, so more specific labels come first.
var filenameRules = []Rule{
	{"Invoice", []string{"invoice", "bill"}},
	{"Receipt", []string{"receipt", "payment"}},
	{"Meeting Notes", []string{"meeting", "minutes", "agenda", "standup"}},
	{"Contract", []string{"contract", "agreement", "amendment", "nda"}},
	{"Report", []string{"report", "quarterly", "annual", "financial"}},
	{"Research", []string{"research", "study", "paper", "thesis"}},
	{"Project Plan", []string{"project", "roadmap", "milestone"}},
	{"Resume", []string{"resume", "cv", "curriculum"}},
	{"Presentation", []string{"presentation", "slides", "deck"}},
	{"Letter", []string{"letter", "memo", "correspondence"}},
	{"Notes", []string{"notes", "journal", "diary"}},
}

// contentRules score phrases found in extracted text. The same labels in
// the same order, with structural cues that rarely appear outside their
// document type.
var contentRules = []Rule{
	{"Invoice", []string{"invoice number", "invoice #", "bill to", "amount due", "payment terms", "subtotal", "total due", "remit to"}},
	{"Receipt", []string{"payment received", "transaction id", "paid in full", "change due", "thank you for your purchase"}},
	{"Meeting Notes", []string{"attendees:", "action items", "agenda", "minutes of", "meeting adjourned", "next meeting"}},
	{"Contract", []string{"whereas", "hereinafter", "the parties", "terms and conditions", "governing law", "in witness whereof", "effective date"}},
	{"Report", []string{"executive summary", "key findings", "quarterly", "year over year", "revenue", "recommendations"}},
	{"Research", []string{"abstract", "methodology", "hypothesis", "literature review", "references", "peer review"}},
	{"Project Plan", []string{"milestone", "deliverable", "timeline", "work breakdown", "sprint", "kickoff"}},
	{"Resume", []string{"work experience", "education", "employment history", "professional summary", "skills"}},
	{"Presentation", []string{"slide", "q&a", "thank you for your attention"}},
	{"Letter", []string{"dear ", "sincerely", "best regards", "to whom it may concern"}},
	{"Notes", []string{"todo", "reminder", "follow up", "scratch"}},
}

// extensionLabels is the last-resort mapping when no keyword scores
var extensionLabels = map[string]string{
	".docx": "Word Document",
	".doc":  "Word Document",
	".xlsx": "Spreadsheet",
	".xls":  "Spreadsheet",
	".csv":  "Data File",
	".txt":  "Text Document",
	".md":   "Markdown Document",
	".html": "Web Document",
	".htm":  "Web Document",
	".png":  "Scanned Document",
	".jpg":  "Scanned Document",
	".jpeg": "Scanned Document",
	".tiff": "Scanned Document",
	".pptx": "Presentation",
	".ppt":  "Presentation",
	".log":  "Log File",
}
