package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ndanilov/docket/internal/model"
	"github.com/ndanilov/docket/internal/rename"
)

// Renderer writes reports to the console and to disk
type Renderer struct {
	includeStats bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeStats bool) *Renderer {
	return &Renderer{includeStats: includeStats}
}

// RenderSummary prints the run overview
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Docket Analysis\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Folder:    %s\n", report.Root)
	fmt.Fprintf(w, "  Scanned:   %d files\n", report.Stats.Scanned)
	fmt.Fprintf(w, "  Analyzed:  %d\n", report.Stats.Analyzed)
	fmt.Fprintf(w, "  Renamed:   %d\n", report.Stats.Renamed)
	fmt.Fprintf(w, "  Skipped:   %d\n", report.Stats.Skipped)
	fmt.Fprintf(w, "  Failed:    %d\n", report.Stats.Failed)
	fmt.Fprintf(w, "  Elapsed:   %v\n", report.Stats.Elapsed.Round(time.Millisecond))

	if r.includeStats && len(report.Stats.ByLabel) > 0 {
		fmt.Fprintf(w, "\n  By type:\n")
		for _, label := range sortedLabels(report.Stats.ByLabel) {
			fmt.Fprintf(w, "    %-20s %d\n", label, report.Stats.ByLabel[label])
		}
	}
	if r.includeStats && len(report.Stats.ByYear) > 0 {
		fmt.Fprintf(w, "\n  By year:\n")
		for _, year := range sortedYears(report.Stats.ByYear) {
			fmt.Fprintf(w, "    %-20d %d\n", year, report.Stats.ByYear[year])
		}
	}
	fmt.Fprintf(w, "\n")
}

// RenderFiles prints one entry per file with the resolved date, label,
// and outcome
func (r *Renderer) RenderFiles(w io.Writer, report *model.Report, verbose bool) {
	for i := range report.Files {
		fr := &report.Files[i]
		switch {
		case fr.Skipped != "":
			fmt.Fprintf(w, "  - %s (%s)\n", fr.Analysis.Name, fr.Skipped)
		case fr.Error != "":
			fmt.Fprintf(w, "  ✗ %s: %s\n", fr.Analysis.Name, fr.Error)
		default:
			fmt.Fprintf(w, "  ✓ %s  %-16s %s\n", fr.Analysis.Date.Format("2006-01-02"), fr.Analysis.Label, fr.Analysis.Name)
			if fr.RenamedTo != "" {
				fmt.Fprintf(w, "      renamed to %s\n", fr.RenamedTo)
			} else if fr.Analysis.ProposedName != "" {
				fmt.Fprintf(w, "      would become %s\n", fr.Analysis.ProposedName)
			}
			if verbose {
				for _, sentence := range fr.Analysis.Summary {
					fmt.Fprintf(w, "      %s\n", sentence)
				}
			}
		}
	}
}

// RenderJSON writes the report as indented JSON to path, or to stdout
// when path is "-"
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummaryDoc writes the markdown summary document into the
// report's folder, dated and collision-suffixed like the renamed files
// themselves. Returns the written path, or "" when the report holds no
// renamed files.
func (r *Renderer) RenderSummaryDoc(report *model.Report) (string, error) {
	var renamed []*model.FileResult
	for i := range report.Files {
		if report.Files[i].RenamedTo != "" {
			renamed = append(renamed, &report.Files[i])
		}
	}
	if len(renamed) == 0 {
		return "", nil
	}

	now := time.Now()
	coordinator := rename.NewCoordinator(func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	name := coordinator.Plan(report.Root, "Document_Summary.md", now)
	path := filepath.Join(report.Root, name)

	var b strings.Builder
	b.WriteString("# Document Summary\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Folder:** `%s`\n", report.Root)
	fmt.Fprintf(&b, "**Files Processed:** %d\n\n", len(renamed))
	b.WriteString("---\n\n")

	for _, fr := range renamed {
		fmt.Fprintf(&b, "## %s\n\n", docTitle(fr.RenamedTo))
		fmt.Fprintf(&b, "**File:** `%s`\n", fr.RenamedTo)
		fmt.Fprintf(&b, "**Date:** %s\n\n", fr.Analysis.Date.Format("2006-01-02"))
		if len(fr.Analysis.Summary) == 0 {
			b.WriteString("**Summary:** Unable to generate summary - no usable text\n\n")
		} else {
			b.WriteString("**Summary:**\n")
			for j, sentence := range fr.Analysis.Summary {
				fmt.Fprintf(&b, "%d. %s\n", j+1, sentence)
			}
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}

	if r.includeStats {
		b.WriteString("## Summary Statistics\n\n")
		fmt.Fprintf(&b, "- **Total Documents:** %d\n", len(renamed))

		years := make(map[int]int)
		for _, fr := range renamed {
			years[fr.Analysis.Date.Year()]++
		}
		if len(years) > 0 {
			b.WriteString("- **Documents by Year:**\n")
			for _, year := range sortedYears(years) {
				fmt.Fprintf(&b, "  - %d: %d documents\n", year, years[year])
			}
		}
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write summary document: %w", err)
	}
	return path, nil
}

// docTitle derives a section heading from a renamed file: the date
// prefix and extension go, underscores become spaces again.
func docTitle(name string) string {
	title := rename.StripDatePrefix(name)
	if idx := strings.LastIndex(title, "."); idx > 0 {
		title = title[:idx]
	}
	return strings.ReplaceAll(title, "_", " ")
}

func sortedYears(m map[int]int) []int {
	years := make([]int, 0, len(m))
	for year := range m {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func sortedLabels(m map[string]int) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
