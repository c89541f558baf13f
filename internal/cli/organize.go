package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ndanilov/docket/internal/pipeline"
)

var (
	dryRun       bool
	noExtract    bool
	noSummaryDoc bool
)

// organizeCmd represents the organize command
var organizeCmd = &cobra.Command{
	Use:   "organize <folder>",
	Short: "Rename documents to dated filenames and write a summary",
	Long: `Organize analyzes every document in a folder, then:
- Renames each file to YYYY.MM.DD_Sanitized_Name.ext
- Suffixes colliding names with _1, _2, ...
- Leaves hidden and already-dated files alone
- Writes a Markdown summary document next to the files

Example:
  docket organize ~/Documents/inbox
  docket organize ~/Documents/inbox --dry-run
  docket organize ~/Documents/inbox --date 2024-06-01 --no-extract`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func init() {
	rootCmd.AddCommand(organizeCmd)

	organizeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without renaming anything")
	organizeCmd.Flags().StringVar(&dateOverride, "date", "", "default date as YYYY-MM-DD (default: today)")
	organizeCmd.Flags().BoolVar(&noExtract, "no-extract", false, "skip date extraction and stamp every file with the default date")
	organizeCmd.Flags().BoolVar(&noSummaryDoc, "no-summary-doc", false, "skip the Markdown summary document")

	// Output flags
	organizeCmd.Flags().StringVar(&outJSON, "json", "", "write the JSON report to this path (\"-\" for stdout)")

	// Analysis flags shared with scan
	organizeCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default: CPU count)")
	organizeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	organizeCmd.Flags().BoolVar(&noOCR, "no-ocr", false, "disable OCR for images and scanned PDFs")

	// LLM flags
	organizeCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM describer provider (openai)")
	organizeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	root := args[0]

	defaultDate, err := resolveDefaultDate(dateOverride)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if err := applyCommonFlags(cfg); err != nil {
		return err
	}
	if noExtract {
		cfg.Scan.DateFromFiles = false
	}
	if noSummaryDoc {
		cfg.Output.SummaryDoc = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Docket Organize\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Folder:       %s\n", root)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Default date: %s\n", defaultDate.Format("2006-01-02"))
	if !cfg.Scan.DateFromFiles {
		fmt.Fprintf(os.Stderr, "  Dates:        default date for every file\n")
	}
	if dryRun {
		fmt.Fprintf(os.Stderr, "  Mode:         dry run\n")
	}
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	p := pipeline.NewPipeline(cfg, defaultDate)

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing files with %d workers...\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "\n")

	report, err := p.ProcessDir(ctx, root)
	if err != nil {
		return fmt.Errorf("organize failed: %w", err)
	}

	p.ApplyRenames(report, dryRun)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeStats)
	renderer.RenderFiles(os.Stdout, report, verbose)

	if cfg.Output.SummaryDoc {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Summary document is written during an actual run\n")
		} else {
			docPath, err := renderer.RenderSummaryDoc(report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to write summary document: %v\n", err)
			} else if docPath != "" {
				fmt.Fprintf(os.Stderr, "✓ Summary document: %s\n", filepath.Base(docPath))
			}
		}
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose && outJSON != "-" {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	renderer.RenderSummary(os.Stdout, report)

	return nil
}
