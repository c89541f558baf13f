package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ndanilov/docket/internal/model"
	"github.com/ndanilov/docket/internal/pipeline"
)

var (
	outJSON      string
	workers      int
	noCache      bool
	noOCR        bool
	llmProvider  string
	llmModel     string
	dateOverride string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Analyze a folder without touching any files",
	Long: `Scan analyzes every document in a folder to:
- Infer a date from content, filename, or the default
- Classify the document type from filename and content keywords
- Produce a short extractive summary
- Propose the dated filename organize would apply

Nothing is renamed or written into the folder.

Example:
  docket scan ~/Documents/inbox
  docket scan ~/Documents/inbox --json report.json
  docket scan ~/Documents/inbox --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "", "write the JSON report to this path (\"-\" for stdout)")

	// Analysis flags
	scanCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default: CPU count)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	scanCmd.Flags().BoolVar(&noOCR, "no-ocr", false, "disable OCR for images and scanned PDFs")
	scanCmd.Flags().StringVar(&dateOverride, "date", "", "default date as YYYY-MM-DD (default: today)")

	// LLM flags
	scanCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM describer provider (openai)")
	scanCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyCommonFlags overlays the shared analysis flags onto cfg. Zero
// values mean the flag was not given, so config file values survive.
func applyCommonFlags(cfg *model.Config) error {
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noOCR {
		cfg.OCR.Enabled = false
	}
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	// Get the API key from the environment
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]

	defaultDate, err := resolveDefaultDate(dateOverride)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if err := applyCommonFlags(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", root)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, defaultDate)

	report, err := p.ProcessDir(ctx, root)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	// Plan only; scan never renames
	p.ApplyRenames(report, true)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeStats)
	renderer.RenderFiles(os.Stdout, report, verbose)
	renderer.RenderSummary(os.Stdout, report)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose && outJSON != "-" {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}
