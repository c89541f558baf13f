package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ndanilov/docket/internal/pipeline"
	"github.com/ndanilov/docket/internal/rename"
)

var (
	debounce      time.Duration
	initialScan   bool
	watchOrganize bool
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Watch a folder and analyze documents as they arrive",
	Long: `Watch keeps running and analyzes every document created or modified
in the folder. With --organize, files are renamed to the dated
convention once they settle; without it, watch only reports what it
sees.

Events are debounced per file, so a large copy in progress is analyzed
once, after it finishes.

Example:
  docket watch ~/Documents/inbox
  docket watch ~/Documents/inbox --organize --debounce 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&debounce, "debounce", 2*time.Second, "wait this long after the last write before analyzing")
	watchCmd.Flags().BoolVar(&initialScan, "initial-scan", false, "process files already in the folder on startup")
	watchCmd.Flags().BoolVar(&watchOrganize, "organize", false, "rename files after analyzing them")

	// Analysis flags shared with scan
	watchCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default: CPU count)")
	watchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the extracted-text cache")
	watchCmd.Flags().BoolVar(&noOCR, "no-ocr", false, "disable OCR for images and scanned PDFs")

	// LLM flags
	watchCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM describer provider (openai)")
	watchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := args[0]

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	cfg := loadConfig()
	if err := applyCommonFlags(cfg); err != nil {
		return err
	}

	defaultDate, err := resolveDefaultDate("")
	if err != nil {
		return err
	}
	p := pipeline.NewPipeline(cfg, defaultDate)
	renderer := pipeline.NewRenderer(cfg.Output.IncludeStats)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if initialScan {
		report, err := p.ProcessDir(ctx, root)
		if err != nil {
			return fmt.Errorf("initial scan failed: %w", err)
		}
		p.ApplyRenames(report, !watchOrganize)
		renderer.RenderFiles(os.Stdout, report, verbose)
	}

	fmt.Fprintf(os.Stderr, "Watching %s (debounce %v, organize %v)\n", root, debounce, watchOrganize)

	// One timer per path: a copy in progress fires many writes, the
	// analysis runs once the file settles.
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[path]; ok {
			t.Stop()
		}
		timers[path] = time.AfterFunc(debounce, func() {
			mu.Lock()
			delete(timers, path)
			mu.Unlock()
			handleWatchedFile(ctx, p, root, path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "\nStopping\n")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if rename.ShouldSkip(name) != "" {
				continue
			}
			schedule(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)
		}
	}
}

// handleWatchedFile analyzes one settled file and optionally renames it
func handleWatchedFile(ctx context.Context, p *pipeline.Pipeline, root, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	analysis, err := p.AnalyzeFile(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", filepath.Base(path), err)
		return
	}

	fmt.Printf("  ✓ %s  %-16s %s\n", analysis.Date.Format("2006-01-02"), analysis.Label, analysis.Name)
	if verbose {
		for _, sentence := range analysis.Summary {
			fmt.Printf("      %s\n", sentence)
		}
	}

	if !watchOrganize {
		return
	}

	coordinator := rename.NewCoordinator(func(candidate string) bool {
		_, err := os.Stat(candidate)
		return err == nil
	})
	target := coordinator.Plan(root, analysis.Name, analysis.Date)
	if err := os.Rename(path, filepath.Join(root, target)); err != nil {
		fmt.Fprintf(os.Stderr, "✗ rename %s: %v\n", analysis.Name, err)
		return
	}
	fmt.Printf("      renamed to %s\n", target)
}
