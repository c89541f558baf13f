package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ndanilov/docket/internal/model"
	"github.com/ndanilov/docket/internal/rename"
	"github.com/ndanilov/docket/internal/worker"
)

// ProcessDir analyzes every eligible file directly under root.
// Subdirectories are not descended into; organizing is a per-folder
// operation.
func (p *Pipeline) ProcessDir(ctx context.Context, root string) (*model.Report, error) {
	start := time.Now()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	report := &model.Report{
		Root:        root,
		GeneratedAt: start.UTC(),
		DefaultDate: p.defaultDate,
	}
	report.Stats.ByYear = make(map[int]int)
	report.Stats.ByLabel = make(map[string]int)

	allowed := allowedExtensions(p.config.Scan.Extensions)

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		report.Stats.Scanned++

		if reason := rename.ShouldSkip(name); reason != "" {
			report.Files = append(report.Files, skippedResult(root, name, reason))
			report.Stats.Skipped++
			continue
		}
		if allowed != nil && !allowed[strings.ToLower(filepath.Ext(name))] {
			report.Files = append(report.Files, skippedResult(root, name, "extension not configured"))
			report.Stats.Skipped++
			continue
		}

		paths = append(paths, filepath.Join(root, name))
	}

	batch := worker.NewBatchAnalyzer(p, p.config.Concurrency.Workers)
	results := batch.ProcessFiles(ctx, paths)
	if ctx.Err() != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", ctx.Err())
	}

	for _, res := range results {
		if res.Error != nil {
			report.Files = append(report.Files, model.FileResult{
				Analysis: model.Analysis{
					Path: res.Path,
					Name: filepath.Base(res.Path),
					Ext:  strings.ToLower(filepath.Ext(res.Path)),
				},
				Error: res.Error.Error(),
			})
			report.Stats.Failed++
			continue
		}

		report.Files = append(report.Files, model.FileResult{Analysis: *res.Analysis})
		report.Stats.Analyzed++
		report.Stats.ByYear[res.Analysis.Date.Year()]++
		report.Stats.ByLabel[res.Analysis.Label]++
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Analysis.Name < report.Files[j].Analysis.Name
	})

	report.Stats.Elapsed = time.Since(start)
	return report, nil
}

// ApplyRenames plans a collision-free dated name for every analyzed
// file and, unless dryRun is set, renames the files on disk. Files that
// were skipped or failed analysis are left alone.
func (p *Pipeline) ApplyRenames(report *model.Report, dryRun bool) {
	coordinator := rename.NewCoordinator(func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})

	for i := range report.Files {
		fr := &report.Files[i]
		if fr.Skipped != "" || fr.Error != "" {
			continue
		}

		target := coordinator.Plan(report.Root, fr.Analysis.Name, fr.Analysis.Date)
		fr.Analysis.ProposedName = target
		if dryRun {
			continue
		}

		oldPath := filepath.Join(report.Root, fr.Analysis.Name)
		newPath := filepath.Join(report.Root, target)
		if err := os.Rename(oldPath, newPath); err != nil {
			fr.Error = fmt.Sprintf("rename: %v", err)
			report.Stats.Failed++
			continue
		}
		fr.RenamedTo = target
		report.Stats.Renamed++
	}
}

func allowedExtensions(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	if len(allowed) == 0 {
		return nil
	}
	return allowed
}

func skippedResult(root, name, reason string) model.FileResult {
	return model.FileResult{
		Analysis: model.Analysis{
			Path: filepath.Join(root, name),
			Name: name,
			Ext:  strings.ToLower(filepath.Ext(name)),
		},
		Skipped: reason,
	}
}
