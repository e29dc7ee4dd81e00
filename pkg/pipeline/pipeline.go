// Package pipeline orchestrates the extraction run: discover source files,
// analyze them in parallel, then refine the component list through pure
// passes (dedup, wrapper attachment, presets, usage counts) into the final
// metadata document and loader spec.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mde-pach/showkit/pkg/analyzer"
	"github.com/mde-pach/showkit/pkg/example"
	"github.com/mde-pach/showkit/pkg/meta"
	"github.com/mde-pach/showkit/pkg/parser"
	"github.com/mde-pach/showkit/pkg/usage"
	"github.com/mde-pach/showkit/pkg/util"
)

// Stats aggregates counters and per-phase timings for one run.
type Stats struct {
	FilesScanned         int              `json:"files_scanned"`
	FilesSkipped         int              `json:"files_skipped"`
	ComponentsFound      int              `json:"components_found"`
	ComponentsAfterDedup int              `json:"components_after_dedup"`
	PhaseMillis          map[string]int64 `json:"phase_millis"`
}

// Result is the full output of a pipeline run.
type Result struct {
	Document *meta.Document     `json:"document"`
	Loader   []LoaderEntry      `json:"loader"`
	Warnings []analyzer.Warning `json:"warnings,omitempty"`
	Stats    Stats              `json:"stats"`
}

// Pipeline wires the analyzer, example parser, and usage counter behind one
// Run entry point. Close releases the parser pools and file cache.
type Pipeline struct {
	cfg     Config
	pm      *parser.Manager
	an      *analyzer.Analyzer
	ex      *example.Parser
	counter *usage.Counter
	cache   *util.FileCache
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pm := parser.NewManager(logger)
	an, err := analyzer.New(pm, cfg.Analyzer, logger)
	if err != nil {
		pm.Close()
		return nil, err
	}
	cache := util.NewFileCache(0, logger)
	return &Pipeline{
		cfg:     cfg,
		pm:      pm,
		an:      an,
		ex:      example.NewParser(pm),
		counter: usage.NewCounter(cache, logger),
		cache:   cache,
		logger:  logger,
	}, nil
}

func (p *Pipeline) Close() {
	p.pm.Close()
	if err := p.cache.Close(); err != nil {
		p.logger.Warn("failed to close file cache", "error", err)
	}
}

// Run executes the full extraction over root.
func (p *Pipeline) Run(ctx context.Context, root string) (*Result, error) {
	stats := Stats{PhaseMillis: make(map[string]int64)}
	timed := func(name string, fn func() error) error {
		start := time.Now()
		err := fn()
		stats.PhaseMillis[name] = time.Since(start).Milliseconds()
		return err
	}

	var files []string
	if err := timed("discover", func() (err error) {
		files, err = Discover(root, p.cfg)
		return err
	}); err != nil {
		return nil, err
	}
	stats.FilesScanned = len(files)
	p.logger.Info("discovered source files", "root", root, "count", len(files))

	var components []meta.ComponentDescriptor
	var warnings []analyzer.Warning
	if err := timed("analyze", func() (err error) {
		components, warnings, err = p.analyzeAll(ctx, files, &stats)
		return err
	}); err != nil {
		return nil, err
	}
	components = p.dropExcluded(components)
	stats.ComponentsFound = len(components)

	_ = timed("dedup", func() error {
		components = Dedup(components)
		return nil
	})
	stats.ComponentsAfterDedup = len(components)

	_ = timed("wrappers", func() error {
		components = p.AttachWrappers(components)
		return nil
	})
	_ = timed("presets", func() error {
		components = p.AttachPresets(components)
		return nil
	})

	if err := timed("usage", func() error {
		attached, err := p.AttachUsage(components, files)
		if err != nil {
			return err
		}
		components = attached
		return nil
	}); err != nil {
		return nil, err
	}

	doc := &meta.Document{
		GeneratedAt: time.Now().UTC(),
		Globs:       p.cfg.Globs,
		Aliases:     p.cfg.Aliases,
		Components:  components,
	}
	if len(doc.Globs) == 0 {
		doc.Globs = DefaultConfig().Globs
	}
	if errs := doc.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("generated document failed validation: %w", errors.Join(errs...))
	}

	loader, err := BuildLoaderSpec(doc, root)
	if err != nil {
		return nil, err
	}

	p.logger.Info("pipeline run complete",
		"components", len(components),
		"warnings", len(warnings),
		"files", stats.FilesScanned)
	return &Result{Document: doc, Loader: loader, Warnings: warnings, Stats: stats}, nil
}

// analyzeAll fans file analysis out over a worker pool. Results keep the file
// order of the input list, so output is deterministic regardless of worker
// scheduling. A file that fails to parse contributes a warning, not an error.
func (p *Pipeline) analyzeAll(ctx context.Context, files []string, stats *Stats) ([]meta.ComponentDescriptor, []analyzer.Warning, error) {
	type fileResult struct {
		components []meta.ComponentDescriptor
		warnings   []analyzer.Warning
		skipped    bool
	}

	results := make([]fileResult, len(files))
	indexes := make(chan int)
	workers := util.GetOptimalPoolSizeWithOverride(p.cfg.Workers)
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				components, warnings, err := p.an.AnalyzeFile(files[i])
				if err != nil {
					results[i] = fileResult{
						warnings: []analyzer.Warning{{File: files[i], Message: err.Error()}},
						skipped:  true,
					}
					continue
				}
				results[i] = fileResult{components: components, warnings: warnings}
			}
		}()
	}

feed:
	for i := range files {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var components []meta.ComponentDescriptor
	var warnings []analyzer.Warning
	for _, r := range results {
		if r.skipped {
			stats.FilesSkipped++
		}
		components = append(components, r.components...)
		warnings = append(warnings, r.warnings...)
	}
	return components, warnings, nil
}

func (p *Pipeline) dropExcluded(components []meta.ComponentDescriptor) []meta.ComponentDescriptor {
	if len(p.cfg.ExcludedComponents) == 0 {
		return components
	}
	excluded := make(map[string]bool, len(p.cfg.ExcludedComponents))
	for _, name := range p.cfg.ExcludedComponents {
		excluded[name] = true
	}
	kept := components[:0]
	for _, c := range components {
		if !excluded[c.Name] {
			kept = append(kept, c)
		}
	}
	return kept
}

// Dedup collapses same-named components, keeping the one with the larger
// prop map. Ties keep the first seen. Order follows first occurrence of each
// surviving name.
func Dedup(components []meta.ComponentDescriptor) []meta.ComponentDescriptor {
	byName := make(map[string]int)
	var out []meta.ComponentDescriptor
	for _, c := range components {
		i, seen := byName[c.Name]
		if !seen {
			byName[c.Name] = len(out)
			out = append(out, c)
			continue
		}
		if len(c.Props) > len(out[i].Props) {
			out[i] = c
		}
	}
	return out
}

// AttachWrappers runs wrapper consensus over each component's examples and
// attaches the winning chain, but only when every wrapper tag names another
// extracted component; chains through unknown tags are styling context.
func (p *Pipeline) AttachWrappers(components []meta.ComponentDescriptor) []meta.ComponentDescriptor {
	known := make(map[string]bool, len(components))
	for _, c := range components {
		known[c.Name] = true
	}
	out := make([]meta.ComponentDescriptor, len(components))
	copy(out, components)
	for i := range out {
		if len(out[i].Examples) == 0 {
			continue
		}
		chain := p.ex.DetectWrappers(out[i].Examples, out[i].Name)
		if len(chain) == 0 {
			continue
		}
		allKnown := true
		for _, w := range chain {
			if !known[w.Name] {
				allKnown = false
				break
			}
		}
		if allKnown {
			out[i].Wrappers = chain
		}
	}
	return out
}

// AttachPresets parses every component example into an indexed preset list.
// Examples that do not contain the component contribute nothing.
func (p *Pipeline) AttachPresets(components []meta.ComponentDescriptor) []meta.ComponentDescriptor {
	out := make([]meta.ComponentDescriptor, len(components))
	copy(out, components)
	for i := range out {
		var presets []meta.Preset
		for _, snippet := range out[i].Examples {
			if preset, ok := p.ex.Preset(snippet, out[i].Name); ok {
				presets = append(presets, *preset)
			}
		}
		out[i].Presets = presets
	}
	return out
}

// AttachUsage counts references across all discovered files and attaches the
// per-component counts.
func (p *Pipeline) AttachUsage(components []meta.ComponentDescriptor, files []string) ([]meta.ComponentDescriptor, error) {
	definedIn := make(map[string]string, len(components))
	for _, c := range components {
		definedIn[c.Name] = c.FilePath
	}
	counts, err := p.counter.Count(files, definedIn)
	if err != nil {
		return nil, fmt.Errorf("usage counting failed: %w", err)
	}
	out := make([]meta.ComponentDescriptor, len(components))
	copy(out, components)
	for i := range out {
		if uc, ok := counts[out[i].Name]; ok {
			out[i].Usage = uc
		}
	}
	return out, nil
}
