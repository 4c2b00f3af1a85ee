// Package compiler orchestrates a full context compilation: detect the
// project, walk its sources, extract signatures, analyze the import
// graph, then assemble a budgeted Markdown document.
package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/primer/internal/budget"
	"github.com/dusk-indust/primer/internal/config"
	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/knowledge"
	"github.com/dusk-indust/primer/internal/lang"
	"github.com/dusk-indust/primer/internal/prioritize"
	"github.com/dusk-indust/primer/internal/project"
	"github.com/dusk-indust/primer/internal/tree"
)

const (
	// DefaultBudgetTokens is the total output budget when none is given.
	DefaultBudgetTokens = 8000

	// DefaultMaxDepth bounds directory traversal.
	DefaultMaxDepth = 8

	// extractBatchSize files are parsed concurrently, then the batch joins
	// before the next one starts. Bounds peak file-handle and parser usage.
	extractBatchSize = 20

	// codeMapFileFloor and codeMapFileDivisorCap shape the per-file cap in
	// the code-map section: max(floor, total/min(fileCount, divisorCap)).
	codeMapFileFloor      = 200
	codeMapFileDivisorCap = 15
)

// Options configures a single compilation run.
type Options struct {
	Root         string
	BudgetTokens int
	MaxDepth     int
	ExcludeDirs  []string

	// Progress, when non-nil, receives stage events during the run.
	Progress *ProgressReporter
}

// Result is the outcome of a compilation.
type Result struct {
	Document   string
	Project    *project.Info
	Files      []extract.FileSignatures
	Allocation budget.Allocation
	Knowledge  []knowledge.Entry

	// Truncated lists files whose code-map listing was cut or dropped to
	// honor the budget.
	Truncated []string
}

// Compiler runs compilation pipelines. It is safe for use from a single
// goroutine per instance; the underlying grammar cache is shared safely.
type Compiler struct {
	loader    *lang.Loader
	extractor *extract.Extractor
}

// New creates a Compiler with the built-in grammar backend.
func New() *Compiler {
	loader := lang.NewLoader(lang.BuiltinBackend{})
	return &Compiler{
		loader:    loader,
		extractor: extract.NewExtractor(loader),
	}
}

// Compile executes the full pipeline for one project root. The only
// returned errors are conditions outside the core's scope (a bad root
// path); everything else degrades to a smaller document.
func (c *Compiler) Compile(ctx context.Context, opts Options) (*Result, error) {
	emit := func(stage Stage, status ProgressStatus, msg string) {
		if opts.Progress != nil {
			opts.Progress.Emit(ProgressEvent{Stage: stage, Status: status, Message: msg})
		}
	}
	runStage := func(stage Stage, fn func()) {
		emit(stage, ProgressWorking, "")
		fn()
		emit(stage, ProgressComplete, "")
	}

	// Configure
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("compiler: resolve root %s: %w", opts.Root, err)
	}
	var cfg *config.ProjectConfig
	runStage(StageConfigure, func() {
		cfg, _ = config.Load(root)
		if cfg == nil {
			cfg = &config.ProjectConfig{}
		}
		if opts.BudgetTokens <= 0 {
			opts.BudgetTokens = cfg.BudgetTokens
		}
		if opts.BudgetTokens <= 0 {
			opts.BudgetTokens = DefaultBudgetTokens
		}
		if opts.MaxDepth <= 0 {
			opts.MaxDepth = cfg.MaxDepth
		}
		if opts.MaxDepth <= 0 {
			opts.MaxDepth = DefaultMaxDepth
		}
		opts.ExcludeDirs = append(opts.ExcludeDirs, cfg.ExcludeDirs...)
	})

	// Detect
	var proj *project.Info
	runStage(StageDetect, func() {
		proj = project.Detect(root)
	})

	// Walk
	var includes, excludes []string
	if proj.Override != nil {
		includes = proj.Override.Includes
		excludes = proj.Override.Excludes
	}
	var paths []string
	runStage(StageWalk, func() {
		w := newWalker(root, opts.MaxDepth, opts.ExcludeDirs, includes, excludes, c.loader.SupportedExtensions())
		paths = w.walk()
	})

	// ExtractSignatures
	var files []extract.FileSignatures
	runStage(StageExtract, func() {
		files = c.extractBatched(ctx, root, paths)
	})

	// BuildKnowledge
	var entries []knowledge.Entry
	runStage(StageKnowledge, func() {
		knowledgeBudget := budget.Allocate(opts.BudgetTokens)[budget.SectionKnowledge]
		entries = knowledge.Generate(ctx, proj, files, knowledgeBudget)
	})

	// AllocateBudget
	var alloc budget.Allocation
	runStage(StageAllocate, func() {
		alloc = budget.Allocate(opts.BudgetTokens)
	})

	// AssembleSections
	sigsByPath := make(map[string][]extract.SignatureEntry, len(files))
	for _, f := range files {
		sigsByPath[f.Path] = f.Signatures
	}
	ranked := prioritize.Rank(sigsByPath)

	var sections map[budget.Section]string
	var truncated []string
	runStage(StageAssemble, func() {
		sections = make(map[budget.Section]string)
		sections[budget.SectionOverview] = buildOverview(proj)
		sections[budget.SectionStructure] = tree.Generate(root, tree.Options{
			BudgetTokens:     alloc[budget.SectionStructure],
			SignificantPaths: ranked,
			IgnoreDirs:       ignoreSetFor(opts.ExcludeDirs),
		})
		sections[budget.SectionKeyFiles] = buildKeyFiles(ranked, sigsByPath, proj)

		perFile := perFileCap(opts.BudgetTokens, len(ranked))
		sections[budget.SectionCodeMap], truncated = buildCodeMap(ranked, sigsByPath, perFile)
		sections[budget.SectionKnowledge] = buildKnowledge(entries, proj)
	})

	// RedistributeSurplus
	var final budget.Allocation
	runStage(StageRedistribute, func() {
		used := make(budget.Allocation, len(sections))
		for s, content := range sections {
			used[s] = budget.EstimateTokens(content)
		}
		final = budget.RedistributeSurplus(alloc, used)
	})

	// Finalize
	var doc string
	runStage(StageFinalize, func() {
		doc = assembleDocument(proj, sections, final)
	})

	return &Result{
		Document:   doc,
		Project:    proj,
		Files:      files,
		Allocation: final,
		Knowledge:  entries,
		Truncated:  truncated,
	}, nil
}

// Scan runs only the detection, walk and extraction stages. Callers that
// need the import graph without a full document use this.
func (c *Compiler) Scan(ctx context.Context, opts Options) (*project.Info, []extract.FileSignatures, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("compiler: resolve root %s: %w", opts.Root, err)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	proj := project.Detect(root)

	var includes, excludes []string
	if proj.Override != nil {
		includes = proj.Override.Includes
		excludes = proj.Override.Excludes
	}
	w := newWalker(root, opts.MaxDepth, opts.ExcludeDirs, includes, excludes, c.loader.SupportedExtensions())
	files := c.extractBatched(ctx, root, w.walk())
	return proj, files, nil
}

// Loader exposes the shared grammar loader.
func (c *Compiler) Loader() *lang.Loader {
	return c.loader
}

// extractBatched parses files in fixed-size batches with unconstrained
// in-batch concurrency and a forced join between batches. Files that
// yield nothing are dropped.
func (c *Compiler) extractBatched(ctx context.Context, root string, paths []string) []extract.FileSignatures {
	results := make([]*extract.FileSignatures, len(paths))
	for start := 0; start < len(paths); start += extractBatchSize {
		end := start + extractBatchSize
		if end > len(paths) {
			end = len(paths)
		}
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				abs := filepath.Join(root, filepath.FromSlash(paths[i]))
				results[i] = c.extractor.ExtractFileSignatures(gctx, abs, root)
				return nil
			})
		}
		_ = g.Wait()
	}

	out := make([]extract.FileSignatures, 0, len(paths))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// perFileCap returns the code-map token cap for a single file.
func perFileCap(total, fileCount int) int {
	if fileCount <= 0 {
		return codeMapFileFloor
	}
	divisor := fileCount
	if divisor > codeMapFileDivisorCap {
		divisor = codeMapFileDivisorCap
	}
	limit := total / divisor
	if limit < codeMapFileFloor {
		limit = codeMapFileFloor
	}
	return limit
}

// sectionHeadings maps budget sections to their document headings.
var sectionHeadings = map[budget.Section]string{
	budget.SectionOverview:  "## Overview",
	budget.SectionStructure: "## Structure",
	budget.SectionKeyFiles:  "## Key Files",
	budget.SectionCodeMap:   "## Code Map",
	budget.SectionKnowledge: "## Knowledge",
}

// assembleDocument truncates each section to its final grant and joins the
// non-empty ones under fixed headings. Empty sections are omitted, never
// emitted as bare headings.
func assembleDocument(proj *project.Info, sections map[budget.Section]string, alloc budget.Allocation) string {
	var b strings.Builder
	b.WriteString("# " + proj.Name + "\n")
	if proj.Description != "" {
		b.WriteString("\n> " + proj.Description + "\n")
	}

	for _, s := range budget.Sections {
		content := truncateToTokens(sections[s], alloc[s])
		if strings.TrimSpace(content) == "" {
			continue
		}
		b.WriteString("\n" + sectionHeadings[s] + "\n\n")
		if s == budget.SectionStructure {
			b.WriteString("```\n" + strings.TrimRight(content, "\n") + "\n```\n")
			continue
		}
		b.WriteString(strings.TrimRight(content, "\n") + "\n")
	}
	return b.String()
}

// ignoreSetFor merges the default ignore directories with extras.
func ignoreSetFor(extra []string) map[string]bool {
	out := make(map[string]bool, len(defaultIgnoreDirs)+len(extra))
	for d := range defaultIgnoreDirs {
		out[d] = true
	}
	for _, d := range extra {
		out[d] = true
	}
	return out
}
