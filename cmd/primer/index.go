//go:build cgo

package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/dusk-indust/primer/internal/compiler"
	"github.com/dusk-indust/primer/internal/config"
	"github.com/dusk-indust/primer/internal/graph"
)

// runIndex builds a persistent import-graph index under .primer/graph so
// later queries do not re-scan the project.
func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	maxDepth := fs.Int("max-depth", 0, "maximum directory traversal depth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	ctx := context.Background()
	_, files, err := compiler.New().Scan(ctx, compiler.Options{
		Root:     root,
		MaxDepth: *maxDepth,
	})
	if err != nil {
		return err
	}

	graphPath := filepath.Join(root, ".primer", "graph")
	if cfg, cfgErr := config.Load(root); cfgErr == nil && cfg.GraphPath != "" {
		graphPath = cfg.GraphPath
	}
	store, err := graph.NewKuzuFileStore(graphPath)
	if err != nil {
		return fmt.Errorf("open graph store: %w", err)
	}
	defer store.Close()

	if err := graph.Build(ctx, store, files); err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("indexed %d files, %d packages, %d edges -> %s\n",
		stats.FileCount, stats.PackageCount, stats.EdgeCount, graphPath)
	return nil
}
