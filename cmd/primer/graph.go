package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dusk-indust/primer/internal/compiler"
	"github.com/dusk-indust/primer/internal/export"
	"github.com/dusk-indust/primer/internal/graph"
)

func runGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	format := fs.String("format", "json", "output format: json or mermaid")
	maxDepth := fs.Int("max-depth", 0, "maximum directory traversal depth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	ctx := context.Background()
	proj, files, err := compiler.New().Scan(ctx, compiler.Options{
		Root:     root,
		MaxDepth: *maxDepth,
	})
	if err != nil {
		return err
	}

	store := graph.NewMemStore()
	defer store.Close()
	if err := graph.Build(ctx, store, files); err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	switch *format {
	case "mermaid":
		diagram, err := export.GenerateMermaid(ctx, store)
		if err != nil {
			return err
		}
		fmt.Print(diagram)
	case "json":
		data, err := export.MarshalGraphJSON(ctx, store, proj.Name)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
	return nil
}
