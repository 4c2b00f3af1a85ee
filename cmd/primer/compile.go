package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/dusk-indust/primer/internal/compiler"
	"github.com/dusk-indust/primer/internal/config"
)

func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	budgetTokens := fs.Int("budget", 0, "total token budget for the output document")
	maxDepth := fs.Int("max-depth", 0, "maximum directory traversal depth")
	output := fs.String("output", "", "write the document to this file instead of stdout")
	verbose := fs.Bool("verbose", false, "print pipeline progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	// Flags beat primer.yml for output path and verbosity.
	if cfg, err := config.Load(root); err == nil {
		if *output == "" {
			*output = cfg.OutputPath
		}
		if !*verbose {
			*verbose = cfg.Verbose
		}
	}

	opts := compiler.Options{
		Root:         root,
		BudgetTokens: *budgetTokens,
		MaxDepth:     *maxDepth,
	}

	var wg sync.WaitGroup
	if *verbose {
		progress := compiler.NewProgressReporter()
		opts.Progress = progress
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range progress.Subscribe() {
				fmt.Fprintln(os.Stderr, compiler.FormatProgress(ev))
			}
		}()
		defer wg.Wait()
		defer progress.Close()
	}

	result, err := compiler.New().Compile(context.Background(), opts)
	if err != nil {
		return err
	}

	if *verbose && len(result.Truncated) > 0 {
		fmt.Fprintf(os.Stderr, "truncated %d files to fit budget\n", len(result.Truncated))
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result.Document), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *output, err)
		}
		return nil
	}
	fmt.Print(result.Document)
	return nil
}
