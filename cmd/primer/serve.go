package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dusk-indust/primer/internal/compiler"
	"github.com/dusk-indust/primer/internal/mcptools"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	httpAddr := fs.String("http", "", "serve MCP over HTTP on this address instead of stdio")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := mcptools.NewPrimerService(compiler.New())

	if *httpAddr != "" {
		fmt.Fprintf(os.Stderr, "primer: serving MCP on http://%s\n", *httpAddr)
		return mcptools.RunHTTP(ctx, svc, *httpAddr)
	}
	return mcptools.RunStdio(ctx, mcptools.NewPrimerMCPServer(svc))
}
