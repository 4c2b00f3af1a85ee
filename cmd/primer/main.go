package main

import (
	"fmt"
	"os"
)

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := "compile"
	rest := args
	if len(args) > 0 && !isFlag(args[0]) {
		cmd = args[0]
		rest = args[1:]
	}

	switch cmd {
	case "compile":
		return runCompile(rest)
	case "graph":
		return runGraph(rest)
	case "index":
		return runIndex(rest)
	case "serve":
		return runServe(rest)
	case "version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func printUsage() {
	fmt.Fprint(os.Stderr, `primer - compile a project into a bounded context document

Usage:
  primer [compile] [flags] [path]   compile a context document (default)
  primer graph [flags] [path]       print the resolved import graph
  primer index [flags] [path]       build a persistent import-graph index
  primer serve [flags]              run as an MCP server
  primer version                    print version and exit

Run 'primer <command> -h' for command flags.
`)
}
