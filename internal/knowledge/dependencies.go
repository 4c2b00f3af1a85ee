package knowledge

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/graph"
)

// hubMinInbound is the inbound import count that makes a file a hub.
const hubMinInbound = 2

// excludedPackages are ecosystem built-ins and known extraction false
// positives that never belong in an external-dependency list.
var excludedPackages = map[string]bool{
	// false positives
	"module": true, "source": true, "type": true, "types": true, "pkg": true,
	// node built-ins
	"fs": true, "path": true, "os": true, "http": true, "https": true,
	"crypto": true, "util": true, "events": true, "stream": true,
	"url": true, "assert": true, "buffer": true, "child_process": true,
	"zlib": true, "net": true, "tls": true, "readline": true,
	"process": true, "worker_threads": true,
	// python standard library
	"sys": true, "re": true, "json": true, "typing": true,
	"collections": true, "dataclasses": true, "pathlib": true,
	"abc": true, "functools": true, "itertools": true, "logging": true,
	"math": true, "datetime": true, "enum": true, "asyncio": true,
	"unittest": true, "subprocess": true, "shutil": true, "io": true,
	// rust built-in crates
	"std": true, "core": true, "alloc": true,
	// go standard library (single-segment import paths)
	"fmt": true, "errors": true, "strings": true, "strconv": true,
	"context": true, "time": true, "sort": true, "sync": true,
	"bytes": true, "bufio": true, "regexp": true, "flag": true,
	"slices": true, "maps": true, "testing": true, "unicode": true,
	"encoding": true, "runtime": true, "reflect": true, "embed": true, "iter": true,
}

// Dependencies builds the internal import graph, reporting directory flows,
// hub files and external packages. Returns nil when the project has no
// imports at all.
func Dependencies(ctx context.Context, files []extract.FileSignatures) *Entry {
	hasImports := false
	for _, f := range files {
		if len(f.Imports) > 0 {
			hasImports = true
			break
		}
	}
	if !hasImports {
		return nil
	}

	store := graph.NewMemStore()
	defer store.Close()
	if err := graph.Build(ctx, store, files); err != nil {
		log.Printf("knowledge: build import graph: %v", err)
		return nil
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil
	}
	hubs, err := store.Hubs(ctx, hubMinInbound)
	if err != nil {
		return nil
	}

	var lines []string

	flows := graph.DirFlows(edges)
	if len(flows) > 0 {
		const maxFlows = 8
		if len(flows) > maxFlows {
			flows = flows[:maxFlows]
		}
		var parts []string
		for _, fl := range flows {
			parts = append(parts, fmt.Sprintf("%s -> %s (%d)", fl.From, fl.To, fl.Count))
		}
		lines = append(lines, "- Import flow: "+strings.Join(parts, ", "))
	}

	if len(hubs) > 0 {
		const maxHubs = 5
		if len(hubs) > maxHubs {
			hubs = hubs[:maxHubs]
		}
		var parts []string
		for _, h := range hubs {
			parts = append(parts, fmt.Sprintf("`%s` (%d importers)", h.Path, h.Inbound))
		}
		lines = append(lines, "- Hub files: "+strings.Join(parts, ", "))
	}

	if externals := externalPackages(edges); len(externals) > 0 {
		lines = append(lines, "- External deps: "+strings.Join(externals, ", "))
	}

	if len(lines) == 0 {
		return nil
	}
	content := strings.Join(lines, "\n")
	return &Entry{
		Title:   "Dependencies",
		Content: content,
		Tokens:  entryTokens("Dependencies", content),
	}
}

// externalPackages collects the distinct DEPENDS_ON targets, filtered
// through the exclusion list, sorted alphabetically.
func externalPackages(edges []graph.Edge) []string {
	seen := make(map[string]bool)
	for _, e := range edges {
		if e.Kind != graph.EdgeKindDepends {
			continue
		}
		if keepExternal(e.Target) {
			seen[e.Target] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// keepExternal reports whether a package name belongs in the external
// dependency list. Single-character names, excluded built-ins and
// runtime-namespaced specifiers (node:fs) are dropped.
func keepExternal(name string) bool {
	if len(name) <= 1 {
		return false
	}
	if strings.Contains(name, ":") {
		return false
	}
	return !excludedPackages[name]
}
