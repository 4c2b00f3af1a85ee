// Package export renders a compiled import graph in shareable formats.
package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/primer/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a graph store.
// Files are grouped into subgraphs by directory; IMPORTS edges become
// arrows and DEPENDS_ON edges become dashed arrows to package nodes.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Build node → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(path string) string {
		if id, ok := nodeIDs[path]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[path] = id
		return id
	}

	// Group file endpoints by directory.
	dirs := make(map[string][]string)
	seen := make(map[string]bool)
	addFile := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		dir := filepath.ToSlash(filepath.Dir(path))
		dirs[dir] = append(dirs[dir], path)
	}
	for _, e := range edges {
		addFile(e.Source)
		if e.Kind == graph.EdgeKindImports {
			addFile(e.Target)
		}
	}

	dirNames := make([]string, 0, len(dirs))
	for d := range dirs {
		dirNames = append(dirNames, d)
	}
	sort.Strings(dirNames)

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, dir := range dirNames {
		members := dirs[dir]
		sort.Strings(members)
		sb.WriteString(fmt.Sprintf("  subgraph %s[\"%.40s\"]\n", getID(dir+"/"), dir))
		for _, member := range members {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(member), shortPath(member)))
		}
		sb.WriteString("  end\n")
	}

	for _, e := range edges {
		switch e.Kind {
		case graph.EdgeKindImports:
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", getID(e.Source), getID(e.Target)))
		case graph.EdgeKindDepends:
			sb.WriteString(fmt.Sprintf("  %s -.-> %s[(\"%s\")]\n", getID(e.Source), getID("pkg:"+e.Target), e.Target))
		}
	}

	return sb.String(), nil
}

// shortPath returns the last 2 path segments for readability.
func shortPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 2 {
		return strings.Join(parts, "/")
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
