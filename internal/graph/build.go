package graph

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dusk-indust/primer/internal/extract"
)

// Build populates the store from extraction output. Relative imports are
// resolved to file-to-file IMPORTS edges; everything else becomes a
// DEPENDS_ON edge to an external Package node. Unresolvable relative
// imports are dropped.
func Build(ctx context.Context, store Store, files []extract.FileSignatures) error {
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("graph: init schema: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	resolver := NewResolver(paths)

	for _, f := range files {
		node := FileNode{
			Path:       f.Path,
			Language:   string(f.Language),
			Signatures: len(f.Signatures),
		}
		if err := store.AddFile(ctx, node); err != nil {
			return fmt.Errorf("graph: add file %s: %w", f.Path, err)
		}
	}

	seenPackages := make(map[string]bool)
	for _, f := range files {
		for _, imp := range f.Imports {
			if imp.IsRelative {
				target, ok := resolver.Resolve(f.Path, imp.Source)
				if !ok {
					continue
				}
				edge := Edge{Source: f.Path, Target: target, Kind: EdgeKindImports}
				if err := store.AddEdge(ctx, edge); err != nil {
					return fmt.Errorf("graph: add import edge: %w", err)
				}
				continue
			}

			pkg := PackageName(imp.Source)
			if pkg == "" {
				continue
			}
			if !seenPackages[pkg] {
				seenPackages[pkg] = true
				if err := store.AddPackage(ctx, PackageNode{Name: pkg}); err != nil {
					return fmt.Errorf("graph: add package %s: %w", pkg, err)
				}
			}
			edge := Edge{Source: f.Path, Target: pkg, Kind: EdgeKindDepends}
			if err := store.AddEdge(ctx, edge); err != nil {
				return fmt.Errorf("graph: add depends edge: %w", err)
			}
		}
	}
	return nil
}

// PackageName canonicalizes an external import source to a package name.
// Rust use paths keep the crate (first :: segment), dotted module paths
// without slashes keep the root module (os.path -> os), scoped npm packages
// keep their first two segments, hosted module paths (first segment contains
// a dot, e.g. github.com/user/repo) keep up to three, everything else keeps
// the first. Returns "" for empty or purely relative sources.
func PackageName(source string) string {
	source = strings.TrimSpace(source)
	if source == "" || strings.HasPrefix(source, ".") {
		return ""
	}
	if crate, _, ok := strings.Cut(source, "::"); ok {
		return crate
	}
	parts := strings.Split(source, "/")
	if strings.HasPrefix(source, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	if strings.Contains(parts[0], ".") && len(parts) >= 3 {
		return strings.Join(parts[:3], "/")
	}
	if len(parts) == 1 && strings.Contains(parts[0], ".") && !strings.Contains(parts[0], ":") {
		root, _, _ := strings.Cut(parts[0], ".")
		return root
	}
	return parts[0]
}

// DirFlows aggregates IMPORTS edges into directory-to-directory flows,
// sorted by count descending then lexically. Self-flows are skipped.
func DirFlows(edges []Edge) []DirFlow {
	counts := make(map[[2]string]int)
	for _, e := range edges {
		if e.Kind != EdgeKindImports {
			continue
		}
		from := flowDir(e.Source)
		to := flowDir(e.Target)
		if from == to {
			continue
		}
		counts[[2]string{from, to}]++
	}

	flows := make([]DirFlow, 0, len(counts))
	for k, c := range counts {
		flows = append(flows, DirFlow{From: k[0], To: k[1], Count: c})
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Count != flows[j].Count {
			return flows[i].Count > flows[j].Count
		}
		if flows[i].From != flows[j].From {
			return flows[i].From < flows[j].From
		}
		return flows[i].To < flows[j].To
	})
	return flows
}

// flowDir returns the containing directory of a file path, with root-level
// files grouped under ".".
func flowDir(p string) string {
	d := path.Dir(strings.ReplaceAll(p, "\\", "/"))
	if d == "" {
		return "."
	}
	return d
}
