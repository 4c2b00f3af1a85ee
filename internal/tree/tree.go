// Package tree renders a directory tree of a project bounded by a token
// budget. Depth adapts to project size and significant paths are always
// kept visible.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/primer/internal/budget"
)

// Options controls tree generation.
type Options struct {
	// BudgetTokens caps the rendered output size. Zero means no cap.
	BudgetTokens int

	// SignificantPaths are project-relative paths that must stay visible
	// even when the adaptive depth would hide them.
	SignificantPaths []string

	// IgnoreDirs are directory names skipped entirely.
	IgnoreDirs map[string]bool
}

// Repo-size thresholds used to scale the rendered depth.
const (
	mediumTreeFileCount = 2000
	largeTreeFileCount  = 5000
)

// adaptiveDepth returns a safe tree depth based on project size.
// Unknown file count (<=0) defaults to a conservative depth.
func adaptiveDepth(fileCount int) int {
	if fileCount <= 0 {
		return 2
	}
	if fileCount > largeTreeFileCount {
		return 2
	}
	if fileCount > mediumTreeFileCount {
		return 3
	}
	return 4
}

type node struct {
	name     string
	isDir    bool
	children []*node
}

// Generate walks root and renders an indented directory tree. Directories
// holding significant paths are expanded beyond the adaptive depth, and
// oversized sibling lists are elided with a count marker. The output never
// exceeds Options.BudgetTokens when set.
func Generate(root string, opts Options) string {
	sigDirs := make(map[string]bool)
	for _, p := range opts.SignificantPaths {
		p = strings.ReplaceAll(p, "\\", "/")
		for d := filepath.Dir(p); d != "." && d != "/"; d = filepath.Dir(d) {
			sigDirs[strings.ReplaceAll(d, "\\", "/")] = true
		}
	}

	total := countFiles(root, opts.IgnoreDirs)
	depth := adaptiveDepth(total)

	top := buildNode(root, "", depth, sigDirs, opts.IgnoreDirs)
	if top == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(filepath.Base(root) + "/\n")
	renderChildren(&b, top.children, "  ")
	out := b.String()

	if opts.BudgetTokens > 0 {
		out = trimToBudget(out, opts.BudgetTokens)
	}
	return out
}

// countFiles counts regular files under root, skipping ignored directories.
func countFiles(root string, ignore map[string]bool) int {
	count := 0
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ignore[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		count++
		return nil
	})
	return count
}

// buildNode reads one directory level. rel is the project-relative path of
// the directory ("" for root). Depth exhaustion stops recursion unless the
// directory is on a significant path.
func buildNode(absDir, rel string, depth int, sigDirs, ignore map[string]bool) *node {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil
	}

	n := &node{name: filepath.Base(absDir), isDir: true}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && name != ".primer.md" {
			continue
		}
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}
		if e.IsDir() {
			if ignore[name] {
				continue
			}
			if depth <= 1 && !sigDirs[childRel] {
				// Collapsed: show the directory itself but not its contents.
				n.children = append(n.children, &node{name: name + "/", isDir: true})
				continue
			}
			child := buildNode(filepath.Join(absDir, name), childRel, depth-1, sigDirs, ignore)
			if child != nil {
				child.name = name + "/"
				n.children = append(n.children, child)
			}
			continue
		}
		n.children = append(n.children, &node{name: name})
	}

	sort.Slice(n.children, func(i, j int) bool {
		if n.children[i].isDir != n.children[j].isDir {
			return n.children[i].isDir
		}
		return n.children[i].name < n.children[j].name
	})
	return n
}

// maxSiblings bounds how many entries of one directory are rendered.
const maxSiblings = 20

func renderChildren(b *strings.Builder, children []*node, indent string) {
	shown := children
	elided := 0
	if len(shown) > maxSiblings {
		elided = len(shown) - maxSiblings
		shown = shown[:maxSiblings]
	}
	for _, c := range shown {
		b.WriteString(indent + c.name + "\n")
		if len(c.children) > 0 {
			renderChildren(b, c.children, indent+"  ")
		}
	}
	if elided > 0 {
		fmt.Fprintf(b, "%s... %d more\n", indent, elided)
	}
}

// trimToBudget drops whole trailing lines until the output fits the token
// budget, then appends an elision marker.
func trimToBudget(s string, tokens int) string {
	if budget.EstimateTokens(s) <= tokens {
		return s
	}
	const marker = "...\n"
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for len(lines) > 1 {
		lines = lines[:len(lines)-1]
		candidate := strings.Join(lines, "\n") + "\n" + marker
		if budget.EstimateTokens(candidate) <= tokens {
			return candidate
		}
	}
	return marker
}
