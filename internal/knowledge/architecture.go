package knowledge

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/project"
)

// dirRoles maps conventional directory names to architectural role labels.
var dirRoles = map[string]string{
	"routes":       "API routes",
	"controllers":  "request handlers",
	"handlers":     "request handlers",
	"middleware":   "request middleware",
	"services":     "business logic",
	"models":       "data models",
	"entities":     "data models",
	"schemas":      "data schemas",
	"repositories": "data access",
	"db":           "database access",
	"database":     "database access",
	"migrations":   "database migrations",
	"api":          "API layer",
	"components":   "UI components",
	"views":        "UI views",
	"pages":        "page views",
	"hooks":        "UI hooks",
	"store":        "state management",
	"stores":       "state management",
	"utils":        "shared utilities",
	"helpers":      "shared utilities",
	"lib":          "shared utilities",
	"types":        "type definitions",
	"config":       "configuration",
	"cmd":          "command entry points",
	"internal":     "internal packages",
	"workers":      "background workers",
	"jobs":         "background workers",
	"tests":        "tests",
	"test":         "tests",
	"__tests__":    "tests",
}

// sourceRoots are containers whose immediate children carry the real layer
// names, so grouping descends one level into them.
var sourceRoots = map[string]bool{
	"src":    true,
	"app":    true,
	"source": true,
}

// entryBaseNames are filenames that mark a program entry point.
var entryBaseNames = map[string]bool{
	"index":  true,
	"main":   true,
	"app":    true,
	"server": true,
	"cli":    true,
}

// Architecture groups files by directory, maps recognized directory names
// to architectural roles, and lists detected entry points and monorepo
// workspaces. Returns nil when no directory yields a recognized role and
// no entry point is found.
func Architecture(proj *project.Info, files []extract.FileSignatures) *Entry {
	type layer struct {
		dir   string
		role  string
		count int
	}

	counts := make(map[string]int)
	order := make(map[string]string)
	var entryPoints []string

	for _, f := range files {
		p := strings.ReplaceAll(f.Path, "\\", "/")
		dir, role := layerFor(p)
		if role != "" {
			counts[dir]++
			order[dir] = role
		}
		if isEntryPoint(p) {
			entryPoints = append(entryPoints, p)
		}
	}

	if len(counts) == 0 && len(entryPoints) == 0 {
		return nil
	}

	layers := make([]layer, 0, len(counts))
	for dir, n := range counts {
		layers = append(layers, layer{dir: dir, role: order[dir], count: n})
	}
	sort.Slice(layers, func(i, j int) bool {
		if layers[i].count != layers[j].count {
			return layers[i].count > layers[j].count
		}
		return layers[i].dir < layers[j].dir
	})
	sort.Strings(entryPoints)

	var b strings.Builder
	for _, l := range layers {
		fmt.Fprintf(&b, "- `%s/` — %s (%d files)\n", l.dir, l.role, l.count)
	}
	if len(entryPoints) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Entry points: " + strings.Join(entryPoints, ", ") + "\n")
	}
	if proj != nil && proj.Monorepo != nil {
		fmt.Fprintf(&b, "\nMonorepo (%s): %d workspaces\n",
			proj.Monorepo.Tool, len(proj.Monorepo.Workspaces))
	}

	content := strings.TrimRight(b.String(), "\n")
	return &Entry{
		Title:   "Architecture",
		Content: content,
		Tokens:  entryTokens("Architecture", content),
	}
}

// layerFor returns the grouping directory and its role label for a file
// path, descending one level into common source roots. Empty role means
// the directory is not recognized.
func layerFor(p string) (string, string) {
	parts := strings.Split(p, "/")
	if len(parts) < 2 {
		return "", ""
	}
	top := parts[0]
	if sourceRoots[top] && len(parts) >= 3 {
		second := parts[1]
		if role, ok := dirRoles[second]; ok {
			return top + "/" + second, role
		}
	}
	if role, ok := dirRoles[top]; ok {
		return top, role
	}
	return "", ""
}

// isEntryPoint reports whether the file looks like a program entry point:
// a conventional entry filename at the root or directly under a source
// root, or any file under cmd/ or bin/.
func isEntryPoint(p string) bool {
	parts := strings.Split(p, "/")
	if parts[0] == "cmd" || parts[0] == "bin" {
		return true
	}
	if len(parts) > 2 || (len(parts) == 2 && !sourceRoots[parts[0]]) {
		return false
	}
	base := parts[len(parts)-1]
	base = strings.TrimSuffix(base, path.Ext(base))
	return entryBaseNames[strings.ToLower(base)]
}
