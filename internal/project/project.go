// Package project classifies a directory as a project: ecosystem type,
// human name and description, framework and tooling hints, and monorepo
// workspace layout. Detection never fails; unreadable or malformed
// manifests degrade silently to the next fallback.
package project

import (
	"os"
	"path/filepath"
	"sort"
)

// Info describes a detected project. Created once per compilation run and
// immutable afterward.
type Info struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"` // runtime/ecosystem key: node, bun, go, rust, ...
	Root        string     `json:"root"`
	Description string     `json:"description,omitempty"`
	Frameworks  []string   `json:"frameworks,omitempty"`
	Tooling     []string   `json:"tooling,omitempty"`
	Monorepo    *Monorepo  `json:"monorepo,omitempty"`
	ConfigFile  string     `json:"configFile,omitempty"`
	Override    *Override  `json:"-"`
}

// Monorepo describes a workspace layout.
type Monorepo struct {
	Tool       string      `json:"tool"`
	Workspaces []Workspace `json:"workspaces"`
}

// Workspace is one member package of a monorepo.
type Workspace struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// marker associates an ecosystem marker file with a project type. The table
// is ordered: more specific ecosystems come before their superset (a bun
// lockfile outranks package.json), and the first match wins.
type marker struct {
	file  string
	ptype string
}

var markerTable = []marker{
	{"bun.lockb", "bun"},
	{"bun.lock", "bun"},
	{"deno.json", "deno"},
	{"deno.jsonc", "deno"},
	{"pnpm-lock.yaml", "node"},
	{"yarn.lock", "node"},
	{"package-lock.json", "node"},
	{"package.json", "node"},
	{"go.work", "go"},
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"setup.py", "python"},
	{"Pipfile", "python"},
	{"Gemfile", "ruby"},
	{"pom.xml", "jvm"},
	{"build.gradle", "jvm"},
	{"build.gradle.kts", "jvm"},
	{"composer.json", "php"},
}

// Detect inspects root and returns what it can learn about the project.
func Detect(root string) *Info {
	info := &Info{
		Root: root,
		Type: "unknown",
	}

	for _, m := range markerTable {
		if fileExists(filepath.Join(root, m.file)) {
			info.Type = m.ptype
			break
		}
	}

	override := LoadOverride(root)
	if override != nil {
		info.Override = override
		info.ConfigFile = override.Path
		if override.Type != "" {
			info.Type = override.Type
		}
	}

	manifest := readManifests(root)
	info.Description = manifest.description
	info.Frameworks = manifest.frameworks
	info.Tooling = detectTooling(root, manifest)
	info.Monorepo = detectMonorepo(root, manifest)

	// Name resolution: override, then manifest, then the directory name.
	switch {
	case override != nil && override.Name != "":
		info.Name = override.Name
	case manifest.name != "":
		info.Name = manifest.name
	default:
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}
		info.Name = filepath.Base(abs)
	}

	return info
}

// toolingFiles maps well-known config filenames to tooling labels.
var toolingFiles = map[string]string{
	"tsconfig.json":      "typescript",
	"Dockerfile":         "docker",
	"docker-compose.yml": "docker",
	"Makefile":           "make",
	".eslintrc":          "eslint",
	".eslintrc.json":     "eslint",
	".eslintrc.js":       "eslint",
	"eslint.config.js":   "eslint",
	".prettierrc":        "prettier",
	"vite.config.ts":     "vite",
	"vite.config.js":     "vite",
	"webpack.config.js":  "webpack",
	"jest.config.js":     "jest",
	"jest.config.ts":     "jest",
	"vitest.config.ts":   "vitest",
	"tailwind.config.js": "tailwind",
	"tailwind.config.ts": "tailwind",
	".golangci.yml":      "golangci-lint",
	"rustfmt.toml":       "rustfmt",
}

func detectTooling(root string, m manifestData) []string {
	seen := make(map[string]bool)
	for file, label := range toolingFiles {
		if fileExists(filepath.Join(root, file)) {
			seen[label] = true
		}
	}
	for _, t := range m.tooling {
		seen[t] = true
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
