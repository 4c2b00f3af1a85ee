package project

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// manifestData aggregates the name/description/dependency hints readable
// from ecosystem manifests. All fields are best-effort.
type manifestData struct {
	name        string
	description string
	frameworks  []string
	tooling     []string
	workspaces  []string // raw workspace globs from package.json
}

// packageJSON is the subset of package.json the detector reads.
type packageJSON struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Workspaces      json.RawMessage   `json:"workspaces"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// cargoManifest is the subset of Cargo.toml the detector reads.
type cargoManifest struct {
	Package struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"package"`
	Workspace struct {
		Members []string `toml:"members"`
	} `toml:"workspace"`
}

// pyprojectManifest is the subset of pyproject.toml the detector reads.
type pyprojectManifest struct {
	Project struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name        string `toml:"name"`
			Description string `toml:"description"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// frameworkPackages maps dependency names to framework labels.
var frameworkPackages = map[string]string{
	"react":         "react",
	"next":          "next.js",
	"vue":           "vue",
	"nuxt":          "nuxt",
	"svelte":        "svelte",
	"@angular/core": "angular",
	"express":       "express",
	"fastify":       "fastify",
	"@nestjs/core":  "nestjs",
	"hono":          "hono",
	"astro":         "astro",
	"@remix-run/react": "remix",
	"electron":      "electron",
}

// toolingPackages maps dependency names to tooling labels.
var toolingPackages = map[string]string{
	"typescript": "typescript",
	"eslint":     "eslint",
	"prettier":   "prettier",
	"vite":       "vite",
	"webpack":    "webpack",
	"jest":       "jest",
	"vitest":     "vitest",
	"tsup":       "tsup",
	"turbo":      "turborepo",
}

// readManifests reads every manifest present under root, in priority order:
// package.json first, then the language-specific manifests. The first
// manifest that declares a name wins.
func readManifests(root string) manifestData {
	var m manifestData

	if pkg := readPackageJSON(filepath.Join(root, "package.json")); pkg != nil {
		m.name = pkg.Name
		m.description = pkg.Description
		m.workspaces = parseWorkspaceGlobs(pkg.Workspaces)

		deps := make(map[string]bool, len(pkg.Dependencies)+len(pkg.DevDependencies))
		for d := range pkg.Dependencies {
			deps[d] = true
		}
		for d := range pkg.DevDependencies {
			deps[d] = true
		}
		m.frameworks = matchLabels(deps, frameworkPackages)
		m.tooling = matchLabels(deps, toolingPackages)
	}

	if m.name == "" {
		var cargo cargoManifest
		if readTOML(filepath.Join(root, "Cargo.toml"), &cargo) {
			m.name = cargo.Package.Name
			if m.description == "" {
				m.description = cargo.Package.Description
			}
		}
	}

	if m.name == "" {
		var py pyprojectManifest
		if readTOML(filepath.Join(root, "pyproject.toml"), &py) {
			m.name = py.Project.Name
			if m.name == "" {
				m.name = py.Tool.Poetry.Name
			}
			if m.description == "" {
				m.description = py.Project.Description
				if m.description == "" {
					m.description = py.Tool.Poetry.Description
				}
			}
		}
	}

	if m.name == "" {
		m.name = goModuleBase(filepath.Join(root, "go.mod"))
	}

	return m
}

func readPackageJSON(path string) *packageJSON {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}
	return &pkg
}

func readTOML(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return toml.Unmarshal(data, v) == nil
}

// goModuleBase returns the last path segment of a go.mod module directive.
func goModuleBase(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			modPath := strings.TrimSpace(strings.TrimPrefix(line, "module"))
			if idx := strings.LastIndex(modPath, "/"); idx != -1 {
				return modPath[idx+1:]
			}
			return modPath
		}
	}
	return ""
}

// parseWorkspaceGlobs handles both package.json workspace forms: a plain
// array of globs or an object with a "packages" key.
func parseWorkspaceGlobs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Packages
	}
	return nil
}

func matchLabels(deps map[string]bool, table map[string]string) []string {
	var out []string
	for pkg, label := range table {
		if deps[pkg] {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
