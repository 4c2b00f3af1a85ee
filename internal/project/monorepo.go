package project

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// detectMonorepo probes the workspace conventions of each ecosystem in
// order. The first convention that yields at least one workspace wins.
func detectMonorepo(root string, m manifestData) *Monorepo {
	if ws := pnpmWorkspaces(root); len(ws) > 0 {
		return &Monorepo{Tool: "pnpm", Workspaces: ws}
	}
	if len(m.workspaces) > 0 {
		if ws := expandWorkspaceGlobs(root, m.workspaces); len(ws) > 0 {
			return &Monorepo{Tool: "npm", Workspaces: ws}
		}
	}
	if ws := goWorkspaces(root); len(ws) > 0 {
		return &Monorepo{Tool: "go-work", Workspaces: ws}
	}
	if ws := cargoWorkspaces(root); len(ws) > 0 {
		return &Monorepo{Tool: "cargo", Workspaces: ws}
	}
	return nil
}

func pnpmWorkspaces(root string) []Workspace {
	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		return nil
	}
	var doc struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return expandWorkspaceGlobs(root, doc.Packages)
}

// expandWorkspaceGlobs resolves workspace glob patterns to member
// directories and reads each member's package.json for metadata.
func expandWorkspaceGlobs(root string, patterns []string) []Workspace {
	var out []Workspace
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			continue
		}
		for _, dir := range matches {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				continue
			}
			ws := Workspace{Name: filepath.Base(dir), Path: filepath.ToSlash(rel)}
			if pkg := readPackageJSON(filepath.Join(dir, "package.json")); pkg != nil {
				if pkg.Name != "" {
					ws.Name = pkg.Name
				}
				ws.Description = pkg.Description
			}
			out = append(out, ws)
		}
	}
	return out
}

// goWorkspaces parses the use directives of a go.work file.
func goWorkspaces(root string) []Workspace {
	f, err := os.Open(filepath.Join(root, "go.work"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []Workspace
	inBlock := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case inBlock:
			if line == ")" {
				inBlock = false
				continue
			}
			if dir := strings.TrimSpace(line); dir != "" && !strings.HasPrefix(dir, "//") {
				out = append(out, goWorkspace(root, dir))
			}
		case line == "use (":
			inBlock = true
		case strings.HasPrefix(line, "use "):
			out = append(out, goWorkspace(root, strings.TrimSpace(strings.TrimPrefix(line, "use"))))
		}
	}
	return out
}

func goWorkspace(root, dir string) Workspace {
	name := goModuleBase(filepath.Join(root, dir, "go.mod"))
	if name == "" {
		name = filepath.Base(dir)
	}
	return Workspace{Name: name, Path: filepath.ToSlash(filepath.Clean(dir)), Type: "go"}
}

// cargoWorkspaces reads [workspace] members from the root Cargo.toml.
func cargoWorkspaces(root string) []Workspace {
	var cargo cargoManifest
	if !readTOML(filepath.Join(root, "Cargo.toml"), &cargo) {
		return nil
	}
	var out []Workspace
	for _, member := range cargo.Workspace.Members {
		matches, err := filepath.Glob(filepath.Join(root, member))
		if err != nil {
			continue
		}
		for _, dir := range matches {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(root, dir)
			if err != nil {
				continue
			}
			ws := Workspace{Name: filepath.Base(dir), Path: filepath.ToSlash(rel), Type: "rust"}
			var memberCargo cargoManifest
			if readTOML(filepath.Join(dir, "Cargo.toml"), &memberCargo) && memberCargo.Package.Name != "" {
				ws.Name = memberCargo.Package.Name
				ws.Description = memberCargo.Package.Description
			}
			out = append(out, ws)
		}
	}
	return out
}
