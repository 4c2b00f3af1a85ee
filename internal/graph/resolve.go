package graph

import (
	"path"
	"strings"
)

// sourceExtensions are tried, in order, when an import path has no extension.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".py", ".rs", ".go"}

// indexNames are the conventional directory entry files tried when an import
// path resolves to a directory.
var indexNames = []string{"index.ts", "index.tsx", "index.js", "index.jsx", "mod.rs", "__init__.py"}

// Resolver maps relative import specifiers to project file paths. It probes
// a known-file set rather than the filesystem so resolution works on any
// snapshot of the project.
type Resolver struct {
	files map[string]bool
}

// NewResolver builds a resolver over the given project-relative file paths.
// Paths are normalized to forward slashes.
func NewResolver(files []string) *Resolver {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[strings.ReplaceAll(f, "\\", "/")] = true
	}
	return &Resolver{files: set}
}

// Resolve returns the project-relative path of the file a relative import
// refers to, and whether it resolved. importerPath is the project-relative
// path of the importing file. The specifier form picks the strategy: Rust
// crate/self/super paths, Python dotted modules, or ./-style paths.
func (r *Resolver) Resolve(importerPath, importSource string) (string, bool) {
	importer := strings.ReplaceAll(importerPath, "\\", "/")

	switch {
	case strings.HasPrefix(importSource, "crate::"),
		strings.HasPrefix(importSource, "self::"),
		strings.HasPrefix(importSource, "super::"):
		return r.resolveRust(importer, importSource)
	case strings.HasPrefix(importSource, ".") && strings.HasSuffix(importer, ".py"):
		return r.resolvePython(importer, importSource)
	case strings.HasPrefix(importSource, "."):
		return r.resolvePath(importer, importSource)
	default:
		return "", false
	}
}

// resolvePath handles ./-style specifiers: the raw path first (the specifier
// may already carry an extension), then source extensions, then directory
// index files.
func (r *Resolver) resolvePath(importer, source string) (string, bool) {
	base := path.Dir(importer)
	candidate := path.Clean(path.Join(base, source))
	if strings.HasPrefix(candidate, "..") {
		return "", false
	}

	if r.files[candidate] {
		return candidate, true
	}
	for _, ext := range sourceExtensions {
		if r.files[candidate+ext] {
			return candidate + ext, true
		}
	}
	for _, name := range indexNames {
		probe := path.Join(candidate, name)
		if r.files[probe] {
			return probe, true
		}
	}
	return "", false
}

// resolvePython handles dotted relative modules. One leading dot is the
// importer's own package, each further dot climbs one directory; the module
// part maps dots to directories and probes module.py then
// module/__init__.py.
func (r *Resolver) resolvePython(importer, source string) (string, bool) {
	dots := 0
	for dots < len(source) && source[dots] == '.' {
		dots++
	}
	module := source[dots:]

	base := path.Dir(importer)
	for i := 1; i < dots; i++ {
		base = path.Dir(base)
	}

	if module == "" {
		probe := path.Join(base, "__init__.py")
		if r.files[probe] {
			return probe, true
		}
		return "", false
	}

	candidate := path.Clean(path.Join(base, strings.ReplaceAll(module, ".", "/")))
	if strings.HasPrefix(candidate, "..") {
		return "", false
	}
	if r.files[candidate+".py"] {
		return candidate + ".py", true
	}
	if probe := path.Join(candidate, "__init__.py"); r.files[probe] {
		return probe, true
	}
	return "", false
}

// resolveRust handles crate::, self:: and super:: use paths. Path segments
// map :: to directories and probe module.rs then module/mod.rs; crate::
// anchors at the crate source root (the nearest enclosing src directory,
// with src/ and the project root as fallbacks).
func (r *Resolver) resolveRust(importer, source string) (string, bool) {
	head, rest, _ := strings.Cut(source, "::")
	relPath := strings.ReplaceAll(rest, "::", "/")
	if relPath == "" {
		return "", false
	}

	switch head {
	case "self":
		return r.probeRust(path.Join(path.Dir(importer), relPath))
	case "super":
		base := path.Dir(path.Dir(importer))
		candidate := path.Clean(path.Join(base, relPath))
		if strings.HasPrefix(candidate, "..") {
			return "", false
		}
		return r.probeRust(candidate)
	case "crate":
		candidates := []string{path.Join("src", relPath), relPath}
		if root := crateRoot(importer); root != "" {
			candidates = append(candidates, path.Join(root, relPath))
		}
		for _, c := range candidates {
			if resolved, ok := r.probeRust(c); ok {
				return resolved, true
			}
		}
	}
	return "", false
}

func (r *Resolver) probeRust(base string) (string, bool) {
	if r.files[base+".rs"] {
		return base + ".rs", true
	}
	if probe := path.Join(base, "mod.rs"); r.files[probe] {
		return probe, true
	}
	return "", false
}

// crateRoot walks up from the importer to the nearest src directory.
func crateRoot(importer string) string {
	for dir := path.Dir(importer); dir != "." && dir != "/" && dir != ""; dir = path.Dir(dir) {
		if path.Base(dir) == "src" {
			return dir
		}
	}
	return ""
}
