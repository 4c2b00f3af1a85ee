package compiler

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// defaultIgnoreDirs are directory names never descended into.
var defaultIgnoreDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"coverage":     true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".next":        true,
	".cache":       true,
	".idea":        true,
	".vscode":      true,
	".pytest_cache": true,
	".primer":      true,
}

// walker collects candidate source files under a project root.
type walker struct {
	root       string
	maxDepth   int
	ignoreDirs map[string]bool
	includes   []string
	excludes   []string
	extensions map[string]bool
}

func newWalker(root string, maxDepth int, extraIgnores, includes, excludes, extensions []string) *walker {
	ignore := make(map[string]bool, len(defaultIgnoreDirs)+len(extraIgnores))
	for d := range defaultIgnoreDirs {
		ignore[d] = true
	}
	for _, d := range extraIgnores {
		ignore[d] = true
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[e] = true
	}
	return &walker{
		root:       root,
		maxDepth:   maxDepth,
		ignoreDirs: ignore,
		includes:   includes,
		excludes:   excludes,
		extensions: exts,
	}
}

// walk returns project-relative, slash-separated paths of source files,
// in filesystem order. Unreadable subtrees contribute nothing.
func (w *walker) walk() []string {
	var files []string
	filepath.WalkDir(w.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.ignoreDirs[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if strings.Count(rel, "/")+1 >= w.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.extensions[strings.ToLower(path.Ext(rel))] {
			return nil
		}
		if !w.selected(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files
}

// selected applies the override include/exclude globs. Includes, when
// present, are a whitelist; excludes always win.
func (w *walker) selected(rel string) bool {
	for _, pat := range w.excludes {
		if matchGlob(pat, rel) {
			return false
		}
	}
	if len(w.includes) == 0 {
		return true
	}
	for _, pat := range w.includes {
		if matchGlob(pat, rel) {
			return true
		}
	}
	return false
}

// matchGlob matches a pattern against a relative path. A pattern with no
// slash matches the base name; a trailing "/**" matches any path under the
// prefix; otherwise path.Match semantics apply.
func matchGlob(pattern, rel string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}
	if !strings.Contains(pattern, "/") {
		if ok, err := path.Match(pattern, path.Base(rel)); err == nil && ok {
			return true
		}
		return false
	}
	ok, err := path.Match(pattern, rel)
	return err == nil && ok
}
