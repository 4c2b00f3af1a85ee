// Package prioritize scores source files for inclusion value. Higher
// scores sort first when the code map is assembled under a budget.
package prioritize

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/primer/internal/extract"
)

// Priority tiers. Within a tier, declaration density breaks ties (the
// density term is always < 1.0 so it never crosses tiers).
const (
	tierBarrel = 1.0
	tierTypes  = 10.0
	tierBase   = 20.0
	tierConfig = 60.0
	tierEntry  = 100.0
)

// entryNames are filenames (sans extension) recognized as entry points.
var entryNames = map[string]bool{
	"index":  true,
	"main":   true,
	"app":    true,
	"server": true,
	"cli":    true,
	"lib":    true,
}

// entryDirs are path components that mark per-ecosystem entry conventions.
var entryDirs = map[string]bool{
	"cmd": true,
	"bin": true,
}

// configNames are filenames (sans extension) for config/schema/constants
// modules that deserve a fixed elevated tier.
var configNames = map[string]bool{
	"config":        true,
	"configuration": true,
	"settings":      true,
	"constants":     true,
	"consts":        true,
	"schema":        true,
	"schemas":       true,
	"env":           true,
}

// Priority scores one file. Rules in precedence order: barrel files sink to
// the bottom regardless of anything else, entry points float to the top,
// pure type declaration files rank low, config/schema files rank elevated,
// and everything else scores by declaration density minus path depth.
func Priority(path string, sigs []extract.SignatureEntry) float64 {
	density := declarationDensity(sigs)

	if IsBarrel(sigs) {
		return tierBarrel + density/2
	}
	if isEntryPoint(path) {
		return tierEntry + density/2
	}
	if isTypeOnly(path, sigs) {
		return tierTypes + density/2
	}
	if base := baseName(path); configNames[base] {
		return tierConfig + density/2
	}

	depth := float64(strings.Count(filepath.ToSlash(path), "/"))
	score := tierBase + density*10 - depth*2
	if score < tierTypes+1 {
		score = tierTypes + 1
	}
	return score
}

// Rank sorts file paths by priority descending. Order is stable for equal
// scores.
func Rank(files map[string][]extract.SignatureEntry) []string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths) // stable arbitrary order before ranking
	sort.SliceStable(paths, func(i, j int) bool {
		return Priority(paths[i], files[paths[i]]) > Priority(paths[j], files[paths[j]])
	})
	return paths
}

// IsBarrel reports whether re-export entries form a strict majority of the
// file's signatures.
func IsBarrel(sigs []extract.SignatureEntry) bool {
	if len(sigs) == 0 {
		return false
	}
	reExports := 0
	for _, s := range sigs {
		if s.Kind == extract.KindReExport {
			reExports++
		}
	}
	return reExports*2 > len(sigs)
}

func isEntryPoint(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, part := range strings.Split(filepath.Dir(slashed), "/") {
		if entryDirs[part] {
			return true
		}
	}
	return entryNames[baseName(slashed)]
}

// isTypeOnly reports whether the file declares nothing but types and
// interfaces, or is a TypeScript declaration file.
func isTypeOnly(path string, sigs []extract.SignatureEntry) bool {
	if strings.HasSuffix(path, ".d.ts") {
		return true
	}
	if len(sigs) == 0 {
		return false
	}
	for _, s := range sigs {
		if s.Kind != extract.KindType && s.Kind != extract.KindInterface {
			return false
		}
	}
	return true
}

// declarationDensity is the ratio of function/class declarations to all
// declarations.
func declarationDensity(sigs []extract.SignatureEntry) float64 {
	if len(sigs) == 0 {
		return 0
	}
	impl := 0
	for _, s := range sigs {
		if s.Kind == extract.KindFunction || s.Kind == extract.KindClass {
			impl++
		}
	}
	return float64(impl) / float64(len(sigs))
}

func baseName(path string) string {
	base := filepath.Base(path)
	for ext := filepath.Ext(base); ext != ""; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.ToLower(base)
}
