package extract

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/primer/internal/lang"
)

// Import scanning is language-keyed and independent of signature
// extraction. It works on comment-stripped lines so that import-like text
// inside comments is never picked up.

var (
	goImportSingleRe = regexp.MustCompile(`^import\s+(?:\w+\s+|\.\s+|_\s+)?"([^"]+)"`)
	goImportSpecRe   = regexp.MustCompile(`^(?:\w+\s+|\.\s+|_\s+)?"([^"]+)"`)

	tsImportFromRe = regexp.MustCompile(`(?:^|\s)(?:import|export)\s[^'"]*?from\s*['"]([^'"]+)['"]`)
	tsImportBareRe = regexp.MustCompile(`^import\s*['"]([^'"]+)['"]`)
	tsRequireRe    = regexp.MustCompile(`(?:require|import)\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	pyImportRe     = regexp.MustCompile(`^import\s+([\w.]+(?:\s*,\s*[\w.]+)*)`)
	pyFromImportRe = regexp.MustCompile(`^from\s+([.\w]+)\s+import\b`)

	rsUseRe = regexp.MustCompile(`^(?:pub\s+)?use\s+([\w:]+)`)
)

// scanImports extracts the import statements of a file, deduplicated by
// source string in first-seen order.
func scanImports(source []byte, language lang.Language) []ImportEntry {
	var entries []ImportEntry
	seen := make(map[string]bool)
	add := func(src string, relative bool) {
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		entries = append(entries, ImportEntry{Source: src, IsRelative: relative})
	}

	lines := codeLines(source, language)

	switch language {
	case lang.LangGo:
		inBlock := false
		for _, line := range lines {
			text := strings.TrimSpace(line)
			switch {
			case inBlock:
				if strings.HasPrefix(text, ")") {
					inBlock = false
					continue
				}
				if m := goImportSpecRe.FindStringSubmatch(text); m != nil {
					add(m[1], false)
				}
			case strings.HasPrefix(text, "import ("):
				inBlock = true
			default:
				if m := goImportSingleRe.FindStringSubmatch(text); m != nil {
					add(m[1], false)
				}
			}
		}

	case lang.LangTypeScript, lang.LangJavaScript:
		for _, line := range lines {
			text := strings.TrimSpace(line)
			if m := tsImportFromRe.FindStringSubmatch(text); m != nil {
				add(m[1], strings.HasPrefix(m[1], "."))
				continue
			}
			if m := tsImportBareRe.FindStringSubmatch(text); m != nil {
				add(m[1], strings.HasPrefix(m[1], "."))
				continue
			}
			for _, m := range tsRequireRe.FindAllStringSubmatch(text, -1) {
				add(m[1], strings.HasPrefix(m[1], "."))
			}
		}

	case lang.LangPython:
		for _, line := range lines {
			text := strings.TrimSpace(line)
			if m := pyFromImportRe.FindStringSubmatch(text); m != nil {
				add(m[1], strings.HasPrefix(m[1], "."))
				continue
			}
			if m := pyImportRe.FindStringSubmatch(text); m != nil {
				for _, name := range strings.Split(m[1], ",") {
					add(strings.TrimSpace(name), false)
				}
			}
		}

	case lang.LangRust:
		for _, line := range lines {
			text := strings.TrimSpace(line)
			if m := rsUseRe.FindStringSubmatch(text); m != nil {
				src := strings.TrimSuffix(m[1], "::")
				relative := strings.HasPrefix(src, "crate::") ||
					strings.HasPrefix(src, "self::") ||
					strings.HasPrefix(src, "super::")
				add(src, relative)
			}
		}
	}

	return entries
}

// codeLines splits source into lines with comments blanked out. Block
// comments (/* ... */) are tracked across lines for the C-style languages;
// Python uses # line comments only. Line positions are preserved so callers
// can report accurate line numbers.
func codeLines(source []byte, language lang.Language) []string {
	raw := strings.Split(string(source), "\n")
	out := make([]string, len(raw))

	lineComment := "//"
	blockComments := true
	if language == lang.LangPython {
		lineComment = "#"
		blockComments = false
	}

	inBlock := false
	for i, line := range raw {
		if blockComments && inBlock {
			end := strings.Index(line, "*/")
			if end == -1 {
				out[i] = ""
				continue
			}
			line = line[end+2:]
			inBlock = false
		}

		if blockComments {
			for {
				start := strings.Index(line, "/*")
				if start == -1 {
					break
				}
				end := strings.Index(line[start+2:], "*/")
				if end == -1 {
					line = line[:start]
					inBlock = true
					break
				}
				line = line[:start] + line[start+2+end+2:]
			}
		}

		if idx := strings.Index(line, lineComment); idx != -1 {
			line = line[:idx]
		}
		out[i] = line
	}
	return out
}
