// Package lang resolves language keys from file extensions and loads
// tree-sitter grammars through an explicitly owned, shareable Loader.
package lang

import "strings"

// Language identifies a programming language for extraction.
type Language string

const (
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// FallbackLanguages are the languages with a regex-based extractor that works
// without any grammar. Their extensions are always reported as supported.
var FallbackLanguages = []Language{LangTypeScript, LangJavaScript}

// extToLanguage maps file extensions to language keys.
var extToLanguage = map[string]Language{
	".go":  LangGo,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".py":  LangPython,
	".rs":  LangRust,
}

// FromExtension resolves a language key from a file extension (with leading
// dot). Matching is case-insensitive so a Main.TS walks and extracts like
// main.ts. Unknown extensions return ok=false.
func FromExtension(ext string) (Language, bool) {
	l, ok := extToLanguage[strings.ToLower(ext)]
	return l, ok
}

// Extensions returns all extensions mapped to the given language.
func Extensions(lang Language) []string {
	var out []string
	for ext, l := range extToLanguage {
		if l == lang {
			out = append(out, ext)
		}
	}
	return out
}
