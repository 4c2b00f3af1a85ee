// Package extract produces normalized, body-stripped signature listings and
// import scans for individual source files across all supported languages.
package extract

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/primer/internal/lang"
)

// Kind classifies a top-level declaration.
type Kind string

const (
	KindFunction  Kind = "function"
	KindType      Kind = "type"
	KindInterface Kind = "interface"
	KindClass     Kind = "class"
	KindConst     Kind = "const"
	KindEnum      Kind = "enum"

	// KindReExport is the synthetic kind for a collapsed re-export statement
	// (one entry per statement, named "re-export <source>").
	KindReExport Kind = "re-export"
)

// SignatureEntry is one top-level declaration. Signature never contains the
// declaration body; bodies are elided to "{ ... }" or omitted.
type SignatureEntry struct {
	Kind      Kind   `json:"kind"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Exported  bool   `json:"exported"`
	Line      int    `json:"line"`
	Async     bool   `json:"async,omitempty"`
}

// ImportEntry is one import statement source, deduplicated per file.
type ImportEntry struct {
	Source     string `json:"source"`
	IsRelative bool   `json:"isRelative"`
}

// FileSignatures holds everything extracted from a single source file.
type FileSignatures struct {
	Path       string           `json:"path"` // relative to the project root
	Language   lang.Language    `json:"language"`
	Signatures []SignatureEntry `json:"signatures"`
	Imports    []ImportEntry    `json:"imports,omitempty"`
}

// sigExtractor extracts top-level signatures from a parsed syntax tree.
type sigExtractor interface {
	Extract(root *tree_sitter.Node, source []byte) []SignatureEntry
}

// grammarExtractors maps each language to its AST-based extractor.
var grammarExtractors = map[lang.Language]sigExtractor{
	lang.LangGo:         &goSignatures{},
	lang.LangTypeScript: &tsSignatures{},
	lang.LangJavaScript: &tsSignatures{},
	lang.LangPython:     &pySignatures{},
	lang.LangRust:       &rsSignatures{},
}

// Extractor turns source files into FileSignatures records. It holds a
// shared grammar Loader and is safe for concurrent use.
type Extractor struct {
	loader *lang.Loader
}

// NewExtractor creates an Extractor over the given loader.
func NewExtractor(loader *lang.Loader) *Extractor {
	return &Extractor{loader: loader}
}

// ExtractFileSignatures reads and analyzes one file. It returns nil for
// unsupported extensions (without reading the file), unreadable files, and
// files that yield neither signatures nor imports. It never returns an
// error: a failed file simply contributes nothing.
func (e *Extractor) ExtractFileSignatures(ctx context.Context, path, rootDir string) *FileSignatures {
	language, ok := lang.FromExtension(filepath.Ext(path))
	if !ok {
		return nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	relPath, err := filepath.Rel(rootDir, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)

	return e.ExtractSource(ctx, relPath, source, language)
}

// ExtractSource analyzes in-memory source text. Signature extraction uses
// the grammar when one is loadable, falling back to the regex extractor for
// the languages that support it. Import scanning runs regardless. Extraction
// is deterministic: identical source yields identical entries in identical
// order.
func (e *Extractor) ExtractSource(_ context.Context, relPath string, source []byte, language lang.Language) *FileSignatures {
	signatures := e.extractSignatures(relPath, source, language)
	imports := scanImports(source, language)

	if len(signatures) == 0 && len(imports) == 0 {
		return nil
	}
	if signatures == nil {
		signatures = []SignatureEntry{}
	}

	return &FileSignatures{
		Path:       relPath,
		Language:   language,
		Signatures: signatures,
		Imports:    imports,
	}
}

func (e *Extractor) extractSignatures(relPath string, source []byte, language lang.Language) (sigs []SignatureEntry) {
	// Malformed source must never abort a batch; worst case the file
	// contributes imports only.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("extract: %s: signature pass panicked: %v", relPath, r)
			sigs = nil
		}
	}()

	grammar := e.loader.GetLanguage(language)
	if grammar == nil {
		return fallbackSignatures(source, language)
	}

	ext, ok := grammarExtractors[language]
	if !ok {
		return fallbackSignatures(source, language)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(grammar); err != nil {
		return fallbackSignatures(source, language)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return fallbackSignatures(source, language)
	}
	defer tree.Close()

	return ext.Extract(tree.RootNode(), source)
}

// --- Shared rendering helpers ---

var whitespaceRun = regexp.MustCompile(`\s+`)

// oneLine collapses runs of whitespace to single spaces.
func oneLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// headText renders node text up to (not including) its body child, with the
// body elided to "{ ... }". When the node has no body child the whole node
// text is used.
func headText(node *tree_sitter.Node, source []byte, bodyField string) string {
	body := node.ChildByFieldName(bodyField)
	if body == nil {
		return oneLine(node.Utf8Text(source))
	}
	head := string(source[node.StartByte():body.StartByte()])
	return oneLine(head) + " { ... }"
}

// lineOf returns the 1-based start line of a node.
func lineOf(node *tree_sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// eachNamedChild invokes fn for every named top-level child of root.
func eachNamedChild(root *tree_sitter.Node, fn func(node *tree_sitter.Node)) {
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child != nil {
			fn(child)
		}
	}
}

// hasKeywordChild reports whether node has an anonymous child token with the
// given kind (e.g. "async", "pub").
func hasKeywordChild(node *tree_sitter.Node, keyword string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == keyword {
			return true
		}
	}
	return false
}
