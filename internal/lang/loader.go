package lang

import (
	"log"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Backend supplies grammars per language key. Presence in the backend is the
// availability signal; a registered language may still fail to load.
type Backend interface {
	// Grammar builds the grammar for lang, or returns nil if lang is not
	// registered.
	Grammar(lang Language) *tree_sitter.Language

	// Available returns the languages this backend is registered for.
	Available() []Language
}

// BuiltinBackend serves the grammars compiled into the binary.
type BuiltinBackend struct{}

// builtinProviders maps language keys to grammar constructors. JavaScript
// uses the TSX grammar, which is a superset that also parses JSX.
var builtinProviders = map[Language]func() *tree_sitter.Language{
	LangGo: func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_go.Language())
	},
	LangTypeScript: func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	},
	LangJavaScript: func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	},
	LangPython: func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_python.Language())
	},
	LangRust: func() *tree_sitter.Language {
		return tree_sitter.NewLanguage(tree_sitter_rust.Language())
	},
}

func (BuiltinBackend) Grammar(lang Language) *tree_sitter.Language {
	provider, ok := builtinProviders[lang]
	if !ok {
		return nil
	}
	return provider()
}

func (BuiltinBackend) Available() []Language {
	out := make([]Language, 0, len(builtinProviders))
	for l := range builtinProviders {
		out = append(out, l)
	}
	return out
}

// Loader loads and caches grammars by language key. Construct one Loader at
// process start and pass it by reference to every component that needs
// grammar lookups. Loads are idempotent per key; a failed load returns nil
// without affecting other languages, and the next call retries.
type Loader struct {
	mu      sync.Mutex
	backend Backend
	cache   *lru.Cache[Language, *tree_sitter.Language]
}

// NewLoader creates a Loader over the given backend. A nil backend defaults
// to the compiled-in grammar set.
func NewLoader(backend Backend) *Loader {
	if backend == nil {
		backend = BuiltinBackend{}
	}
	cache, _ := lru.New[Language, *tree_sitter.Language](16)
	return &Loader{backend: backend, cache: cache}
}

// GetLanguage returns the grammar for key, loading and caching it on first
// use. Returns nil for unregistered languages and for load failures.
func (l *Loader) GetLanguage(key Language) (grammar *tree_sitter.Language) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if g, ok := l.cache.Get(key); ok {
		return g
	}

	// Grammar constructors cross a CGO boundary; a corrupt or mismatched
	// grammar must not take down the process or other languages.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("lang: loading grammar %s panicked: %v", key, r)
			grammar = nil
		}
	}()

	g := l.backend.Grammar(key)
	if g == nil {
		return nil
	}
	l.cache.Add(key, g)
	return g
}

// Supported returns the languages the backend reports available.
func (l *Loader) Supported() []Language {
	return l.backend.Available()
}

// SupportedExtensions returns every extension the extractor should consider.
// The fallback languages' extensions are always included as a safety net,
// even when their grammar is missing from the backend.
func (l *Loader) SupportedExtensions() []string {
	seen := make(map[string]bool)
	for _, lang := range l.backend.Available() {
		for _, ext := range Extensions(lang) {
			seen[ext] = true
		}
	}
	for _, lang := range FallbackLanguages {
		for _, ext := range Extensions(lang) {
			seen[ext] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ext := range seen {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
