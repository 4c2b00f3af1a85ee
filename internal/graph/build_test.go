package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/lang"
)

// ---------------------------------------------------------------------------
// TestPackageName
// ---------------------------------------------------------------------------

func TestPackageName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"express", "express"},
		{"lodash/merge", "lodash"},
		{"@nestjs/core", "@nestjs/core"},
		{"@scope/pkg/deep/path", "@scope/pkg"},
		{"github.com/user/repo/internal/sub", "github.com/user/repo"},
		{"golang.org/x/sync/errgroup", "golang.org/x/sync"},
		{"fmt", "fmt"},
		{"node:fs", "node:fs"},
		{"serde::Deserialize", "serde"},
		{"std::collections::HashMap", "std"},
		{"tokio::sync::mpsc", "tokio"},
		{"os.path", "os"},
		{"numpy.linalg", "numpy"},
		{"./local", ""},
		{"../up", ""},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PackageName(tt.source), "source %q", tt.source)
	}
}

// ---------------------------------------------------------------------------
// TestBuild
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	files := []extract.FileSignatures{
		{
			Path:     "src/index.ts",
			Language: lang.LangTypeScript,
			Signatures: []extract.SignatureEntry{
				{Kind: "function", Name: "main"},
			},
			Imports: []extract.ImportEntry{
				{Source: "./routes/users", IsRelative: true},
				{Source: "./missing", IsRelative: true},
				{Source: "express"},
			},
		},
		{
			Path:     "src/routes/users.ts",
			Language: lang.LangTypeScript,
			Imports: []extract.ImportEntry{
				{Source: "../models/user", IsRelative: true},
				{Source: "express"},
			},
		},
		{
			Path:     "src/models/user.ts",
			Language: lang.LangTypeScript,
		},
	}

	ctx := context.Background()
	store := NewMemStore()
	require.NoError(t, Build(ctx, store, files))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FileCount)
	assert.Equal(t, 1, stats.PackageCount, "express deduplicated across files")

	node, err := store.GetFile(ctx, "src/index.ts")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "typescript", node.Language)
	assert.Equal(t, 1, node.Signatures)

	edges, err := store.GetAllEdges(ctx)
	require.NoError(t, err)

	var imports, depends []Edge
	for _, e := range edges {
		switch e.Kind {
		case EdgeKindImports:
			imports = append(imports, e)
		case EdgeKindDepends:
			depends = append(depends, e)
		}
	}

	// The unresolvable ./missing import is dropped, not an edge and not
	// an error.
	require.Len(t, imports, 2)
	assert.Contains(t, imports, Edge{Source: "src/index.ts", Target: "src/routes/users.ts", Kind: EdgeKindImports})
	assert.Contains(t, imports, Edge{Source: "src/routes/users.ts", Target: "src/models/user.ts", Kind: EdgeKindImports})

	require.Len(t, depends, 2)
	for _, e := range depends {
		assert.Equal(t, "express", e.Target)
	}
}

func TestBuild_PythonRelativeImports(t *testing.T) {
	files := []extract.FileSignatures{
		{
			Path:     "pkg/app.py",
			Language: lang.LangPython,
			Imports: []extract.ImportEntry{
				{Source: ".utils", IsRelative: true},
				{Source: "os.path"},
			},
		},
		{Path: "pkg/utils.py", Language: lang.LangPython},
	}

	ctx := context.Background()
	store := NewMemStore()
	require.NoError(t, Build(ctx, store, files))

	edges, err := store.GetAllEdges(ctx)
	require.NoError(t, err)
	assert.Contains(t, edges, Edge{Source: "pkg/app.py", Target: "pkg/utils.py", Kind: EdgeKindImports})
	assert.Contains(t, edges, Edge{Source: "pkg/app.py", Target: "os", Kind: EdgeKindDepends})
}

func TestBuild_RustUseImports(t *testing.T) {
	files := []extract.FileSignatures{
		{
			Path:     "src/main.rs",
			Language: lang.LangRust,
			Imports: []extract.ImportEntry{
				{Source: "crate::model", IsRelative: true},
				{Source: "serde::Deserialize"},
				{Source: "std::collections::HashMap"},
			},
		},
		{Path: "src/model.rs", Language: lang.LangRust},
	}

	ctx := context.Background()
	store := NewMemStore()
	require.NoError(t, Build(ctx, store, files))

	edges, err := store.GetAllEdges(ctx)
	require.NoError(t, err)
	assert.Contains(t, edges, Edge{Source: "src/main.rs", Target: "src/model.rs", Kind: EdgeKindImports})
	assert.Contains(t, edges, Edge{Source: "src/main.rs", Target: "serde", Kind: EdgeKindDepends})
	assert.Contains(t, edges, Edge{Source: "src/main.rs", Target: "std", Kind: EdgeKindDepends})
}

// ---------------------------------------------------------------------------
// TestDirFlows
// ---------------------------------------------------------------------------

func TestDirFlows(t *testing.T) {
	edges := []Edge{
		{Source: "src/routes/a.ts", Target: "src/services/x.ts", Kind: EdgeKindImports},
		{Source: "src/routes/b.ts", Target: "src/services/x.ts", Kind: EdgeKindImports},
		{Source: "src/services/x.ts", Target: "src/models/m.ts", Kind: EdgeKindImports},
		{Source: "index.ts", Target: "src/routes/a.ts", Kind: EdgeKindImports},
		// Same-directory flows never count.
		{Source: "src/routes/a.ts", Target: "src/routes/b.ts", Kind: EdgeKindImports},
		// Package edges never count.
		{Source: "src/routes/a.ts", Target: "express", Kind: EdgeKindDepends},
	}

	flows := DirFlows(edges)
	require.Len(t, flows, 3)
	assert.Equal(t, DirFlow{From: "src/routes", To: "src/services", Count: 2}, flows[0])
	// Ties sort lexically by source then target.
	assert.Equal(t, DirFlow{From: ".", To: "src/routes", Count: 1}, flows[1])
	assert.Equal(t, DirFlow{From: "src/services", To: "src/models", Count: 1}, flows[2])
}
