package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/lang"
	"github.com/dusk-indust/primer/internal/project"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func tsFile(path string, imports ...extract.ImportEntry) extract.FileSignatures {
	return extract.FileSignatures{Path: path, Language: lang.LangTypeScript, Imports: imports}
}

func rel(source string) extract.ImportEntry {
	return extract.ImportEntry{Source: source, IsRelative: true}
}

func ext(source string) extract.ImportEntry {
	return extract.ImportEntry{Source: source}
}

// webappFiles is a typical layered web service layout.
func webappFiles() []extract.FileSignatures {
	return []extract.FileSignatures{
		tsFile("src/index.ts", rel("./routes/users"), ext("express")),
		tsFile("src/routes/users.ts", rel("../services/user-service"), ext("express")),
		tsFile("src/routes/orders.ts", rel("../services/order-service"), rel("../models/user")),
		tsFile("src/services/user-service.ts", rel("../models/user"), ext("zod")),
		tsFile("src/services/order-service.ts", rel("../models/user")),
		tsFile("src/models/user.ts"),
	}
}

// ---------------------------------------------------------------------------
// TestArchitecture
// ---------------------------------------------------------------------------

func TestArchitecture_LayeredWebapp(t *testing.T) {
	e := Architecture(nil, webappFiles())
	require.NotNil(t, e)
	assert.Equal(t, "Architecture", e.Title)
	assert.Contains(t, e.Content, "`src/routes/` — API routes (2 files)")
	assert.Contains(t, e.Content, "`src/services/` — business logic (2 files)")
	assert.Contains(t, e.Content, "`src/models/` — data models (1 files)")
	assert.Contains(t, e.Content, "Entry points: src/index.ts")
	assert.Positive(t, e.Tokens)
}

func TestArchitecture_CmdEntryPoints(t *testing.T) {
	files := []extract.FileSignatures{
		{Path: "cmd/server/main.go", Language: lang.LangGo},
		{Path: "internal/store/store.go", Language: lang.LangGo},
	}
	e := Architecture(nil, files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "`cmd/` — command entry points")
	assert.Contains(t, e.Content, "`internal/` — internal packages")
	assert.Contains(t, e.Content, "Entry points: cmd/server/main.go")
}

func TestArchitecture_Monorepo(t *testing.T) {
	proj := &project.Info{
		Monorepo: &project.Monorepo{
			Tool:       "pnpm",
			Workspaces: []project.Workspace{{Name: "api"}, {Name: "web"}},
		},
	}
	e := Architecture(proj, webappFiles())
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "Monorepo (pnpm): 2 workspaces")
}

func TestArchitecture_NoSignals(t *testing.T) {
	files := []extract.FileSignatures{
		{Path: "stuff/thing.ts"},
		{Path: "other/misc.ts"},
	}
	assert.Nil(t, Architecture(nil, files))
}

// ---------------------------------------------------------------------------
// TestConventions
// ---------------------------------------------------------------------------

func TestConventions_NamingPlurality(t *testing.T) {
	files := []extract.FileSignatures{
		tsFile("src/user-service.ts"),
		tsFile("src/order-service.ts"),
		tsFile("src/api-client.ts"),
		tsFile("src/helperThing.ts"),
	}
	e := Conventions(files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "File naming: kebab-case (3 of 4 files)")
}

func TestConventions_NeutralNamesDontVote(t *testing.T) {
	// Only one styled candidate, below the 3-candidate minimum.
	files := []extract.FileSignatures{
		tsFile("src/index.ts"),
		tsFile("src/app.ts"),
		tsFile("src/user-service.ts"),
	}
	e := Conventions(files)
	if e != nil {
		assert.NotContains(t, e.Content, "File naming")
	}
}

func TestConventions_TestPatterns(t *testing.T) {
	files := []extract.FileSignatures{
		tsFile("src/user.test.ts"),
		tsFile("src/order.spec.ts"),
		{Path: "internal/store/store_test.go", Language: lang.LangGo},
		tsFile("__tests__/setup.ts"),
	}
	e := Conventions(files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "1 `*.test.*` files")
	assert.Contains(t, e.Content, "1 `*.spec.*` files")
	assert.Contains(t, e.Content, "1 `*_test.*` files")
	assert.Contains(t, e.Content, "1 files in test directories")
}

func TestConventions_ExportsAndBarrels(t *testing.T) {
	files := []extract.FileSignatures{
		{
			Path: "src/models/index.ts",
			Signatures: []extract.SignatureEntry{
				{Kind: "re-export", Name: "re-export ./user", Exported: true},
				{Kind: "re-export", Name: "re-export ./order", Exported: true},
			},
		},
		{
			Path: "src/service.ts",
			Signatures: []extract.SignatureEntry{
				{Kind: "function", Name: "run", Exported: true},
				{Kind: "function", Name: "helper"},
			},
		},
	}
	e := Conventions(files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "Exports: mixed (3 exported, 1 internal declarations)")
	assert.Contains(t, e.Content, "Barrel files: 1 re-export index files")
}

func TestConventions_NoSignals(t *testing.T) {
	assert.Nil(t, Conventions([]extract.FileSignatures{{Path: "readme.ts"}}))
}

// ---------------------------------------------------------------------------
// TestDependencies
// ---------------------------------------------------------------------------

func TestDependencies_FlowsHubsExternals(t *testing.T) {
	e := Dependencies(context.Background(), webappFiles())
	require.NotNil(t, e)
	assert.Equal(t, "Dependencies", e.Title)
	// user.ts is imported by orders.ts and both services.
	assert.Contains(t, e.Content, "Hub files: `src/models/user.ts` (3 importers)")
	assert.Contains(t, e.Content, "src/routes -> src/services (2)")
	assert.Contains(t, e.Content, "External deps: express, zod")
}

func TestDependencies_NoImports(t *testing.T) {
	files := []extract.FileSignatures{tsFile("src/a.ts"), tsFile("src/b.ts")}
	assert.Nil(t, Dependencies(context.Background(), files))
}

func TestDependencies_ExclusionList(t *testing.T) {
	files := []extract.FileSignatures{
		tsFile("src/a.ts", ext("fs"), ext("node:path"), ext("module"), ext("express")),
		tsFile("src/b.ts", ext("q")),
	}
	e := Dependencies(context.Background(), files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "External deps: express")
	assert.NotContains(t, e.Content, "fs")
	assert.NotContains(t, e.Content, "node:path")
	assert.NotContains(t, e.Content, "module")
	assert.NotContains(t, e.Content, "`q`")
}

func TestDependencies_RustProject(t *testing.T) {
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
	e := Dependencies(context.Background(), files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "External deps: serde")
	assert.NotContains(t, e.Content, "std")
}

func TestDependencies_PythonDottedBuiltins(t *testing.T) {
	files := []extract.FileSignatures{
		{
			Path:     "pkg/app.py",
			Language: lang.LangPython,
			Imports: []extract.ImportEntry{
				{Source: "os.path"},
				{Source: "numpy.linalg"},
			},
		},
	}
	e := Dependencies(context.Background(), files)
	require.NotNil(t, e)
	assert.Contains(t, e.Content, "External deps: numpy")
	assert.NotContains(t, e.Content, "os")
}

// ---------------------------------------------------------------------------
// TestGenerate
// ---------------------------------------------------------------------------

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	files := webappFiles()

	t.Run("ample budget yields all analyses", func(t *testing.T) {
		entries := Generate(ctx, nil, files, 100000)
		require.Len(t, entries, 2, "no signatures means no conventions entry")
		assert.Equal(t, "Architecture", entries[0].Title)
		assert.Equal(t, "Dependencies", entries[1].Title)
	})

	t.Run("entries that do not fit are skipped whole", func(t *testing.T) {
		arch := Architecture(nil, files)
		require.NotNil(t, arch)

		// Budget fits architecture alone; dependencies is skipped, never
		// emitted partially.
		entries := Generate(ctx, nil, files, arch.Tokens)
		require.Len(t, entries, 1)
		assert.Equal(t, "Architecture", entries[0].Title)
	})

	t.Run("zero budget yields nothing", func(t *testing.T) {
		assert.Empty(t, Generate(ctx, nil, files, 0))
	})
}
