package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// TestMatchGlob
// ---------------------------------------------------------------------------

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		rel     string
		want    bool
	}{
		{"src/**", "src/index.ts", true},
		{"src/**", "src/deep/nested/file.ts", true},
		{"src/**", "src", true},
		{"src/**", "srcfoo/file.ts", false},
		{"./src/**", "src/index.ts", true},
		{"*.test.ts", "src/user.test.ts", true},
		{"*.test.ts", "src/user.ts", false},
		{"src/*.ts", "src/index.ts", true},
		{"src/*.ts", "src/deep/index.ts", false},
		{"src/generated/**", "src/index.ts", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.rel), "pattern %q against %q", tt.pattern, tt.rel)
	}
}

// ---------------------------------------------------------------------------
// TestWalker
// ---------------------------------------------------------------------------

func writeTree(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// x\n"), 0o644))
	}
}

func TestWalker_SkipsIgnoredAndNonSource(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/index.ts",
		"src/util.py",
		"README.md",
		"node_modules/express/index.js",
		".git/config.ts",
		"build/out.ts",
	)

	w := newWalker(root, DefaultMaxDepth, nil, nil, nil, []string{".ts", ".py"})
	got := w.walk()
	assert.ElementsMatch(t, []string{"src/index.ts", "src/util.py"}, got)
}

func TestWalker_ExtraIgnores(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/a.ts", "generated/b.ts")

	w := newWalker(root, DefaultMaxDepth, []string{"generated"}, nil, nil, []string{".ts"})
	assert.Equal(t, []string{"src/a.ts"}, w.walk())
}

func TestWalker_IncludeExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/index.ts",
		"src/index.test.ts",
		"scripts/tool.ts",
	)

	t.Run("includes whitelist", func(t *testing.T) {
		w := newWalker(root, DefaultMaxDepth, nil, []string{"src/**"}, nil, []string{".ts"})
		assert.ElementsMatch(t, []string{"src/index.ts", "src/index.test.ts"}, w.walk())
	})

	t.Run("excludes always win", func(t *testing.T) {
		w := newWalker(root, DefaultMaxDepth, nil, []string{"src/**"}, []string{"*.test.ts"}, []string{".ts"})
		assert.Equal(t, []string{"src/index.ts"}, w.walk())
	})
}

func TestWalker_MaxDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"top.ts",
		"a/one.ts",
		"a/b/two.ts",
		"a/b/c/three.ts",
	)

	w := newWalker(root, 3, nil, nil, nil, []string{".ts"})
	got := w.walk()
	assert.Contains(t, got, "top.ts")
	assert.Contains(t, got, "a/one.ts")
	assert.Contains(t, got, "a/b/two.ts")
	assert.NotContains(t, got, "a/b/c/three.ts")
}
