package prioritize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/primer/internal/extract"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func sig(kind extract.Kind) extract.SignatureEntry {
	return extract.SignatureEntry{Kind: kind, Name: "x"}
}

func sigs(kinds ...extract.Kind) []extract.SignatureEntry {
	out := make([]extract.SignatureEntry, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, sig(k))
	}
	return out
}

// ---------------------------------------------------------------------------
// TestIsBarrel
// ---------------------------------------------------------------------------

func TestIsBarrel(t *testing.T) {
	t.Run("strict majority of re-exports", func(t *testing.T) {
		assert.True(t, IsBarrel(sigs(extract.KindReExport, extract.KindReExport, extract.KindConst)))
	})

	t.Run("exactly half is not a barrel", func(t *testing.T) {
		assert.False(t, IsBarrel(sigs(extract.KindReExport, extract.KindConst)))
	})

	t.Run("empty is not a barrel", func(t *testing.T) {
		assert.False(t, IsBarrel(nil))
	})
}

// ---------------------------------------------------------------------------
// TestPriority
// ---------------------------------------------------------------------------

func TestPriority(t *testing.T) {
	t.Run("barrel ranks below everything, even entry names", func(t *testing.T) {
		barrel := Priority("src/index.ts", sigs(extract.KindReExport, extract.KindReExport))
		plain := Priority("src/deep/nested/util.ts", sigs(extract.KindConst))
		assert.Less(t, barrel, plain)
		assert.Greater(t, barrel, 0.0, "barrels keep a non-zero score")
	})

	t.Run("entry points rank above everything else", func(t *testing.T) {
		entry := Priority("src/main.ts", sigs(extract.KindFunction))
		config := Priority("src/config.ts", sigs(extract.KindConst))
		dense := Priority("a.ts", sigs(extract.KindFunction, extract.KindFunction))
		assert.Greater(t, entry, config)
		assert.Greater(t, entry, dense)
	})

	t.Run("cmd directory marks entry points", func(t *testing.T) {
		assert.Greater(t,
			Priority("cmd/server/handlers.go", sigs(extract.KindFunction)),
			Priority("internal/handlers.go", sigs(extract.KindFunction)))
	})

	t.Run("type-only files rank low but above barrels", func(t *testing.T) {
		typeOnly := Priority("src/types.ts", sigs(extract.KindType, extract.KindInterface))
		barrel := Priority("src/models/index.ts", sigs(extract.KindReExport))
		regular := Priority("src/service.ts", sigs(extract.KindFunction))
		assert.Greater(t, typeOnly, barrel)
		assert.Less(t, typeOnly, regular)
	})

	t.Run("d.ts files are type tier regardless of content", func(t *testing.T) {
		assert.Less(t,
			Priority("src/global.d.ts", sigs(extract.KindFunction)),
			Priority("src/service.ts", sigs(extract.KindFunction)))
	})

	t.Run("config names get the elevated tier", func(t *testing.T) {
		config := Priority("src/config.ts", sigs(extract.KindConst, extract.KindConst))
		regular := Priority("src/service.ts", sigs(extract.KindFunction, extract.KindFunction))
		assert.Greater(t, config, regular)
	})

	t.Run("shallower files beat deeper ones at equal density", func(t *testing.T) {
		shallow := Priority("service.ts", sigs(extract.KindFunction))
		deep := Priority("a/b/c/d/service.ts", sigs(extract.KindFunction))
		assert.Greater(t, shallow, deep)
	})

	t.Run("density raises the base score", func(t *testing.T) {
		dense := Priority("src/work.ts", sigs(extract.KindFunction, extract.KindFunction, extract.KindFunction))
		sparse := Priority("src/data.ts", sigs(extract.KindConst, extract.KindConst, extract.KindConst))
		assert.Greater(t, dense, sparse)
	})
}

// ---------------------------------------------------------------------------
// TestRank
// ---------------------------------------------------------------------------

func TestRank(t *testing.T) {
	files := map[string][]extract.SignatureEntry{
		"src/models/index.ts": sigs(extract.KindReExport, extract.KindReExport),
		"src/index.ts":        sigs(extract.KindFunction),
		"src/service.ts":      sigs(extract.KindFunction, extract.KindFunction),
		"src/config.ts":       sigs(extract.KindConst),
	}

	ranked := Rank(files)
	require.Len(t, ranked, 4)

	assert.Equal(t, "src/index.ts", ranked[0], "entry point first")
	assert.Equal(t, "src/config.ts", ranked[1], "config tier second")
	assert.Equal(t, "src/service.ts", ranked[2])
	assert.Equal(t, "src/models/index.ts", ranked[3], "barrel last")
}
