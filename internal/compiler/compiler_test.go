package compiler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/primer/internal/budget"
)

const fixtureRoot = "../../testdata/fixtures/ts_webapp"

// ---------------------------------------------------------------------------
// TestCompile
// ---------------------------------------------------------------------------

func TestCompile_TSWebapp(t *testing.T) {
	c := New()
	res, err := c.Compile(context.Background(), Options{Root: fixtureRoot})
	require.NoError(t, err)
	require.NotNil(t, res)

	doc := res.Document
	assert.True(t, strings.HasPrefix(doc, "# ts-webapp\n"))
	assert.Contains(t, doc, "> A small user API used as a test fixture")

	// Section order is fixed.
	headings := []string{"## Overview", "## Structure", "## Key Files", "## Code Map", "## Knowledge"}
	last := -1
	for _, h := range headings {
		idx := strings.Index(doc, h)
		require.GreaterOrEqual(t, idx, 0, "missing %s", h)
		assert.Greater(t, idx, last)
		last = idx
	}

	assert.Contains(t, doc, "- Type: node")
	assert.Contains(t, doc, "express")
	assert.Contains(t, doc, "typescript")

	// Structure renders inside a fence.
	structure := doc[strings.Index(doc, "## Structure"):strings.Index(doc, "## Key Files")]
	assert.Contains(t, structure, "```\n")
	assert.Contains(t, structure, "src/")

	// The entry point heads the key files.
	keyFiles := doc[strings.Index(doc, "## Key Files"):strings.Index(doc, "## Code Map")]
	firstLine := strings.SplitN(strings.TrimSpace(strings.TrimPrefix(keyFiles, "## Key Files")), "\n", 2)[0]
	assert.Contains(t, firstLine, "src/index.ts")

	assert.Contains(t, doc, "### src/index.ts")
	assert.Contains(t, doc, "function start")

	// Knowledge picks up the layered layout and the import graph.
	assert.Contains(t, doc, "### Architecture")
	assert.Contains(t, doc, "API routes")
	assert.Contains(t, doc, "business logic")
	assert.Contains(t, doc, "data models")
	assert.Contains(t, doc, "### Dependencies")
	assert.Contains(t, doc, "src/models/user.ts")

	assert.LessOrEqual(t, budget.EstimateTokens(doc), DefaultBudgetTokens)

	require.Len(t, res.Files, 5)
	assert.NotNil(t, res.Allocation)
	assert.Empty(t, res.Truncated)
}

func TestCompile_SmallBudgetShrinksDocument(t *testing.T) {
	c := New()
	ctx := context.Background()

	full, err := c.Compile(ctx, Options{Root: fixtureRoot})
	require.NoError(t, err)
	small, err := c.Compile(ctx, Options{Root: fixtureRoot, BudgetTokens: 300})
	require.NoError(t, err)

	assert.Less(t, len(small.Document), len(full.Document))
	assert.True(t, strings.HasPrefix(small.Document, "# ts-webapp\n"))
}

func TestCompile_ProgressEvents(t *testing.T) {
	reporter := NewProgressReporter()
	events := reporter.Subscribe()

	done := make(chan []ProgressEvent)
	go func() {
		var got []ProgressEvent
		for e := range events {
			got = append(got, e)
		}
		done <- got
	}()

	c := New()
	_, err := c.Compile(context.Background(), Options{Root: fixtureRoot, Progress: reporter})
	require.NoError(t, err)
	reporter.Close()
	got := <-done

	require.NotEmpty(t, got)
	assert.Equal(t, StageConfigure, got[0].Stage)
	assert.Equal(t, ProgressWorking, got[0].Status)
	lastEvent := got[len(got)-1]
	assert.Equal(t, StageFinalize, lastEvent.Stage)
	assert.Equal(t, ProgressComplete, lastEvent.Status)
}

func TestCompile_BadRoot(t *testing.T) {
	c := New()
	res, err := c.Compile(context.Background(), Options{Root: "testdata/does-not-exist"})
	// A missing directory is not an error condition; it degrades to a
	// minimal document for an unknown project.
	require.NoError(t, err)
	assert.Contains(t, res.Document, "- Type: unknown")
	assert.Empty(t, res.Files)
}

// ---------------------------------------------------------------------------
// TestScan
// ---------------------------------------------------------------------------

func TestScan(t *testing.T) {
	c := New()
	proj, files, err := c.Scan(context.Background(), Options{Root: fixtureRoot})
	require.NoError(t, err)
	require.NotNil(t, proj)
	assert.Equal(t, "ts-webapp", proj.Name)
	assert.Len(t, files, 5)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "src/index.ts")
	assert.Contains(t, paths, "src/models/index.ts")
}
