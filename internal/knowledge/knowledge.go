// Package knowledge derives architectural insights from a detected project
// and its extracted signatures: layer roles from directory names, dominant
// code conventions, and the shape of the internal import graph.
package knowledge

import (
	"context"

	"github.com/dusk-indust/primer/internal/budget"
	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/project"
)

// Entry is one auto-generated insight, ready for rendering.
type Entry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tokens  int    `json:"tokens"`
}

// Generate runs the architecture, conventions and dependency analyses in
// that order and greedily accepts entries while they fully fit the token
// budget. Partial entries are never emitted.
func Generate(ctx context.Context, proj *project.Info, files []extract.FileSignatures, tokenBudget int) []Entry {
	var out []Entry
	remaining := tokenBudget

	candidates := []*Entry{
		Architecture(proj, files),
		Conventions(files),
		Dependencies(ctx, files),
	}
	for _, e := range candidates {
		if e == nil {
			continue
		}
		if e.Tokens > remaining {
			continue
		}
		out = append(out, *e)
		remaining -= e.Tokens
	}
	return out
}

// entryTokens estimates the rendered cost of an entry, heading included.
func entryTokens(title, content string) int {
	rendered := "### " + title + "\n\n" + content + "\n\n"
	return budget.EstimateTokens(rendered)
}
