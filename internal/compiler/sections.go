package compiler

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/primer/internal/budget"
	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/knowledge"
	"github.com/dusk-indust/primer/internal/project"
)

// keyFileLimit bounds the Key Files listing.
const keyFileLimit = 10

// buildOverview summarizes the detected project facts.
func buildOverview(proj *project.Info) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("- Type: %s", proj.Type))
	if proj.Description != "" {
		lines = append(lines, fmt.Sprintf("- Description: %s", proj.Description))
	}
	if len(proj.Frameworks) > 0 {
		lines = append(lines, "- Frameworks: "+strings.Join(proj.Frameworks, ", "))
	}
	if len(proj.Tooling) > 0 {
		lines = append(lines, "- Tooling: "+strings.Join(proj.Tooling, ", "))
	}
	if proj.Monorepo != nil {
		lines = append(lines, fmt.Sprintf("- Monorepo: %s with %d workspaces",
			proj.Monorepo.Tool, len(proj.Monorepo.Workspaces)))
	}
	return strings.Join(lines, "\n")
}

// buildKeyFiles lists the highest-priority files with a one-line gloss.
// Override annotations take precedence over the derived gloss.
func buildKeyFiles(ranked []string, sigs map[string][]extract.SignatureEntry, proj *project.Info) string {
	var annotations map[string]string
	if proj != nil && proj.Override != nil {
		annotations = proj.Override.Annotations
	}

	n := len(ranked)
	if n > keyFileLimit {
		n = keyFileLimit
	}
	var lines []string
	for _, path := range ranked[:n] {
		note := annotations[path]
		if note == "" {
			note = fileGloss(sigs[path])
		}
		if note == "" {
			lines = append(lines, fmt.Sprintf("- `%s`", path))
			continue
		}
		lines = append(lines, fmt.Sprintf("- `%s` — %s", path, note))
	}
	return strings.Join(lines, "\n")
}

// fileGloss derives a short description from a file's signature mix.
func fileGloss(entries []extract.SignatureEntry) string {
	if len(entries) == 0 {
		return ""
	}
	counts := make(map[extract.Kind]int)
	for _, e := range entries {
		counts[e.Kind]++
	}
	var parts []string
	for _, k := range []extract.Kind{
		extract.KindFunction, extract.KindClass, extract.KindInterface,
		extract.KindType, extract.KindEnum, extract.KindConst, extract.KindReExport,
	} {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, pluralKind(k, n)))
		}
	}
	return strings.Join(parts, ", ")
}

func pluralKind(k extract.Kind, n int) string {
	name := string(k)
	switch k {
	case extract.KindClass:
		name = "class"
		if n != 1 {
			return "classes"
		}
		return name
	case extract.KindReExport:
		name = "re-export"
	}
	if n != 1 {
		return name + "s"
	}
	return name
}

// buildCodeMap renders per-file signature listings in priority order. Each
// file is capped at perFileTokens; files whose listing cannot fit even a
// single signature line are recorded in truncated instead of being dropped
// silently.
func buildCodeMap(ranked []string, sigs map[string][]extract.SignatureEntry, perFileTokens int) (string, []string) {
	var b strings.Builder
	var truncated []string

	for _, path := range ranked {
		entries := sigs[path]
		if len(entries) == 0 {
			continue
		}
		block, fit := renderFileBlock(path, entries, perFileTokens)
		if !fit {
			truncated = append(truncated, path)
		}
		if block == "" {
			continue
		}
		b.WriteString(block)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), truncated
}

// renderFileBlock renders one file's heading plus signature lines up to
// the per-file token cap. Returns the block and whether every signature fit.
func renderFileBlock(path string, entries []extract.SignatureEntry, capTokens int) (string, bool) {
	header := "### " + path + "\n\n```\n"
	footer := "```\n"
	used := budget.EstimateTokens(header + footer)

	var lines []string
	fit := true
	for _, e := range entries {
		line := e.Signature + "\n"
		cost := budget.EstimateTokens(line)
		if used+cost > capTokens {
			fit = false
			break
		}
		lines = append(lines, line)
		used += cost
	}
	if len(lines) == 0 {
		return "", false
	}
	return header + strings.Join(lines, "") + footer, fit
}

// buildKnowledge renders the auto-generated entries followed by the
// override document body, when present.
func buildKnowledge(entries []knowledge.Entry, proj *project.Info) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString("### " + e.Title + "\n\n" + e.Content + "\n\n")
	}
	if proj != nil && proj.Override != nil && proj.Override.Body != "" {
		b.WriteString(strings.TrimSpace(proj.Override.Body) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
