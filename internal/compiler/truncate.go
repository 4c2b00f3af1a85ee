package compiler

import (
	"strings"
	"unicode/utf8"

	"github.com/dusk-indust/primer/internal/budget"
)

// truncationMarker is appended whenever content is cut to fit a budget.
const truncationMarker = "\n[truncated]"

// truncateToTokens cuts s to roughly the given token budget, appending a
// marker. Cutting prefers the last newline inside the window so lines are
// not split mid-way; failing that it backs up to a rune boundary so the
// output stays valid UTF-8. A non-positive budget yields the empty string.
func truncateToTokens(s string, tokens int) string {
	if tokens <= 0 {
		return ""
	}
	if budget.EstimateTokens(s) <= tokens {
		return s
	}
	limit := tokens * 4
	markerChars := len(truncationMarker)
	if limit <= markerChars {
		return strings.TrimSpace(truncationMarker)
	}
	cut := limit - markerChars
	if cut > len(s) {
		cut = len(s)
	}
	for cut > 0 && cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut--
	}
	head := s[:cut]
	if idx := strings.LastIndexByte(head, '\n'); idx > 0 {
		head = head[:idx]
	}
	return head + truncationMarker
}
