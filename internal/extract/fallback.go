package extract

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/primer/internal/lang"
)

// Regex-based fallback extraction for TypeScript and JavaScript. It covers
// the common top-level declaration forms well enough to keep a file useful
// when the grammar is unavailable; anything it misses is silently skipped.
var (
	reExportRe   = regexp.MustCompile(`^export\s+(?:\*|type\s+\{[^}]*\}|\{[^}]*\})\s+from\s+['"]([^'"]+)['"]`)
	fnRe         = regexp.MustCompile(`^(export\s+)?(default\s+)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*(\([^)]*\)?)`)
	classRe      = regexp.MustCompile(`^(export\s+)?(default\s+)?(abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	interfaceRe  = regexp.MustCompile(`^(export\s+)?interface\s+([A-Za-z_$][\w$]*)`)
	typeAliasRe  = regexp.MustCompile(`^(export\s+)?type\s+([A-Za-z_$][\w$]*)`)
	enumRe       = regexp.MustCompile(`^(export\s+)?(const\s+)?enum\s+([A-Za-z_$][\w$]*)`)
	arrowConstRe = regexp.MustCompile(`^(export\s+)?(const|let|var)\s+([A-Za-z_$][\w$]*)[^=]*=\s*(async\s+)?(\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)
	plainConstRe = regexp.MustCompile(`^(export\s+)?(const|let|var)\s+([A-Za-z_$][\w$]*)`)
)

// fallbackSignatures runs the line-oriented heuristic extractor. Only the
// fallback languages are supported; all others yield nothing.
func fallbackSignatures(source []byte, language lang.Language) []SignatureEntry {
	supported := false
	for _, l := range lang.FallbackLanguages {
		if l == language {
			supported = true
			break
		}
	}
	if !supported {
		return nil
	}

	var sigs []SignatureEntry
	for lineNo, line := range codeLines(source, language) {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		if m := reExportRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindReExport,
				Name:      "re-export " + m[1],
				Signature: strings.TrimSuffix(text, ";"),
				Exported:  true,
				Line:      lineNo + 1,
			})
			continue
		}
		if m := fnRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindFunction,
				Name:      m[4],
				Signature: trimBody(text),
				Exported:  m[1] != "",
				Line:      lineNo + 1,
				Async:     m[3] != "",
			})
			continue
		}
		if m := classRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindClass,
				Name:      m[4],
				Signature: trimBody(text),
				Exported:  m[1] != "",
				Line:      lineNo + 1,
			})
			continue
		}
		if m := interfaceRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindInterface,
				Name:      m[2],
				Signature: trimBody(text),
				Exported:  m[1] != "",
				Line:      lineNo + 1,
			})
			continue
		}
		if m := enumRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindEnum,
				Name:      m[3],
				Signature: trimBody(text),
				Exported:  m[1] != "",
				Line:      lineNo + 1,
			})
			continue
		}
		if m := typeAliasRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindType,
				Name:      m[2],
				Signature: trimBody(text),
				Exported:  m[1] != "",
				Line:      lineNo + 1,
			})
			continue
		}
		if m := arrowConstRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindFunction,
				Name:      m[3],
				Signature: trimBody(text) + " { ... }",
				Exported:  m[1] != "",
				Line:      lineNo + 1,
				Async:     m[4] != "",
			})
			continue
		}
		if m := plainConstRe.FindStringSubmatch(text); m != nil {
			sigs = append(sigs, SignatureEntry{
				Kind:      KindConst,
				Name:      m[3],
				Signature: m[2] + " " + m[3],
				Exported:  m[1] != "",
				Line:      lineNo + 1,
			})
		}
	}
	return sigs
}

// trimBody cuts a declaration line at its opening brace or arrow body.
func trimBody(line string) string {
	if idx := strings.Index(line, "=>"); idx != -1 {
		return strings.TrimSpace(line[:idx+2])
	}
	if idx := strings.Index(line, "{"); idx != -1 {
		return strings.TrimSpace(line[:idx]) + " { ... }"
	}
	return strings.TrimSuffix(strings.TrimSpace(line), ";")
}
