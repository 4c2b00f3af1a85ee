package knowledge

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/dusk-indust/primer/internal/extract"
	"github.com/dusk-indust/primer/internal/prioritize"
)

// namingStyle classifies a filename base into a naming convention.
// Neutral names (single lowercase words, numbers) return "".
func namingStyle(base string) string {
	if base == "" {
		return ""
	}
	switch {
	case strings.Contains(base, "-"):
		return "kebab-case"
	case strings.Contains(base, "_"):
		return "snake_case"
	case unicode.IsUpper(rune(base[0])):
		return "PascalCase"
	case strings.IndexFunc(base, unicode.IsUpper) > 0:
		return "camelCase"
	default:
		return ""
	}
}

// testSuffixes are filename markers for test files.
var testSuffixes = []string{".test.", ".spec.", "_test."}

// testDirs are directory names that conventionally hold tests.
var testDirs = map[string]bool{
	"__tests__": true,
	"tests":     true,
	"test":      true,
}

// Conventions detects the dominant filename style, test-file patterning,
// export style and barrel prevalence. Returns nil when none of the
// signals fire.
func Conventions(files []extract.FileSignatures) *Entry {
	styleVotes := make(map[string]int)
	candidates := 0
	testSuffix := make(map[string]int)
	testDirCount := 0
	exported, unexported := 0, 0
	barrels := 0

	for _, f := range files {
		p := strings.ReplaceAll(f.Path, "\\", "/")
		base := strings.TrimSuffix(path.Base(p), path.Ext(p))
		base = strings.TrimSuffix(base, path.Ext(base))
		if s := namingStyle(base); s != "" {
			styleVotes[s]++
			candidates++
		}

		name := path.Base(p)
		for _, suf := range testSuffixes {
			if strings.Contains(name, suf) {
				testSuffix[strings.Trim(suf, ".")]++
			}
		}
		for _, part := range strings.Split(path.Dir(p), "/") {
			if testDirs[part] {
				testDirCount++
				break
			}
		}

		for _, sig := range f.Signatures {
			if sig.Exported {
				exported++
			} else {
				unexported++
			}
		}
		if prioritize.IsBarrel(f.Signatures) {
			barrels++
		}
	}

	var lines []string

	// Naming style needs at least 3 candidate files and a >30% plurality.
	if candidates >= 3 {
		winner, votes := "", 0
		for s, v := range styleVotes {
			if v > votes || (v == votes && s < winner) {
				winner, votes = s, v
			}
		}
		if float64(votes) > 0.3*float64(candidates) {
			lines = append(lines, fmt.Sprintf("- File naming: %s (%d of %d files)", winner, votes, candidates))
		}
	}

	if len(testSuffix) > 0 || testDirCount > 0 {
		var parts []string
		for _, suf := range []string{"test", "spec"} {
			if n := testSuffix[suf]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d `*.%s.*` files", n, suf))
			}
		}
		if n := testSuffix["_test"]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d `*_test.*` files", n))
		}
		if testDirCount > 0 {
			parts = append(parts, fmt.Sprintf("%d files in test directories", testDirCount))
		}
		lines = append(lines, "- Tests: "+strings.Join(parts, ", "))
	}

	if exported+unexported > 0 {
		switch {
		case unexported == 0:
			lines = append(lines, "- Exports: everything exported (named exports)")
		case exported == 0:
			lines = append(lines, "- Exports: nothing exported at top level")
		default:
			lines = append(lines, fmt.Sprintf("- Exports: mixed (%d exported, %d internal declarations)", exported, unexported))
		}
	}

	if barrels > 0 {
		lines = append(lines, fmt.Sprintf("- Barrel files: %d re-export index files", barrels))
	}

	if len(lines) == 0 {
		return nil
	}
	content := strings.Join(lines, "\n")
	return &Entry{
		Title:   "Conventions",
		Content: content,
		Tokens:  entryTokens("Conventions", content),
	}
}
