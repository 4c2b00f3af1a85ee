// Package budget splits a total token budget into weighted section budgets
// and redistributes unused surplus between sections after content assembly.
package budget

// Section identifies one output section of the compiled document.
type Section string

const (
	SectionOverview  Section = "overview"
	SectionStructure Section = "structure"
	SectionKeyFiles  Section = "keyFiles"
	SectionCodeMap   Section = "codeMap"
	SectionKnowledge Section = "knowledge"
)

// Sections lists all sections in document order.
var Sections = []Section{
	SectionOverview,
	SectionStructure,
	SectionKeyFiles,
	SectionCodeMap,
	SectionKnowledge,
}

// DefaultWeights is the fixed weight table. The weights sum to 1.0.
var DefaultWeights = map[Section]float64{
	SectionOverview:  0.08,
	SectionStructure: 0.12,
	SectionKeyFiles:  0.25,
	SectionCodeMap:   0.40,
	SectionKnowledge: 0.15,
}

// Allocation maps each section to its token budget.
type Allocation map[Section]int

// Allocate splits total across all sections using DefaultWeights, flooring
// each share.
func Allocate(total int) Allocation {
	alloc := make(Allocation, len(Sections))
	for _, s := range Sections {
		alloc[s] = int(float64(total) * DefaultWeights[s])
	}
	return alloc
}

// RedistributeSurplus reassigns unused budget from sections that came in
// under allocation to sections that overran theirs.
//
// Under-budget sections shrink to their actual usage and contribute the
// difference to a surplus pool. Over-budget sections claim a share of the
// pool proportional to their demand. This is a single pass: if demand
// exceeds surplus, demanding sections stay short, and a section's grant is
// never clamped back — callers truncate content to whatever is returned.
func RedistributeSurplus(alloc Allocation, used Allocation) Allocation {
	surplus := 0
	demand := make(map[Section]int)
	totalDemand := 0

	for s, a := range alloc {
		diff := a - used[s]
		switch {
		case diff > 0:
			surplus += diff
		case diff < 0:
			demand[s] = -diff
			totalDemand += -diff
		}
	}

	if surplus == 0 || totalDemand == 0 {
		return alloc
	}

	out := make(Allocation, len(alloc))
	for s, a := range alloc {
		switch {
		case demand[s] > 0:
			out[s] = a + int(float64(surplus)*float64(demand[s])/float64(totalDemand))
		case a > used[s]:
			out[s] = used[s]
		default:
			out[s] = a
		}
	}
	return out
}

// EstimateTokens approximates the token count of s using the 4-characters-
// per-token heuristic. This is not any model's real tokenizer.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}
