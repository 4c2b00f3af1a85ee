package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// TestAllocate
// ---------------------------------------------------------------------------

func TestAllocate(t *testing.T) {
	t.Run("1000 tokens splits floor-exact", func(t *testing.T) {
		alloc := Allocate(1000)

		assert.Equal(t, 80, alloc[SectionOverview])
		assert.Equal(t, 120, alloc[SectionStructure])
		assert.Equal(t, 250, alloc[SectionKeyFiles])
		assert.Equal(t, 400, alloc[SectionCodeMap])
		assert.Equal(t, 150, alloc[SectionKnowledge])

		sum := 0
		for _, v := range alloc {
			sum += v
		}
		assert.Equal(t, 1000, sum)
	})

	t.Run("weights sum to one", func(t *testing.T) {
		sum := 0.0
		for _, w := range DefaultWeights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("odd totals floor per section", func(t *testing.T) {
		alloc := Allocate(333)
		total := 333.0
		assert.Equal(t, int(total*0.08), alloc[SectionOverview])
		assert.Equal(t, int(total*0.40), alloc[SectionCodeMap])
	})
}

// ---------------------------------------------------------------------------
// TestRedistributeSurplus
// ---------------------------------------------------------------------------

func TestRedistributeSurplus(t *testing.T) {
	t.Run("exact usage is identity", func(t *testing.T) {
		alloc := Allocate(1000)
		used := make(Allocation, len(alloc))
		for s, a := range alloc {
			used[s] = a
		}
		assert.Equal(t, alloc, RedistributeSurplus(alloc, used))
	})

	t.Run("no demand is identity", func(t *testing.T) {
		alloc := Allocation{SectionOverview: 100, SectionCodeMap: 400}
		used := Allocation{SectionOverview: 50, SectionCodeMap: 300}
		assert.Equal(t, alloc, RedistributeSurplus(alloc, used))
	})

	t.Run("no surplus is identity", func(t *testing.T) {
		alloc := Allocation{SectionOverview: 100, SectionCodeMap: 400}
		used := Allocation{SectionOverview: 150, SectionCodeMap: 500}
		assert.Equal(t, alloc, RedistributeSurplus(alloc, used))
	})

	t.Run("surplus flows to demanding sections by share", func(t *testing.T) {
		alloc := Allocation{
			SectionOverview: 100,
			SectionKeyFiles: 200,
			SectionCodeMap:  400,
		}
		used := Allocation{
			SectionOverview: 40,  // surplus 60
			SectionKeyFiles: 230, // demand 30
			SectionCodeMap:  490, // demand 90
		}
		out := RedistributeSurplus(alloc, used)

		// Surplus 60 split 30:90 -> 15 and 45.
		assert.Equal(t, 40, out[SectionOverview], "under-budget section shrinks to usage")
		assert.Equal(t, 215, out[SectionKeyFiles])
		assert.Equal(t, 445, out[SectionCodeMap])
	})

	t.Run("grants floor the proportional share", func(t *testing.T) {
		alloc := Allocation{
			SectionOverview: 10,
			SectionKeyFiles: 10,
			SectionCodeMap:  10,
		}
		used := Allocation{
			SectionOverview: 3,  // surplus 7
			SectionKeyFiles: 13, // demand 3
			SectionCodeMap:  17, // demand 7
		}
		out := RedistributeSurplus(alloc, used)

		surplus := 7.0
		assert.Equal(t, 3, out[SectionOverview])
		assert.Equal(t, 10+int(surplus*3.0/10.0), out[SectionKeyFiles]) // 12
		assert.Equal(t, 10+int(surplus*7.0/10.0), out[SectionCodeMap]) // 14
	})

	t.Run("untouched sections keep their allocation", func(t *testing.T) {
		alloc := Allocation{
			SectionOverview:  100,
			SectionStructure: 100,
			SectionCodeMap:   100,
		}
		used := Allocation{
			SectionOverview:  100, // exact
			SectionStructure: 20,  // surplus
			SectionCodeMap:   180, // demand
		}
		out := RedistributeSurplus(alloc, used)
		assert.Equal(t, 100, out[SectionOverview])
		assert.Equal(t, 20, out[SectionStructure])
		assert.Equal(t, 180, out[SectionCodeMap])
	})
}

// ---------------------------------------------------------------------------
// TestEstimateTokens
// ---------------------------------------------------------------------------

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("a"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 25, EstimateTokens(string(make([]byte, 100))))
}
