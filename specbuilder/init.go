package specbuilder

import (
	"fmt"
	"math"
	"math/rand"
)

// InitializeSparse adds the minimum edge set needed to connect every
// node to the input row: for each row after the first, every node
// draws exactly one source uniformly at random from the immediately
// preceding row. This guarantees every output has at least one active
// path from an input while adding as few edges as possible.
//
// Requires a non-nil rng; never panics, returns a sentinel error on
// invalid input.
func (b *SpeciesBuilder) InitializeSparse(rng *rand.Rand) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if rng == nil {
		b.setErr(fmt.Errorf("InitializeSparse: %w", ErrNeedRandSource))
		return b
	}
	if len(b.rows) < 2 {
		return b
	}
	for r := 1; r < len(b.rows); r++ {
		prevStart := b.rowStart(r - 1)
		prevCount := b.rows[r-1].count
		curStart := b.rowStart(r)
		for j := 0; j < b.rows[r].count; j++ {
			src := prevStart + rng.Intn(prevCount)
			b.AddEdge(src, curStart+j)
			if b.err != nil {
				return b
			}
		}
	}
	return b
}

// InitializeDense adds, for every node in every row after the first,
// max(1, round(density * prev_layer_size)) distinct edges drawn
// without replacement from each strictly preceding row, stopping early
// once the destination node's accumulated in-degree (across all
// preceding rows processed so far in this call) reaches max_in_degree.
// density must lie in (0, 1].
func (b *SpeciesBuilder) InitializeDense(rng *rand.Rand, density float64) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if rng == nil {
		b.setErr(fmt.Errorf("InitializeDense: %w", ErrNeedRandSource))
		return b
	}
	if density <= 0 || density > 1 {
		b.setErr(fmt.Errorf("InitializeDense: density=%g must be in (0,1]", density))
		return b
	}
	for r := 1; r < len(b.rows); r++ {
		curStart := b.rowStart(r)
		for j := 0; j < b.rows[r].count; j++ {
			dst := curStart + j
			remaining := b.maxInDegree
			for p := 0; p < r; p++ {
				if remaining <= 0 {
					break
				}
				prevStart := b.rowStart(p)
				prevCount := b.rows[p].count
				k := int(math.Round(density * float64(prevCount)))
				if k < 1 {
					k = 1
				}
				if k > prevCount {
					k = prevCount
				}
				if k > remaining {
					k = remaining
				}
				for _, srcOffset := range sampleWithoutReplacement(rng, prevCount, k) {
					b.AddEdge(prevStart+srcOffset, dst)
					if b.err != nil {
						return b
					}
				}
				remaining -= k
			}
		}
	}
	return b
}

// sampleWithoutReplacement returns k distinct indices in [0, n) chosen
// uniformly at random via a partial Fisher-Yates shuffle.
func sampleWithoutReplacement(rng *rand.Rand, n, k int) []int {
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
