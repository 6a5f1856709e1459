package specbuilder

import (
	"fmt"

	"github.com/mfagerlund/evolvatron/activation"
	"github.com/mfagerlund/evolvatron/topology"
)

// defaultMaxInDegree is used when WithMaxInDegree is never called —
// effectively unbounded, so Build never fails on in-degree alone unless
// the caller actually wanted a bound.
const defaultMaxInDegree = 1 << 30

type rowSpec struct {
	count int
	mask  activation.Mask
}

// SpeciesBuilder assembles a topology.SpeciesSpec row by row. Rows must
// be added in order: exactly one input row first (AddInputRow), then
// zero or more hidden rows, then exactly one output row
// (AddOutputRow) last. Build() is the single point at which the
// accumulated rows and edges are resolved into a spec and validated.
//
// SpeciesBuilder is not safe for concurrent use; each goroutine should
// own its own builder.
type SpeciesBuilder struct {
	rows          []rowSpec
	edges         []topology.Edge
	maxInDegree   int
	inputAdded    bool
	outputAdded   bool
	err           error
}

// NewSpeciesBuilder returns an empty SpeciesBuilder.
func NewSpeciesBuilder() *SpeciesBuilder {
	return &SpeciesBuilder{maxInDegree: defaultMaxInDegree}
}

// setErr records the first error encountered; subsequent calls become
// no-ops once err is set, surfacing at Build().
func (b *SpeciesBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddInputRow declares row 0, the input row, with n nodes and an empty
// (no-activation) allowed mask. Must be the first row added.
func (b *SpeciesBuilder) AddInputRow(n int) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if len(b.rows) != 0 {
		b.setErr(fmt.Errorf("AddInputRow: must be the first row: %w", ErrNoRows))
		return b
	}
	if n <= 0 {
		b.setErr(fmt.Errorf("AddInputRow: n=%d: %w", n, ErrRowSizeInvalid))
		return b
	}
	b.rows = append(b.rows, rowSpec{count: n, mask: 0})
	b.inputAdded = true
	return b
}

// AddHiddenRow appends an intermediate row of n nodes, permitting the
// given activations. Must be called after AddInputRow and before
// AddOutputRow.
func (b *SpeciesBuilder) AddHiddenRow(n int, allowed ...activation.ActivationType) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if !b.inputAdded {
		b.setErr(fmt.Errorf("AddHiddenRow: call AddInputRow first: %w", ErrNoRows))
		return b
	}
	if b.outputAdded {
		b.setErr(fmt.Errorf("AddHiddenRow: output row already added: %w", ErrNoOutputRow))
		return b
	}
	if n <= 0 {
		b.setErr(fmt.Errorf("AddHiddenRow: n=%d: %w", n, ErrRowSizeInvalid))
		return b
	}
	b.rows = append(b.rows, rowSpec{count: n, mask: activation.MaskOf(allowed...)})
	return b
}

// AddOutputRow appends the final row of n nodes, permitting the given
// activations (which must all be output-valid per activation.ValidForOutput;
// Build's call to topology.Validate enforces this). Must be the last
// row added.
func (b *SpeciesBuilder) AddOutputRow(n int, allowed ...activation.ActivationType) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if !b.inputAdded {
		b.setErr(fmt.Errorf("AddOutputRow: call AddInputRow first: %w", ErrNoRows))
		return b
	}
	if b.outputAdded {
		b.setErr(fmt.Errorf("AddOutputRow: output row already added: %w", ErrNoOutputRow))
		return b
	}
	if n <= 0 {
		b.setErr(fmt.Errorf("AddOutputRow: n=%d: %w", n, ErrRowSizeInvalid))
		return b
	}
	b.rows = append(b.rows, rowSpec{count: n, mask: activation.MaskOf(allowed...)})
	b.outputAdded = true
	return b
}

// WithMaxInDegree sets the in-degree bound enforced at Build. Must be
// positive.
func (b *SpeciesBuilder) WithMaxInDegree(k int) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if k <= 0 {
		b.setErr(fmt.Errorf("WithMaxInDegree: k=%d: %w", k, ErrMaxInDegreeInvalid))
		return b
	}
	b.maxInDegree = k
	return b
}

// totalNodesSoFar returns the sum of node counts over rows added so far.
func (b *SpeciesBuilder) totalNodesSoFar() int {
	n := 0
	for _, r := range b.rows {
		n += r.count
	}
	return n
}

// rowOfPartial returns the row index owning node among the rows added
// so far, or false if out of range.
func (b *SpeciesBuilder) rowOfPartial(node int) (int, bool) {
	start := 0
	for r, row := range b.rows {
		if node < start+row.count {
			return r, true
		}
		start += row.count
	}
	return 0, false
}

// AddEdge records a forward edge between two already-declared nodes.
// Both src and dst must lie within the node range declared by rows
// added so far, and src's row must be strictly earlier than dst's row.
func (b *SpeciesBuilder) AddEdge(src, dst int) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	total := b.totalNodesSoFar()
	if src < 0 || src >= total || dst < 0 || dst >= total {
		b.setErr(fmt.Errorf("AddEdge(%d, %d): total declared nodes=%d: %w", src, dst, total, ErrEdgeOutOfRange))
		return b
	}
	srcRow, _ := b.rowOfPartial(src)
	dstRow, _ := b.rowOfPartial(dst)
	if srcRow >= dstRow {
		b.setErr(fmt.Errorf("AddEdge(%d, %d): row(%d)=%d >= row(%d)=%d: %w",
			src, dst, src, srcRow, dst, dstRow, ErrEdgeNotForward))
		return b
	}
	b.edges = append(b.edges, topology.Edge{Src: int32(src), Dst: int32(dst)})
	return b
}

// FullyConnect adds every edge from every node in fromRow to every node
// in toRow (fromRow < toRow, both already declared).
func (b *SpeciesBuilder) FullyConnect(fromRow, toRow int) *SpeciesBuilder {
	if b.err != nil {
		return b
	}
	if fromRow < 0 || fromRow >= len(b.rows) || toRow < 0 || toRow >= len(b.rows) {
		b.setErr(fmt.Errorf("FullyConnect(%d, %d): have %d rows: %w", fromRow, toRow, len(b.rows), ErrRowIndexInvalid))
		return b
	}
	if fromRow >= toRow {
		b.setErr(fmt.Errorf("FullyConnect(%d, %d): fromRow must precede toRow: %w", fromRow, toRow, ErrEdgeNotForward))
		return b
	}
	fromStart := b.rowStart(fromRow)
	toStart := b.rowStart(toRow)
	for i := 0; i < b.rows[fromRow].count; i++ {
		for j := 0; j < b.rows[toRow].count; j++ {
			b.edges = append(b.edges, topology.Edge{
				Src: int32(fromStart + i),
				Dst: int32(toStart + j),
			})
		}
	}
	return b
}

func (b *SpeciesBuilder) rowStart(r int) int {
	start := 0
	for i := 0; i < r; i++ {
		start += b.rows[i].count
	}
	return start
}

// Build validates the accumulated rows and edges and returns the
// resulting topology.SpeciesSpec with row plans derived. Build is the
// single point at which validation happens; no partial spec is ever
// returned on error.
func (b *SpeciesBuilder) Build() (*topology.SpeciesSpec, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rows) == 0 {
		return nil, ErrNoRows
	}
	if !b.outputAdded {
		return nil, ErrNoOutputRow
	}

	rowCounts := make([]int, len(b.rows))
	masks := make([]activation.Mask, len(b.rows))
	for i, r := range b.rows {
		rowCounts[i] = r.count
		masks[i] = r.mask
	}

	spec := &topology.SpeciesSpec{
		RowCounts:          rowCounts,
		AllowedActivations: masks,
		Edges:              append([]topology.Edge(nil), b.edges...),
		MaxInDegree:        b.maxInDegree,
	}
	spec.BuildRowPlans()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}
