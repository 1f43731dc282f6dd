package engine

import (
	"github.com/roach88/sortvis/internal/algo"
	"github.com/roach88/sortvis/internal/grid"
	"github.com/roach88/sortvis/internal/trace"
)

// Capture is the output of the sorting phase and the only input of replay.
//
// A Capture owns its Start grid: it is a private copy of the ranks that were
// sorted, so later changes to the caller's grid cannot leak into replay.
// Traces are read-only once Sort returns.
type Capture struct {
	// Algorithm is the registry entry that produced the traces.
	Algorithm algo.Algorithm

	// Kind is the shape shared by every trace.
	Kind trace.Kind

	// Start is the pre-sort rank grid.
	Start grid.RankGrid

	// Traces holds one trace per row, in row order.
	Traces []trace.Trace

	// MaxLen is the longest trace length across all rows.
	MaxLen int
}

// Sort captures one trace per row of ranks using the named algorithm.
//
// The identifier is resolved before any row is processed, so an unknown name
// fails fast. Each row is sorted on a working copy; ranks itself is not
// modified. progress is called after every row and may be nil.
func Sort(ranks grid.RankGrid, name string, progress ProgressFunc) (*Capture, error) {
	a, err := algo.Lookup(name)
	if err != nil {
		return nil, NewUnknownAlgorithmError(name, err)
	}
	return SortWith(ranks, a, progress)
}

// SortWith is Sort with an already resolved algorithm.
func SortWith(ranks grid.RankGrid, a algo.Algorithm, progress ProgressFunc) (*Capture, error) {
	c := &Capture{
		Algorithm: a,
		Kind:      a.Kind,
		Start:     ranks.Clone(),
		Traces:    make([]trace.Trace, 0, len(ranks)),
	}

	for r, row := range ranks {
		working := append([]int(nil), row...)
		t := a.Sort(working)
		if t.Kind != a.Kind {
			return nil, NewTraceShapeError(a.Name, r, a.Kind, t.Kind)
		}
		c.Traces = append(c.Traces, t)
		c.MaxLen = max(c.MaxLen, t.Len())
		progress.report(PhaseSorting, r+1, len(ranks))
	}

	return c, nil
}

// Cols returns the row width of the captured grid.
func (c *Capture) Cols() int {
	return c.Start.Cols()
}
