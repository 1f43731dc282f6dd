// Package trace defines the record a sorting algorithm leaves behind for one
// row, and the recorders algorithms use to produce it.
//
// A Trace is a tagged variant. Swap traces hold (A, B) index pairs applied in
// order to the row's pre-sort state. Snapshot traces hold the flattened values
// of every pass an out-of-place algorithm makes, one full row per pass. The
// shape is fixed per algorithm, so replay never inspects element structure.
package trace

import "fmt"

// Kind identifies the shape of a Trace.
type Kind int

const (
	// KindSwap traces record in-place swaps.
	KindSwap Kind = iota
	// KindSnapshot traces record whole-row states after each pass.
	KindSnapshot
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindSwap:
		return "swap"
	case KindSnapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Swap exchanges positions A and B of a row.
type Swap struct {
	A, B int
}

// Trace is the ordered record of one row's sort.
// Exactly one of Swaps or Values is populated, according to Kind.
type Trace struct {
	Kind   Kind
	Swaps  []Swap
	Values []int
}

// Len returns the number of replayable steps: swaps for KindSwap, values for
// KindSnapshot.
func (t Trace) Len() int {
	if t.Kind == KindSnapshot {
		return len(t.Values)
	}
	return len(t.Swaps)
}

// Apply replays the whole trace against row in place.
// Snapshot traces leave row equal to the final recorded pass.
func (t Trace) Apply(row []int) {
	switch t.Kind {
	case KindSwap:
		for _, s := range t.Swaps {
			row[s.A], row[s.B] = row[s.B], row[s.A]
		}
	case KindSnapshot:
		if len(row) == 0 {
			return
		}
		for i, v := range t.Values {
			row[i%len(row)] = v
		}
	}
}
