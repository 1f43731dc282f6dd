package trace

// SwapRecorder performs swaps on a row and remembers each one.
type SwapRecorder struct {
	row   []int
	swaps []Swap
}

// NewSwapRecorder wraps row. The recorder mutates row directly.
func NewSwapRecorder(row []int) *SwapRecorder {
	return &SwapRecorder{row: row}
}

// Swap exchanges row[i] and row[j] and records the pair.
// Swapping a position with itself is a no-op and is not recorded.
func (r *SwapRecorder) Swap(i, j int) {
	if i == j {
		return
	}
	r.row[i], r.row[j] = r.row[j], r.row[i]
	r.swaps = append(r.swaps, Swap{A: i, B: j})
}

// Trace returns the recorded swaps.
func (r *SwapRecorder) Trace() Trace {
	return Trace{Kind: KindSwap, Swaps: r.swaps}
}

// SnapshotRecorder accumulates whole-row passes.
type SnapshotRecorder struct {
	values []int
}

// NewSnapshotRecorder returns an empty recorder.
func NewSnapshotRecorder() *SnapshotRecorder {
	return &SnapshotRecorder{}
}

// Pass appends a copy of row as the next snapshot.
func (r *SnapshotRecorder) Pass(row []int) {
	r.values = append(r.values, row...)
}

// Trace returns the flattened snapshots.
func (r *SnapshotRecorder) Trace() Trace {
	return Trace{Kind: KindSnapshot, Values: r.values}
}
