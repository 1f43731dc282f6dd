package engine

// Phase names the engine pass a Progress value belongs to.
type Phase string

const (
	// PhaseSorting is reported once per captured row.
	PhaseSorting Phase = "sorting"
	// PhaseCreating is reported once per replayed chunk.
	PhaseCreating Phase = "creating"
)

// Progress is a count/total pair observed after a row or chunk completes.
type Progress struct {
	Phase Phase
	Done  int
	Total int
}

// Fraction returns Done/Total in [0, 1]. An empty pass is complete.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// ProgressFunc receives progress updates. It is called synchronously from the
// engine's loop and must not retain engine state.
type ProgressFunc func(Progress)

func (f ProgressFunc) report(phase Phase, done, total int) {
	if f != nil {
		f(Progress{Phase: phase, Done: done, Total: total})
	}
}
