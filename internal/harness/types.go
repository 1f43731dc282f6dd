package harness

import (
	"github.com/roach88/sortvis/internal/engine"
	"github.com/roach88/sortvis/internal/grid"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every assertion held, or the expected
	// error occurred.
	Pass bool

	// Algorithm is the canonical registry name that ran.
	Algorithm string

	// Kind is the captured trace kind.
	Kind string

	// MaxTraceLength is the longest per-row trace.
	MaxTraceLength int

	// Chunks is the partition replay consumed, one chunk per frame after 0.
	Chunks []engine.Chunk

	// Frames holds every synthesized rank state, frame 0 first.
	Frames []grid.RankGrid

	// ErrorCode is the engine error code when the scenario failed as
	// expected.
	ErrorCode string

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Frames: []grid.RankGrid{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Final returns the last frame, or nil if none was emitted.
func (r *Result) Final() grid.RankGrid {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}
