package engine

import (
	"context"

	"github.com/roach88/sortvis/internal/grid"
	"github.com/roach88/sortvis/internal/trace"
)

// EmitFunc receives each synthesized rank state in frame order.
// ranks is the live working grid: it is only valid for the duration of the
// call and must be copied (or materialized) if kept.
type EmitFunc func(frame int, ranks grid.RankGrid) error

// Replay synthesizes exactly numFrames rank states from c.
//
// Frame 0 is c.Start untouched. Every following frame applies one chunk of
// the partition of c.MaxLen (see Partition) to every row, in row order, and
// the final frame has consumed every trace completely.
//
// ctx is checked between frames; cancellation returns ctx.Err() without
// emitting further frames. emit errors abort replay and are returned as is.
func Replay(ctx context.Context, c *Capture, numFrames int, emit EmitFunc, progress ProgressFunc) error {
	chunks, err := Partition(c.MaxLen, numFrames)
	if err != nil {
		return err
	}

	state := c.Start.Clone()
	if err := emit(0, state); err != nil {
		return err
	}

	pos := 0
	cols := c.Cols()
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch c.Kind {
		case trace.KindSwap:
			applySwaps(state, c.Traces, chunk)
		case trace.KindSnapshot:
			spliceValues(state, c.Traces, chunk, pos)
			if cols > 0 {
				pos = (pos + chunk.Len()) % cols
			}
		}

		if err := emit(i+1, state); err != nil {
			return err
		}
		progress.report(PhaseCreating, i+1, len(chunks))
	}

	return nil
}

// applySwaps replays each row's swaps in [chunk.Start, chunk.End).
// Rows whose trace ends before chunk.End contribute what they have.
func applySwaps(state grid.RankGrid, traces []trace.Trace, chunk Chunk) {
	for r, t := range traces {
		row := state[r]
		for _, s := range window(t.Swaps, chunk) {
			row[s.A], row[s.B] = row[s.B], row[s.A]
		}
	}
}

// spliceValues writes each row's snapshot values in [chunk.Start, chunk.End)
// into the row starting at the shared cursor pos.
func spliceValues(state grid.RankGrid, traces []trace.Trace, chunk Chunk, pos int) {
	for r, t := range traces {
		Splice(state[r], pos, window(t.Values, chunk))
	}
}

// Splice copies src into dst starting at pos, wrapping from the last column
// back to column 0 as often as needed. It returns the cursor after the last
// written value. pos must be in [0, len(dst)); an empty dst is left alone.
func Splice(dst []int, pos int, src []int) int {
	if len(dst) == 0 {
		return 0
	}
	for len(src) > 0 {
		n := copy(dst[pos:], src)
		src = src[n:]
		pos = (pos + n) % len(dst)
	}
	return pos
}

// window clips chunk to s, returning nil once s is exhausted.
func window[T any](s []T, chunk Chunk) []T {
	if chunk.Start >= len(s) {
		return nil
	}
	return s[chunk.Start:min(chunk.End, len(s))]
}
