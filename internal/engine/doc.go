// Package engine turns a pixel grid and a sorting algorithm into an animated
// sequence of frames.
//
// ARCHITECTURE:
//
// Two phases with an explicit ownership handoff:
//
//  1. Capture (Sort): every row's ranks are copied and sorted by the chosen
//     algorithm. The per-row traces, the pre-sort grid and the longest trace
//     length are bundled into a Capture. The caller's grid is never touched.
//  2. Replay (Replay): a fresh working copy of the Capture's pre-sort grid is
//     advanced chunk by chunk. After each chunk the state is handed to an emit
//     callback, which the Visualiser uses to materialize pixels.
//
// Because replay only reads the Capture, requesting frames is repeatable:
// the same Capture and frame count always yield the same frames.
//
// Frame Partitioning:
// The longest trace is split into numFrames-1 contiguous chunks whose sizes
// differ by at most one and sum to the trace length. Every row uses the same
// chunk boundaries; a row whose trace ends early simply has nothing left to
// apply.
//
// Replay Modes:
//   - Swap traces: each chunk's swaps are applied in order to the row.
//   - Snapshot traces: each chunk's values are spliced into the row at a
//     circular write cursor shared by all rows, wrapping past the last column.
//
// INVARIANTS:
//   - Swap replay keeps every row a permutation of 0..C-1 at every frame
//   - Snapshot replay keeps every rank in 0..C-1 and ends on the final pass
//   - Replay emits exactly numFrames states
//   - Rows are processed in index order; the only suspension point is
//     between two emitted frames
package engine
