// Package testutil provides builders and assertions shared by tests.
package testutil

import (
	"image/color"
	"slices"
	"testing"

	"github.com/roach88/sortvis/internal/grid"
)

// Gradient returns a rows x cols grid whose pixels are all distinct, so a
// wrong reordering is always visible.
func Gradient(rows, cols int) grid.PixelGrid {
	g := grid.NewPixelGrid(rows, cols)
	for r := range g {
		for c := range g[r] {
			g[r][c] = color.RGBA{
				R: uint8(c * 255 / max(cols-1, 1)),
				G: uint8(r * 255 / max(rows-1, 1)),
				B: uint8((r*cols + c) % 256),
				A: 255,
			}
		}
	}
	return g
}

// Identity returns a rank row 0..n-1.
func Identity(n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = i
	}
	return row
}

// RequirePermutationRows fails the test unless every row of g is a
// permutation of 0..C-1.
func RequirePermutationRows(t testing.TB, g grid.RankGrid, msgAndArgs ...any) {
	t.Helper()
	for r, row := range g {
		if !grid.IsPermutation(row) {
			t.Fatalf("row %d is not a permutation: %v %v", r, row, msgAndArgs)
		}
	}
}

// RequireRanksInRange fails the test if any rank falls outside 0..C-1.
func RequireRanksInRange(t testing.TB, g grid.RankGrid) {
	t.Helper()
	for r, row := range g {
		for c, v := range row {
			if v < 0 || v >= len(row) {
				t.Fatalf("rank %d at row %d col %d out of range", v, r, c)
			}
		}
	}
}

// RequireSortedRows fails the test unless every row is 0..C-1 in order.
func RequireSortedRows(t testing.TB, g grid.RankGrid) {
	t.Helper()
	for r, row := range g {
		if !slices.Equal(row, Identity(len(row))) {
			t.Fatalf("row %d not sorted: %v", r, row)
		}
	}
}

// Recorder collects emitted rank frames as independent copies.
type Recorder struct {
	Frames []grid.RankGrid
}

// Emit stores a copy of ranks. It matches engine.EmitFunc.
func (r *Recorder) Emit(_ int, ranks grid.RankGrid) error {
	r.Frames = append(r.Frames, ranks.Clone())
	return nil
}
