// Package grid holds the pixel and rank grids the visualiser works on, and the
// codec that maps one to the other.
//
// A PixelGrid is the image as rows of colours. A RankGrid is the same shape
// but every cell holds an integer rank in 0..C-1 standing in for a pixel's
// original column, so sorting algorithms only ever compare integers. The
// ReplaceMap built at encode time turns ranks back into colours.
//
// INVARIANTS:
//   - Every row of a RankGrid produced by Encode is a permutation of 0..C-1
//   - A ReplaceMap is never mutated after Encode returns
package grid

import (
	"fmt"
	"image"
	"image/color"
)

// PixelGrid is a row-major grid of RGBA colours. All rows have the same width.
type PixelGrid [][]color.RGBA

// NewPixelGrid allocates a zeroed rows x cols grid.
func NewPixelGrid(rows, cols int) PixelGrid {
	g := make(PixelGrid, rows)
	for r := range g {
		g[r] = make([]color.RGBA, cols)
	}
	return g
}

// FromImage converts any image into a PixelGrid, one grid row per pixel row.
func FromImage(img image.Image) PixelGrid {
	b := img.Bounds()
	g := NewPixelGrid(b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g[y-b.Min.Y]
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
		}
	}
	return g
}

// Rows returns the number of rows.
func (g PixelGrid) Rows() int { return len(g) }

// Cols returns the row width, or 0 for an empty grid.
func (g PixelGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Validate reports an error if the grid is not rectangular.
func (g PixelGrid) Validate() error {
	cols := g.Cols()
	for r, row := range g {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d columns, expected %d", r, len(row), cols)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (g PixelGrid) Clone() PixelGrid {
	out := make(PixelGrid, len(g))
	for r, row := range g {
		out[r] = append([]color.RGBA(nil), row...)
	}
	return out
}

// Image renders the grid as an *image.RGBA anchored at the origin.
func (g PixelGrid) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Cols(), g.Rows()))
	for y, row := range g {
		for x, px := range row {
			img.SetRGBA(x, y, px)
		}
	}
	return img
}

// RankGrid is a row-major grid of ranks.
type RankGrid [][]int

// Rows returns the number of rows.
func (g RankGrid) Rows() int { return len(g) }

// Cols returns the row width, or 0 for an empty grid.
func (g RankGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy.
func (g RankGrid) Clone() RankGrid {
	out := make(RankGrid, len(g))
	for r, row := range g {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether both grids hold the same ranks in the same places.
func (g RankGrid) Equal(other RankGrid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// IsPermutation reports whether row holds each of 0..len(row)-1 exactly once.
func IsPermutation(row []int) bool {
	seen := make([]bool, len(row))
	for _, v := range row {
		if v < 0 || v >= len(row) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
