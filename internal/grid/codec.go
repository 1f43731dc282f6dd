package grid

import (
	"fmt"
	"image/color"
)

// ReplaceMap maps, per row, a rank back to the pixel that was originally at
// that column. ReplaceMap[r][rank] is a total bijection over 0..C-1.
type ReplaceMap [][]color.RGBA

// RankRangeError reports a rank that does not index its row's ReplaceMap.
// It only occurs if trace capture or replay is broken.
type RankRangeError struct {
	Row   int
	Col   int
	Rank  int
	Width int
}

func (e *RankRangeError) Error() string {
	return fmt.Sprintf("rank %d at row %d col %d outside 0..%d", e.Rank, e.Row, e.Col, e.Width-1)
}

// Encode replaces every pixel with its column index and records the pixel
// under that rank. Rows are encoded independently.
func Encode(px PixelGrid) (RankGrid, ReplaceMap) {
	ranks := make(RankGrid, len(px))
	replace := make(ReplaceMap, len(px))
	for r, row := range px {
		ranks[r] = make([]int, len(row))
		replace[r] = make([]color.RGBA, len(row))
		for c, p := range row {
			ranks[r][c] = c
			replace[r][c] = p
		}
	}
	return ranks, replace
}

// Decode looks every rank up in its row's ReplaceMap.
// Any permutation of a row's ranks decodes to a reordering of that row's
// original pixels.
func Decode(ranks RankGrid, replace ReplaceMap) (PixelGrid, error) {
	if len(ranks) != len(replace) {
		return nil, fmt.Errorf("rank grid has %d rows, replace map has %d", len(ranks), len(replace))
	}
	out := make(PixelGrid, len(ranks))
	for r, row := range ranks {
		lookup := replace[r]
		out[r] = make([]color.RGBA, len(row))
		for c, rank := range row {
			if rank < 0 || rank >= len(lookup) {
				return nil, &RankRangeError{Row: r, Col: c, Rank: rank, Width: len(lookup)}
			}
			out[r][c] = lookup[rank]
		}
	}
	return out, nil
}
