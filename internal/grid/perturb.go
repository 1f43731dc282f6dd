package grid

import "math/rand/v2"

// Shuffle permutes every row independently using rng.
func Shuffle(ranks RankGrid, rng *rand.Rand) {
	for _, row := range ranks {
		rng.Shuffle(len(row), func(i, j int) {
			row[i], row[j] = row[j], row[i]
		})
	}
}

// Reverse flips the whole grid: row order is reversed and so is every row.
// Each row stays a permutation of 0..C-1, so decoding remains defined.
func Reverse(ranks RankGrid) {
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	for _, row := range ranks {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}
