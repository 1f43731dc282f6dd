package algo

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortvis/internal/trace"
)

func permutation(rng *rand.Rand, n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = i
	}
	rng.Shuffle(n, func(i, j int) { row[i], row[j] = row[j], row[i] })
	return row
}

func TestAlgorithms_SortAndTraceReplays(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	inputs := [][]int{
		{},
		{0},
		{1, 0},
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{3, 1, 2, 0},
		permutation(rng, 17),
		permutation(rng, 64),
		permutation(rng, 203),
	}

	for _, a := range All() {
		t.Run(a.Name, func(t *testing.T) {
			for _, in := range inputs {
				row := slices.Clone(in)
				tr := a.Sort(row)

				assert.Equal(t, a.Kind, tr.Kind, "trace shape is fixed per algorithm")
				assert.True(t, slices.IsSorted(row), "row not sorted for input %v", in)

				replayed := slices.Clone(in)
				tr.Apply(replayed)
				if tr.Len() > 0 || a.Kind == trace.KindSwap {
					assert.Equal(t, row, replayed, "trace replay must match sort result for %v", in)
				}
			}
		})
	}
}

func TestSnapshotTraces_AreWholePasses(t *testing.T) {
	row := []int{5, 3, 1, 4, 0, 2}
	for _, id := range []ID{Merge, RadixLSD, Counting} {
		a, ok := Get(id)
		require.True(t, ok)

		tr := a.Sort(slices.Clone(row))
		assert.Zero(t, tr.Len()%len(row), "%s: trace length must be a multiple of the width", a.Name)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, tr.Values[tr.Len()-len(row):], a.Name)
	}
}

func TestCountingSort_SinglePass(t *testing.T) {
	tr := countingSort([]int{5, 3, 1, 4, 0, 2})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, tr.Values)
}

func TestMergeSort_PassCount(t *testing.T) {
	tr := mergeSort([]int{7, 6, 5, 4, 3, 2, 1, 0})
	assert.Equal(t, 3*8, tr.Len())
	assert.Equal(t, []int{6, 7, 4, 5, 2, 3, 0, 1}, tr.Values[:8])
}

func TestRadixSort_PassPerDigit(t *testing.T) {
	tr := radixSortLSD(permutation(rand.New(rand.NewPCG(1, 1)), 120))
	assert.Equal(t, 3*120, tr.Len())

	assert.Empty(t, radixSortLSD([]int{0}).Values)
}

func TestBubbleSort_KnownTrace(t *testing.T) {
	row := []int{3, 1, 2, 0}
	tr := bubbleSort(row)
	assert.Equal(t, []trace.Swap{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}, {A: 1, B: 2}, {A: 0, B: 1}}, tr.Swaps)
}

func TestSwapSorts_NoSwapsWhenSorted(t *testing.T) {
	for _, id := range []ID{Bubble, Cocktail, Selection, Insertion, Quick} {
		a, _ := Get(id)
		tr := a.Sort([]int{0, 1, 2, 3, 4, 5})
		assert.Zero(t, tr.Len(), a.Name)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{"bubble_sort", Bubble},
		{"Quick_Sort", Quick},
		{"  heap-sort ", Heap},
		{"RADIX_SORT_LSD", RadixLSD},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, err := Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.ID)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("bogo_sort")
	require.Error(t, err)

	var unknown *UnknownError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bogo_sort", unknown.Name)
	assert.Contains(t, err.Error(), "bubble_sort")
}

func TestRegistry_Consistent(t *testing.T) {
	names := Names()
	require.Len(t, names, len(All()))
	for i, a := range All() {
		assert.Equal(t, ID(i), a.ID)
		assert.Equal(t, names[i], a.ID.String())
		assert.NotNil(t, a.Sort)
	}
	assert.Equal(t, "algo(99)", ID(99).String())

	_, ok := Get(ID(-1))
	assert.False(t, ok)
	assert.Contains(t, names, DefaultName)
}
