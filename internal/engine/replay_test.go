package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortvis/internal/algo"
	"github.com/roach88/sortvis/internal/grid"
	"github.com/roach88/sortvis/internal/testutil"
	"github.com/roach88/sortvis/internal/trace"
)

func shuffledRanks(rows, cols int, seed uint64) grid.RankGrid {
	ranks := make(grid.RankGrid, rows)
	for r := range ranks {
		ranks[r] = testutil.Identity(cols)
	}
	grid.Shuffle(ranks, rand.New(rand.NewPCG(seed, seed)))
	return ranks
}

func replayAll(t *testing.T, c *Capture, numFrames int) []grid.RankGrid {
	t.Helper()
	var rec testutil.Recorder
	require.NoError(t, Replay(context.Background(), c, numFrames, rec.Emit, nil))
	return rec.Frames
}

func TestReplay_SwapScenario(t *testing.T) {
	c, err := Sort(grid.RankGrid{{3, 1, 2, 0}}, "bubble_sort", nil)
	require.NoError(t, err)
	require.Equal(t, 5, c.MaxLen)

	frames := replayAll(t, c, 3)

	require.Len(t, frames, 3)
	assert.Equal(t, grid.RankGrid{{3, 1, 2, 0}}, frames[0])
	assert.Equal(t, grid.RankGrid{{1, 2, 0, 3}}, frames[1], "first chunk holds 3 of 5 swaps")
	assert.Equal(t, grid.RankGrid{{0, 1, 2, 3}}, frames[2])
}

func TestReplay_SnapshotScenario(t *testing.T) {
	c, err := Sort(grid.RankGrid{{5, 3, 1, 4, 0, 2}}, "counting_sort", nil)
	require.NoError(t, err)
	require.Equal(t, trace.KindSnapshot, c.Kind)
	require.Equal(t, 6, c.MaxLen)

	frames := replayAll(t, c, 4)

	require.Len(t, frames, 4)
	assert.Equal(t, grid.RankGrid{{5, 3, 1, 4, 0, 2}}, frames[0])
	assert.Equal(t, grid.RankGrid{{0, 1, 1, 4, 0, 2}}, frames[1])
	assert.Equal(t, grid.RankGrid{{0, 1, 2, 3, 0, 2}}, frames[2])
	assert.Equal(t, grid.RankGrid{{0, 1, 2, 3, 4, 5}}, frames[3])
}

func TestReplay_SnapshotCursorWraps(t *testing.T) {
	c := &Capture{
		Kind:  trace.KindSnapshot,
		Start: grid.RankGrid{{5, 4, 3, 2, 1, 0}},
		Traces: []trace.Trace{{
			Kind:   trace.KindSnapshot,
			Values: []int{1, 0, 3, 2, 5, 4, 0, 1, 2, 3, 4, 5},
		}},
		MaxLen: 12,
	}

	frames := replayAll(t, c, 4)

	require.Len(t, frames, 4)
	assert.Equal(t, grid.RankGrid{{1, 0, 3, 2, 1, 0}}, frames[1])
	assert.Equal(t, grid.RankGrid{{0, 1, 3, 2, 5, 4}}, frames[2], "chunk crossing column 5 wraps to column 0")
	assert.Equal(t, grid.RankGrid{{0, 1, 2, 3, 4, 5}}, frames[3])
}

func TestReplay_SnapshotChunkLongerThanRow(t *testing.T) {
	row := []int{4, 0, 3, 1, 2}
	c, err := Sort(grid.RankGrid{row}, "merge_sort", nil)
	require.NoError(t, err)
	require.Greater(t, c.MaxLen, 5)

	frames := replayAll(t, c, 2)
	require.Len(t, frames, 2)
	assert.Equal(t, grid.RankGrid{{0, 1, 2, 3, 4}}, frames[1])
}

func TestReplay_NothingToSort(t *testing.T) {
	start := grid.RankGrid{{0, 1, 2}, {0, 1, 2}}
	c, err := Sort(start, "bubble_sort", nil)
	require.NoError(t, err)
	require.Zero(t, c.MaxLen)

	frames := replayAll(t, c, 5)

	require.Len(t, frames, 5)
	for i, f := range frames {
		assert.Equal(t, start, f, "frame %d", i)
	}
}

func TestReplay_ShortTracesFinishEarly(t *testing.T) {
	// Row 0 is sorted (empty trace), row 1 needs one swap, row 2 is reversed.
	start := grid.RankGrid{
		{0, 1, 2, 3},
		{1, 0, 2, 3},
		{3, 2, 1, 0},
	}
	c, err := Sort(start, "bubble_sort", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Traces[0].Len())
	assert.Equal(t, 1, c.Traces[1].Len())
	assert.Equal(t, 6, c.MaxLen)

	frames := replayAll(t, c, 4)

	require.Len(t, frames, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, frames[1][0])
	assert.Equal(t, []int{0, 1, 2, 3}, frames[1][1], "one-swap row is done after the first chunk")
	assert.NotEqual(t, []int{0, 1, 2, 3}, frames[1][2])
	testutil.RequireSortedRows(t, frames[3])
}

func TestReplay_AllAlgorithmsFrameCountAndFinalState(t *testing.T) {
	start := shuffledRanks(6, 23, 99)

	for _, a := range algo.All() {
		for _, numFrames := range []int{2, 3, 7, 50, 400} {
			c, err := SortWith(start, a, nil)
			require.NoError(t, err)

			frames := replayAll(t, c, numFrames)

			require.Len(t, frames, numFrames, "%s frames=%d", a.Name, numFrames)
			assert.Equal(t, start, frames[0], a.Name)
			testutil.RequireSortedRows(t, frames[numFrames-1])
			for _, f := range frames {
				if a.Kind == trace.KindSwap {
					testutil.RequirePermutationRows(t, f, a.Name)
				} else {
					testutil.RequireRanksInRange(t, f)
				}
			}
		}
	}
}

func TestReplay_SwapFinalRowMatchesFullTrace(t *testing.T) {
	start := shuffledRanks(4, 31, 5)
	c, err := Sort(start, "quick_sort", nil)
	require.NoError(t, err)

	frames := replayAll(t, c, 9)
	last := frames[len(frames)-1]
	for r, tr := range c.Traces {
		row := append([]int(nil), start[r]...)
		tr.Apply(row)
		assert.Equal(t, row, last[r])
	}
}

func TestReplay_Repeatable(t *testing.T) {
	c, err := Sort(shuffledRanks(3, 12, 1), "heap_sort", nil)
	require.NoError(t, err)

	first := replayAll(t, c, 6)
	second := replayAll(t, c, 6)
	assert.Equal(t, first, second)
}

func TestReplay_DoesNotMutateCapture(t *testing.T) {
	start := shuffledRanks(2, 8, 3)
	c, err := Sort(start, "insertion_sort", nil)
	require.NoError(t, err)

	replayAll(t, c, 4)
	assert.Equal(t, start, c.Start)
}

func TestReplay_CancelBetweenFrames(t *testing.T) {
	c, err := Sort(shuffledRanks(2, 10, 8), "bubble_sort", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	emitted := 0
	err = Replay(ctx, c, 10, func(int, grid.RankGrid) error {
		emitted++
		if emitted == 2 {
			cancel()
		}
		return nil
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, emitted)
}

func TestReplay_EmitErrorStops(t *testing.T) {
	c, err := Sort(shuffledRanks(1, 5, 2), "bubble_sort", nil)
	require.NoError(t, err)

	boom := errors.New("disk full")
	err = Replay(context.Background(), c, 3, func(i int, _ grid.RankGrid) error {
		if i == 1 {
			return boom
		}
		return nil
	}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestReplay_ReportsProgress(t *testing.T) {
	c, err := Sort(shuffledRanks(2, 6, 4), "selection_sort", nil)
	require.NoError(t, err)

	var got []Progress
	err = Replay(context.Background(), c, 4, func(int, grid.RankGrid) error { return nil }, func(p Progress) {
		got = append(got, p)
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, PhaseCreating, p.Phase)
		assert.Equal(t, i+1, p.Done)
		assert.Equal(t, 3, p.Total)
	}
	assert.Equal(t, 1.0, got[2].Fraction())
}

func TestReplay_RejectsTooFewFrames(t *testing.T) {
	c, err := Sort(shuffledRanks(1, 4, 1), "bubble_sort", nil)
	require.NoError(t, err)

	called := false
	err = Replay(context.Background(), c, 1, func(int, grid.RankGrid) error {
		called = true
		return nil
	}, nil)
	assert.True(t, IsConfigError(err))
	assert.False(t, called)
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name    string
		pos     int
		src     []int
		want    []int
		wantPos int
	}{
		{"fits", 1, []int{7, 8}, []int{0, 7, 8, 0, 0}, 3},
		{"ends on last column", 3, []int{7, 8}, []int{0, 0, 0, 7, 8}, 0},
		{"wraps", 4, []int{7, 8, 9}, []int{8, 9, 0, 0, 7}, 2},
		{"wraps more than once", 2, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, []int{9, 5, 6, 7, 8}, 1},
		{"empty source", 2, nil, []int{0, 0, 0, 0, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]int, 5)
			pos := Splice(dst, tt.pos, tt.src)
			assert.Equal(t, tt.want, dst)
			assert.Equal(t, tt.wantPos, pos)
		})
	}
}

func TestSplice_EmptyRow(t *testing.T) {
	assert.Equal(t, 0, Splice(nil, 0, []int{1, 2}))
}
