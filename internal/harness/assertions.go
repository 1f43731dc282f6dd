package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/sortvis/internal/grid"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// evaluateAssertion dispatches on assertion type.
func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertFrameEquals:
		return assertFrameEquals(result, a)
	case AssertFinalSorted:
		return assertFinalSorted(result)
	case AssertPermutationEveryFrame:
		return assertPermutationEveryFrame(result)
	case AssertRanksInRange:
		return assertRanksInRange(result)
	case AssertMaxTraceLength:
		return assertMaxTraceLength(result, a)
	case AssertTraceKind:
		return assertTraceKind(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertFrameEquals(result *Result, a Assertion) error {
	if a.Frame >= len(result.Frames) {
		return &AssertionError{
			Type:     AssertFrameEquals,
			Expected: fmt.Sprintf("frame %d to exist", a.Frame),
			Actual:   fmt.Sprintf("%d frames synthesized", len(result.Frames)),
		}
	}

	got := result.Frames[a.Frame]
	if !got.Equal(grid.RankGrid(a.Ranks)) {
		return &AssertionError{
			Type:     AssertFrameEquals,
			Expected: fmt.Sprintf("frame %d = %v", a.Frame, a.Ranks),
			Actual:   fmt.Sprintf("frame %d = %v", a.Frame, [][]int(got)),
		}
	}
	return nil
}

func assertFinalSorted(result *Result) error {
	final := result.Final()
	if final == nil {
		return &AssertionError{
			Type:     AssertFinalSorted,
			Expected: "a final frame",
			Actual:   "no frames synthesized",
		}
	}
	for r, row := range final {
		for c, v := range row {
			if v != c {
				return &AssertionError{
					Type:     AssertFinalSorted,
					Expected: fmt.Sprintf("row %d sorted", r),
					Actual:   fmt.Sprintf("row %d = %v", r, row),
				}
			}
		}
	}
	return nil
}

func assertPermutationEveryFrame(result *Result) error {
	for f, frame := range result.Frames {
		for r, row := range frame {
			if !grid.IsPermutation(row) {
				return &AssertionError{
					Type:     AssertPermutationEveryFrame,
					Expected: fmt.Sprintf("frame %d row %d to be a permutation", f, r),
					Actual:   fmt.Sprintf("%v", row),
				}
			}
		}
	}
	return nil
}

func assertRanksInRange(result *Result) error {
	for f, frame := range result.Frames {
		for r, row := range frame {
			for c, v := range row {
				if v < 0 || v >= len(row) {
					return &AssertionError{
						Type:     AssertRanksInRange,
						Expected: fmt.Sprintf("frame %d ranks within 0..%d", f, len(row)-1),
						Actual:   fmt.Sprintf("rank %d at row %d col %d", v, r, c),
					}
				}
			}
		}
	}
	return nil
}

func assertMaxTraceLength(result *Result, a Assertion) error {
	if result.MaxTraceLength != a.Count {
		return &AssertionError{
			Type:     AssertMaxTraceLength,
			Expected: fmt.Sprintf("%d", a.Count),
			Actual:   fmt.Sprintf("%d", result.MaxTraceLength),
		}
	}
	return nil
}

func assertTraceKind(result *Result, a Assertion) error {
	if result.Kind != a.Kind {
		return &AssertionError{
			Type:     AssertTraceKind,
			Expected: a.Kind,
			Actual:   result.Kind,
		}
	}
	return nil
}
