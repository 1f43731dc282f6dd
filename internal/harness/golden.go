package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Render formats a scenario result as the plain-text listing stored in golden
// files. The layout is stable: header lines, the chunk partition, then one
// block per frame with one line of space-separated ranks per row.
func Render(scenario *Scenario, result *Result) []byte {
	var buf strings.Builder

	fmt.Fprintf(&buf, "scenario: %s\n", scenario.Name)
	if result.ErrorCode != "" {
		fmt.Fprintf(&buf, "error: %s\n", result.ErrorCode)
		return []byte(buf.String())
	}

	fmt.Fprintf(&buf, "algorithm: %s\n", result.Algorithm)
	fmt.Fprintf(&buf, "kind: %s\n", result.Kind)
	fmt.Fprintf(&buf, "max_trace_length: %d\n", result.MaxTraceLength)

	buf.WriteString("chunks:")
	for _, c := range result.Chunks {
		fmt.Fprintf(&buf, " [%d,%d)", c.Start, c.End)
	}
	buf.WriteString("\n")

	for f, frame := range result.Frames {
		fmt.Fprintf(&buf, "frame %d:\n", f)
		for _, row := range frame {
			buf.WriteString(" ")
			for _, v := range row {
				fmt.Fprintf(&buf, " %d", v)
			}
			buf.WriteString("\n")
		}
	}

	return []byte(buf.String())
}

// RunWithGolden executes a scenario and compares the rendered frames against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the listing doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Render(scenario, result))
}
