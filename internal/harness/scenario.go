package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortvis/internal/grid"
)

// Scenario defines a replay conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Algorithm is the registry identifier to sort with.
	Algorithm string `yaml:"algorithm"`

	// Frames is the number of frames to synthesize.
	Frames int `yaml:"frames"`

	// Rows is the initial rank grid. Each row must be a permutation of
	// 0..C-1 and every row must have the same width.
	Rows [][]int `yaml:"rows"`

	// ExpectError, when set, is the engine error code the scenario must
	// fail with. Assertions are not evaluated for such scenarios.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the synthesized frames and capture.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion validates frames or capture metadata.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Frame is the frame index (used by frame_equals).
	Frame int `yaml:"frame,omitempty"`

	// Ranks is the expected grid (used by frame_equals).
	Ranks [][]int `yaml:"ranks,omitempty"`

	// Count is the expected trace length (used by max_trace_length).
	Count int `yaml:"count,omitempty"`

	// Kind is "swap" or "snapshot" (used by trace_kind).
	Kind string `yaml:"kind,omitempty"`
}

// Assertion type constants.
const (
	AssertFrameEquals           = "frame_equals"
	AssertFinalSorted           = "final_sorted"
	AssertPermutationEveryFrame = "permutation_every_frame"
	AssertRanksInRange          = "ranks_in_range"
	AssertMaxTraceLength        = "max_trace_length"
	AssertTraceKind             = "trace_kind"
)

// RankGrid returns the scenario's initial rows as a rank grid.
func (s *Scenario) RankGrid() grid.RankGrid {
	return grid.RankGrid(s.Rows).Clone()
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Frame count and algorithm name are left to the engine so scenarios can
// exercise its rejections.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Algorithm == "" {
		return fmt.Errorf("algorithm is required")
	}

	if len(s.Rows) == 0 {
		return fmt.Errorf("rows list is required and must be non-empty")
	}

	width := len(s.Rows[0])
	for i, row := range s.Rows {
		if len(row) != width {
			return fmt.Errorf("rows[%d]: width %d, expected %d", i, len(row), width)
		}
		if !grid.IsPermutation(row) {
			return fmt.Errorf("rows[%d]: %v is not a permutation of 0..%d", i, row, width-1)
		}
	}

	if s.ExpectError == "" && len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required unless expect_error is set")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFrameEquals:
		if a.Frame < 0 {
			return fmt.Errorf("assertions[%d]: frame must be non-negative for frame_equals", index)
		}
		if len(a.Ranks) == 0 {
			return fmt.Errorf("assertions[%d]: ranks is required for frame_equals", index)
		}
	case AssertMaxTraceLength:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for max_trace_length", index)
		}
	case AssertTraceKind:
		if a.Kind != "swap" && a.Kind != "snapshot" {
			return fmt.Errorf("assertions[%d]: kind must be swap or snapshot, got %q", index, a.Kind)
		}
	case AssertFinalSorted, AssertPermutationEveryFrame, AssertRanksInRange:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
