// Package harness provides conformance testing for sort replay.
//
// A scenario pins down an initial rank grid, an algorithm and a frame count,
// then checks the rank frames the engine synthesizes. Scenarios skip the
// pixel codec entirely: ranks go straight into capture and replay, so every
// expected frame can be worked out by hand.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	algorithm: bubble_sort
//	frames: 3
//	rows:
//	  - [3, 1, 2, 0]
//	assertions:
//	  - type: frame_equals
//	    frame: 1
//	    ranks: [[1, 2, 0, 3]]
//	  - type: final_sorted
//
// A scenario that sets expect_error instead asserts that the engine rejects
// it with the given error code (for example UNKNOWN_ALGORITHM).
//
// # Assertion Types
//
//   - frame_equals: Frame N holds exactly the given ranks
//   - final_sorted: The last frame is sorted in every row
//   - permutation_every_frame: Every row of every frame is a permutation
//   - ranks_in_range: Every rank of every frame lies in 0..C-1
//   - max_trace_length: The longest captured trace has Count steps
//   - trace_kind: The algorithm produced traces of the given kind
//
// # Golden Files
//
// Render turns a result into a plain-text listing of the partition and every
// frame. RunWithGolden compares that listing against
// testdata/golden/{scenario.Name}.golden using goldie.
package harness
