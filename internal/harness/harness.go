package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/sortvis/internal/engine"
	"github.com/roach88/sortvis/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Capture one trace per row with the scenario's algorithm
//  2. Replay the capture into the requested number of frames
//  3. Evaluate assertions against the recorded frames
//
// An engine error is returned as is unless the scenario expects it, in which
// case the result passes and carries the code.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with cancellation.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	err := execute(ctx, scenario, result)
	if scenario.ExpectError != "" {
		checkExpectedError(scenario.ExpectError, err, result)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	for i, assertion := range scenario.Assertions {
		if err := evaluateAssertion(result, assertion); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

// execute sorts and replays, filling in everything but Pass and Errors.
func execute(ctx context.Context, scenario *Scenario, result *Result) error {
	ranks := scenario.RankGrid()

	capture, err := engine.Sort(ranks, scenario.Algorithm, nil)
	if err != nil {
		return err
	}
	result.Algorithm = capture.Algorithm.Name
	result.Kind = capture.Kind.String()
	result.MaxTraceLength = capture.MaxLen

	chunks, err := engine.Partition(capture.MaxLen, scenario.Frames)
	if err != nil {
		return err
	}
	result.Chunks = chunks

	rec := &testutil.Recorder{}
	if err := engine.Replay(ctx, capture, scenario.Frames, rec.Emit, nil); err != nil {
		return err
	}
	result.Frames = rec.Frames
	return nil
}

func checkExpectedError(want string, err error, result *Result) {
	if err == nil {
		result.AddError(fmt.Sprintf("expected error %s, got success", want))
		return
	}

	var engErr *engine.Error
	if !errors.As(err, &engErr) {
		result.AddError(fmt.Sprintf("expected error %s, got %v", want, err))
		return
	}
	result.ErrorCode = string(engErr.Code)
	if result.ErrorCode != want {
		result.AddError(fmt.Sprintf("expected error %s, got %s", want, result.ErrorCode))
	}
}

