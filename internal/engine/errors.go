package engine

import (
	"errors"
	"fmt"
)

// Error represents a failure detected by the engine.
//
// Errors fall into two groups:
//   - Configuration errors: unknown algorithm, too few frames. Reported before
//     any state is touched.
//   - Invariant violations: a rank outside 0..C-1 reached the decoder, or an
//     algorithm returned a trace of the wrong shape. These indicate a bug in
//     capture or replay and abort the operation.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeUnknownAlgorithm indicates the algorithm identifier is not registered.
	ErrCodeUnknownAlgorithm ErrorCode = "UNKNOWN_ALGORITHM"

	// ErrCodeInvalidFrameCount indicates fewer than two frames were requested.
	ErrCodeInvalidFrameCount ErrorCode = "INVALID_FRAME_COUNT"

	// ErrCodeInvalidImage indicates the pixel grid is not rectangular.
	ErrCodeInvalidImage ErrorCode = "INVALID_IMAGE"

	// ErrCodeRankOutOfRange indicates a rank outside 0..C-1 reached the decoder.
	ErrCodeRankOutOfRange ErrorCode = "RANK_OUT_OF_RANGE"

	// ErrCodeTraceShapeMismatch indicates a trace whose kind differs from the
	// algorithm's registered kind.
	ErrCodeTraceShapeMismatch ErrorCode = "TRACE_SHAPE_MISMATCH"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		switch e.Code {
		case ErrCodeUnknownAlgorithm, ErrCodeInvalidFrameCount, ErrCodeInvalidImage:
			return true
		}
	}
	return false
}

// IsInvariantError reports whether err is an internal invariant violation.
func IsInvariantError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeRankOutOfRange || e.Code == ErrCodeTraceShapeMismatch
	}
	return false
}

// NewUnknownAlgorithmError creates an Error for an unregistered identifier.
func NewUnknownAlgorithmError(name string, cause error) *Error {
	return &Error{
		Code:    ErrCodeUnknownAlgorithm,
		Message: fmt.Sprintf("algorithm %q is not registered", name),
		Details: map[string]string{"algorithm": name},
		Err:     cause,
	}
}

// NewFrameCountError creates an Error for a frame count below two.
func NewFrameCountError(numFrames int) *Error {
	return &Error{
		Code:    ErrCodeInvalidFrameCount,
		Message: fmt.Sprintf("frame count must be at least 2, got %d", numFrames),
		Details: map[string]string{"frames": fmt.Sprintf("%d", numFrames)},
	}
}

// NewRankRangeError wraps a decoder failure as an invariant violation.
func NewRankRangeError(frame int, cause error) *Error {
	return &Error{
		Code:    ErrCodeRankOutOfRange,
		Message: fmt.Sprintf("frame %d holds a rank with no pixel", frame),
		Details: map[string]string{"frame": fmt.Sprintf("%d", frame)},
		Err:     cause,
	}
}

// NewTraceShapeError creates an Error for a trace of the wrong kind.
func NewTraceShapeError(algorithm string, row int, want, got fmt.Stringer) *Error {
	return &Error{
		Code:    ErrCodeTraceShapeMismatch,
		Message: fmt.Sprintf("%s returned a %s trace for row %d, registered as %s", algorithm, got, row, want),
		Details: map[string]string{
			"algorithm": algorithm,
			"row":       fmt.Sprintf("%d", row),
		},
	}
}
