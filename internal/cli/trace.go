package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortvis/internal/config"
	"github.com/roach88/sortvis/internal/engine"
	"github.com/roach88/sortvis/internal/imageio"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	SortFlags
}

// TraceStats summarizes the traces captured for an image without rendering.
type TraceStats struct {
	Algorithm      string `json:"algorithm"`
	Kind           string `json:"kind"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	Seed           uint64 `json:"seed"`
	MinTraceLength int    `json:"min_trace_length"`
	MaxTraceLength int    `json:"max_trace_length"`
	TotalSteps     int    `json:"total_steps"`
	Frames         int    `json:"frames"`
	MinChunk       int    `json:"min_chunk"`
	MaxChunk       int    `json:"max_chunk"`
}

// String renders the text-mode summary.
func (s TraceStats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Algorithm:    %s (%s)\n", s.Algorithm, s.Kind)
	fmt.Fprintf(&b, "Grid:         %dx%d (seed %d)\n", s.Cols, s.Rows, s.Seed)
	fmt.Fprintf(&b, "Trace length: min %d, max %d, total %d\n", s.MinTraceLength, s.MaxTraceLength, s.TotalSteps)
	fmt.Fprintf(&b, "Frames:       %d (chunks of %d to %d steps)", s.Frames, s.MinChunk, s.MaxChunk)
	return b.String()
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <image>",
		Short: "Capture sort traces and report their shape",
		Long: `Capture one trace per pixel row and report trace lengths and the frame
partition, without rendering any frames.

Useful for choosing a frame count: every frame consumes one chunk of the
longest trace.

Examples:
  sortvis trace photo.png -a heap_sort
  sortvis trace photo.png -a merge_sort -n 30 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	addSortFlags(cmd, &opts.SortFlags)

	return cmd
}

func runTrace(opts *TraceOptions, input string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := resolveConfig(&opts.SortFlags, cmd, nil)
	if err != nil {
		return f.Fail(ErrCodeConfig, err)
	}

	px, err := imageio.Load(input, cfg.Width)
	if err != nil {
		return f.Fail(ErrCodeInput, WrapExitError(ExitCommandError, "failed to load image", err))
	}

	vis, err := newVisualiser(px, cfg, newProgress(cmd.ErrOrStderr(), opts.Format))
	if err != nil {
		return f.Fail(ErrCodeInput, err)
	}
	if err := vis.Sort(cfg.Algorithm); err != nil {
		return f.Fail(ErrCodeConfig, wrapEngineError("failed to capture traces", err))
	}

	stats, err := traceStats(vis.Capture(), cfg)
	if err != nil {
		return f.Fail(ErrCodeConfig, wrapEngineError("failed to partition traces", err))
	}
	stats.Seed = vis.Seed()
	return f.Success(stats)
}

func traceStats(c *engine.Capture, cfg config.Config) (TraceStats, error) {
	chunks, err := engine.Partition(c.MaxLen, cfg.Frames)
	if err != nil {
		return TraceStats{}, err
	}

	s := TraceStats{
		Algorithm:      c.Algorithm.Name,
		Kind:           c.Kind.String(),
		Rows:           c.Start.Rows(),
		Cols:           c.Cols(),
		MaxTraceLength: c.MaxLen,
		Frames:         cfg.Frames,
		MinTraceLength: c.MaxLen,
	}
	for _, t := range c.Traces {
		s.MinTraceLength = min(s.MinTraceLength, t.Len())
		s.TotalSteps += t.Len()
	}

	// Partition sizes are non-increasing.
	s.MaxChunk = chunks[0].Len()
	s.MinChunk = chunks[len(chunks)-1].Len()
	return s, nil
}
