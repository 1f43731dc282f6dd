package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/sortvis/internal/algo"
	"github.com/roach88/sortvis/internal/config"
	"github.com/roach88/sortvis/internal/engine"
	"github.com/roach88/sortvis/internal/imageio"
	"github.com/roach88/sortvis/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	Output    string
	DelayCS   int
	LoopCount int
}

// ReplayResult reports whether a recorded run was reproduced.
type ReplayResult struct {
	RunID          string `json:"run_id"`
	Output         string `json:"output"`
	Algorithm      string `json:"algorithm"`
	Frames         int    `json:"frames"`
	MaxTraceLength int    `json:"max_trace_length"`
	Recorded       int    `json:"recorded_max_trace_length"`
	Reproduced     bool   `json:"reproduced"`
}

// String renders the text-mode summary.
func (r ReplayResult) String() string {
	if r.Reproduced {
		return fmt.Sprintf("Reproduced run %s (%s, %d frames) to %s", r.RunID, r.Algorithm, r.Frames, r.Output)
	}
	return fmt.Sprintf("Run %s did not reproduce: max trace length %d, recorded %d",
		r.RunID, r.MaxTraceLength, r.Recorded)
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-render a recorded run and verify determinism",
		Long: `Re-render a run from the history database with its recorded algorithm,
frame count, shuffle seed, flags and GIF timing. --delay and --loop override
the recorded timing.

The input image must still have the recorded digest. Capture is deterministic
for a given seed, so the replayed trace length must match the recorded one.

Exit codes:
  0 - Run reproduced
  1 - Input changed or the run did not reproduce
  2 - Command error (database not found, unknown run, etc.)

Examples:
  sortvis replay --db ./history.db 01920c4e-7b1a-7c3e-9f00-2a1b3c4d5e6f
  sortvis replay --db ./history.db <run-id> -o again.gif --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	def := config.Default()
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output GIF path (default: the recorded output)")
	cmd.Flags().IntVar(&opts.DelayCS, "delay", def.DelayCS, "frame delay in hundredths of a second (default: the recorded delay)")
	cmd.Flags().IntVar(&opts.LoopCount, "loop", def.LoopCount, "GIF loop count, 0 forever, -1 once (default: the recorded count)")

	return cmd
}

func runReplay(opts *ReplayOptions, runID string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(opts.Database)
	if err != nil {
		return f.Fail(ErrCodeDatabase, WrapExitError(ExitCommandError, "failed to open database", err))
	}
	defer st.Close()

	run, err := st.GetRun(ctx, runID)
	if errors.Is(err, store.ErrNotFound) {
		return f.Fail(ErrCodeDatabase, WrapExitError(ExitCommandError, "unknown run", err))
	}
	if err != nil {
		return f.Fail(ErrCodeDatabase, WrapExitError(ExitCommandError, "failed to read run", err))
	}

	a, err := algo.Lookup(run.Algorithm)
	if err != nil {
		return f.Fail(ErrCodeConfig, WrapExitError(ExitCommandError, "recorded algorithm is no longer registered",
			engine.NewUnknownAlgorithmError(run.Algorithm, err)))
	}

	// Loading at the recorded width repeats any resize the original render did.
	px, err := imageio.Load(run.InputPath, run.GridCols)
	if err != nil {
		return f.Fail(ErrCodeInput, WrapExitError(ExitCommandError, "failed to load image", err))
	}
	if digest := store.ImageDigest(px); digest != run.InputDigest {
		return f.Fail(ErrCodeInput, NewExitError(ExitFailure,
			fmt.Sprintf("input %s changed since run %s", run.InputPath, run.ID)))
	}

	vis, err := engine.New(px,
		engine.WithRandomise(run.Randomise),
		engine.WithReverse(run.Reverse),
		engine.WithSeed(run.Seed),
		engine.WithLogger(slog.Default()),
		engine.WithProgress(newProgress(cmd.ErrOrStderr(), opts.Format)),
	)
	if err != nil {
		return f.Fail(ErrCodeInput, wrapEngineError("failed to prepare image", err))
	}
	frames, err := vis.SynthesizeContext(ctx, run.Frames, a.Name)
	if err != nil {
		return f.Fail(ErrCodeInput, wrapEngineError("failed to synthesize frames", err))
	}

	output := opts.Output
	if output == "" {
		output = run.OutputPath
	}
	timing := imageio.GIFOptions{DelayCS: run.DelayCS, LoopCount: run.LoopCount}
	if cmd.Flags().Changed("delay") {
		timing.DelayCS = opts.DelayCS
	}
	if cmd.Flags().Changed("loop") {
		timing.LoopCount = opts.LoopCount
	}
	if err := imageio.SaveGIF(output, frames, timing); err != nil {
		return f.Fail(ErrCodeInput, WrapExitError(ExitFailure, "failed to write animation", err))
	}

	result := ReplayResult{
		RunID:          run.ID,
		Output:         output,
		Algorithm:      a.Name,
		Frames:         len(frames),
		MaxTraceLength: vis.Capture().MaxLen,
		Recorded:       run.MaxTraceLength,
	}
	result.Reproduced = result.MaxTraceLength == result.Recorded && result.Frames == run.Frames

	if err := f.Success(result); err != nil {
		return err
	}
	if !result.Reproduced {
		return NewExitError(ExitFailure, "run did not reproduce")
	}
	return nil
}
