package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/sortvis/internal/algo"
	"github.com/roach88/sortvis/internal/config"
	"github.com/roach88/sortvis/internal/engine"
	"github.com/roach88/sortvis/internal/grid"
	"github.com/roach88/sortvis/internal/imageio"
	"github.com/roach88/sortvis/internal/store"
)

// SortFlags holds the flags shared by every command that sorts an image.
// Only flags the user set explicitly override the config file.
type SortFlags struct {
	ConfigPath string
	Algorithm  string
	Frames     int
	Randomise  bool
	Reverse    bool
	Seed       uint64
	Width      int
}

// addSortFlags registers SortFlags on cmd.
func addSortFlags(cmd *cobra.Command, f *SortFlags) {
	def := config.Default()
	cmd.Flags().StringVarP(&f.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .cue)")
	cmd.Flags().StringVarP(&f.Algorithm, "algorithm", "a", def.Algorithm, "sorting algorithm (see 'sortvis algorithms')")
	cmd.Flags().IntVarP(&f.Frames, "frames", "n", def.Frames, "number of frames, at least 2")
	cmd.Flags().BoolVar(&f.Randomise, "randomise", def.Randomise, "shuffle every row before sorting")
	cmd.Flags().BoolVar(&f.Reverse, "reverse", def.Reverse, "flip the grid before sorting")
	cmd.Flags().Uint64Var(&f.Seed, "seed", def.Seed, "shuffle seed (0 draws one)")
	cmd.Flags().IntVar(&f.Width, "width", def.Width, "rescale input to this width (0 keeps it)")
}

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	SortFlags
	Output    string
	Database  string
	DelayCS   int
	LoopCount int

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, the store default (UUIDv7) is used.
	IDGenerator store.IDGenerator
}

// RenderResult summarizes a finished render.
type RenderResult struct {
	RunID          string `json:"run_id,omitempty"`
	Input          string `json:"input"`
	Output         string `json:"output"`
	Algorithm      string `json:"algorithm"`
	Kind           string `json:"kind"`
	Frames         int    `json:"frames"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	MaxTraceLength int    `json:"max_trace_length"`
	Seed           uint64 `json:"seed"`
}

// String renders the text-mode summary.
func (r RenderResult) String() string {
	s := fmt.Sprintf("Rendered %d frames of %s (%s trace, max length %d) for a %dx%d image to %s",
		r.Frames, r.Algorithm, r.Kind, r.MaxTraceLength, r.Cols, r.Rows, r.Output)
	if r.RunID != "" {
		s += fmt.Sprintf("\nRecorded run %s", r.RunID)
	}
	return s
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Render a sorting animation of an image",
		Long: `Sort every pixel row of an image and write the process as an animated GIF.

Settings come from built-in defaults, then the --config file, then any flag
given explicitly on the command line. With --db the run is appended to the
history database so it can be listed or reproduced later.

Exit codes:
  0 - Animation written
  1 - Render failed or was interrupted
  2 - Command error (bad flags, unreadable image, invalid config)

Examples:
  sortvis render photo.png
  sortvis render photo.png -a quick_sort -n 120 -o quick.gif
  sortvis render photo.png --config render.cue --db history.db
  sortvis render photo.png --seed 42 --reverse --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	def := config.Default()
	addSortFlags(cmd, &opts.SortFlags)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output GIF path (default <image>-<algorithm>.gif)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite history database")
	cmd.Flags().IntVar(&opts.DelayCS, "delay", def.DelayCS, "frame delay in hundredths of a second")
	cmd.Flags().IntVar(&opts.LoopCount, "loop", def.LoopCount, "GIF loop count (0 forever, -1 once)")

	return cmd
}

func runRender(opts *RenderOptions, input string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := resolveConfig(&opts.SortFlags, cmd, func(c *config.Config) {
		if cmd.Flags().Changed("delay") {
			c.DelayCS = opts.DelayCS
		}
		if cmd.Flags().Changed("loop") {
			c.LoopCount = opts.LoopCount
		}
	})
	if err != nil {
		return f.Fail(ErrCodeConfig, err)
	}

	output := opts.Output
	if output == "" {
		output = defaultOutputPath(input, cfg.Algorithm)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := renderImage(ctx, input, output, cfg, newProgress(cmd.ErrOrStderr(), opts.Format))
	if err != nil {
		return f.Fail(ErrCodeInput, err)
	}

	if opts.Database != "" {
		run, err := recordRun(ctx, opts.Database, opts.IDGenerator, r)
		if err != nil {
			return f.Fail(ErrCodeDatabase, err)
		}
		r.result.RunID = run.ID
	}

	return f.Success(r.result)
}

// rendered carries what recordRun needs beyond the public summary.
type rendered struct {
	result    RenderResult
	digest    string
	randomise bool
	reverse   bool
	delayCS   int
	loopCount int
}

// renderImage loads input, sorts it and writes the GIF to output.
func renderImage(ctx context.Context, input, output string, cfg config.Config, progress engine.ProgressFunc) (*rendered, error) {
	px, err := imageio.Load(input, cfg.Width)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load image", err)
	}

	frames, vis, err := synthesize(ctx, px, cfg, progress)
	if err != nil {
		return nil, err
	}

	slog.Info("writing animation", "output", output, "frames", len(frames))
	if err := imageio.SaveGIF(output, frames, imageio.GIFOptions{
		DelayCS:   cfg.DelayCS,
		LoopCount: cfg.LoopCount,
	}); err != nil {
		return nil, WrapExitError(ExitFailure, "failed to write animation", err)
	}

	c := vis.Capture()
	return &rendered{
		result: RenderResult{
			Input:          input,
			Output:         output,
			Algorithm:      c.Algorithm.Name,
			Kind:           c.Kind.String(),
			Frames:         len(frames),
			Rows:           px.Rows(),
			Cols:           px.Cols(),
			MaxTraceLength: c.MaxLen,
			Seed:           vis.Seed(),
		},
		digest:    store.ImageDigest(px),
		randomise: cfg.Randomise,
		reverse:   cfg.Reverse,
		delayCS:   cfg.DelayCS,
		loopCount: cfg.LoopCount,
	}, nil
}

// synthesize builds a Visualiser for px from cfg and replays it.
func synthesize(ctx context.Context, px grid.PixelGrid, cfg config.Config, progress engine.ProgressFunc) ([]grid.PixelGrid, *engine.Visualiser, error) {
	vis, err := newVisualiser(px, cfg, progress)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("sorting", "algorithm", cfg.Algorithm, "rows", px.Rows(), "cols", px.Cols(), "frames", cfg.Frames)
	frames, err := vis.SynthesizeContext(ctx, cfg.Frames, cfg.Algorithm)
	if err != nil {
		return nil, nil, wrapEngineError("failed to synthesize frames", err)
	}
	return frames, vis, nil
}

func newVisualiser(px grid.PixelGrid, cfg config.Config, progress engine.ProgressFunc) (*engine.Visualiser, error) {
	opts := []engine.Option{
		engine.WithRandomise(cfg.Randomise),
		engine.WithReverse(cfg.Reverse),
		engine.WithLogger(slog.Default()),
		engine.WithProgress(progress),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}

	vis, err := engine.New(px, opts...)
	if err != nil {
		return nil, wrapEngineError("failed to prepare image", err)
	}
	return vis, nil
}

func recordRun(ctx context.Context, dbPath string, ids store.IDGenerator, r *rendered) (store.Run, error) {
	var storeOpts []store.Option
	if ids != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(ids))
	}

	st, err := store.Open(dbPath, storeOpts...)
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	run, err := st.WriteRun(ctx, store.Run{
		InputPath:      r.result.Input,
		InputDigest:    r.digest,
		Algorithm:      r.result.Algorithm,
		TraceKind:      r.result.Kind,
		Frames:         r.result.Frames,
		GridRows:       r.result.Rows,
		GridCols:       r.result.Cols,
		MaxTraceLength: r.result.MaxTraceLength,
		Seed:           r.result.Seed,
		Randomise:      r.randomise,
		Reverse:        r.reverse,
		OutputPath:     r.result.Output,
		DelayCS:        r.delayCS,
		LoopCount:      r.loopCount,
	})
	if err != nil {
		return store.Run{}, WrapExitError(ExitFailure, "failed to record run", err)
	}
	slog.Debug("run recorded", "id", run.ID, "seq", run.Seq)
	return run, nil
}

// resolveConfig applies defaults, then the config file, then explicitly set
// flags, and validates the result. extra applies command-specific flags.
func resolveConfig(f *SortFlags, cmd *cobra.Command, extra func(*config.Config)) (config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = f.Algorithm
	}
	if flags.Changed("frames") {
		cfg.Frames = f.Frames
	}
	if flags.Changed("randomise") {
		cfg.Randomise = f.Randomise
	}
	if flags.Changed("reverse") {
		cfg.Reverse = f.Reverse
	}
	if flags.Changed("seed") {
		cfg.Seed = f.Seed
	}
	if flags.Changed("width") {
		cfg.Width = f.Width
	}
	if extra != nil {
		extra(&cfg)
	}

	cfg.Normalize()
	if _, err := algo.Lookup(cfg.Algorithm); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid config",
			engine.NewUnknownAlgorithmError(cfg.Algorithm, err))
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return cfg, nil
}

// defaultOutputPath places the GIF next to the input.
func defaultOutputPath(input, algorithm string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + "-" + algorithm + ".gif"
}

// commandContext returns the command's context, or Background when the
// command was executed without one (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
