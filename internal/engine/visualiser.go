package engine

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/roach88/sortvis/internal/grid"
)

// Visualiser owns one image's capture and replay cycle.
//
// The original pixels and ReplaceMap are fixed at construction. The pre-sort
// rank grid (after optional shuffle and reverse) is fixed too; Sort captures
// traces from it and Synthesize replays them.
//
// Thread-safety: a Visualiser is not safe for concurrent use.
type Visualiser struct {
	original grid.PixelGrid
	replace  grid.ReplaceMap
	ranks    grid.RankGrid
	capture  *Capture

	seed     uint64
	logger   *slog.Logger
	progress ProgressFunc
}

// Option configures a Visualiser.
type Option func(*options)

type options struct {
	randomise bool
	reverse   bool
	seed      uint64
	seeded    bool
	logger    *slog.Logger
	progress  ProgressFunc
}

// WithRandomise shuffles every encoded row before capture.
func WithRandomise(randomise bool) Option {
	return func(o *options) {
		o.randomise = randomise
	}
}

// WithReverse flips the encoded grid before capture. It is applied after
// any shuffle.
func WithReverse(reverse bool) Option {
	return func(o *options) {
		o.reverse = reverse
	}
}

// WithSeed fixes the shuffle seed. Without it a random seed is drawn; Seed
// reports whichever was used.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProgress installs a progress callback for both phases.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// New encodes px and prepares the pre-sort state.
// px must be rectangular; it is copied, so the caller keeps ownership.
func New(px grid.PixelGrid, opts ...Option) (*Visualiser, error) {
	if err := px.Validate(); err != nil {
		return nil, &Error{Code: ErrCodeInvalidImage, Message: "pixel grid is not rectangular", Err: err}
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = rand.Uint64()
	}

	original := px.Clone()
	ranks, replace := grid.Encode(original)
	if o.randomise {
		grid.Shuffle(ranks, rand.New(rand.NewPCG(o.seed, o.seed)))
	}
	if o.reverse {
		grid.Reverse(ranks)
	}

	o.logger.Debug("visualiser ready",
		"rows", original.Rows(),
		"cols", original.Cols(),
		"randomise", o.randomise,
		"reverse", o.reverse,
		"seed", o.seed,
	)

	return &Visualiser{
		original: original,
		replace:  replace,
		ranks:    ranks,
		seed:     o.seed,
		logger:   o.logger,
		progress: o.progress,
	}, nil
}

// Original returns the unmodified source pixels.
func (v *Visualiser) Original() grid.PixelGrid {
	return v.original
}

// Ranks returns a copy of the pre-sort rank grid.
func (v *Visualiser) Ranks() grid.RankGrid {
	return v.ranks.Clone()
}

// Seed returns the shuffle seed in effect.
func (v *Visualiser) Seed() uint64 {
	return v.seed
}

// Capture returns the traces from the last Sort, or nil before Sort.
func (v *Visualiser) Capture() *Capture {
	return v.capture
}

// Sort captures traces for every row with the named algorithm.
//
// Capture works on copies of the pre-sort grid, so calling Sort again
// replaces the capture with an identical one for the same algorithm.
func (v *Visualiser) Sort(name string) error {
	c, err := Sort(v.ranks, name, v.progress)
	if err != nil {
		return err
	}
	v.capture = c
	v.logger.Debug("capture complete",
		"algorithm", c.Algorithm.Name,
		"kind", c.Kind.String(),
		"rows", len(c.Traces),
		"max_trace_length", c.MaxLen,
	)
	return nil
}

// Synthesize returns exactly numFrames frames. See SynthesizeContext.
func (v *Visualiser) Synthesize(numFrames int, name string) ([]grid.PixelGrid, error) {
	return v.SynthesizeContext(context.Background(), numFrames, name)
}

// SynthesizeContext replays the capture into numFrames pixel grids.
//
// If Sort has not been called, it runs first with name; otherwise the
// existing capture is replayed and name is ignored. A frame count below two
// is rejected before anything is sorted. ctx is only consulted between
// frames.
func (v *Visualiser) SynthesizeContext(ctx context.Context, numFrames int, name string) ([]grid.PixelGrid, error) {
	if numFrames < 2 {
		return nil, NewFrameCountError(numFrames)
	}
	if v.capture == nil {
		if err := v.Sort(name); err != nil {
			return nil, err
		}
	}

	frames := make([]grid.PixelGrid, 0, numFrames)
	err := Replay(ctx, v.capture, numFrames, func(i int, ranks grid.RankGrid) error {
		px, err := grid.Materialize(ranks, v.replace)
		if err != nil {
			var rangeErr *grid.RankRangeError
			if errors.As(err, &rangeErr) {
				return NewRankRangeError(i, err)
			}
			return err
		}
		frames = append(frames, px)
		return nil
	}, v.progress)
	if err != nil {
		return nil, err
	}

	v.logger.Debug("frames synthesized", "frames", len(frames))
	return frames, nil
}
