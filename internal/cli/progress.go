package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/roach88/sortvis/internal/engine"
)

// defaultBarWidth is used when the terminal width is unknown.
const defaultBarWidth = 40

// progressBar draws one bar per engine phase, each on its own line.
type progressBar struct {
	w        io.Writer
	width    int
	throttle time.Duration

	phase engine.Phase
	bar   *progressbar.ProgressBar
	done  bool
}

// newProgress returns a progress callback drawing on w, or nil when w is not
// a terminal. Redirected output and JSON mode get no bar.
func newProgress(w io.Writer, format string) engine.ProgressFunc {
	if format == "json" {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}

	width := defaultBarWidth
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
		// description, percentage and count take about 30 columns
		width = max(10, min(cols-30, 60))
	}
	b := newProgressBar(w, width)
	b.throttle = 50 * time.Millisecond
	return b.Update
}

func newProgressBar(w io.Writer, width int) *progressBar {
	return &progressBar{w: w, width: width}
}

// Update advances the bar for p.Phase. A new phase starts a new bar on a
// fresh line; a finished bar ends its line.
func (b *progressBar) Update(p engine.Progress) {
	if b.bar == nil || p.Phase != b.phase {
		if b.bar != nil && !b.done {
			fmt.Fprintln(b.w)
		}
		b.start(p)
	}

	total, done := p.Total, p.Done
	if total <= 0 {
		total, done = 1, 1
	}
	if b.done {
		return
	}
	_ = b.bar.Set(min(done, total))
	if done >= total {
		b.done = true
	}
}

func (b *progressBar) start(p engine.Progress) {
	b.phase, b.done = p.Phase, false
	b.bar = progressbar.NewOptions(max(p.Total, 1),
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(fmt.Sprintf("%-9s", p.Phase)),
		progressbar.OptionSetWidth(b.width),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(b.throttle),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(b.w)
		}),
	)
}
