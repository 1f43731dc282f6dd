package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortvis/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Digest   string // optional - runs of one input image only
}

// HistoryEntry is one run as reported by the history command.
type HistoryEntry struct {
	Seq            int64  `json:"seq"`
	ID             string `json:"id"`
	Input          string `json:"input"`
	InputDigest    string `json:"input_digest"`
	Algorithm      string `json:"algorithm"`
	Kind           string `json:"kind"`
	Frames         int    `json:"frames"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	MaxTraceLength int    `json:"max_trace_length"`
	Seed           uint64 `json:"seed"`
	Randomise      bool   `json:"randomise"`
	Reverse        bool   `json:"reverse"`
	Output         string `json:"output"`
	DelayCS        int    `json:"delay"`
	LoopCount      int    `json:"loop"`
}

// HistoryResult is the history command payload.
type HistoryResult struct {
	Runs []HistoryEntry `json:"runs"`
}

// String renders one run per line, newest first.
func (h HistoryResult) String() string {
	if len(h.Runs) == 0 {
		return "No runs recorded."
	}
	var b strings.Builder
	for i, r := range h.Runs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%4d  %s  %-14s %4d frames  %dx%d  seed=%d  %s -> %s",
			r.Seq, r.ID, r.Algorithm, r.Frames, r.Cols, r.Rows, r.Seed, r.Input, r.Output)
	}
	return b.String()
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded renders",
		Long: `List renders recorded with 'sortvis render --db'.

Runs are listed newest first. With --digest only runs of one input image are
shown, oldest first.

Examples:
  sortvis history --db ./history.db
  sortvis history --db ./history.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "only runs whose input has this digest")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := commandContext(cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return f.Fail(ErrCodeDatabase, WrapExitError(ExitCommandError, "failed to open database", err))
	}
	defer st.Close()

	runs, err := listRuns(ctx, st, opts)
	if err != nil {
		return f.Fail(ErrCodeDatabase, WrapExitError(ExitCommandError, "failed to list runs", err))
	}

	result := HistoryResult{Runs: make([]HistoryEntry, len(runs))}
	for i, r := range runs {
		result.Runs[i] = historyEntry(r)
	}
	return f.Success(result)
}

func listRuns(ctx context.Context, st *store.Store, opts *HistoryOptions) ([]store.Run, error) {
	if opts.Digest != "" {
		return st.RunsForDigest(ctx, opts.Digest)
	}
	return st.ListRuns(ctx, opts.Limit)
}

func historyEntry(r store.Run) HistoryEntry {
	return HistoryEntry{
		Seq:            r.Seq,
		ID:             r.ID,
		Input:          r.InputPath,
		InputDigest:    r.InputDigest,
		Algorithm:      r.Algorithm,
		Kind:           r.TraceKind,
		Frames:         r.Frames,
		Rows:           r.GridRows,
		Cols:           r.GridCols,
		MaxTraceLength: r.MaxTraceLength,
		Seed:           r.Seed,
		Randomise:      r.Randomise,
		Reverse:        r.Reverse,
		Output:         r.OutputPath,
		DelayCS:        r.DelayCS,
		LoopCount:      r.LoopCount,
	}
}
