package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sortvis/internal/algo"
)

// AlgorithmInfo describes one registered algorithm.
type AlgorithmInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Default bool   `json:"default,omitempty"`
}

// AlgorithmList is the algorithms command payload.
type AlgorithmList []AlgorithmInfo

// String renders one algorithm per line with its trace kind.
func (l AlgorithmList) String() string {
	var b strings.Builder
	for i, a := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-16s %s", a.Name, a.Kind)
		if a.Default {
			b.WriteString(" (default)")
		}
	}
	return b.String()
}

// NewAlgorithmsCommand creates the algorithms command.
func NewAlgorithmsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List available sorting algorithms",
		Long: `List every registered sorting algorithm with the shape of trace it records.

Swap algorithms are replayed swap by swap. Snapshot algorithms record whole
rows per pass and are replayed as a wave of values sweeping across each row.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return f.Success(listAlgorithms())
		},
	}

	return cmd
}

func listAlgorithms() AlgorithmList {
	all := algo.All()
	list := make(AlgorithmList, len(all))
	for i, a := range all {
		list[i] = AlgorithmInfo{
			Name:    a.Name,
			Kind:    a.Kind.String(),
			Default: a.Name == algo.DefaultName,
		}
	}
	return list
}
