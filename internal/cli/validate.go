package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sortvis/internal/config"
)

// ValidationResult holds a validated config.
type ValidationResult struct {
	Valid  bool          `json:"valid"`
	Path   string        `json:"path"`
	Config config.Config `json:"config"`
}

// String renders the text-mode summary.
func (v ValidationResult) String() string {
	c := v.Config
	return fmt.Sprintf("✓ %s is valid: %s, %d frames, randomise=%t, reverse=%t, seed=%d, delay=%dcs, loop=%d, width=%d",
		v.Path, c.Algorithm, c.Frames, c.Randomise, c.Reverse, c.Seed, c.DelayCS, c.LoopCount, c.Width)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a render config file",
		Long: `Validate a YAML or CUE render config against the config schema.

The file is overlaid on the defaults exactly as 'render --config' would, and
the merged result is printed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	f.VerboseLog("Validating %s", path)
	cfg, err := config.Load(path)
	if err != nil {
		return f.Fail(ErrCodeConfig, WrapExitError(ExitFailure, "invalid config", err))
	}

	return f.Success(ValidationResult{Valid: true, Path: path, Config: cfg})
}
