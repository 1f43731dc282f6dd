// Command sortvis renders sorting algorithms as animated GIFs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortvis/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
