// Command instrgeom is a small demo shell around the instrument geometry
// library: it builds a sample instrument, flattens it, and prints
// derived quantities. It is not part of the core library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var n int
var spacing float64

var rootCmd = &cobra.Command{
	Use:   "instrgeom",
	Short: "Inspect and manipulate a sample instrument geometry",
	Long: `instrgeom builds a small square-detector-array instrument, flattens
it, and lets you inspect or manipulate it through the describe, move,
rotate, and purge subcommands.`,
}

// Execute runs the root command, exiting the process with a nonzero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().IntVar(&n, "n", 3, "detector grid side length")
	rootCmd.PersistentFlags().Float64Var(&spacing, "spacing", 0.1, "detector grid spacing, in meters")

	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(purgeCmd)
}

func main() {
	Execute()
}
