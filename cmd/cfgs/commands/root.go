// Package commands provides the CLI commands for the cfgs tool.
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cfgs",
	Short: "cfgs - Control flow graphs for OpenMP benchmarks",
	Long: `cfgs extracts OpenMP directives from C source files, classifies the
parallel pattern, and synthesizes a control flow graph in Graphviz DOT
notation.

Commands:
  generate    Run the full pipeline on one source file
  extract     Show the detected OpenMP constructs
  prompt      Print the CFG-generation prompt for a source file
  batch       Process every OpenMP file under a benchmark tree
  check       Re-validate a previously generated DOT file
  init        Initialize cfgs configuration interactively

Use "cfgs [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}
