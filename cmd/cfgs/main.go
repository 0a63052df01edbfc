// Package main implements the cfgs CLI.
// It provides commands for extracting OpenMP constructs from C source,
// generating control-flow graphs, and validating them.
package main

import (
	"os"

	"github.com/BanisharifM/CFGs/cmd/cfgs/commands"
)

var (
	version   = "dev"
	buildTime = ""
)

func main() {
	commands.RootCmd.Flags().BoolP("version", "v", false, "Print version information")
	commands.RootCmd.SetVersionTemplate(`cfgs version {{.Version}}
`)
	commands.RootCmd.Version = version

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
