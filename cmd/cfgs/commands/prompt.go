package commands

import (
	"fmt"

	"github.com/BanisharifM/CFGs/internal/config"
	"github.com/BanisharifM/CFGs/pkg/csource"
	"github.com/BanisharifM/CFGs/pkg/hwspec"
	"github.com/BanisharifM/CFGs/pkg/omp"
	"github.com/BanisharifM/CFGs/pkg/prompt"
	"github.com/spf13/cobra"
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt <file>",
	Short: "Print the CFG-generation prompt for a source file",
	Long: `Assembles the prompt that would be sent to a generative model:
detected constructs as JSON, the source code, and the hardware
description. The model call itself is outside this tool.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}

		hw, err := resolveHardware(cmd)
		if err != nil {
			return err
		}

		set := csource.Annotate(omp.Extract(source), []byte(source))
		out, err := prompt.Build(source, set, hw)
		if err != nil {
			return err
		}

		fmt.Print(out)
		return nil
	},
}

// resolveHardware builds the hardware spec from (highest priority first)
// command flags, the --hardware JSON file, config values, and defaults.
func resolveHardware(cmd *cobra.Command) (hwspec.Spec, error) {
	hw := hwspec.Default()

	if conf, err := config.Load(); err == nil {
		hw.Cores = conf.Cores
		hw.Arch = conf.Arch
		hw.Memory = conf.Memory
		if conf.HardwareFile != "" {
			loaded, err := hwspec.Load(conf.HardwareFile)
			if err != nil {
				return hw, err
			}
			hw = loaded
		}
	}

	if path, _ := cmd.Flags().GetString("hardware"); path != "" {
		loaded, err := hwspec.Load(path)
		if err != nil {
			return hw, err
		}
		hw = loaded
	}
	if cmd.Flags().Changed("cores") {
		hw.Cores, _ = cmd.Flags().GetInt("cores")
	}
	if cmd.Flags().Changed("arch") {
		hw.Arch, _ = cmd.Flags().GetString("arch")
	}
	if cmd.Flags().Changed("memory") {
		hw.Memory, _ = cmd.Flags().GetString("memory")
	}

	return hw, nil
}

func init() {
	promptCmd.Flags().String("hardware", "", "Hardware description JSON file")
	promptCmd.Flags().Int("cores", 8, "Number of cores")
	promptCmd.Flags().String("arch", "x86_64", "Target architecture")
	promptCmd.Flags().String("memory", "16GB", "Memory size")
	RootCmd.AddCommand(promptCmd)
}
