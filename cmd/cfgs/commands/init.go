package commands

import (
	"fmt"
	"strconv"

	"github.com/BanisharifM/CFGs/internal/config"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cfgs configuration interactively",
	Long: `Guides you through setting up cfgs configuration step by step.
Creates a config file with the output directory, target hardware,
and rendering settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	conf := config.DefaultConfig()

	outputDir := conf.OutputDir
	cores := strconv.Itoa(conf.Cores)
	arch := conf.Arch
	memory := conf.Memory
	renderPNG := conf.Render

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Where generated DOT and PNG files are written").
				Placeholder("output").
				Value(&outputDir),
			huh.NewInput().
				Title("Number of cores").
				Description("Target hardware core count for prompts").
				Placeholder("8").
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("enter a positive integer")
					}
					return nil
				}).
				Value(&cores),
			huh.NewSelect[string]().
				Title("Target architecture").
				Options(
					huh.NewOption("x86_64", "x86_64"),
					huh.NewOption("aarch64", "aarch64"),
					huh.NewOption("ppc64le", "ppc64le"),
				).
				Value(&arch),
			huh.NewInput().
				Title("Memory").
				Placeholder("16GB").
				Value(&memory),
			huh.NewConfirm().
				Title("Render PNGs with graphviz when available?").
				Value(&renderPNG),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	conf.OutputDir = outputDir
	conf.Cores, _ = strconv.Atoi(cores)
	conf.Arch = arch
	conf.Memory = memory
	conf.Render = renderPNG

	if err := conf.Validate(); err != nil {
		return err
	}

	path := config.DefaultPath()
	if err := conf.Save(path); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", path)
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
