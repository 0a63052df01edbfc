package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BanisharifM/CFGs/internal/config"
	"github.com/BanisharifM/CFGs/pkg/render"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a control flow graph from an OpenMP C file",
	Long: `Runs the full pipeline on one source file: directive extraction,
pattern classification, graph synthesis, and structural validation.
Writes <name>_cfg.dot into the output directory and optionally renders
a PNG when graphviz is available.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgFile := args[0]

		conf, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if out, _ := cmd.Flags().GetString("output"); out != "" {
			conf.OutputDir = out
		}
		if cmd.Flags().Changed("render") {
			conf.Render, _ = cmd.Flags().GetBool("render")
		}

		source, err := readSource(cfgFile)
		if err != nil {
			return err
		}

		res, err := runPipeline(source)
		if err != nil {
			return err
		}

		dotPath, err := writeDOT(res.Graph, conf.OutputDir, cfgFile)
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
		} else {
			fmt.Printf("Pattern: %s\n", res.Tag)
			fmt.Printf("Graph: %s (%d nodes, %d edges)\n",
				res.Graph.Name, len(res.Graph.Nodes), len(res.Graph.Edges))
			fmt.Println("Validation:")
			printChecks(res.Report.Checks())
			fmt.Printf("DOT file: %s\n", dotPath)
		}

		if conf.Render {
			renderer := render.NewGraphviz(conf.RenderBinary)
			pngPath := dotPath[:len(dotPath)-len(".dot")] + ".png"
			err := renderer.Render(context.Background(), dotPath, pngPath)
			switch {
			case errors.Is(err, render.ErrUnavailable):
				fmt.Println("PNG rendering skipped: graphviz not available")
			case err != nil:
				return err
			default:
				fmt.Printf("PNG file: %s\n", pngPath)
			}
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "Output directory (overrides config)")
	generateCmd.Flags().Bool("render", false, "Render a PNG via graphviz")
	generateCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(generateCmd)
}
