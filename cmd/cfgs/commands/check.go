package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BanisharifM/CFGs/pkg/cfg"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <dotfile>",
	Short: "Re-validate a previously generated DOT file",
	Long: `Parses a DOT file written by generate or batch and re-runs the
graph-level structural checks: entry/exit shape, edge connectivity,
and syntax sanity. Construct-dependent checks need the original
source and are not re-run here.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading DOT file: %w", err)
		}

		graph, err := cfg.ParseDOT(string(data))
		if err != nil {
			return fmt.Errorf("parsing DOT file: %w", err)
		}

		report := cfg.Validate(graph, nil)
		checks := map[string]bool{
			"has_entry_exit":    report.HasEntryExit,
			"edge_connectivity": report.EdgeConnectivity,
			"valid_dot_syntax":  report.ValidDotSyntax,
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			out, err := json.MarshalIndent(map[string]interface{}{
				"graph":  graph.Name,
				"nodes":  len(graph.Nodes),
				"edges":  len(graph.Edges),
				"checks": checks,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("Graph: %s (%d nodes, %d edges)\n", graph.Name, len(graph.Nodes), len(graph.Edges))
		printChecks(checks)

		for name, ok := range checks {
			if !ok {
				return fmt.Errorf("check failed: %s", name)
			}
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	RootCmd.AddCommand(checkCmd)
}
