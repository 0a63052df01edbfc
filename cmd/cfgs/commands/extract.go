package commands

import (
	"encoding/json"
	"fmt"

	"github.com/BanisharifM/CFGs/pkg/csource"
	"github.com/BanisharifM/CFGs/pkg/omp"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Show the OpenMP constructs detected in a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}

		set := omp.Extract(source)
		if functions, _ := cmd.Flags().GetBool("functions"); functions {
			set = csource.Annotate(set, []byte(source))
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, err := json.MarshalIndent(set, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if set.Empty() {
			fmt.Println("No OpenMP constructs found")
			return nil
		}

		fmt.Printf("Detected %d OpenMP constructs:\n", set.Len())
		for _, c := range set.All() {
			fmt.Printf("  line %4d  %-16s %s", c.Line, c.Category, c.Pragma)
			if c.Function != "" {
				fmt.Printf("  [in %s]", c.Function)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	extractCmd.Flags().Bool("functions", false, "Annotate constructs with their enclosing C function")
	RootCmd.AddCommand(extractCmd)
}
