// Package prompt assembles the generative-model prompt for CFG creation.
// The model call itself lives outside this repository; only the textual
// prompt is built here, from the detected constructs, the raw source, and
// the hardware description.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BanisharifM/CFGs/pkg/hwspec"
	"github.com/BanisharifM/CFGs/pkg/omp"
)

// Build returns the full CFG-generation prompt for one source file.
func Build(source string, set *omp.ConstructSet, hw hwspec.Spec) (string, error) {
	constructs, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling constructs: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are an expert in parallel programming and control flow analysis.\n")
	sb.WriteString("Generate a Control Flow Graph (CFG) for the following OpenMP C code.\n\n")

	sb.WriteString("DETECTED OPENMP CONSTRUCTS:\n")
	sb.Write(constructs)
	sb.WriteString("\n\n")

	sb.WriteString("SOURCE CODE:\n```c\n")
	sb.WriteString(source)
	if !strings.HasSuffix(source, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n\n")

	sb.WriteString("HARDWARE SPECIFICATIONS:\n")
	fmt.Fprintf(&sb, "- Cores: %d\n", hw.Cores)
	fmt.Fprintf(&sb, "- Architecture: %s\n", hw.Arch)
	fmt.Fprintf(&sb, "- Memory: %s\n", hw.Memory)
	sb.WriteString("\n")

	sb.WriteString(`REQUIREMENTS:
1. Create nodes for each basic block
2. Show control flow edges between blocks
3. Annotate parallel regions and task creation points
4. Mark synchronization points (barriers, taskwait)
5. Distinguish between tied and untied tasks
6. Show loop structures and iterations

OUTPUT FORMAT:
Provide the CFG in Graphviz DOT notation with:
- Nodes representing basic blocks (BB_X format)
- Edges showing control flow transitions
- Color coding: lightblue for parallel regions, red for tasks, lightgreen for sync points, yellow for parallel for loops
- Labels indicating OpenMP construct types
- Clear entry and exit points

Generate the complete DOT graph now:
`)

	return sb.String(), nil
}
