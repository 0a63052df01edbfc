// Package csource resolves which C function encloses each extracted
// directive. It is an optional enrichment pass: graph topology never depends
// on it, and an unparseable source simply yields no annotations.
package csource

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/BanisharifM/CFGs/pkg/omp"
)

// FunctionSpan is the line range of one C function definition.
type FunctionSpan struct {
	Name      string `json:"name"`
	StartLine int    `json:"start_line"` // 1-based, inclusive
	EndLine   int    `json:"end_line"`   // 1-based, inclusive
}

// Functions parses the source and returns every function definition's span
// in source order. Parse errors degrade to an empty result.
func Functions(content []byte) []FunctionSpan {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	tree := parser.Parse(nil, content)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var spans []FunctionSpan
	collectFunctions(tree.RootNode(), content, &spans)
	return spans
}

func collectFunctions(node *sitter.Node, content []byte, spans *[]FunctionSpan) {
	if node == nil {
		return
	}

	if node.Type() == "function_definition" {
		if name := functionName(node, content); name != "" {
			*spans = append(*spans, FunctionSpan{
				Name:      name,
				StartLine: int(node.StartPoint().Row) + 1,
				EndLine:   int(node.EndPoint().Row) + 1,
			})
		}
		// Nested function definitions do not occur in C; no recursion needed.
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectFunctions(node.Child(i), content, spans)
	}
}

// functionName digs the declared identifier out of a function_definition.
func functionName(fn *sitter.Node, content []byte) string {
	decl := childByType(fn, "function_declarator")
	if decl == nil {
		// Pointer-returning functions wrap the declarator once more.
		if ptr := childByType(fn, "pointer_declarator"); ptr != nil {
			decl = childByType(ptr, "function_declarator")
		}
	}
	scope := decl
	if scope == nil {
		scope = fn
	}

	ident := firstDescendant(scope, "identifier")
	if ident == nil {
		return ""
	}
	return ident.Content(content)
}

func childByType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}

func firstDescendant(node *sitter.Node, typ string) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.Type() == typ {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstDescendant(node.Child(i), typ); found != nil {
			return found
		}
	}
	return nil
}

// FunctionAt returns the name of the innermost span covering the line, or ""
// when no function encloses it.
func FunctionAt(spans []FunctionSpan, line int) string {
	name := ""
	best := -1
	for _, s := range spans {
		if line < s.StartLine || line > s.EndLine {
			continue
		}
		if best < 0 || s.EndLine-s.StartLine < best {
			best = s.EndLine - s.StartLine
			name = s.Name
		}
	}
	return name
}

// Annotate returns a copy of the construct set with each directive's
// enclosing function filled in. The input set is never mutated.
func Annotate(set *omp.ConstructSet, content []byte) *omp.ConstructSet {
	out := set.Clone()
	spans := Functions(content)
	if len(spans) == 0 {
		return out
	}

	for _, group := range [][]omp.Construct{
		out.ParallelRegions, out.Tasks, out.ForLoops,
		out.SingleRegions, out.Sections, out.SyncPoints,
	} {
		for i := range group {
			group[i].Function = FunctionAt(spans, group[i].Line)
		}
	}
	return out
}
