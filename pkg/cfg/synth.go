package cfg

import (
	"fmt"

	"github.com/BanisharifM/CFGs/pkg/omp"
	"github.com/BanisharifM/CFGs/pkg/pattern"
)

// Fill colors carried through to DOT output. Presentational only.
const (
	styleBoundary = "lightgray"
	styleParallel = "lightblue"
	styleLoop     = "yellow"
	styleTask     = "red"
	styleSync     = "lightgreen"
	stylePlain    = "white"
)

// Synthesize maps a pattern tag to its fixed graph template, enriching node
// labels with the originating directives where the construct set provides
// them. Topology is template-fixed per tag; only labels vary with the set.
// An unrecognized tag is a contract violation and the only error case.
func Synthesize(tag pattern.Tag, set *omp.ConstructSet) (*Graph, error) {
	if set == nil {
		set = &omp.ConstructSet{}
	}

	switch tag {
	case pattern.TagBasic:
		return basicGraph(), nil
	case pattern.TagParallelFor:
		return parallelForGraph(set), nil
	case pattern.TagTaskParallel:
		return taskParallelGraph(set), nil
	case pattern.TagSparseLU:
		return sparseLUGraph(set), nil
	}
	return nil, fmt.Errorf("unrecognized pattern tag %q", tag)
}

// basicGraph: entry -> sequential work -> exit. No parallel constructs.
func basicGraph() *Graph {
	b := newBuilder("Basic_CFG")
	b.node("BB_entry", "Entry\nFunction Start", RoleEntry, styleBoundary)
	b.node("BB_sequential", "BB_1\nSequential code\nComputation", RoleWork, stylePlain)
	b.node("BB_exit", "Exit\nFunction return", RoleExit, styleBoundary)
	b.chain("BB_entry", "BB_sequential", "BB_exit")
	return b.graph
}

// parallelForGraph: a parallel region wrapping a distributed loop. The loop
// body iterates via a back edge to the loop header and joins at the implicit
// barrier.
func parallelForGraph(set *omp.ConstructSet) *Graph {
	b := newBuilder("ParallelFor_CFG")
	b.node("BB_entry", "Entry\nFunction Start", RoleEntry, styleBoundary)
	b.parallelNode("BB_parallel_start",
		enrich("BB_1\nThread team creation", set.First(omp.CategoryParallelRegion)))
	b.node("BB_for_start",
		enrich("BB_2\nLoop distribution", set.First(omp.CategoryForLoop)),
		RoleWork, styleLoop)
	b.node("BB_loop_body", "BB_3\nLoop body\nComputation", RoleWork, stylePlain)
	b.node("BB_barrier", "BB_4\nImplicit barrier\nSynchronization", RoleSync, styleSync)
	b.parallelNode("BB_parallel_end", "BB_5\nParallel region end")
	b.node("BB_exit", "Exit\nFunction return", RoleExit, styleBoundary)

	b.chain("BB_entry", "BB_parallel_start", "BB_for_start", "BB_loop_body", "BB_barrier", "BB_parallel_end", "BB_exit")
	b.edge("BB_loop_body", "BB_for_start", EdgeLoopBack, "iterations")
	return b.graph
}

// taskParallelGraph: a parallel region creating tasks from a loop. One
// symbolic task-instance self-loop marks repeated instantiation regardless
// of how many task directives were extracted.
func taskParallelGraph(set *omp.ConstructSet) *Graph {
	b := newBuilder("TaskParallel_CFG")
	b.node("BB_entry", "Entry\nFunction Start", RoleEntry, styleBoundary)
	b.parallelNode("BB_parallel_start",
		enrich("BB_1\nThread team creation", set.First(omp.CategoryParallelRegion)))
	b.node("BB_for_start",
		enrich("BB_2\nParallel for loop", set.First(omp.CategoryForLoop)),
		RoleWork, styleLoop)
	b.node("BB_task_create",
		enrich("BB_3\nTask creation", set.First(omp.CategoryTask)),
		RoleWork, styleTask)
	b.node("BB_task_work", "BB_4\nTask computation\nWork execution", RoleWork, styleTask)
	b.node("BB_sync", "BB_5\nImplicit barrier\nSynchronization", RoleSync, styleSync)
	b.parallelNode("BB_parallel_end", "BB_6\nParallel region end")
	b.node("BB_exit", "Exit\nFunction return", RoleExit, styleBoundary)

	b.chain("BB_entry", "BB_parallel_start", "BB_for_start", "BB_task_create",
		"BB_task_work", "BB_sync", "BB_parallel_end", "BB_exit")
	b.edge("BB_task_create", "BB_task_create", EdgeTaskInstance, "multiple tasks")
	return b.graph
}

// sparseLUGraph: the SparseLU factorization shape. A k-loop inside one
// parallel region runs the lu0 single region and three task-spawning loops
// (fwd, bdiv, bmod), loops back, and exits the region when the loop
// condition fails.
func sparseLUGraph(set *omp.ConstructSet) *Graph {
	b := newBuilder("SparseLU_CFG")
	b.node("BB_entry", "Entry\nSparseLU Function", RoleEntry, styleBoundary)
	b.parallelNode("BB_parallel_start",
		enrich("BB_1\nThread team creation", set.First(omp.CategoryParallelRegion)))
	b.node("BB_k_loop", "BB_2\nfor (kk=0; kk<size; kk++)", RoleWork, stylePlain)
	b.node("BB_single_lu0",
		enrich("BB_3\nlu0() call", set.First(omp.CategorySingleRegion)),
		RoleWork, styleSync)
	b.node("BB_for1_start",
		enrich("BB_4\nj-loop start", nth(set.ForLoops, 0)),
		RoleWork, styleLoop)
	b.node("BB_fwd_task",
		enrich("BB_5\nfwd() task creation", nth(set.Tasks, 0)),
		RoleWork, styleTask)
	b.node("BB_for2_start",
		enrich("BB_6\ni-loop start", nth(set.ForLoops, 1)),
		RoleWork, styleLoop)
	b.node("BB_bdiv_task",
		enrich("BB_7\nbdiv() task creation", nth(set.Tasks, 1)),
		RoleWork, styleTask)
	b.node("BB_for3_start",
		enrich("BB_8\ni-loop for bmod", nth(set.ForLoops, 2)),
		RoleWork, styleLoop)
	b.node("BB_bmod_inner", "BB_9\nInner j-loop\nNULL check", RoleWork, stylePlain)
	b.node("BB_bmod_task",
		enrich("BB_10\nbmod() task creation", nth(set.Tasks, 2)),
		RoleWork, styleTask)
	b.node("BB_k_continue", "BB_11\nk-loop continue\nImplicit barrier", RoleSync, styleSync)
	b.parallelNode("BB_parallel_end", "BB_12\nParallel region end\nThread team join")
	b.node("BB_exit", "Exit\nFunction return", RoleExit, styleBoundary)

	b.chain("BB_entry", "BB_parallel_start", "BB_k_loop", "BB_single_lu0",
		"BB_for1_start", "BB_fwd_task", "BB_for2_start", "BB_bdiv_task",
		"BB_for3_start", "BB_bmod_inner", "BB_bmod_task", "BB_k_continue")
	b.edge("BB_k_continue", "BB_k_loop", EdgeLoopBack, "k++")
	b.edge("BB_k_loop", "BB_parallel_end", EdgeConditional, "k >= size")
	b.chain("BB_parallel_end", "BB_exit")

	b.edge("BB_fwd_task", "BB_fwd_task", EdgeTaskInstance, "task instances")
	b.edge("BB_bdiv_task", "BB_bdiv_task", EdgeTaskInstance, "task instances")
	b.edge("BB_bmod_task", "BB_bmod_task", EdgeTaskInstance, "task instances")
	return b.graph
}

// enrich appends the originating directive's line and pragma text to a
// template label so the node stays traceable to source.
func enrich(base string, c *omp.Construct) string {
	if c == nil {
		return base
	}
	label := fmt.Sprintf("%s\nline %d: %s", base, c.Line, c.Pragma)
	if c.Function != "" {
		label = fmt.Sprintf("%s\nin %s()", label, c.Function)
	}
	return label
}

func nth(group []omp.Construct, i int) *omp.Construct {
	if i >= len(group) {
		return nil
	}
	return &group[i]
}

type builder struct {
	graph *Graph
}

func newBuilder(name string) *builder {
	return &builder{graph: &Graph{Name: name}}
}

func (b *builder) node(id, label string, role NodeRole, style string) {
	b.graph.Nodes = append(b.graph.Nodes, Node{
		ID:    id,
		Label: label,
		Role:  role,
		Style: style,
	})
}

func (b *builder) parallelNode(id, label string) {
	b.graph.Nodes = append(b.graph.Nodes, Node{
		ID:       id,
		Label:    label,
		Role:     RoleRegionBoundary,
		Style:    styleParallel,
		Parallel: true,
	})
}

func (b *builder) edge(from, to string, kind EdgeKind, label string) {
	b.graph.Edges = append(b.graph.Edges, Edge{From: from, To: to, Kind: kind, Label: label})
}

// chain links consecutive ids with sequential edges.
func (b *builder) chain(ids ...string) {
	for i := 0; i+1 < len(ids); i++ {
		b.edge(ids[i], ids[i+1], EdgeSequential, "")
	}
}
