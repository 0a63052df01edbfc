package cfg

import (
	"strings"

	"github.com/BanisharifM/CFGs/pkg/omp"
)

// Report holds the outcome of the structural checks run against a
// synthesized graph. A failed check is data, never an error.
type Report struct {
	HasEntryExit            bool `json:"has_entry_exit"`
	ParallelRegionsDetected bool `json:"parallel_regions_detected"`
	TasksDetected           bool `json:"tasks_detected"`
	SyncDetected            bool `json:"sync_points_detected"`
	ValidDotSyntax          bool `json:"valid_dot_syntax"`
	EdgeConnectivity        bool `json:"edge_connectivity"`
}

// Checks returns the report as a name-to-outcome map.
func (r *Report) Checks() map[string]bool {
	return map[string]bool{
		"has_entry_exit":            r.HasEntryExit,
		"parallel_regions_detected": r.ParallelRegionsDetected,
		"tasks_detected":            r.TasksDetected,
		"sync_points_detected":      r.SyncDetected,
		"valid_dot_syntax":          r.ValidDotSyntax,
		"edge_connectivity":         r.EdgeConnectivity,
	}
}

// AllPassed reports whether every check succeeded.
func (r *Report) AllPassed() bool {
	for _, ok := range r.Checks() {
		if !ok {
			return false
		}
	}
	return true
}

// Validate inspects a synthesized graph against the construct set it was
// built from. It is a pure read-only inspection: the graph is never mutated
// and no check can raise.
func Validate(g *Graph, set *omp.ConstructSet) *Report {
	if set == nil {
		set = &omp.ConstructSet{}
	}

	r := &Report{}
	r.HasEntryExit = checkEntryExit(g)
	r.ParallelRegionsDetected = len(set.ParallelRegions) > 0 && hasParallelBoundary(g)
	r.TasksDetected = len(set.Tasks) > 0 && hasTaskMarker(g)
	r.SyncDetected = checkSync(g, set)
	r.ValidDotSyntax = checkDotSyntax(g.DOT())
	r.EdgeConnectivity = checkEdgeConnectivity(g)
	return r
}

// checkEntryExit requires exactly one entry node, at least one exit node,
// and a directed path from the entry to some exit.
func checkEntryExit(g *Graph) bool {
	entries := g.EntryNodes()
	exits := g.ExitNodes()
	if len(entries) != 1 || len(exits) == 0 {
		return false
	}
	for _, ex := range exits {
		if g.Reachable(entries[0].ID, ex.ID) {
			return true
		}
	}
	return false
}

func hasParallelBoundary(g *Graph) bool {
	for _, n := range g.Nodes {
		if n.Role == RoleRegionBoundary && n.Parallel {
			return true
		}
	}
	return false
}

// hasTaskMarker accepts either a task-instance edge or a task-labeled work
// node as evidence that tasks appear in the graph.
func hasTaskMarker(g *Graph) bool {
	for _, e := range g.Edges {
		if e.Kind == EdgeTaskInstance {
			return true
		}
	}
	for _, n := range g.Nodes {
		if n.Role == RoleWork && strings.Contains(strings.ToLower(n.Label), "task") {
			return true
		}
	}
	return false
}

// checkSync is trivially true when no sync constructs were extracted:
// absence of the requirement is not a failure.
func checkSync(g *Graph, set *omp.ConstructSet) bool {
	if len(set.SyncPoints) == 0 {
		return true
	}
	for _, n := range g.Nodes {
		if n.Role == RoleSync {
			return true
		}
	}
	return false
}

// checkDotSyntax is a format-level sanity check on the serialized graph:
// a well-formed header and balanced structural delimiters.
func checkDotSyntax(dot string) bool {
	if !strings.HasPrefix(strings.TrimSpace(dot), "digraph") {
		return false
	}
	return strings.Count(dot, "{") == strings.Count(dot, "}")
}

func checkEdgeConnectivity(g *Graph) bool {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.From] || !ids[e.To] {
			return false
		}
	}
	return true
}
