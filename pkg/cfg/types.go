// Package cfg defines the synthesized control-flow graph model for OpenMP
// programs: typed nodes and edges, template-based synthesis per recognized
// pattern, DOT serialization, and structural validation.
package cfg

// NodeRole represents the structural role of a graph node.
type NodeRole string

const (
	RoleEntry          NodeRole = "entry"           // program entry point
	RoleExit           NodeRole = "exit"            // program exit point
	RoleRegionBoundary NodeRole = "region_boundary" // parallel region start/end
	RoleWork           NodeRole = "work"            // computation block
	RoleSync           NodeRole = "sync"            // barrier / implicit sync
	RolePlain          NodeRole = "plain"           // anything else
)

// EdgeKind represents the type of a control-flow edge.
type EdgeKind string

const (
	EdgeSequential   EdgeKind = "sequential"    // ordinary fallthrough
	EdgeLoopBack     EdgeKind = "loop_back"     // back edge to an earlier node
	EdgeTaskInstance EdgeKind = "task_instance" // symbolic repeated task creation
	EdgeConditional  EdgeKind = "conditional"   // guarded transition
)

// Node is a basic block in the synthesized graph. Style is presentational
// only (DOT fill color) and carries no semantic weight.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Role     NodeRole `json:"role"`
	Style    string   `json:"style,omitempty"`
	Parallel bool     `json:"parallel,omitempty"` // region boundary of a parallel region
}

// Edge is a directed edge between two declared nodes. A loop_back edge's
// target must appear earlier in node declaration order than its source.
type Edge struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Kind  EdgeKind `json:"kind"`
	Label string   `json:"label,omitempty"`
}

// Graph is an immutable synthesized control-flow graph. Nodes are kept in
// declaration order; exactly one node has RoleEntry and at least one has
// RoleExit.
type Graph struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// EntryNodes returns all nodes with RoleEntry.
func (g *Graph) EntryNodes() []Node {
	return g.nodesByRole(RoleEntry)
}

// ExitNodes returns all nodes with RoleExit.
func (g *Graph) ExitNodes() []Node {
	return g.nodesByRole(RoleExit)
}

func (g *Graph) nodesByRole(role NodeRole) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Role == role {
			out = append(out, n)
		}
	}
	return out
}

// Reachable reports whether to is reachable from the node with id from by
// following directed edges.
func (g *Graph) Reachable(from, to string) bool {
	if from == to {
		return true
	}

	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}

	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
