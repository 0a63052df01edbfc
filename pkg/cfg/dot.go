package cfg

import (
	"fmt"
	"regexp"
	"strings"
)

// DOT renders the graph in Graphviz DOT notation. Output is deterministic:
// nodes in declaration order, then edges in declaration order. Node roles
// and edge kinds ride along in class attributes so the textual form can be
// parsed back without loss.
func (g *Graph) DOT() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "digraph %q {\n", g.Name)
	sb.WriteString("    rankdir=TB;\n")
	sb.WriteString("    node [shape=box, style=filled];\n\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "    %s [label=\"%s\"", n.ID, escapeLabel(n.Label))
		if n.Style != "" {
			fmt.Fprintf(&sb, ", fillcolor=%s", n.Style)
		}
		fmt.Fprintf(&sb, ", class=%q", nodeClass(n))
		sb.WriteString("];\n")
	}

	sb.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&sb, "    %s -> %s [", e.From, e.To)
		if e.Label != "" {
			fmt.Fprintf(&sb, "label=\"%s\", ", escapeLabel(e.Label))
		}
		switch e.Kind {
		case EdgeLoopBack:
			sb.WriteString("style=dashed, ")
		case EdgeTaskInstance:
			sb.WriteString("style=dashed, color=red, ")
		}
		fmt.Fprintf(&sb, "class=%q];\n", string(e.Kind))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func nodeClass(n Node) string {
	cls := string(n.Role)
	if n.Parallel {
		cls += " parallel"
	}
	return cls
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func unescapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.ReplaceAll(s, `\"`, `"`)
}

var (
	headerRe = regexp.MustCompile(`^digraph\s+"?([^"{]*?)"?\s*\{$`)
	nodeRe   = regexp.MustCompile(`^(\w+)\s*\[(.*)\];?$`)
	edgeRe   = regexp.MustCompile(`^(\w+)\s*->\s*(\w+)\s*(?:\[(.*)\])?;?$`)
)

// ParseDOT reads a graph previously serialized with DOT. It understands the
// subset of the grammar this package emits: one digraph with a quoted name,
// per-node declarations, and per-edge declarations. It exists for round-trip
// verification and for re-checking graphs already written to disk.
func ParseDOT(text string) (*Graph, error) {
	g := &Graph{}
	sawHeader := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == "}" || strings.HasPrefix(line, "//") {
			continue
		}

		if !sawHeader {
			m := headerRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("malformed digraph header: %q", line)
			}
			g.Name = strings.TrimSpace(m[1])
			sawHeader = true
			continue
		}

		if m := edgeRe.FindStringSubmatch(line); m != nil {
			attrs := parseAttrs(m[3])
			kind := EdgeKind(attrs["class"])
			if kind == "" {
				kind = EdgeSequential
			}
			g.Edges = append(g.Edges, Edge{
				From:  m[1],
				To:    m[2],
				Kind:  kind,
				Label: unescapeLabel(attrs["label"]),
			})
			continue
		}

		if m := nodeRe.FindStringSubmatch(line); m != nil {
			id := m[1]
			// Graphviz default statements, not node declarations.
			if id == "node" || id == "edge" || id == "graph" {
				continue
			}
			attrs := parseAttrs(m[2])
			role, parallel := parseNodeClass(attrs["class"])
			g.Nodes = append(g.Nodes, Node{
				ID:       id,
				Label:    unescapeLabel(attrs["label"]),
				Role:     role,
				Style:    attrs["fillcolor"],
				Parallel: parallel,
			})
			continue
		}

		// Attribute statements like rankdir=TB are ignored.
	}

	if !sawHeader {
		return nil, fmt.Errorf("no digraph header found")
	}
	return g, nil
}

func parseNodeClass(cls string) (NodeRole, bool) {
	fields := strings.Fields(cls)
	role := RolePlain
	parallel := false
	for _, f := range fields {
		if f == "parallel" {
			parallel = true
			continue
		}
		role = NodeRole(f)
	}
	return role, parallel
}

// parseAttrs splits a DOT attribute list into key/value pairs, respecting
// quoted values that may contain commas.
func parseAttrs(s string) map[string]string {
	attrs := map[string]string{}

	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == ',') {
			i++
		}
		start := i
		for i < len(s) && s[i] != '=' {
			i++
		}
		if i >= len(s) {
			break
		}
		key := strings.TrimSpace(s[start:i])
		i++ // consume '='

		var value string
		if i < len(s) && s[i] == '"' {
			i++
			vstart := i
			for i < len(s) {
				if s[i] == '\\' {
					i += 2
					continue
				}
				if s[i] == '"' {
					break
				}
				i++
			}
			if i > len(s) {
				i = len(s)
			}
			value = s[vstart:i]
			if i < len(s) {
				i++ // consume closing quote
			}
		} else {
			vstart := i
			for i < len(s) && s[i] != ',' {
				i++
			}
			value = strings.TrimSpace(s[vstart:i])
		}
		if key != "" {
			attrs[key] = value
		}
	}

	return attrs
}
