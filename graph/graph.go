package graph

import (
	"fmt"
	"strings"

	"github.com/d3flow/mindflow/model"
)

// Node is a vertex in the graph.
type Node struct {
	ID    string
	Label string
	Shape model.NodeShape
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
	Kind  model.EdgeKind
}

// Graph is a directed graph composed of nodes and edges. It is the common
// form every diagram type lowers to before graph export.
type Graph struct {
	Direction string
	Nodes     []*Node
	Edges     []*Edge
}

// Renderer renders a Graph into a specific output format.
type Renderer interface {
	Render(g *Graph) (string, error)
}

// FromMindmap lowers a mindmap hierarchy to a graph. Node IDs are assigned
// in depth-first order so repeated names stay distinct.
func FromMindmap(root *model.MindmapNode) *Graph {
	g := &Graph{Direction: "TD"}
	if root == nil {
		return g
	}
	var walk func(n *model.MindmapNode, parentID string)
	seq := 0
	walk = func(n *model.MindmapNode, parentID string) {
		id := fmt.Sprintf("n%d", seq)
		seq++
		g.Nodes = append(g.Nodes, &Node{ID: id, Label: n.Name, Shape: model.ShapeRound})
		if parentID != "" {
			g.Edges = append(g.Edges, &Edge{From: parentID, To: id, Kind: model.EdgeArrow})
		}
		for _, c := range n.Children {
			walk(c, id)
		}
	}
	walk(root, "")
	return g
}

// FromGantt lowers a schedule to a dependency graph: one node per task,
// one edge per dependency.
func FromGantt(chart *model.GanttChart) *Graph {
	g := &Graph{Direction: "LR"}
	if chart == nil {
		return g
	}
	ids := make(map[string]string, len(chart.Tasks))
	for i, t := range chart.Tasks {
		id := fmt.Sprintf("t%d", i)
		ids[t.Name] = id
		g.Nodes = append(g.Nodes, &Node{ID: id, Label: t.Name, Shape: model.ShapeRect})
	}
	for _, t := range chart.Tasks {
		for _, dep := range t.Dependencies {
			from, ok := ids[dep]
			if !ok {
				continue
			}
			g.Edges = append(g.Edges, &Edge{From: from, To: ids[t.Name], Kind: model.EdgeArrow})
		}
	}
	return g
}

// FromFlowchart lowers a parsed flowchart, preserving shapes, labels and
// edge kinds.
func FromFlowchart(fc *model.FlowchartGraph) *Graph {
	g := &Graph{Direction: "TD"}
	if fc == nil {
		return g
	}
	if fc.Direction != "" {
		g.Direction = fc.Direction
	}
	for _, n := range fc.Nodes {
		g.Nodes = append(g.Nodes, &Node{ID: n.ID, Label: n.Text, Shape: n.Shape})
	}
	for _, e := range fc.Edges {
		g.Edges = append(g.Edges, &Edge{From: e.Source, To: e.Target, Label: e.Label, Kind: e.Kind})
	}
	return g
}

// MermaidRenderer outputs Graphs in Mermaid flowchart syntax.
type MermaidRenderer struct{}

// Render renders the graph using Mermaid syntax.
func (r *MermaidRenderer) Render(g *Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", nil
	}
	dir := g.Direction
	if dir == "" {
		dir = "TD"
	}
	var sb strings.Builder
	sb.WriteString("graph " + dir + "\n")
	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("    %s\n", mermaidNode(node)))
	}
	for _, edge := range g.Edges {
		arrow := mermaidArrow(edge.Kind)
		if edge.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s %s|%s| %s\n", edge.From, arrow, edge.Label, edge.To))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", edge.From, arrow, edge.To))
		}
	}
	return sb.String(), nil
}

func mermaidNode(n *Node) string {
	switch n.Shape {
	case model.ShapeRound:
		return fmt.Sprintf("%s(%s)", n.ID, n.Label)
	case model.ShapeRhombus:
		return fmt.Sprintf("%s{%s}", n.ID, n.Label)
	case model.ShapeCircle:
		return fmt.Sprintf("%s((%s))", n.ID, n.Label)
	case model.ShapeStadium:
		return fmt.Sprintf("%s([%s])", n.ID, n.Label)
	case model.ShapeSubroutine:
		return fmt.Sprintf("%s[[%s]]", n.ID, n.Label)
	case model.ShapeParallelogram:
		return fmt.Sprintf("%s[/%s/]", n.ID, n.Label)
	default:
		return fmt.Sprintf("%s[%s]", n.ID, n.Label)
	}
}

func mermaidArrow(k model.EdgeKind) string {
	switch k {
	case model.EdgeLine:
		return "---"
	case model.EdgeDotted:
		return "-.-"
	case model.EdgeDottedArrow:
		return "-.->"
	case model.EdgeThick:
		return "==>"
	case model.EdgeThickLine:
		return "==="
	default:
		return "-->"
	}
}

// DOTRenderer outputs Graphs in Graphviz DOT syntax.
type DOTRenderer struct{}

// Render renders the graph as a DOT digraph.
func (r *DOTRenderer) Render(g *Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	if g.Direction == "LR" || g.Direction == "RL" {
		sb.WriteString("    rankdir=LR;\n")
	}
	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("    %s [label=%q, shape=%s];\n", node.ID, node.Label, dotShape(node.Shape)))
	}
	for _, edge := range g.Edges {
		attrs := dotEdgeAttrs(edge)
		if attrs != "" {
			sb.WriteString(fmt.Sprintf("    %s -> %s [%s];\n", edge.From, edge.To, attrs))
		} else {
			sb.WriteString(fmt.Sprintf("    %s -> %s;\n", edge.From, edge.To))
		}
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

func dotShape(s model.NodeShape) string {
	switch s {
	case model.ShapeRound, model.ShapeStadium:
		return "oval"
	case model.ShapeRhombus:
		return "diamond"
	case model.ShapeCircle:
		return "circle"
	case model.ShapeParallelogram:
		return "parallelogram"
	default:
		return "box"
	}
}

func dotEdgeAttrs(e *Edge) string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	switch e.Kind {
	case model.EdgeDotted, model.EdgeDottedArrow:
		attrs = append(attrs, "style=dashed")
	case model.EdgeThick, model.EdgeThickLine:
		attrs = append(attrs, "penwidth=2")
	}
	switch e.Kind {
	case model.EdgeLine, model.EdgeDotted, model.EdgeThickLine:
		attrs = append(attrs, "dir=none")
	}
	return strings.Join(attrs, ", ")
}

// ExportMermaid lowers and renders a diagram source in one call.
func ExportMermaid(g *Graph) (string, error) {
	renderer := &MermaidRenderer{}
	return renderer.Render(g)
}

// ExportDOT lowers and renders a diagram source to DOT in one call.
func ExportDOT(g *Graph) (string, error) {
	renderer := &DOTRenderer{}
	return renderer.Render(g)
}
