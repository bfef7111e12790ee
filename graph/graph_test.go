package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/d3flow/mindflow/model"
	"github.com/stretchr/testify/require"
)

func sampleMindmap() *model.MindmapNode {
	root := &model.MindmapNode{Name: "Project"}
	planning := root.AddChild("Planning")
	planning.AddChild("Requirements")
	root.AddChild("Development")
	return root
}

func TestFromMindmap(t *testing.T) {
	g := FromMindmap(sampleMindmap())
	require.Len(t, g.Nodes, 4)
	require.Len(t, g.Edges, 3)
	require.Equal(t, "Project", g.Nodes[0].Label)
	require.Equal(t, g.Nodes[0].ID, g.Edges[0].From)
}

func TestFromMindmap_DuplicateNamesStayDistinct(t *testing.T) {
	root := &model.MindmapNode{Name: "Root"}
	root.Children = []*model.MindmapNode{
		{Name: "Notes", Children: []*model.MindmapNode{{Name: "Draft"}}},
		{Name: "Archive", Children: []*model.MindmapNode{{Name: "Draft"}}},
	}
	g := FromMindmap(root)
	require.Len(t, g.Nodes, 5)
	ids := map[string]bool{}
	for _, n := range g.Nodes {
		require.False(t, ids[n.ID], "duplicate ID %s", n.ID)
		ids[n.ID] = true
	}
}

func TestFromGantt(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	chart := &model.GanttChart{
		Tasks: []model.GanttTask{
			{Name: "Design", Start: day(1), End: day(5)},
			{Name: "Build", Start: day(6), End: day(10), Dependencies: []string{"Design"}},
			{Name: "Test", Start: day(11), End: day(12), Dependencies: []string{"Build", "Missing"}},
		},
	}
	g := FromGantt(chart)
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2, "unknown dependencies are dropped")
	require.Equal(t, "LR", g.Direction)
}

func TestFromFlowchart(t *testing.T) {
	fc := &model.FlowchartGraph{
		Direction: "LR",
		Nodes: []model.FlowNode{
			{ID: "A", Text: "Start", Shape: model.ShapeStadium},
			{ID: "B", Text: "Done", Shape: model.ShapeCircle},
		},
		Edges: []model.FlowEdge{{Source: "A", Target: "B", Label: "go", Kind: model.EdgeArrow}},
	}
	g := FromFlowchart(fc)
	require.Equal(t, "LR", g.Direction)
	require.Len(t, g.Nodes, 2)
	require.Equal(t, model.ShapeStadium, g.Nodes[0].Shape)
}

func TestMermaidRenderer(t *testing.T) {
	g := FromMindmap(sampleMindmap())
	out, err := ExportMermaid(g)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "graph TD\n"))
	require.Contains(t, out, "(Project)")
	require.Contains(t, out, "-->")
}

func TestMermaidRenderer_ShapesAndKinds(t *testing.T) {
	g := &Graph{
		Nodes: []*Node{
			{ID: "a", Label: "A", Shape: model.ShapeRhombus},
			{ID: "b", Label: "B", Shape: model.ShapeSubroutine},
		},
		Edges: []*Edge{{From: "a", To: "b", Label: "yes", Kind: model.EdgeDottedArrow}},
	}
	out, err := ExportMermaid(g)
	require.NoError(t, err)
	require.Contains(t, out, "a{A}")
	require.Contains(t, out, "b[[B]]")
	require.Contains(t, out, "a -.->|yes| b")
}

func TestMermaidRenderer_Empty(t *testing.T) {
	out, err := ExportMermaid(&Graph{})
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestDOTRenderer(t *testing.T) {
	g := &Graph{
		Direction: "LR",
		Nodes: []*Node{
			{ID: "a", Label: "Start", Shape: model.ShapeCircle},
			{ID: "b", Label: "End", Shape: model.ShapeRect},
		},
		Edges: []*Edge{{From: "a", To: "b", Kind: model.EdgeDotted}},
	}
	out, err := ExportDOT(g)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "digraph G {\n"))
	require.Contains(t, out, "rankdir=LR;")
	require.Contains(t, out, `a [label="Start", shape=circle];`)
	require.Contains(t, out, "a -> b [style=dashed, dir=none];")
	require.True(t, strings.HasSuffix(out, "}\n"))
}
