package parser

import (
	"testing"

	"github.com/d3flow/mindflow/model"
	"github.com/stretchr/testify/require"
)

func TestParseFlowchart_ShapesAndEdges(t *testing.T) {
	src := `flowchart TD
    A[Start] --> B{Decision}
    B -->|Yes| C(Process)
    B -->|No| D((End))
    E([Queue]) --> F[[Subroutine]]
    F --> G[/Input/]
    G --> H[\Output\]
`
	g, err := ParseFlowchart(src)
	require.NoError(t, err)
	require.Equal(t, "flowchart", g.Kind)
	require.Equal(t, "TD", g.Direction)
	require.Len(t, g.Nodes, 8)
	require.Len(t, g.Edges, 6)

	shapes := map[string]model.NodeShape{}
	texts := map[string]string{}
	for _, n := range g.Nodes {
		shapes[n.ID] = n.Shape
		texts[n.ID] = n.Text
	}
	require.Equal(t, model.ShapeRect, shapes["A"])
	require.Equal(t, model.ShapeRhombus, shapes["B"])
	require.Equal(t, model.ShapeRound, shapes["C"])
	require.Equal(t, model.ShapeCircle, shapes["D"])
	require.Equal(t, model.ShapeStadium, shapes["E"])
	require.Equal(t, model.ShapeSubroutine, shapes["F"])
	require.Equal(t, model.ShapeParallelogram, shapes["G"])
	require.Equal(t, model.ShapeRhombus, shapes["H"])
	require.Equal(t, "Start", texts["A"])
	require.Equal(t, "End", texts["D"])
	require.Equal(t, "Output", texts["H"])

	require.Equal(t, "Yes", g.Edges[1].Label)
	require.Equal(t, "No", g.Edges[2].Label)
	require.Equal(t, "B", g.Edges[1].Source)
	require.Equal(t, "C", g.Edges[1].Target)
}

func TestParseFlowchart_ArrowKinds(t *testing.T) {
	src := `graph LR
    A --> B
    B --- C
    C -.-> D
    D -.- E
    E ==> F
    F === G
`
	g, err := ParseFlowchart(src)
	require.NoError(t, err)
	require.Equal(t, "graph", g.Kind)
	require.Equal(t, "LR", g.Direction)
	require.Len(t, g.Edges, 6)

	kinds := []model.EdgeKind{
		model.EdgeArrow, model.EdgeLine, model.EdgeDottedArrow,
		model.EdgeDotted, model.EdgeThick, model.EdgeThickLine,
	}
	for i, want := range kinds {
		require.Equal(t, want, g.Edges[i].Kind, "edge %d", i)
	}
}

func TestParseFlowchart_BareReferenceKeepsDefinition(t *testing.T) {
	src := `flowchart TD
    A[Labeled] --> B
    B --> A
`
	g, err := ParseFlowchart(src)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	require.Equal(t, "Labeled", g.Nodes[0].Text)
	require.Equal(t, "B", g.Nodes[1].Text)
}

func TestParseFlowchart_LateDefinitionUpgradesReference(t *testing.T) {
	src := `flowchart TD
    A --> B
    B{Choice}
`
	g, err := ParseFlowchart(src)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	require.Equal(t, "B", g.Nodes[1].ID)
	require.Equal(t, "Choice", g.Nodes[1].Text)
	require.Equal(t, model.ShapeRhombus, g.Nodes[1].Shape)
}

func TestParseFlowchart_CommentsAndSubgraphsSkipped(t *testing.T) {
	src := `flowchart TD
    %% this is a comment
    subgraph cluster
    A --> B
    end
`
	g, err := ParseFlowchart(src)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	require.Equal(t, 1, g.ParsedLines)
}

func TestParseFlowchart_HeaderVariants(t *testing.T) {
	cases := []struct {
		header    string
		kind      string
		direction string
	}{
		{"flowchart", "flowchart", "TD"},
		{"graph", "graph", "TD"},
		{"Flowchart TD", "flowchart", "TD"},
		{"GRAPH lr", "graph", "LR"},
	}
	for _, c := range cases {
		g, err := ParseFlowchart(c.header + "\n    A --> B\n")
		require.NoError(t, err, "header %q", c.header)
		require.Equal(t, c.kind, g.Kind, "header %q", c.header)
		require.Equal(t, c.direction, g.Direction, "header %q", c.header)
		require.Len(t, g.Edges, 1, "header %q", c.header)
	}
}

func TestParseFlowchart_UnknownDirectionFallsBack(t *testing.T) {
	g, err := ParseFlowchart("flowchart XX\n A --> B\n")
	require.NoError(t, err)
	require.Equal(t, "TD", g.Direction)
}

func TestParseFlowchart_MissingHeader(t *testing.T) {
	_, err := ParseFlowchart("A --> B\n")
	require.Error(t, err)
	require.Contains(t, err.Error(), "first line")
}

func TestParseFlowchart_Empty(t *testing.T) {
	_, err := ParseFlowchart("")
	require.ErrorIs(t, err, ErrEmptySource)
}
