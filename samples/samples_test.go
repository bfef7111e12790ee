package samples

import (
	"testing"
	"time"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/parser"
	"github.com/stretchr/testify/require"
)

func TestSamplesParse(t *testing.T) {
	for _, typ := range model.AllDiagramTypes() {
		src := Sample(typ)
		require.NotEmpty(t, src, "sample for %s", typ)
		res, err := parser.ValidateSource(typ, src)
		require.NoError(t, err, "sample for %s", typ)
		require.True(t, res.Valid)
		require.Greater(t, res.NodeCount, 0)
	}
}

func TestSample_UnknownType(t *testing.T) {
	require.Empty(t, Sample(model.DiagramType("sequence")))
}

func TestMindmapTemplate(t *testing.T) {
	root, err := parser.ParseMindmap(MindmapTemplate("Launch"))
	require.NoError(t, err)
	require.Equal(t, "Launch", root.Name)
	require.Len(t, root.Children, 3)
}

func TestGanttTemplate(t *testing.T) {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	chart, err := parser.ParseGantt(GanttTemplate(start, 12))
	require.NoError(t, err)
	require.Equal(t, 6, chart.TotalTasks())
	require.Equal(t, start, chart.StartDate)
	require.Equal(t, []string{"Phase1", "Phase2", "Phase3"}, chart.Categories)
	require.Equal(t, []string{"Planning"}, chart.Tasks[1].Dependencies)
}

func TestFlowchartTemplate(t *testing.T) {
	g, err := parser.ParseFlowchart(FlowchartTemplate("", nil))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 6)
	require.Equal(t, model.ShapeStadium, g.Nodes[0].Shape)
	require.Equal(t, model.ShapeRhombus, g.Nodes[3].Shape)
}

func TestWorkflowTemplates(t *testing.T) {
	for _, kind := range []string{"approval", "review", "development", "unknown"} {
		g, err := parser.ParseFlowchart(WorkflowTemplate(kind))
		require.NoError(t, err, "workflow %s", kind)
		require.NotEmpty(t, g.Edges)
	}
}
