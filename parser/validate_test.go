package parser

import (
	"testing"

	"github.com/d3flow/mindflow/model"
	"github.com/stretchr/testify/require"
)

func TestValidateSource_Mindmap(t *testing.T) {
	res, err := ValidateSource(model.Mindmap, "Root,A\nRoot,B\n")
	require.NoError(t, err)
	require.True(t, res.Valid)
	require.Equal(t, 3, res.NodeCount)
	require.Equal(t, 2, res.EdgeCount)
	require.Empty(t, res.Warnings)
}

func TestValidateSource_GanttUnknownDependency(t *testing.T) {
	src := `task,start,end,dependencies
Build,2024-01-01,2024-01-05,Design
`
	res, err := ValidateSource(model.Gantt, src)
	require.NoError(t, err)
	require.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "unknown task")
}

func TestValidateSource_FlowchartDisconnectedNode(t *testing.T) {
	src := `flowchart TD
    A --> B
    C[Orphan]
`
	res, err := ValidateSource(model.Flowchart, src)
	require.NoError(t, err)
	require.True(t, res.Valid)
	require.Equal(t, 3, res.NodeCount)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "not connected")
}

func TestValidateSource_FlowchartNoEdges(t *testing.T) {
	src := `flowchart TD
    A[Start]
    B[End]
`
	res, err := ValidateSource(model.Flowchart, src)
	require.Error(t, err)
	require.False(t, res.Valid)
	require.Contains(t, res.Error, "no connections")
	require.Equal(t, 2, res.NodeCount)
	require.Equal(t, 0, res.EdgeCount)
}

func TestValidateSource_InvalidSource(t *testing.T) {
	res, err := ValidateSource(model.Flowchart, "not a flowchart at all")
	require.Error(t, err)
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Error)
}

func TestValidateSource_UnknownType(t *testing.T) {
	_, err := ValidateSource(model.DiagramType("sequence"), "whatever")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown diagram type")
}

func TestParseDocumentFromString(t *testing.T) {
	src := `title: Release Plan
type: gantt
description: Q1 schedule
source: |
  task,start,end
  Ship,2024-03-01,2024-03-15
`
	d, err := ParseDocumentFromString(src)
	require.NoError(t, err)
	require.Equal(t, "Release Plan", d.Title)
	require.Equal(t, model.Gantt, d.Type)
	require.NoError(t, ValidateDocument(d))
}

func TestValidateDocument_MissingTitle(t *testing.T) {
	d := &model.Diagram{Type: model.Mindmap, Source: "Root,A\n"}
	err := ValidateDocument(d)
	require.Error(t, err)
	require.Contains(t, err.Error(), "title")
}

func TestValidateDocument_MissingSource(t *testing.T) {
	d := &model.Diagram{Title: "x", Type: model.Mindmap}
	err := ValidateDocument(d)
	require.Error(t, err)
	require.Contains(t, err.Error(), "source")
}

func TestValidateDocument_BadType(t *testing.T) {
	d := &model.Diagram{Title: "x", Type: "nope", Source: "Root,A\n"}
	err := ValidateDocument(d)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be one of")
}
