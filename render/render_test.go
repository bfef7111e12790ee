package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/samples"
	"github.com/stretchr/testify/require"
)

func TestRender_Mindmap(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(model.Mindmap, "Roadmap,Q1,Auth\nRoadmap,Q2,Billing\n", Options{})
	require.NoError(t, err)
	require.Contains(t, out, "<title>Roadmap</title>")
	require.Contains(t, out, "d3.v7.min.js")
	require.Contains(t, out, `"name": "Roadmap"`)
	require.NotContains(t, out, "export-enhancements")
	require.NotContains(t, out, "{{")
}

func TestRender_MindmapStandalone(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(model.Mindmap, "Root,Leaf\n", Options{Standalone: true, Title: "My Map"})
	require.NoError(t, err)
	require.Contains(t, out, "<title>My Map</title>")
	require.Contains(t, out, "export-enhancements")
	require.Contains(t, out, "exportready")
	require.Contains(t, out, `class="export-ready"`)
	require.Contains(t, out, "Generated by MindFlow")
}

func TestRender_Gantt(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(model.Gantt, samples.Sample(model.Gantt), Options{})
	require.NoError(t, err)
	require.Contains(t, out, "<title>Gantt Chart</title>")
	require.Contains(t, out, `"start_date": "2024-01-01"`)
	require.Contains(t, out, `"task": "Deployment"`)
	require.NotContains(t, out, "{{")
}

func TestRender_Flowchart(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(model.Flowchart, samples.Sample(model.Flowchart), Options{Title: "Flow"})
	require.NoError(t, err)
	require.Contains(t, out, "mermaid.initialize")
	require.Contains(t, out, "A[Start] --> B{Branch}")
	require.NotContains(t, out, "--&gt;")
}

func TestRender_InvalidSource(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(model.Gantt, "not,a,schedule\n", Options{})
	require.Error(t, err)
}

func TestRender_UnsupportedType(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(model.DiagramType("sequence"), "x", Options{})
	require.Error(t, err)
}

func TestRenderOrError(t *testing.T) {
	r := NewRenderer()
	out := r.RenderOrError(model.Flowchart, "garbage", Options{})
	require.Contains(t, out, "Diagram could not be rendered")
	require.Contains(t, out, "first line")
}

func TestRenderWithFallback(t *testing.T) {
	r := NewRenderer()

	out := r.RenderWithFallback(model.Gantt, "not,a,schedule\n", Options{})
	require.Contains(t, out, `"task": "Deployment"`)

	out = r.RenderWithFallback(model.Gantt, samples.Sample(model.Gantt), Options{Title: "Real"})
	require.Contains(t, out, "<title>Real</title>")

	// No sample exists for an unknown type, so the error page remains.
	out = r.RenderWithFallback(model.DiagramType("sequence"), "x", Options{})
	require.Contains(t, out, "Diagram could not be rendered")
}

func TestRenderDiagram(t *testing.T) {
	r := NewRenderer()
	d := &model.Diagram{Title: "Stored", Type: model.Mindmap, Source: "Root,A\n"}
	out, err := r.RenderDiagram(d, false)
	require.NoError(t, err)
	require.Contains(t, out, "<title>Stored</title>")
}

func TestErrorHTML_EscapesMessage(t *testing.T) {
	out := ErrorHTML(errors.New("<script>alert(1)</script>"))
	require.NotContains(t, out, "<script>alert(1)</script>")
	require.Contains(t, out, "&lt;script&gt;")
}

func TestFallbackHTML(t *testing.T) {
	out := FallbackHTML(model.Mindmap, "Root,A")
	require.Contains(t, out, "fallback mode")
	require.Contains(t, out, "Root,A")
	require.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}
