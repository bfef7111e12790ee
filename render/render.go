// Package render turns diagram sources into self-contained HTML documents.
// Mindmaps and Gantt charts render with D3, flowcharts with Mermaid; the
// standalone variant adds print CSS and an export-readiness signal for the
// headless exporter.
package render

import (
	"embed"
	"fmt"
	"html"
	"sync"
	"time"

	pongo2 "github.com/flosch/pongo2/v6"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/parser"
	"github.com/d3flow/mindflow/samples"
	"github.com/d3flow/mindflow/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options control how a diagram is rendered.
type Options struct {
	// Standalone adds export CSS, the exportready signal and a footer,
	// for files that leave the preview server.
	Standalone bool
	Title      string
}

// Renderer compiles and caches the embedded page templates.
type Renderer struct {
	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

func NewRenderer() *Renderer {
	return &Renderer{cache: map[string]*pongo2.Template{}}
}

// Render parses the source for the given diagram type and renders it to a
// complete HTML page.
func (r *Renderer) Render(typ model.DiagramType, source string, opts Options) (string, error) {
	switch typ {
	case model.Mindmap:
		return r.renderMindmap(source, opts)
	case model.Gantt:
		return r.renderGantt(source, opts)
	case model.Flowchart:
		return r.renderFlowchart(source, opts)
	}
	return "", utils.Errorf("unsupported diagram type: %s", typ)
}

// RenderDiagram renders a stored diagram, using its title.
func (r *Renderer) RenderDiagram(d *model.Diagram, standalone bool) (string, error) {
	return r.Render(d.Type, d.Source, Options{Standalone: standalone, Title: d.Title})
}

// RenderOrError renders the source, substituting an error page when the
// source does not parse. The preview surface always has something to show.
func (r *Renderer) RenderOrError(typ model.DiagramType, source string, opts Options) string {
	out, err := r.Render(typ, source, opts)
	if err != nil {
		return ErrorHTML(err)
	}
	return out
}

// RenderWithFallback renders the source, substituting the built-in sample
// when it does not parse. Stored diagrams always preview as a diagram, not
// an error page.
func (r *Renderer) RenderWithFallback(typ model.DiagramType, source string, opts Options) string {
	out, err := r.Render(typ, source, opts)
	if err == nil {
		return out
	}
	utils.Warn("rendering sample %s instead: %v", typ, err)
	out, sampleErr := r.Render(typ, samples.Sample(typ), opts)
	if sampleErr != nil {
		return ErrorHTML(err)
	}
	return out
}

func (r *Renderer) renderMindmap(source string, opts Options) (string, error) {
	root, err := parser.ParseMindmap(source)
	if err != nil {
		return "", err
	}
	result := utils.MarshalJSONIndent(root, "")
	if result.Err != nil {
		return "", result.Err
	}
	title := opts.Title
	if title == "" {
		title = root.Name
	}
	return r.execute("mindmap.html", pongo2.Context{
		"json_data":    string(result.Data),
		"title":        title,
		"standalone":   opts.Standalone,
		"generated_at": generatedAt(),
	})
}

// ganttTaskView is the shape the Gantt template consumes: dates as
// YYYY-MM-DD strings for d3.timeParse.
type ganttTaskView struct {
	Task         string   `json:"task"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Category     string   `json:"category"`
	Progress     float64  `json:"progress"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type ganttChartView struct {
	Tasks      []ganttTaskView `json:"tasks"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Categories []string        `json:"categories"`
}

func (r *Renderer) renderGantt(source string, opts Options) (string, error) {
	chart, err := parser.ParseGantt(source)
	if err != nil {
		return "", err
	}
	view := ganttChartView{
		StartDate:  chart.StartDate.Format("2006-01-02"),
		EndDate:    chart.EndDate.Format("2006-01-02"),
		Categories: chart.Categories,
	}
	for _, t := range chart.Tasks {
		view.Tasks = append(view.Tasks, ganttTaskView{
			Task:         t.Name,
			Start:        t.Start.Format("2006-01-02"),
			End:          t.End.Format("2006-01-02"),
			Category:     t.Category,
			Progress:     t.Progress,
			Dependencies: t.Dependencies,
		})
	}
	result := utils.MarshalJSONIndent(view, "")
	if result.Err != nil {
		return "", result.Err
	}
	title := opts.Title
	if title == "" {
		title = "Gantt Chart"
	}
	return r.execute("gantt.html", pongo2.Context{
		"json_data":    string(result.Data),
		"title":        title,
		"standalone":   opts.Standalone,
		"generated_at": generatedAt(),
	})
}

func (r *Renderer) renderFlowchart(source string, opts Options) (string, error) {
	// Parse for validation only; Mermaid renders the notation itself.
	if _, err := parser.ParseFlowchart(source); err != nil {
		return "", err
	}
	title := opts.Title
	if title == "" {
		title = "Flowchart"
	}
	return r.execute("flowchart.html", pongo2.Context{
		"mermaid_content": source,
		"title":           title,
		"standalone":      opts.Standalone,
		"generated_at":    generatedAt(),
	})
}

// execute renders a named embedded template, compiling it on first use.
func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	r.mu.Lock()
	tpl, ok := r.cache[name]
	if !ok {
		raw, err := templateFS.ReadFile("templates/" + name)
		if err != nil {
			r.mu.Unlock()
			return "", err
		}
		tpl, err = pongo2.FromBytes(raw)
		if err != nil {
			r.mu.Unlock()
			return "", utils.Errorf("template %s failed to compile: %w", name, err)
		}
		r.cache[name] = tpl
	}
	r.mu.Unlock()
	return tpl.Execute(ctx)
}

func generatedAt() string {
	return time.Now().Format("2006-01-02 15:04")
}

// ErrorHTML builds a minimal page describing a render failure.
func ErrorHTML(err error) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Render Error</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #fff3f3; }
        .error { background: white; border-left: 4px solid #d32f2f; padding: 20px; border-radius: 4px; }
        pre { background: #fafafa; padding: 12px; border-radius: 4px; overflow: auto; }
    </style>
</head>
<body>
    <div class="error">
        <h2>Diagram could not be rendered</h2>
        <pre>%s</pre>
    </div>
</body>
</html>
`, html.EscapeString(err.Error()))
}

// FallbackHTML shows the raw source when rendering is unavailable, keeping
// exports useful in reduced-functionality mode.
func FallbackHTML(typ model.DiagramType, source string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s (fallback)</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .fallback { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        pre { background: #f9f9f9; padding: 15px; border-radius: 4px; overflow: auto; }
    </style>
</head>
<body>
    <div class="fallback">
        <h2>%s (fallback mode)</h2>
        <p>Rendering unavailable. Showing raw source:</p>
        <pre>%s</pre>
        <p><small>Generated by MindFlow</small></p>
    </div>
</body>
</html>
`, html.EscapeString(typ.String()), html.EscapeString(typ.String()), html.EscapeString(source))
}
