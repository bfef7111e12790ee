package parser

import (
	"fmt"

	"github.com/d3flow/mindflow/model"
)

// ValidationResult reports the outcome of validating a diagram source.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Type     model.DiagramType `json:"type"`
	Error    string            `json:"error,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	// NodeCount and EdgeCount summarize the parsed structure when valid.
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// ValidateSource parses the source for the given diagram type and returns a
// structured result. The error return is non-nil only when the source does
// not parse; warnings alone leave it nil.
func ValidateSource(typ model.DiagramType, src string) (*ValidationResult, error) {
	res := &ValidationResult{Type: typ}
	switch typ {
	case model.Mindmap:
		root, err := ParseMindmap(src)
		if err != nil {
			return res.fail(err)
		}
		res.NodeCount = countMindmapNodes(root)
		res.EdgeCount = res.NodeCount - 1
	case model.Gantt:
		chart, err := ParseGantt(src)
		if err != nil {
			return res.fail(err)
		}
		res.NodeCount = chart.TotalTasks()
		res.EdgeCount = countGanttDependencies(chart)
		res.Warnings = append(res.Warnings, ganttWarnings(chart)...)
	case model.Flowchart:
		g, err := ParseFlowchart(src)
		if err != nil {
			return res.fail(err)
		}
		res.NodeCount = len(g.Nodes)
		res.EdgeCount = len(g.Edges)
		if len(g.Edges) == 0 {
			return res.fail(fmt.Errorf("no connections found in diagram"))
		}
		res.Warnings = append(res.Warnings, flowchartWarnings(g)...)
	default:
		return res.fail(fmt.Errorf("unknown diagram type: %s", typ))
	}
	res.Valid = true
	return res, nil
}

func (r *ValidationResult) fail(err error) (*ValidationResult, error) {
	r.Error = err.Error()
	return r, err
}

func countMindmapNodes(n *model.MindmapNode) int {
	count := 1
	for _, c := range n.Children {
		count += countMindmapNodes(c)
	}
	return count
}

func countGanttDependencies(chart *model.GanttChart) int {
	count := 0
	for _, t := range chart.Tasks {
		count += len(t.Dependencies)
	}
	return count
}

// ganttWarnings flags dependencies that reference tasks not on the chart.
func ganttWarnings(chart *model.GanttChart) []string {
	known := make(map[string]bool, len(chart.Tasks))
	for _, t := range chart.Tasks {
		known[t.Name] = true
	}
	var warnings []string
	for _, t := range chart.Tasks {
		for _, dep := range t.Dependencies {
			if !known[dep] {
				warnings = append(warnings, fmt.Sprintf("task %q depends on unknown task %q", t.Name, dep))
			}
		}
	}
	return warnings
}

// flowchartWarnings flags nodes no edge touches. A single-node chart is
// trivially connected and produces no warning.
func flowchartWarnings(g *model.FlowchartGraph) []string {
	if len(g.Nodes) <= 1 {
		return nil
	}
	connected := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}
	var warnings []string
	for _, n := range g.Nodes {
		if !connected[n.ID] {
			warnings = append(warnings, fmt.Sprintf("node %q is not connected to any other node", n.ID))
		}
	}
	return warnings
}
