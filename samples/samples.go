// Package samples provides demonstration sources and starter templates for
// each diagram type. The preview server and CLI use these to seed new
// documents.
package samples

import (
	"fmt"
	"strings"
	"time"

	"github.com/d3flow/mindflow/model"
)

const mindmapSample = `# MindFlow Demo
## Key Features
### Mindmap Authoring
- D3.js visualization
- Live preview
- Interactive layout
### Export
- HTML
- PNG image
- SVG
- PDF document
## Stack
### Frontend
- D3.js v7
- HTML5/CSS3
### Backend
- Go
- SQLite
### Tooling
- Headless Chromium
- CSV parsing
- Mermaid notation`

const flowchartSample = `graph TD
    A[Start] --> B{Branch}
    B -->|Yes| C[Step 1]
    B -->|No| D[Step 2]
    C --> E[Join]
    D --> E
    E --> F[End]`

const ganttSample = `task,start_date,end_date,progress,dependencies
Project Planning,2024-01-01,2024-01-15,100,
Requirements,2024-01-10,2024-01-25,100,Project Planning
Basic Design,2024-01-20,2024-02-10,80,Requirements
Detailed Design,2024-02-05,2024-02-25,60,Basic Design
Frontend Development,2024-02-20,2024-03-20,40,Detailed Design
Backend Development,2024-02-20,2024-03-25,30,Detailed Design
Testing,2024-03-15,2024-04-05,10,Frontend Development
Deployment,2024-04-01,2024-04-10,0,Testing`

// Sample returns demonstration source for the given diagram type, or ""
// for an unknown type.
func Sample(typ model.DiagramType) string {
	switch typ {
	case model.Mindmap:
		return mindmapSample
	case model.Flowchart:
		return flowchartSample
	case model.Gantt:
		return ganttSample
	}
	return ""
}

// MindmapTemplate generates a starter mindmap CSV around a central theme.
func MindmapTemplate(theme string) string {
	if theme == "" {
		theme = "Project"
	}
	branches := []struct {
		name   string
		leaves []string
	}{
		{"Planning", []string{"Requirements", "Research"}},
		{"Execution", []string{"Design", "Implementation"}},
		{"Review", []string{"Testing", "Feedback"}},
	}
	var lines []string
	for _, b := range branches {
		for _, leaf := range b.leaves {
			lines = append(lines, fmt.Sprintf("%s,%s,%s", theme, b.name, leaf))
		}
	}
	return strings.Join(lines, "\n")
}

// ganttPhase is one template row: start and end offsets in weeks from the
// project start, scaled to the requested duration of 12 template weeks.
type ganttPhase struct {
	name      string
	startWeek int
	endWeek   int
	category  string
}

var ganttPhases = []ganttPhase{
	{"Planning", 0, 2, "Phase1"},
	{"Requirements", 0, 3, "Phase1"},
	{"Design", 2, 4, "Phase2"},
	{"Development", 4, 8, "Phase2"},
	{"Testing", 8, 10, "Phase3"},
	{"Release Preparation", 10, 12, "Phase3"},
}

// GanttTemplate generates a starter schedule CSV beginning at start. A zero
// start means today; durationWeeks scales the default 12-week plan.
func GanttTemplate(start time.Time, durationWeeks int) string {
	if start.IsZero() {
		start = time.Now()
	}
	if durationWeeks <= 0 {
		durationWeeks = 12
	}
	lines := []string{"task,start,end,category,progress,dependencies"}
	for i, p := range ganttPhases {
		taskStart := start.AddDate(0, 0, p.startWeek*durationWeeks*7/12)
		taskEnd := start.AddDate(0, 0, p.endWeek*durationWeeks*7/12)
		deps := ""
		if i > 0 && i%2 == 1 {
			deps = ganttPhases[i-1].name
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%s,%s,0,%s",
			p.name,
			taskStart.Format("2006-01-02"),
			taskEnd.Format("2006-01-02"),
			p.category,
			deps))
	}
	return strings.Join(lines, "\n")
}

// FlowchartTemplate generates a linear flowchart through the given steps.
// Steps containing "?" become decision nodes with a No branch looping back.
func FlowchartTemplate(direction string, steps []string) string {
	if direction == "" {
		direction = "TD"
	}
	if len(steps) == 0 {
		steps = []string{"Start", "Input", "Process", "Valid?", "Output", "End"}
	}
	lines := []string{"flowchart " + direction}
	for i, step := range steps {
		id := fmt.Sprintf("step%d", i+1)
		switch {
		case i == 0 || i == len(steps)-1:
			lines = append(lines, fmt.Sprintf("    %s([%s])", id, step))
		case strings.Contains(step, "?"):
			lines = append(lines, fmt.Sprintf("    %s{%s}", id, step))
		default:
			lines = append(lines, fmt.Sprintf("    %s[%s]", id, step))
		}
	}
	for i := 0; i < len(steps)-1; i++ {
		src := fmt.Sprintf("step%d", i+1)
		dst := fmt.Sprintf("step%d", i+2)
		if strings.Contains(steps[i], "?") {
			lines = append(lines, fmt.Sprintf("    %s -->|Yes| %s", src, dst))
			if i > 0 {
				lines = append(lines, fmt.Sprintf("    %s -->|No| step%d", src, i))
			}
		} else {
			lines = append(lines, fmt.Sprintf("    %s --> %s", src, dst))
		}
	}
	return strings.Join(lines, "\n")
}

// WorkflowKinds lists the workflow templates WorkflowTemplate knows.
func WorkflowKinds() []string {
	return []string{"approval", "review", "development"}
}

// WorkflowTemplate returns a canned flowchart for common business flows.
// Known kinds are "approval", "review" and "development"; anything else
// falls back to approval.
func WorkflowTemplate(kind string) string {
	switch kind {
	case "review":
		return `flowchart LR
    Draft[Write Draft] --> Submit[Submit for Review]
    Submit --> Review{Reviewer Feedback}
    Review -->|Changes Requested| Revise[Revise]
    Revise --> Submit
    Review -->|Approved| Merge[Merge]
    Merge --> Done([Done])`
	case "development":
		return `flowchart TD
    Plan[Plan Sprint] --> Dev[Implement]
    Dev --> Test{Tests Pass?}
    Test -->|No| Fix[Fix Defects]
    Fix --> Dev
    Test -->|Yes| Review{Code Review OK?}
    Review -->|No| Dev
    Review -->|Yes| Ship[Release]
    Ship --> Done([Done])`
	default:
		return `flowchart TD
    Submit[Submit Request] --> First{First Approval}
    First -->|Approved| Second{Second Approval}
    First -->|Returned| Revise[Revise]
    Revise --> Submit
    Second -->|Approved| Approved[Approved]
    Second -->|Returned| Revise
    Second -->|Rejected| Rejected[Rejected]`
	}
}
