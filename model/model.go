package model

import (
	"time"

	"github.com/google/uuid"
)

// DiagramType identifies the kind of diagram a source describes.
type DiagramType string

const (
	Mindmap   DiagramType = "mindmap"
	Gantt     DiagramType = "gantt"
	Flowchart DiagramType = "flowchart"
)

// AllDiagramTypes lists every supported diagram type.
func AllDiagramTypes() []DiagramType {
	return []DiagramType{Mindmap, Gantt, Flowchart}
}

// Valid reports whether t is a known diagram type.
func (t DiagramType) Valid() bool {
	switch t {
	case Mindmap, Gantt, Flowchart:
		return true
	}
	return false
}

func (t DiagramType) String() string { return string(t) }

// Diagram is a stored diagram record.
type Diagram struct {
	ID          uuid.UUID   `yaml:"-" json:"id"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Type        DiagramType `yaml:"type" json:"type"`
	// Source is the raw textual input: CSV rows, a Markdown outline,
	// or Mermaid notation depending on Type.
	Source string `yaml:"source" json:"source"`
	// NodeStyles holds optional per-node style overrides as a JSON object.
	NodeStyles string    `yaml:"node_styles,omitempty" json:"node_styles,omitempty"`
	CreatedAt  time.Time `yaml:"-" json:"created_at"`
	UpdatedAt  time.Time `yaml:"-" json:"updated_at"`
}

// MindmapNode is one node of a parsed mindmap hierarchy.
type MindmapNode struct {
	Name     string         `json:"name"`
	Children []*MindmapNode `json:"children,omitempty"`
}

// Child returns the existing child with the given name, or nil.
func (n *MindmapNode) Child(name string) *MindmapNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddChild returns the child with the given name, creating it if absent.
func (n *MindmapNode) AddChild(name string) *MindmapNode {
	if c := n.Child(name); c != nil {
		return c
	}
	c := &MindmapNode{Name: name}
	n.Children = append(n.Children, c)
	return c
}

// GanttTask is one scheduled task of a Gantt chart.
type GanttTask struct {
	Name     string    `json:"task"`
	Start    time.Time `json:"startDate"`
	End      time.Time `json:"endDate"`
	Category string    `json:"category"`
	// Progress is completion in [0,1].
	Progress float64 `json:"progress"`
	// Duration is inclusive length in days.
	Duration     int      `json:"duration"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// GanttChart is a parsed project schedule.
type GanttChart struct {
	Tasks      []GanttTask `json:"tasks"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	Categories []string    `json:"categories"`
}

// TotalTasks returns the number of tasks on the chart.
func (g *GanttChart) TotalTasks() int { return len(g.Tasks) }

// NodeShape identifies the rendered shape of a flowchart node.
type NodeShape string

const (
	ShapeRect          NodeShape = "rect"
	ShapeRound         NodeShape = "round"
	ShapeRhombus       NodeShape = "rhombus"
	ShapeCircle        NodeShape = "circle"
	ShapeStadium       NodeShape = "stadium"
	ShapeSubroutine    NodeShape = "subroutine"
	ShapeParallelogram NodeShape = "parallelogram"
)

// EdgeKind identifies the rendered style of a flowchart edge.
type EdgeKind string

const (
	EdgeArrow       EdgeKind = "arrow"
	EdgeLine        EdgeKind = "line"
	EdgeDotted      EdgeKind = "dotted"
	EdgeDottedArrow EdgeKind = "dotted_arrow"
	EdgeThick       EdgeKind = "thick"
	EdgeThickLine   EdgeKind = "thick_line"
)

// FlowNode is a node of a parsed flowchart.
type FlowNode struct {
	ID    string    `json:"id"`
	Text  string    `json:"text"`
	Shape NodeShape `json:"shape"`
}

// FlowEdge is a directed connection between two flowchart nodes.
type FlowEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Label  string   `json:"text,omitempty"`
	Kind   EdgeKind `json:"kind"`
}

// FlowchartGraph is a parsed Mermaid flowchart.
type FlowchartGraph struct {
	// Kind is the declared diagram keyword, "flowchart" or "graph".
	Kind      string     `json:"type"`
	Direction string     `json:"direction"`
	Nodes     []FlowNode `json:"nodes"`
	Edges     []FlowEdge `json:"edges"`
	// ParsedLines counts the body lines the parser consumed.
	ParsedLines int `json:"parsed_lines"`
}

// Stats summarizes store contents per diagram type.
type Stats struct {
	TotalCount   int                 `json:"total_count"`
	TypeCounts   map[DiagramType]int `json:"type_counts"`
	LatestUpdate *time.Time          `json:"latest_update,omitempty"`
}
