package parser

import (
	"regexp"
	"strings"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
)

var flowchartHeaderRe = regexp.MustCompile(`(?i)^(flowchart|graph)\b(?:\s+(\w+))?`)

// shapePatterns map node definition syntax to shapes. Order matters: the
// double-bracket forms must be tried before their single-bracket prefixes
// or `((x))` would match as `(x)` with a stray paren.
var shapePatterns = []struct {
	re    *regexp.Regexp
	shape model.NodeShape
}{
	{regexp.MustCompile(`^(\w+)\(\((.+)\)\)$`), model.ShapeCircle},
	{regexp.MustCompile(`^(\w+)\(\[(.+)\]\)$`), model.ShapeStadium},
	{regexp.MustCompile(`^(\w+)\[\[(.+)\]\]$`), model.ShapeSubroutine},
	{regexp.MustCompile(`^(\w+)\[/(.+)/\]$`), model.ShapeParallelogram},
	{regexp.MustCompile(`^(\w+)\[\\(.+)\\\]$`), model.ShapeRhombus},
	{regexp.MustCompile(`^(\w+)\[(.+)\]$`), model.ShapeRect},
	{regexp.MustCompile(`^(\w+)\((.+)\)$`), model.ShapeRound},
	{regexp.MustCompile(`^(\w+)\{(.+)\}$`), model.ShapeRhombus},
}

// arrowKinds map connector syntax to edge kinds. Longest-first so that
// `-.->` is not consumed as `--` plus garbage and `==>` wins over `==`.
var arrowKinds = []struct {
	token string
	kind  model.EdgeKind
}{
	{"-.->", model.EdgeDottedArrow},
	{"==>", model.EdgeThick},
	{"===", model.EdgeThickLine},
	{"-->", model.EdgeArrow},
	{"---", model.EdgeLine},
	{"-.-", model.EdgeDotted},
}

var edgeLabelRe = regexp.MustCompile(`\|([^|]*)\|`)

// ParseFlowchart parses Mermaid flowchart notation into a graph. The first
// line must declare `flowchart` or `graph` (case-insensitive); a missing or
// unknown direction falls back to TD. Comment lines (%%) and subgraph
// blocks are skipped. Nodes keep insertion order; a plain node reference
// never overwrites an earlier shaped definition.
func ParseFlowchart(src string) (*model.FlowchartGraph, error) {
	src = normalizeSource(src)
	if src == "" {
		return nil, utils.Errorf("flowchart parsing failed: %w", ErrEmptySource)
	}

	lines := strings.Split(src, "\n")
	header := strings.TrimSpace(lines[0])
	m := flowchartHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return nil, utils.Errorf("flowchart parsing failed: first line must be 'flowchart <direction>' or 'graph <direction>', got %q", header)
	}
	g := &model.FlowchartGraph{Kind: strings.ToLower(m[1]), Direction: strings.ToUpper(m[2])}
	switch g.Direction {
	case "TD", "TB", "BT", "RL", "LR":
	case "":
		g.Direction = "TD"
	default:
		utils.Warn("unknown flowchart direction %q, using TD", g.Direction)
		g.Direction = "TD"
	}

	p := &flowchartParser{g: g, index: map[string]int{}}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if strings.HasPrefix(line, "subgraph") || line == "end" {
			utils.Debug("skipping unsupported flowchart line: %q", line)
			continue
		}
		if p.parseLine(line) {
			g.ParsedLines++
		}
	}

	if len(g.Nodes) == 0 {
		return nil, utils.Errorf("flowchart parsing failed: no nodes found")
	}
	utils.Debug("parsed flowchart: %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	return g, nil
}

type flowchartParser struct {
	g     *model.FlowchartGraph
	index map[string]int
}

// parseLine handles one body line, either an edge or a standalone node
// definition. Returns whether the line produced anything.
func (p *flowchartParser) parseLine(line string) bool {
	for _, arrow := range arrowKinds {
		if idx := strings.Index(line, arrow.token); idx >= 0 {
			p.parseEdge(line[:idx], line[idx+len(arrow.token):], arrow.kind)
			return true
		}
	}
	return p.addNodeSpec(line)
}

func (p *flowchartParser) parseEdge(lhs, rhs string, kind model.EdgeKind) {
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)

	var label string
	if m := edgeLabelRe.FindStringSubmatchIndex(rhs); m != nil && m[0] == 0 {
		label = strings.TrimSpace(rhs[m[2]:m[3]])
		rhs = strings.TrimSpace(rhs[m[1]:])
	}

	src := p.resolveNode(lhs)
	dst := p.resolveNode(rhs)
	if src == "" || dst == "" {
		utils.Warn("skipping malformed flowchart edge: %q %s %q", lhs, kind, rhs)
		return
	}
	p.g.Edges = append(p.g.Edges, model.FlowEdge{Source: src, Target: dst, Label: label, Kind: kind})
}

// resolveNode registers the node expression on one side of an edge and
// returns its ID, or "" if it cannot be parsed.
func (p *flowchartParser) resolveNode(spec string) string {
	if spec == "" {
		return ""
	}
	for _, sp := range shapePatterns {
		if m := sp.re.FindStringSubmatch(spec); m != nil {
			p.defineNode(m[1], strings.TrimSpace(m[2]), sp.shape)
			return m[1]
		}
	}
	if !isNodeID(spec) {
		return ""
	}
	p.referenceNode(spec)
	return spec
}

// addNodeSpec handles a standalone node definition line.
func (p *flowchartParser) addNodeSpec(line string) bool {
	for _, sp := range shapePatterns {
		if m := sp.re.FindStringSubmatch(line); m != nil {
			p.defineNode(m[1], strings.TrimSpace(m[2]), sp.shape)
			return true
		}
	}
	if isNodeID(line) {
		p.referenceNode(line)
		return true
	}
	utils.Debug("skipping unrecognized flowchart line: %q", line)
	return false
}

// defineNode records an explicit shaped definition, overwriting any earlier
// bare reference for the same ID.
func (p *flowchartParser) defineNode(id, text string, shape model.NodeShape) {
	if i, ok := p.index[id]; ok {
		p.g.Nodes[i].Text = text
		p.g.Nodes[i].Shape = shape
	} else {
		p.index[id] = len(p.g.Nodes)
		p.g.Nodes = append(p.g.Nodes, model.FlowNode{ID: id, Text: text, Shape: shape})
	}
}

// referenceNode records a bare node reference; the ID doubles as its label
// until a shaped definition appears.
func (p *flowchartParser) referenceNode(id string) {
	if _, ok := p.index[id]; ok {
		return
	}
	p.index[id] = len(p.g.Nodes)
	p.g.Nodes = append(p.g.Nodes, model.FlowNode{ID: id, Text: id, Shape: model.ShapeRect})
}

func isNodeID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
