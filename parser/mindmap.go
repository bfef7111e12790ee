package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
)

// ErrEmptySource is returned when a parser receives no usable input.
var ErrEmptySource = errors.New("source is empty")

// ParseMindmap parses a mindmap source, auto-detecting the format:
// a Markdown outline (#/- prefixed lines) or CSV hierarchy rows.
func ParseMindmap(src string) (*model.MindmapNode, error) {
	src = normalizeSource(src)
	if src == "" {
		return nil, ErrEmptySource
	}
	if isOutline(src) {
		return ParseMindmapOutline(src)
	}
	return ParseMindmapCSV(src)
}

// isOutline reports whether the first non-empty line looks like a
// Markdown outline rather than CSV.
func isOutline(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "- ")
	}
	return false
}

// ParseMindmapCSV builds a mindmap hierarchy from CSV rows. Each row is a
// root-to-leaf path spread across successive cells; rows sharing a prefix
// share the corresponding ancestors. The root is the first non-empty cell
// of the first row.
func ParseMindmapCSV(src string) (*model.MindmapNode, error) {
	src = normalizeSource(src)
	if src == "" {
		return nil, ErrEmptySource
	}

	r := csv.NewReader(strings.NewReader(src))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, utils.Errorf("mindmap CSV parsing failed: %w", err)
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, utils.Errorf("mindmap CSV parsing failed: %w", ErrEmptySource)
	}

	root := &model.MindmapNode{}
	for _, cell := range rows[0] {
		if name := strings.TrimSpace(cell); name != "" {
			root.Name = name
			break
		}
	}
	if root.Name == "" {
		return nil, errors.New("mindmap CSV parsing failed: root node not found")
	}

	for _, row := range rows {
		addMindmapRow(root, row)
	}
	utils.Debug("parsed mindmap CSV: %d rows", len(rows))
	return root, nil
}

// addMindmapRow merges one CSV row into the hierarchy. Rows with fewer
// than two path elements carry no edge and are skipped.
func addMindmapRow(root *model.MindmapNode, row []string) {
	var path []string
	for _, cell := range row {
		if name := strings.TrimSpace(cell); name != "" {
			path = append(path, name)
		}
	}
	if len(path) < 2 {
		return
	}
	current := root
	for _, name := range path[1:] {
		current = current.AddChild(name)
	}
}

// ParseMindmapOutline builds a mindmap hierarchy from a Markdown outline.
// Heading depth is the number of leading '#' characters; "- " bullets
// nest one level below the most recent heading.
func ParseMindmapOutline(src string) (*model.MindmapNode, error) {
	src = normalizeSource(src)
	if src == "" {
		return nil, ErrEmptySource
	}

	type frame struct {
		level int
		node  *model.MindmapNode
	}
	var root *model.MindmapNode
	var stack []frame
	lastHeading := 0

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var level int
		var name string
		switch {
		case strings.HasPrefix(line, "#"):
			level = len(line) - len(strings.TrimLeft(line, "#"))
			name = strings.TrimSpace(line[level:])
			lastHeading = level
		case strings.HasPrefix(line, "- "):
			level = lastHeading + 1
			name = strings.TrimSpace(line[2:])
		default:
			utils.Debug("skipping non-outline line: %q", line)
			continue
		}
		if name == "" {
			continue
		}

		node := &model.MindmapNode{Name: name}
		if root == nil {
			root = node
			stack = []frame{{level: level, node: node}}
			continue
		}
		// Pop to the nearest ancestor with a shallower level.
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			// A second top-level entry: attach under the root.
			root.Children = append(root.Children, node)
			stack = []frame{{level: 0, node: root}}
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, frame{level: level, node: node})
	}

	if root == nil {
		return nil, errors.New("mindmap outline parsing failed: root node not found")
	}
	return root, nil
}
