package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
)

// ganttDateFormats are tried in order when parsing task dates.
var ganttDateFormats = []string{
	"2006-01-02",          // 2024-01-15
	"2006/01/02",          // 2024/01/15
	"01/02/2006",          // 01/15/2024
	"02/01/2006",          // 15/01/2024 (day-first, when month-first fails)
	"2006-01-02 15:04:05", // 2024-01-15 12:30:00
	"2006-01-02 15:04",    // 2024-01-15 12:30
}

// ParseGantt parses Gantt chart CSV with a header row. Required columns are
// task, start and end (start_date/end_date are accepted as aliases);
// category, progress and dependencies are optional. Rows that fail to parse
// are skipped with a warning; a chart with zero valid tasks is an error.
func ParseGantt(src string) (*model.GanttChart, error) {
	src = normalizeSource(src)
	if src == "" {
		return nil, utils.Errorf("gantt CSV parsing failed: %w", ErrEmptySource)
	}

	r := csv.NewReader(strings.NewReader(src))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, utils.Errorf("gantt CSV parsing failed: %w", err)
	}
	cols, err := ganttColumns(header)
	if err != nil {
		return nil, err
	}

	var tasks []model.GanttTask
	for rowNum := 2; ; rowNum++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			utils.Warn("error reading gantt CSV row %d: %v", rowNum, err)
			continue
		}
		task, err := parseGanttTask(record, cols, rowNum)
		if err != nil {
			utils.Warn("error processing gantt task row %d: %v", rowNum, err)
			continue
		}
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return nil, utils.Errorf("gantt CSV parsing failed: no valid tasks found")
	}

	chart := &model.GanttChart{Tasks: tasks}
	chart.StartDate = tasks[0].Start
	chart.EndDate = tasks[0].End
	seen := map[string]bool{}
	for _, t := range tasks {
		if t.Start.Before(chart.StartDate) {
			chart.StartDate = t.Start
		}
		if t.End.After(chart.EndDate) {
			chart.EndDate = t.End
		}
		if !seen[t.Category] {
			seen[t.Category] = true
			chart.Categories = append(chart.Categories, t.Category)
		}
	}
	utils.Debug("parsed gantt CSV: %d tasks", len(tasks))
	return chart, nil
}

// ganttColumns maps header names to field indices, resolving aliases.
func ganttColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case constants.ColumnStartAlias:
			name = constants.ColumnStart
		case constants.ColumnEndAlias:
			name = constants.ColumnEnd
		}
		if name != "" {
			cols[name] = i
		}
	}
	var missing []string
	for _, required := range []string{constants.ColumnTask, constants.ColumnStart, constants.ColumnEnd} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, utils.Errorf("gantt CSV parsing failed: missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func ganttCell(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseGanttTask(record []string, cols map[string]int, rowNum int) (model.GanttTask, error) {
	var task model.GanttTask

	task.Name = ganttCell(record, cols, constants.ColumnTask)
	if task.Name == "" {
		return task, fmt.Errorf("row %d: task name is required", rowNum)
	}

	start, err := parseGanttDate(ganttCell(record, cols, constants.ColumnStart))
	if err != nil {
		return task, fmt.Errorf("row %d: start: %w", rowNum, err)
	}
	end, err := parseGanttDate(ganttCell(record, cols, constants.ColumnEnd))
	if err != nil {
		return task, fmt.Errorf("row %d: end: %w", rowNum, err)
	}
	if start.After(end) {
		return task, fmt.Errorf("row %d: start date must be before end date", rowNum)
	}
	task.Start = start
	task.End = end
	task.Duration = int(end.Sub(start).Hours()/24) + 1

	task.Progress, err = parseProgress(ganttCell(record, cols, constants.ColumnProgress))
	if err != nil {
		return task, fmt.Errorf("row %d: %w", rowNum, err)
	}

	task.Category = ganttCell(record, cols, constants.ColumnCategory)
	if task.Category == "" {
		task.Category = constants.DefaultCategory
	}

	if deps := ganttCell(record, cols, constants.ColumnDependencies); deps != "" {
		for _, dep := range strings.Split(deps, constants.DependencySeparator) {
			if dep = strings.TrimSpace(dep); dep != "" {
				task.Dependencies = append(task.Dependencies, dep)
			}
		}
	}
	return task, nil
}

func parseGanttDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range ganttDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q, use YYYY-MM-DD", s)
}

// parseProgress converts a progress cell to a fraction in [0,1].
// Accepted spellings: "" (zero), "0.4", "40%", and bare percentages like
// "40" (values above 1 are read as percent; real-world Gantt CSVs mix
// fractional and percent columns freely).
func parseProgress(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSuffix(s, "%")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid progress value %q", s)
	}
	if percent || v > 1 {
		v /= 100
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("progress must be between 0 and 1 (or 0%% and 100%%), got %q", s)
	}
	return v, nil
}
