package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/samples"
	"github.com/d3flow/mindflow/utils"
)

// newSampleCmd creates the 'sample' subcommand. Without flags it prints the
// built-in sample for the type; template flags generate a starting skeleton
// instead.
func newSampleCmd() *cobra.Command {
	var (
		theme     string
		weeks     int
		start     string
		direction string
		steps     []string
		workflow  string
	)
	cmd := &cobra.Command{
		Use:   constants.CmdSample + " [type]",
		Short: constants.DescSample,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			typ := model.DiagramType(args[0])
			switch {
			case workflow != "":
				fmt.Print(samples.WorkflowTemplate(workflow))
			case typ == model.Mindmap && theme != "":
				fmt.Print(samples.MindmapTemplate(theme))
			case typ == model.Gantt && weeks > 0:
				startDate := time.Now()
				if start != "" {
					parsed, err := time.Parse("2006-01-02", start)
					if err != nil {
						utils.Error("invalid --start date %q: %v", start, err)
						exit(1)
					}
					startDate = parsed
				}
				fmt.Print(samples.GanttTemplate(startDate, weeks))
			case typ == model.Flowchart && len(steps) > 0:
				fmt.Print(samples.FlowchartTemplate(direction, steps))
			default:
				src := samples.Sample(typ)
				if src == "" {
					utils.Error("no sample for diagram type %q (want mindmap, gantt or flowchart)", typ)
					exit(1)
				}
				fmt.Print(src)
			}
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "generate a mindmap template around this central theme")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "generate a gantt template spanning this many weeks")
	cmd.Flags().StringVar(&start, "start", "", "start date for the gantt template (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&direction, "direction", "TD", "flow direction for the flowchart template")
	cmd.Flags().StringSliceVar(&steps, "steps", nil, "generate a flowchart template from these steps; suffix a step with ? for a decision")
	cmd.Flags().StringVar(&workflow, "workflow", "", "generate a workflow flowchart: "+strings.Join(samples.WorkflowKinds(), ", "))
	return cmd
}
