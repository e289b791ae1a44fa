package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleSummaryWriter writes the run summary for humans.
type ConsoleSummaryWriter struct{}

// Write outputs the run summary to w.
func (cw *ConsoleSummaryWriter) Write(w io.Writer, report *RunReport) error {
	color.New(color.FgGreen).Fprintf(w, "Commit graph written to %s\n", report.ImagePath)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Repository:\t%s\n", report.RepoPath)
	fmt.Fprintf(tw, "Tag:\t%s\n", report.Tag)
	fmt.Fprintf(tw, "Commits:\t%d\n", report.Stats.Nodes)
	fmt.Fprintf(tw, "Edges:\t%d\n", report.Stats.Edges)
	if report.Stats.Dropped > 0 {
		fmt.Fprintf(tw, "Parents outside graph:\t%d\n", report.Stats.Dropped)
	}
	if report.DotKept {
		fmt.Fprintf(tw, "Graph description:\t%s\n", report.DotPath)
	}
	if report.JSONPath != "" {
		fmt.Fprintf(tw, "Graph JSON:\t%s\n", report.JSONPath)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Elapsed > 0 {
		color.New(color.FgYellow).Fprintf(w, "Completed in %s\n", report.Elapsed)
	}
	return nil
}
