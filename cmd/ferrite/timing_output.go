package main

import (
	"fmt"
	"io"

	"ferrite/internal/observ"
)

// printPassTimings renders one pass's phase report. Timings go to stderr
// so machine-readable stdout formats stay parseable.
func printPassTimings(out io.Writer, label string, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	if label != "" {
		fmt.Fprintf(out, "timings %s:\n", label)
	} else {
		fmt.Fprintln(out, "timings:")
	}
	for _, p := range report.Phases {
		note := ""
		if p.Note != "" {
			note = "  " + p.Note
		}
		fmt.Fprintf(out, "  %-10s %7.2f ms%s\n", p.Name, p.DurationMS, note)
	}
	fmt.Fprintf(out, "  %-10s %7.2f ms\n", "total", report.TotalMS)
}
