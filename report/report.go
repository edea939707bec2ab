// Package report formats benchmark outcomes into per-backend summaries
// and a cross-backend comparison table.
package report

import (
	"fmt"
	"io"

	"dbbench/harness"
)

// Write renders one section per backend in run order, then a
// comparison table over the backends that completed.
func Write(w io.Writer, outcomes []harness.Outcome) {
	for _, o := range outcomes {
		fmt.Fprintf(w, "\n--- %s Results ---\n", o.Backend)

		if o.Err != nil {
			fmt.Fprintf(w, "skipped: %v\n", o.Err)
			continue
		}
		for _, op := range o.Result.Operations {
			fmt.Fprintf(w, "%s: %.2f ms\n", op, o.Result.DurationsMs[op])
		}
	}

	writeTable(w, outcomes)
}

func writeTable(w io.Writer, outcomes []harness.Outcome) {
	var completed []harness.Outcome
	for _, o := range outcomes {
		if o.Err == nil {
			completed = append(completed, o)
		}
	}
	if len(completed) == 0 {
		return
	}

	fmt.Fprintf(w, "\n| Operation |")
	for _, o := range completed {
		fmt.Fprintf(w, " %s |", o.Backend)
	}
	fmt.Fprintf(w, "\n|-----------|")
	for range completed {
		fmt.Fprintf(w, "---------|")
	}
	fmt.Fprintln(w)

	for _, op := range harness.Operations {
		fmt.Fprintf(w, "| %s |", op)
		for _, o := range completed {
			fmt.Fprintf(w, " %.2f ms |", o.Result.DurationsMs[op])
		}
		fmt.Fprintln(w)
	}
}
