package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// PrintResults writes a table with one row for every test that was started, followed by a
// one-line total.
func PrintResults(out io.Writer, results Results) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Test", "Result", "Details"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	var passed, skipped int
	for _, r := range results.Tests {
		var outcome, details string
		switch {
		case r.Skipped:
			outcome, details = "SKIPPED", r.SkipReason
			skipped++
		case r.Failed():
			outcome, details = "FAILED", strings.ReplaceAll(r.Message(), "\n", " ")
		default:
			outcome = "PASSED"
			passed++
		}
		table.Append([]string{r.TestID.String(), outcome, details})
	}
	table.Render()

	fmt.Fprintf(out, "%d passed, %d failed, %d skipped\n", passed, len(results.Failures), skipped)
}
