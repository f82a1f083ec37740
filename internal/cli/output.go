package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/docstruct/batch"
	"github.com/tsawler/docstruct/layout"
	"github.com/tsawler/docstruct/model"
)

// traceTextWidth is the rune count of line text shown by classify
const traceTextWidth = 72

var (
	// dimStyle for muted labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for degraded conversions
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the batch summary
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	// headingStyle for heading rows in classify output
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// listStyle for list item rows in classify output
	listStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	posColumn  = lipgloss.NewStyle().Width(9)
	kindColumn = lipgloss.NewStyle().Width(7)
	ruleColumn = lipgloss.NewStyle().Width(20)
)

// renderSummary prints the totals of a batch run and lists the files that
// need attention
func renderSummary(w io.Writer, report *batch.Report) {
	status := successStyle.Render("OK")
	if !report.OK() {
		status = errorStyle.Render("FAILED")
	}

	line1 := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		dimStyle.Render("Converted:"), len(report.Succeeded()),
		dimStyle.Render("Degraded:"), len(report.Degraded()),
		dimStyle.Render("Failed:"), len(report.Failed()),
		dimStyle.Render("Skipped:"), len(report.Skipped()),
	)
	line2 := fmt.Sprintf("%s %d  %s %.1fs  %s",
		dimStyle.Render("Total:"), report.Total(),
		dimStyle.Render("Elapsed:"), report.Elapsed.Seconds(),
		status,
	)
	fmt.Fprintln(w, boxStyle.Render(line1+"\n"+line2))

	for _, res := range report.Degraded() {
		fmt.Fprintf(w, "%s %s %s\n", warnStyle.Render("!"), res.Source, dimStyle.Render("-> "+res.Output))
	}
	for _, res := range report.Failed() {
		fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Render("x"), res.Source, res.Err)
	}
}

// renderTrace prints one row per classified line
func renderTrace(w io.Writer, traces []layout.LineTrace, all bool) {
	for _, t := range traces {
		c := t.Classification
		if c.Kind == model.BlockBlank && !all {
			continue
		}

		pos := strconv.Itoa(t.Page+1) + ":" + strconv.Itoa(t.Line+1)
		kind, style := traceKind(c)
		fmt.Fprintf(w, "%s%s%s%s\n",
			posColumn.Render(dimStyle.Render(pos)),
			kindColumn.Render(style.Render(kind)),
			ruleColumn.Render(dimStyle.Render(c.Rule)),
			truncate(t.Text, traceTextWidth),
		)
	}
}

func traceKind(c layout.Classification) (string, lipgloss.Style) {
	switch c.Kind {
	case model.BlockHeading:
		return "H" + strconv.Itoa(c.Level), headingStyle
	case model.BlockListItem:
		return "list", listStyle
	case model.BlockBlank:
		return "blank", dimStyle
	default:
		return "prose", lipgloss.NewStyle()
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
