package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"bizstats/domain/models"
)

// GenerateSummary renders every pipeline result as an ASCII table, followed by
// the data-quality notes lenient parsing collected. Served on /summary and
// printed to the log at startup.
func GenerateSummary(results []*PipelineResult, failures map[string]error) string {
	buf := &strings.Builder{}

	for _, result := range results {
		buf.WriteString(result.Pipeline.Title + "\n")
		switch result.Pipeline.Mode {
		case models.ModeCountByCategory:
			buf.WriteString(generateCountTable(result.Counts))
		case models.ModeLabelRate:
			buf.WriteString(generateRateTable(result.Rates))
		}
		buf.WriteString("\n")
		writeReportNotes(buf, result.Report)
		buf.WriteString("\n")
	}

	for title, err := range failures {
		buf.WriteString(fmt.Sprintf("pipeline %s FAILED: %v\n", title, err))
	}
	return buf.String()
}

func generateCountTable(counts []models.CategoryCount) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Category", "Count"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Category, c.Count})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func generateRateTable(rates []models.RateEntry) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Label", "Rate %"})
	for _, e := range rates {
		t.AppendRow(table.Row{e.Label, FormatPercent(e.Percent)})
	}
	summary := SummarizeRates(rates)
	t.AppendFooter(table.Row{"mean", FormatPercent(summary.Mean)})
	t.AppendFooter(table.Row{"median", FormatPercent(summary.Median)})
	t.AppendFooter(table.Row{"min/max", FormatPercent(summary.Min) + " / " + FormatPercent(summary.Max)})
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

func writeReportNotes(buf *strings.Builder, report *models.ParseReport) {
	if report == nil {
		return
	}
	if report.DroppedRows > 0 {
		buf.WriteString(fmt.Sprintf("dropped %d malformed row(s), first at line %d\n", report.DroppedRows, report.FirstBadLine))
	}
	if report.SkippedRates > 0 {
		buf.WriteString(fmt.Sprintf("skipped %d unparsable rate cell(s): %s\n", report.SkippedRates, strings.Join(report.SkippedLabels, ", ")))
	}
	if len(report.Unmapped) > 0 {
		buf.WriteString(fmt.Sprintf("labels missing from the map vocabulary: %s\n", strings.Join(report.Unmapped, ", ")))
	}
}
