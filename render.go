package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"bizstats/domain/models"
)

const (
	chartWidth  = "900px"
	chartHeight = "520px"
)

// BuildChart turns one pipeline result into its chart: a world map for
// category counts, a bar chart for label/rate series.
func BuildChart(result *PipelineResult) (components.Charter, error) {
	switch result.Pipeline.Mode {
	case models.ModeCountByCategory:
		return BuildWorldMap(result), nil
	case models.ModeLabelRate:
		return BuildRateBar(result), nil
	}
	return nil, fmt.Errorf("no chart builder for mode %q", result.Pipeline.Mode)
}

// BuildWorldMap renders category counts onto the ECharts world map. Geometry,
// styling and resize are all ECharts' problem; we only hand it names the map
// vocabulary knows, which is what the normalization table is for.
func BuildWorldMap(result *PipelineResult) *charts.Map {
	m := charts.NewMap()
	m.RegisterMapType("world")

	maxCount := 0
	data := make([]opts.MapData, 0, len(result.Counts))
	for _, c := range result.Counts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
		data = append(data, opts.MapData{Name: c.Category, Value: c.Count})
	}

	m.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: result.Pipeline.ElementID,
			Width:   chartWidth,
			Height:  chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: result.Pipeline.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c}",
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			InRange:    &opts.VisualMapInRange{Color: []string{"#e0f3f8", "#0868ac"}},
		}),
	)
	m.AddSeries("公司数量", data)
	return m
}

// BuildRateBar renders the label/percent series as a bar chart, preserving
// the row order of the source file.
func BuildRateBar(result *PipelineResult) *charts.Bar {
	labels := make([]string, 0, len(result.Rates))
	data := make([]opts.BarData, 0, len(result.Rates))
	for _, e := range result.Rates {
		labels = append(labels, e.Label)
		data = append(data, opts.BarData{Value: e.Percent})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: result.Pipeline.ElementID,
			Width:   chartWidth,
			Height:  chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: result.Pipeline.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c}%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45, Interval: "0"},
		}),
	)
	bar.SetXAxis(labels).AddSeries("平均利润率", data)
	return bar
}

// BuildCountBar is the chart for ad-hoc uploads: counts per category as bars,
// most frequent first.
func BuildCountBar(title, chartID string, counts []models.CategoryCount) *charts.Bar {
	labels := make([]string, 0, len(counts))
	data := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Category)
		data = append(data, opts.BarData{Value: c.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: chartID,
			Width:   chartWidth,
			Height:  chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c}",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 45, Interval: "0"},
		}),
	)
	bar.SetXAxis(labels).AddSeries("count", data)
	return bar
}

// RenderDashboard assembles every successful pipeline into one page. A failed
// pipeline is skipped and reported back; only when every pipeline fails is
// the whole render an error.
func RenderDashboard(w io.Writer, dataDir string, pipelines []Pipeline, strict bool) (map[string]error, error) {
	failures := map[string]error{}
	page := components.NewPage()
	page.PageTitle = "业务统计看板"

	rendered := 0
	for _, p := range pipelines {
		result, err := RunPipeline(dataDir, p, strict)
		if err != nil {
			failures[p.Title] = err
			continue
		}
		chart, err := BuildChart(result)
		if err != nil {
			failures[p.Title] = err
			continue
		}
		page.AddCharts(chart)
		rendered++
	}
	if rendered == 0 {
		return failures, fmt.Errorf("no pipeline produced a chart")
	}
	return failures, page.Render(w)
}
