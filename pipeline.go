package main

import (
	"fmt"

	"bizstats/domain/models"
)

// Pipeline ties one CSV source to one aggregation mode and one render target.
// The dashboard is just the list returned by DefaultPipelines processed by
// RunPipeline; adding a chart means adding an entry here.
type Pipeline struct {
	Title     string
	ElementID string
	Source    models.Source
	Mode      models.AggregateMode

	// KeyColumn feeds count-by-category, LabelColumn/ValueColumn feed
	// label-rate extraction.
	KeyColumn   string
	LabelColumn string
	ValueColumn string

	// Normalize rewrites category labels to the map vocabulary before
	// counting is finalized.
	Normalize bool
}

type PipelineResult struct {
	Pipeline Pipeline
	Counts   []models.CategoryCount
	Rates    []models.RateEntry
	Report   *models.ParseReport
}

// DefaultPipelines returns the two built-in charts: where the companies in
// 公司.csv sit on the world map, and the average profit rate per industry from
// the summary file. The summary export carries two comment lines before its
// header, hence the offset; its 公司数量 column is not consumed.
func DefaultPipelines() []Pipeline {
	return []Pipeline{
		{
			Title:     "公司所在国家分布",
			ElementID: "world-map",
			Source:    models.Source{Name: "companies", Path: "公司.csv", HeaderOffset: 0},
			Mode:      models.ModeCountByCategory,
			KeyColumn: "国家",
			Normalize: true,
		},
		{
			Title:       "各行业平均利润率 (%)",
			ElementID:   "industry-bar",
			Source:      models.Source{Name: "industries", Path: "行业龙头公司汇总.csv", HeaderOffset: 2},
			Mode:        models.ModeLabelRate,
			LabelColumn: "行业(个人观点)",
			ValueColumn: "平均利润率",
		},
	}
}

// RunPipeline is the driver for one chart: fetch, parse, aggregate, normalize.
// A failure here fails this pipeline only, the others keep rendering.
func RunPipeline(dataDir string, p Pipeline, strict bool) (*PipelineResult, error) {
	rows, report, err := LoadSource(dataDir, p.Source, strict)
	if err != nil {
		return nil, err
	}
	result := &PipelineResult{Pipeline: p, Report: report}

	switch p.Mode {
	case models.ModeCountByCategory:
		var counts map[string]int
		if p.Normalize {
			counts = CountNormalized(rows, p.KeyColumn, report)
		} else {
			counts = CountByCategory(rows, p.KeyColumn)
		}
		result.Counts = SortedCounts(counts)
	case models.ModeLabelRate:
		rates, err := ExtractRates(rows, p.LabelColumn, p.ValueColumn, strict, report)
		if err != nil {
			return nil, fmt.Errorf("pipeline %s: %v", p.Title, err)
		}
		result.Rates = rates
	default:
		return nil, fmt.Errorf("pipeline %s: unknown aggregate mode %q", p.Title, p.Mode)
	}
	return result, nil
}
