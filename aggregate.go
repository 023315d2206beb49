package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"bizstats/domain/models"
)

// CountByCategory tallies how many rows carry each value of keyColumn. Rows
// with an absent or empty key are skipped. Categories appear dynamically from
// the data, there is no fixed universe, and the result does not depend on row
// order.
func CountByCategory(rows []models.Row, keyColumn string) map[string]int {
	counts := map[string]int{}
	for _, row := range rows {
		key := row[keyColumn]
		if key == "" {
			continue
		}
		counts[key]++
	}
	return counts
}

// SortedCounts flattens a count map into category/count pairs ordered by
// count descending, ties by label, so tables and charts are deterministic.
func SortedCounts(counts map[string]int) []models.CategoryCount {
	result := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// ExtractRates reads labelColumn verbatim and valueColumn as a fraction,
// scaling it to a percent rounded to 2 decimals ("0.055" becomes 5.50). Row
// order is preserved. An unparsable value cell fails the extraction in strict
// mode; in lenient mode the row is skipped and recorded in the report.
func ExtractRates(rows []models.Row, labelColumn, valueColumn string, strict bool, report *models.ParseReport) ([]models.RateEntry, error) {
	entries := []models.RateEntry{}
	for i, row := range rows {
		label := row[labelColumn]
		value, err := strconv.ParseFloat(row[valueColumn], 64)
		if err != nil {
			if strict {
				return nil, fmt.Errorf("row %d (%q): bad rate value %q", i+1, label, row[valueColumn])
			}
			if report != nil {
				report.SkippedRates++
				report.SkippedLabels = append(report.SkippedLabels, label)
			}
			continue
		}
		entries = append(entries, models.RateEntry{
			Label:   label,
			Percent: math.Round(value*100*100) / 100,
		})
	}
	return entries, nil
}

// FormatPercent renders a percent with the fixed 2-decimal formatting the
// dashboard uses everywhere: 5.5 -> "5.50".
func FormatPercent(percent float64) string {
	return strconv.FormatFloat(percent, 'f', 2, 64)
}

func SummarizeRates(entries []models.RateEntry) models.RateSummary {
	if len(entries) == 0 {
		return models.RateSummary{}
	}
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Percent
	}
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return models.RateSummary{
		Count:  len(entries),
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
	}
}
