package main

import (
	"strings"

	"github.com/pivolan/go_utils"

	"bizstats/domain/models"
)

// countryRewrites maps source-locale country labels to the vocabulary of the
// ECharts world map. Matching is by substring so labels like "中国(上海)" still
// resolve; more specific entries must come before their prefixes, which is why
// this is an ordered slice and not a map. The table is open-ended, extend it
// as new labels show up in the data.
var countryRewrites = []struct {
	Substr  string
	MapName string
}{
	{"中国台湾", "Taiwan"},
	{"中国香港", "Hong Kong"},
	{"中国", "China"},
	{"美国", "United States"},
	{"日本", "Japan"},
	{"韩国", "Korea"},
	{"德国", "Germany"},
	{"法国", "France"},
	{"英国", "United Kingdom"},
	{"瑞士", "Switzerland"},
	{"瑞典", "Sweden"},
	{"荷兰", "Netherlands"},
	{"丹麦", "Denmark"},
	{"芬兰", "Finland"},
	{"挪威", "Norway"},
	{"爱尔兰", "Ireland"},
	{"比利时", "Belgium"},
	{"西班牙", "Spain"},
	{"意大利", "Italy"},
	{"奥地利", "Austria"},
	{"加拿大", "Canada"},
	{"澳大利亚", "Australia"},
	{"新加坡", "Singapore"},
	{"印度", "India"},
	{"俄罗斯", "Russia"},
	{"巴西", "Brazil"},
	{"沙特", "Saudi Arabia"},
}

// NormalizeCategory translates one source label to its map name. Unmapped
// labels pass through unchanged; the second return reports whether a rewrite
// matched so callers can surface the misses instead of silently dropping
// countries off the map.
func NormalizeCategory(label string) (string, bool) {
	for _, rw := range countryRewrites {
		if strings.Contains(label, rw.Substr) {
			return rw.MapName, true
		}
	}
	return label, false
}

// CountNormalized tallies rows by the normalized value of keyColumn, merging
// counts when two source labels resolve to the same map name. An unmapped
// label usually sits on many rows, so it is recorded in report.Unmapped only
// the first time it shows up.
func CountNormalized(rows []models.Row, keyColumn string, report *models.ParseReport) map[string]int {
	counts := map[string]int{}
	for _, row := range rows {
		label := row[keyColumn]
		if label == "" {
			continue
		}
		name, ok := NormalizeCategory(label)
		if !ok && report != nil && !go_utils.InArray(label, report.Unmapped) {
			report.Unmapped = append(report.Unmapped, label)
		}
		counts[name]++
	}
	return counts
}
