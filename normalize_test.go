package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizstats/domain/models"
)

func TestNormalizeCategory(t *testing.T) {
	name, ok := NormalizeCategory("中国")
	assert.True(t, ok)
	assert.Equal(t, "China", name)

	// substring match keeps working for decorated labels
	name, ok = NormalizeCategory("中国(上海)")
	assert.True(t, ok)
	assert.Equal(t, "China", name)

	// the more specific entry wins over its prefix
	name, ok = NormalizeCategory("中国台湾")
	assert.True(t, ok)
	assert.Equal(t, "Taiwan", name)
}

func TestNormalizeCategoryUnmappedPassesThrough(t *testing.T) {
	name, ok := NormalizeCategory("火星")
	assert.False(t, ok)
	assert.Equal(t, "火星", name)
}

func TestCountNormalized(t *testing.T) {
	rows := []models.Row{
		{"国家": "中国"},
		{"国家": "中国"},
		{"国家": "美国"},
	}
	report := &models.ParseReport{}
	counts := CountNormalized(rows, "国家", report)
	assert.Equal(t, map[string]int{"China": 2, "United States": 1}, counts)
	assert.Empty(t, report.Unmapped)
}

func TestCountNormalizedMergesLabels(t *testing.T) {
	rows := []models.Row{
		{"国家": "中国"},
		{"国家": "中国(深圳)"},
		{"国家": ""},
	}
	report := &models.ParseReport{}
	counts := CountNormalized(rows, "国家", report)

	assert.Equal(t, map[string]int{"China": 2}, counts)
	assert.Empty(t, report.Unmapped)
}

func TestCountNormalizedReportsUnmappedOnce(t *testing.T) {
	rows := []models.Row{
		{"国家": "火星"},
		{"国家": "中国"},
		{"国家": "火星"},
		{"国家": "月球"},
	}
	report := &models.ParseReport{}
	counts := CountNormalized(rows, "国家", report)

	// unmapped labels keep their original name and full count
	assert.Equal(t, 2, counts["火星"])
	assert.Equal(t, 1, counts["China"])
	// each unmapped label is reported once, no matter how many rows carry it
	assert.Equal(t, []string{"火星", "月球"}, report.Unmapped)
}
