package models

type AggregateMode string

const (
	ModeCountByCategory AggregateMode = "count_by_category"
	ModeLabelRate       AggregateMode = "label_rate"
)

// Source describes one CSV resource. Path is either an http(s) URL or a file
// path resolved against the configured data directory. HeaderOffset raw lines
// are skipped before the header line (some exports carry preamble comments).
type Source struct {
	Name         string
	Path         string
	HeaderOffset int
}

// Row is one parsed CSV record keyed by header name. Values stay strings,
// numeric interpretation belongs to the aggregation step.
type Row map[string]string

// ParseReport collects the data quality outcomes of one load that lenient
// mode tolerates and strict mode turns into errors.
type ParseReport struct {
	TotalLines    int
	DroppedRows   int      // field count != header field count
	FirstBadLine  int      // 1-based line number of first dropped row, 0 if none
	SkippedRates  int      // unparsable numeric cells during rate extraction
	SkippedLabels []string // labels whose rate cell failed to parse
	Unmapped      []string // category labels the normalization table missed
}

type CategoryCount struct {
	Category string
	Count    int
}

// RateEntry is one bar of the rate chart. Percent is the source fraction
// multiplied by 100 and rounded to 2 decimals.
type RateEntry struct {
	Label   string
	Percent float64
}

type RateSummary struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}
