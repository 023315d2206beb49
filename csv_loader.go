package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"bizstats/domain/models"
)

const SEPARATOR = ','

// LoadSource fetches one CSV resource and parses it into rows. Compressed
// resources are recognized by extension and unpacked in memory first.
func LoadSource(dataDir string, src models.Source, strict bool) ([]models.Row, *models.ParseReport, error) {
	data, err := fetchSource(dataDir, src.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %v", src.Name, err)
	}
	data, err = decompress(src.Path, data)
	if err != nil {
		return nil, nil, fmt.Errorf("unpack %s: %v", src.Name, err)
	}
	rows, report, err := ParseRows(string(data), src.HeaderOffset, strict)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %v", src.Name, err)
	}
	return rows, report, nil
}

func fetchSource(dataDir, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
		}
		return io.ReadAll(resp.Body)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	return os.ReadFile(path)
}

// ParseRows decodes CSV text into rows keyed by header name. The first
// headerOffset raw lines are never treated as header or data. Every cell is
// trimmed. A data record whose field count differs from the header's is
// dropped in lenient mode and fails the parse in strict mode; either way the
// report carries the count and the first offending line.
func ParseRows(text string, headerOffset int, strict bool) ([]models.Row, *models.ParseReport, error) {
	lines := strings.Split(text, "\n")
	if headerOffset < 0 || headerOffset >= len(lines) {
		return nil, nil, fmt.Errorf("header offset %d out of range, file has %d lines", headerOffset, len(lines))
	}
	report := &models.ParseReport{TotalLines: len(lines)}

	r := csv.NewReader(strings.NewReader(strings.Join(lines[headerOffset:], "\n")))
	r.Comma = SEPARATOR
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read header: %v", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := []models.Row{}
	for recordNo := 1; ; recordNo++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %v", recordNo, err)
		}
		// 1-based line in the original file, counting the preamble and header
		lineNo := headerOffset + 1 + recordNo
		if len(record) != len(header) {
			if strict {
				return nil, nil, fmt.Errorf("line %d has %d fields, header has %d", lineNo, len(record), len(header))
			}
			report.DroppedRows++
			if report.FirstBadLine == 0 {
				report.FirstBadLine = lineNo
			}
			continue
		}
		row := models.Row{}
		for i, name := range header {
			row[name] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, report, nil
}
