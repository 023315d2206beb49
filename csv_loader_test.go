package main

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizstats/domain/models"
)

func TestParseRowsWellFormed(t *testing.T) {
	text := "公司,国家\n苹果,美国\n腾讯,中国\n"
	rows, report, err := ParseRows(text, 0, false)
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Contains(t, row, "公司")
		assert.Contains(t, row, "国家")
	}
	assert.Equal(t, "苹果", rows[0]["公司"])
	assert.Equal(t, "中国", rows[1]["国家"])
	assert.Equal(t, 0, report.DroppedRows)
}

func TestParseRowsDropsMalformedLenient(t *testing.T) {
	text := "a,b,c\n1,2,3\nonly,two\n4,5,6\n"
	rows, report, err := ParseRows(text, 0, false)
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "6", rows[1]["c"])
	assert.Equal(t, 1, report.DroppedRows)
	assert.Equal(t, 3, report.FirstBadLine)
}

func TestParseRowsStrictFailsOnMalformed(t *testing.T) {
	text := "a,b,c\n1,2,3\nonly,two\n"
	_, _, err := ParseRows(text, 0, true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestParseRowsHeaderOffset(t *testing.T) {
	text := "报表标题\n统计口径说明,含逗号\n行业,利润率\n半导体,0.22\n"
	rows, report, err := ParseRows(text, 2, false)
	require.NoError(t, err)

	// the two preamble lines are neither header nor data
	assert.Len(t, rows, 1)
	assert.Equal(t, "半导体", rows[0]["行业"])
	assert.Equal(t, "0.22", rows[0]["利润率"])
	assert.Equal(t, 0, report.DroppedRows)
	for _, row := range rows {
		assert.NotContains(t, row, "报表标题")
	}
}

func TestParseRowsQuotedComma(t *testing.T) {
	text := "name,desc\nacme,\"parts, tools\"\n"
	rows, _, err := ParseRows(text, 0, true)
	require.NoError(t, err)
	assert.Equal(t, "parts, tools", rows[0]["desc"])
}

func TestParseRowsOffsetOutOfRange(t *testing.T) {
	_, _, err := ParseRows("a,b\n1,2\n", 10, false)
	assert.Error(t, err)
}

func TestLoadSourceHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("国家\n中国\n美国\n"))
	}))
	defer server.Close()

	rows, _, err := LoadSource("", models.Source{Name: "remote", Path: server.URL}, false)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "中国", rows[0]["国家"])
}

func TestLoadSourceHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, _, err := LoadSource("", models.Source{Name: "missing", Path: server.URL}, false)
	assert.Error(t, err)
}

func TestLoadSourceGzipFile(t *testing.T) {
	dir := t.TempDir()
	buf := &bytes.Buffer{}
	gw := gzip.NewWriter(buf)
	gw.Write([]byte("国家\n日本\n"))
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src.csv.gz"), buf.Bytes(), 0644))

	rows, _, err := LoadSource(dir, models.Source{Name: "gz", Path: "src.csv.gz"}, false)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "日本", rows[0]["国家"])
}

func TestLoadSourceMissingFile(t *testing.T) {
	_, _, err := LoadSource(t.TempDir(), models.Source{Name: "nope", Path: "nope.csv"}, false)
	assert.Error(t, err)
}
