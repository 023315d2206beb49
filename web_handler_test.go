package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// config is a singleton; point uploads at a scratch dir before any
	// handler test initializes it
	os.Setenv("UPLOAD_DIR", filepath.Join(os.TempDir(), "bizstats_test_uploads"))
}

func TestHandleDashboard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handleDashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "world")
}

func TestHandleDashboardUnknownPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	handleDashboard(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleSummary(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	w := httptest.NewRecorder()
	handleSummary(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "China")
}

func TestHandleUploadForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	w := httptest.NewRecorder()
	handleUpload(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "multipart/form-data")
}

func TestHandleUploadChart(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "companies.csv")
	require.NoError(t, err)
	fw.Write([]byte("公司,国家\n苹果,美国\n腾讯,中国\n阿里,中国\n"))
	mw.WriteField("column", "国家")
	mw.WriteField("offset", "0")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	handleUpload(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "中国")
}

func TestHandleUploadMissingColumn(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, _ := mw.CreateFormFile("file", "companies.csv")
	fw.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	handleUpload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "zhong-guo", slugify("中国"))
	assert.Equal(t, "companies-csv", slugify("companies.csv"))
	assert.NotContains(t, slugify("行业(个人观点)"), "(")
}
