package main

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	uuid "github.com/satori/go.uuid"

	"bizstats/config"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	cfg := config.GetConfig()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	failures, err := RenderDashboard(w, cfg.DataDir, DefaultPipelines(), cfg.Strict)
	for title, ferr := range failures {
		log.Printf("pipeline %s failed: %v", title, ferr)
	}
	if err != nil {
		http.Error(w, "Error rendering dashboard: "+err.Error(), http.StatusInternalServerError)
	}
}

func handleSummary(w http.ResponseWriter, r *http.Request) {
	cfg := config.GetConfig()
	results := []*PipelineResult{}
	failures := map[string]error{}
	for _, p := range DefaultPipelines() {
		result, err := RunPipeline(cfg.DataDir, p, cfg.Strict)
		if err != nil {
			failures[p.Title] = err
			continue
		}
		results = append(results, result)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, GenerateSummary(results, failures))
}

// handleUpload serves the upload form on GET and renders an ad-hoc
// count-by-category chart for an uploaded CSV on POST. Archived uploads
// (gzip, lz4, zip) are unpacked transparently.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		tmpl := template.Must(template.ParseFiles("upload.html"))
		if err := tmpl.Execute(w, nil); err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
		}
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	column := r.FormValue("column")
	if column == "" {
		http.Error(w, "Missing column field", http.StatusBadRequest)
		return
	}
	offset, _ := strconv.Atoi(r.FormValue("offset"))

	cfg := config.GetConfig()
	uid := uuid.NewV4()
	dir := filepath.Join(cfg.UploadDir, uid.String())
	os.MkdirAll(dir, 0755)
	filePath := filepath.Join(dir, header.Filename)
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error saving file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	_, err = io.Copy(dst, file)
	dst.Close()
	if err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusInternalServerError)
		return
	}
	data, err = decompress(header.Filename, data)
	if err != nil {
		http.Error(w, "Error unpacking file: "+err.Error(), http.StatusBadRequest)
		return
	}
	rows, report, err := ParseRows(string(data), offset, cfg.Strict)
	if err != nil {
		http.Error(w, "Error parsing CSV: "+err.Error(), http.StatusBadRequest)
		return
	}
	counts := SortedCounts(CountByCategory(rows, column))
	if len(counts) == 0 {
		http.Error(w, fmt.Sprintf("no values found in column %q", column), http.StatusBadRequest)
		return
	}
	if report.DroppedRows > 0 {
		log.Printf("upload %s: dropped %d malformed row(s), first at line %d", header.Filename, report.DroppedRows, report.FirstBadLine)
	}

	title := fmt.Sprintf("%s: %s", header.Filename, column)
	bar := BuildCountBar(title, slugify(header.Filename+"-"+column), counts)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(w); err != nil {
		log.Printf("render upload chart: %v", err)
	}
}

// slugify makes a CJK-safe ASCII identifier for chart element ids and
// snapshot filenames.
func slugify(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	mapper := func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}
	return strings.Trim(strings.Map(mapper, s), "-")
}
