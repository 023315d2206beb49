package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"bizstats/config"
)

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	// run every pipeline once at startup so broken sources show up in the
	// log immediately, not on the first page view
	results := []*PipelineResult{}
	failures := map[string]error{}
	for _, p := range DefaultPipelines() {
		result, err := RunPipeline(cfg.DataDir, p, cfg.Strict)
		if err != nil {
			failures[p.Title] = err
			log.Printf("startup pipeline %s failed: %v", p.Title, err)
			continue
		}
		results = append(results, result)
	}
	fmt.Println(GenerateSummary(results, failures))
	notifyTelegram(cfg, results)

	http.HandleFunc("/", handleDashboard)
	http.HandleFunc("/summary", handleSummary)
	http.HandleFunc("/upload", handleUpload)

	go func() {
		for {
			time.Sleep(time.Minute)
			if err := removeOldFiles(cfg.UploadDir, time.Now().Add(-cfg.UploadTTL)); err != nil && !os.IsNotExist(err) {
				log.Printf("upload cleanup: %v", err)
			}
		}
	}()

	fmt.Println("listen on: http://localhost" + cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatalln("Error starting server:", err)
	}
}

// removeOldFiles deletes upload leftovers older than maxAge, recursing into
// per-session directories.
func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}
		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			fmt.Printf("Removed file: %s\n", filePath)
		}
	}

	return nil
}
