package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// decompress unpacks gzip, lz4 and zip payloads by extension. Anything else
// passes through untouched. Sources stay on disk unchanged so the dashboard
// can re-read them on every refresh.
func decompress(path string, data []byte) ([]byte, error) {
	switch filepath.Ext(strings.ToLower(path)) {
	case ".gz":
		return unpackGzip(data)
	case ".lz4":
		return unpackLZ4(data)
	case ".zip":
		return unpackZip(data)
	}
	return data, nil
}

func unpackGzip(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return io.ReadAll(gr)
}

func unpackLZ4(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

// unpackZip extracts the largest file in the archive, same heuristic the
// upload flow always used: exports usually hold one big CSV next to junk.
func unpackZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	var largest *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > largestSize {
			largest = f
			largestSize = f.UncompressedSize64
		}
	}
	if largest == nil {
		return nil, fmt.Errorf("zip archive contains no files")
	}
	rc, err := largest.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
