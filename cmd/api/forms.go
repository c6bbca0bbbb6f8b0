package main

import (
	"fmt"
	"io"
	"net/http"

	"shopadmin/internal/objectstore"
)

const (
	maxUploadBytes = 50 << 20 // 50MB across all images
	maxMemoryBytes = 32 << 20
)

// parseCatalogForm decodes the form values into dst and reads the "images"
// files into memory.
func parseCatalogForm(w http.ResponseWriter, r *http.Request, dst any) ([]objectstore.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	if err := formDecoder.Decode(dst, r.MultipartForm.Value); err != nil {
		return nil, fmt.Errorf("invalid form values: %w", err)
	}

	headers := r.MultipartForm.File["images"]
	files := make([]objectstore.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		files = append(files, objectstore.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}
