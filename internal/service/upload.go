package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deposito626-api/pkg/uid"
)

// allowed image extensions for product uploads.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadService stores product images on local disk and hands back the
// public URL they are served under.
type UploadService struct {
	dir     string
	baseURL string
}

// NewUploadService creates the upload directory if needed. baseURL is
// the public path prefix the router serves the directory under.
func NewUploadService(dir, baseURL string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &UploadService{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// SaveImage writes the uploaded file under a collision-free name of the
// form <unix millis>_<random>.<ext> and returns its public URL.
func (s *UploadService) SaveImage(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uid.Short(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
