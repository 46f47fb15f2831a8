package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"aquaroom/internal/pricing"

	"github.com/google/uuid"
)

// UploadService writes multipart uploads into the media directory and
// hands back site-relative URLs. It stands in for the object-storage
// gateway; the public URL prefix stays stable either way.
type UploadService struct {
	MediaDir string
	MaxBytes int64
}

func NewUploadService(mediaDir string) *UploadService {
	return &UploadService{MediaDir: mediaDir, MaxBytes: 5 << 20}
}

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

// Save stores one uploaded file under MediaDir/uploads and returns its
// public URL (/uploads/<name>).
func (s *UploadService) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.MaxBytes {
		return "", &pricing.ValidationError{Field: "file", Msg: fmt.Sprintf("exceeds %d bytes", s.MaxBytes)}
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", &pricing.ValidationError{Field: "file", Msg: "unsupported file type " + ext}
	}

	dir := filepath.Join(s.MediaDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// SaveAll stores a batch, stopping at the first failure.
func (s *UploadService) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		u, err := s.Save(fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}
