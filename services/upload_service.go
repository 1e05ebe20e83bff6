package services

import (
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"quotation-backend/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const pdfMimeType = "application/pdf"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadService stores uploaded PDFs in a local directory until the request
// that received them is done with them.
type UploadService struct {
	dir      string
	maxBytes int64
}

func NewUploadService(dir string, maxBytes int64) *UploadService {
	return &UploadService{dir: dir, maxBytes: maxBytes}
}

// Save validates the declared type and size, writes the file under a unique
// name and checks that the bytes really are a PDF. Any file written before a
// failure is removed again.
func (s *UploadService) Save(fh *multipart.FileHeader) (*models.UploadedFile, error) {
	declared := fh.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(declared); err != nil || mediaType != pdfMimeType {
		return nil, fmt.Errorf("declared type %q: %w", declared, models.ErrNotPDF)
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, fmt.Errorf("%d bytes exceeds %d: %w", fh.Size, s.maxBytes, models.ErrFileTooLarge)
	}

	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve upload directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create directory %s: %w", dir, err)
	}

	original := filepath.Base(fh.Filename)
	uniqueName := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], sanitizeFilename(original))
	upload := &models.UploadedFile{
		Filename:     uniqueName,
		Path:         filepath.Join(dir, uniqueName),
		MimeType:     pdfMimeType,
		OriginalName: original,
	}

	size, err := copyUpload(fh, upload.Path)
	if err != nil {
		upload.Remove()
		return nil, err
	}
	upload.Size = size

	detected, err := mimetype.DetectFile(upload.Path)
	if err != nil {
		upload.Remove()
		return nil, fmt.Errorf("unable to inspect upload: %w", err)
	}
	if !detected.Is(pdfMimeType) {
		upload.Remove()
		return nil, fmt.Errorf("content is %s: %w", detected.String(), models.ErrNotPDF)
	}

	return upload, nil
}

func copyUpload(fh *multipart.FileHeader, dstPath string) (int64, error) {
	src, err := fh.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("unable to create the file: %w", err)
	}

	n, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("unable to save the file: %w", err)
	}
	return n, nil
}

func sanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload.pdf"
	}
	return name
}

// SweepStale removes regular files in the upload directory older than maxAge.
// Requests always remove their own file; this only catches files left behind
// by a crash.
func (s *UploadService) SweepStale(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("unable to read upload directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("upload sweep: failed to remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
