// Package upload stores employee images on disk. It mirrors the legacy
// uploader: unique timestamped filenames, jpg/jpeg/png only, and a hard
// size limit.
package upload

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidFileType = fmt.Errorf("invalid file type, only JPEG and PNG are allowed")
var ErrFileTooLarge = fmt.Errorf("file exceeds the maximum allowed size")

// Store writes uploaded files into a directory.
type Store struct {
	dir     string
	maxSize int64
	logger  *slog.Logger
}

func NewStore(dir string, maxSize int64, logger *slog.Logger) *Store {
	return &Store{
		dir:     dir,
		maxSize: maxSize,
		logger:  logger,
	}
}

// AllowedExt reports whether the filename carries an accepted image suffix.
func AllowedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// Save validates and persists the uploaded file, returning the stored
// filename for the employee image field.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if !AllowedExt(fh.Filename) {
		return "", ErrInvalidFileType
	}
	if fh.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize)); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info("stored uploaded image", "filename", name, "size", fh.Size)
	return name, nil
}

// Dir returns the storage directory, used to serve files statically.
func (s *Store) Dir() string {
	return s.dir
}
