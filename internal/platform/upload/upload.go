// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

// Package upload handles multipart image uploads for the book catalogue.
//
// # Architecture
//
// Files are stored on local disk under a configured directory and served
// statically by the HTTP server under /uploads. Only image content types
// are accepted and individual files are capped at a fixed size.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookhaven/api/internal/platform/apperr"
	"github.com/bookhaven/api/internal/platform/constants"
)

// Saver writes uploaded files into a single base directory.
type Saver struct {
	dir string
}

// NewSaver ensures the upload directory exists and returns a ready Saver.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: failed to create directory %s: %w", dir, err)
	}
	return &Saver{dir: dir}, nil
}

// SaveImage persists a single uploaded image and returns its public URL path.
//
// # Validation
//   - Content type must start with "image/".
//   - File size must not exceed [constants.MaxUploadFileSize].
//
// The stored filename is prefixed with a unix-millisecond timestamp so
// repeated uploads of the same file never collide.
func (s *Saver) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > constants.MaxUploadFileSize {
		return "", apperr.BadRequest("FILE_TOO_LARGE", "Image exceeds the maximum allowed size")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperr.BadRequest("INVALID_FILE_TYPE", "Only image files are allowed")
	}

	source, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("upload: failed to open multipart file: %w", err)
	}
	defer func() { _ = source.Close() }()

	filename := buildFilename(fileHeader.Filename)
	destinationPath := filepath.Join(s.dir, filename)

	destination, err := os.Create(destinationPath)
	if err != nil {
		return "", fmt.Errorf("upload: failed to create file %s: %w", destinationPath, err)
	}
	defer func() { _ = destination.Close() }()

	if _, err := io.Copy(destination, io.LimitReader(source, constants.MaxUploadFileSize)); err != nil {
		return "", fmt.Errorf("upload: failed to write file %s: %w", destinationPath, err)
	}

	return "/uploads/" + filename, nil
}

// buildFilename normalizes the original name and prefixes a timestamp.
func buildFilename(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.ToLower(strings.ReplaceAll(base, " ", "-"))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), base, ext)
}
