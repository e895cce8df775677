// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DefaultMaxSize is the largest accepted upload (10 MB).
const DefaultMaxSize = 10 << 20

// allowedTypes maps each accepted MIME type to the file extensions that may
// carry it. The first extension is used when the client's does not match.
var allowedTypes = map[string][]string{
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/gif":       {".gif"},
	"image/webp":      {".webp"},
	"image/x-icon":    {".ico"},
	"image/svg+xml":   {".svg"},
	"application/pdf": {".pdf"},
}

// Uploads validates, names and stores uploaded files on a Backend.
type Uploads struct {
	backend Backend
	MaxSize int64
}

// NewUploads returns an Uploads service over backend.
func NewUploads(backend Backend) *Uploads {
	return &Uploads{backend: backend, MaxSize: DefaultMaxSize}
}

// Handler serves stored uploads. Mount it under PublicPrefix with the prefix stripped.
func (u *Uploads) Handler() http.Handler {
	return u.backend.Handler()
}

// Save sniffs the content type, stores the file as <uuid><ext> and returns
// its public path, e.g. /uploads/0b6f...e1.png.
func (u *Uploads) Save(ctx context.Context, filename string, file io.ReadSeeker, size int64) (string, error) {
	if size > u.MaxSize {
		return "", ErrTooLarge
	}

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := detectType(filename, sniff[:n])
	exts, ok := allowedTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTypeNotAllowed, contentType)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	// The stored extension decides how the file is served, so it must
	// agree with the sniffed content.
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(exts, ext) {
		ext = exts[0]
	}
	name := uuid.New().String() + ext

	if err := u.backend.Save(ctx, name, contentType, file, size); err != nil {
		return "", err
	}
	slog.Info("file uploaded", "name", name, "type", contentType, "size", size)
	return PublicPrefix + name, nil
}

// Delete removes a previously issued upload path. Only paths under
// uploads/ (leading slash optional) naming a single file are accepted. A
// file that is already gone is logged and treated as deleted.
func (u *Uploads) Delete(ctx context.Context, p string) error {
	name, ok := uploadName(p)
	if !ok {
		slog.Warn("refused to delete file outside uploads", "path", p)
		return ErrOutsideUploads
	}
	err := u.backend.Delete(ctx, name)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("upload not found for deletion", "path", p)
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("file deleted", "name", name)
	return nil
}

// uploadName extracts the stored object name from an upload path.
func uploadName(p string) (string, bool) {
	p = strings.TrimPrefix(p, "/")
	if !strings.HasPrefix(p, "uploads/") {
		return "", false
	}
	name := strings.TrimPrefix(p, "uploads/")
	if !validName(name) {
		return "", false
	}
	return name, true
}

// validName accepts a single non-hidden path element.
func validName(name string) bool {
	return name != "" &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.HasPrefix(name, ".") &&
		path.Clean(name) == name
}

// detectType sniffs the content type. DetectContentType reports SVG as XML
// or plain text, so the file extension decides for those.
func detectType(filename string, head []byte) string {
	contentType := http.DetectContentType(head)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.HasPrefix(contentType, "text/plain")) {
		return "image/svg+xml"
	}
	return contentType
}
