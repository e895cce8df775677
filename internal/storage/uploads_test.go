// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newLocalUploads(t *testing.T) (*Uploads, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	backend, err := NewLocal(dir)
	require.NoError(t, err)
	return NewUploads(backend), dir
}

func TestUploadsSaveLocal(t *testing.T) {
	u, dir := newLocalUploads(t)

	p, err := u.Save(context.Background(), "Logo.PNG", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "/uploads/"))
	assert.True(t, strings.HasSuffix(p, ".png"), "extension is lowercased")

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(p, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data, "full file is stored after sniffing")
}

func TestUploadsSaveDerivesExtension(t *testing.T) {
	u, _ := newLocalUploads(t)
	p, err := u.Save(context.Background(), "noext", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, ".png"))
}

func TestUploadsSaveExtensionFollowsContent(t *testing.T) {
	u, _ := newLocalUploads(t)
	ctx := context.Background()
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

	tests := []struct {
		filename string
		data     []byte
		want     string
	}{
		{"page.html", pngHeader, ".png"},
		{"photo.gif", pngHeader, ".png"},
		{"photo.JPEG", jpeg, ".jpeg"},
		{"photo.jpg", jpeg, ".jpg"},
		{"photo", jpeg, ".jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p, err := u.Save(ctx, tt.filename, bytes.NewReader(tt.data), int64(len(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Ext(p))
		})
	}
}

func TestUploadsSaveSVG(t *testing.T) {
	u, _ := newLocalUploads(t)
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	p, err := u.Save(context.Background(), "icon.svg", bytes.NewReader(svg), int64(len(svg)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, ".svg"))
}

func TestUploadsSaveRejects(t *testing.T) {
	u, _ := newLocalUploads(t)
	ctx := context.Background()

	script := []byte("#!/bin/sh\necho pwned\n")
	_, err := u.Save(ctx, "run.sh", bytes.NewReader(script), int64(len(script)))
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	u.MaxSize = 4
	_, err = u.Save(ctx, "big.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUploadsDelete(t *testing.T) {
	u, dir := newLocalUploads(t)
	ctx := context.Background()

	p, err := u.Save(ctx, "a.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)

	require.NoError(t, u.Delete(ctx, p))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(p, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, u.Delete(ctx, strings.TrimPrefix(p, "/")), "missing file is not an error")
}

func TestUploadsDeleteOutsideUploads(t *testing.T) {
	u, dir := newLocalUploads(t)
	secret := filepath.Join(filepath.Dir(dir), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("x"), 0o600))

	for _, p := range []string{
		"",
		"/etc/passwd",
		"secret.txt",
		"uploads/../secret.txt",
		"/uploads/../../secret.txt",
		"uploads/",
		"uploads/sub/dir.png",
		"uploads/.hidden",
		"/static/uploads/a.png",
	} {
		assert.ErrorIs(t, u.Delete(context.Background(), p), ErrOutsideUploads, p)
	}

	_, err := os.Stat(secret)
	assert.NoError(t, err, "file outside uploads survives")
}

func TestLocalHandler(t *testing.T) {
	u, _ := newLocalUploads(t)
	p, err := u.Save(context.Background(), "a.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)

	srv := http.StripPrefix(PublicPrefix, u.Handler())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, pngHeader, body)

	for _, bad := range []string{"/uploads/", "/uploads/missing.png", "/uploads/.upload-123"} {
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, bad, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, bad)
	}
}

func TestNewS3Disabled(t *testing.T) {
	c, err := NewS3("", "us-east-1", "", "", "bucket", "")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestS3FileURLAndRedirect(t *testing.T) {
	c, err := NewS3("https://s3.example.com/", "us-east-1", "key", "secret", "folio", "")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/folio/uploads/a.png", c.FileURL("a.png"))

	cdn, err := NewS3("https://s3.example.com", "us-east-1", "key", "secret", "folio", "https://cdn.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/a.png", cdn.FileURL("a.png"))

	rec := httptest.NewRecorder()
	http.StripPrefix(PublicPrefix, cdn.Handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.example.com/uploads/a.png", rec.Header().Get("Location"))
}

func TestDetectType(t *testing.T) {
	assert.Equal(t, "image/png", detectType("x.png", pngHeader))
	assert.Equal(t, "application/pdf", detectType("doc.pdf", []byte("%PDF-1.7\n")))
	assert.Equal(t, "image/svg+xml", detectType("x.svg", []byte("<svg></svg>")))
}
