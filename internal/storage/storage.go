// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage stores uploaded files on local disk or in S3-compatible
// object storage and serves them under /uploads/.
package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// PublicPrefix is the URL path prefix under which uploads are served.
const PublicPrefix = "/uploads/"

// Backend stores flat, uniquely named upload objects.
type Backend interface {
	// Save writes r under name.
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	// Delete removes name. A missing object yields an error wrapping fs.ErrNotExist
	// where the backend can tell.
	Delete(ctx context.Context, name string) error
	// Handler serves GET requests for object names with PublicPrefix stripped.
	Handler() http.Handler
}

var (
	// ErrOutsideUploads is returned when a delete targets a path that is not an upload.
	ErrOutsideUploads = errors.New("path is outside the uploads directory")
	// ErrTooLarge is returned when an upload exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrTypeNotAllowed is returned for content types that may not be uploaded.
	ErrTypeNotAllowed = errors.New("file type not allowed")
)
