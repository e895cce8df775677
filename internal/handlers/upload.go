// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"folio/internal/storage"
)

// Upload handles admin file uploads and deletions.
type Upload struct {
	uploads *storage.Uploads
}

// NewUpload creates an Upload handler group.
func NewUpload(uploads *storage.Uploads) *Upload {
	return &Upload{uploads: uploads}
}

// multipartOverhead leaves room for form boundaries and headers on top of
// the file size limit.
const multipartOverhead = 1 << 20

// Create stores the multipart "file" field and returns its public path.
func (u *Upload) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, u.uploads.MaxSize+multipartOverhead)
	if err := r.ParseMultipartForm(u.uploads.MaxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, storage.ErrTooLarge, "upload")
			return
		}
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	path, err := u.uploads.Save(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		respondError(w, err, "upload")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

type deleteUploadRequest struct {
	Path string `json:"path"`
}

// Delete removes a previously uploaded file. Only paths under uploads/ are accepted.
func (u *Upload) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteUploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "delete upload")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}
	if err := u.uploads.Delete(r.Context(), req.Path); err != nil {
		respondError(w, err, "delete upload")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
