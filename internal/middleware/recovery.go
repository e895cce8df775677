// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a handler panic into a logged 500 JSON error. When the
// handler had already started its response only the log line is written,
// since a second status cannot be sent. http.ErrAbortHandler is re-raised
// so net/http can drop the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := newStatusRecorder(w)
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}

			slog.Error("handler panicked",
				"panic", v,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestIDFromCtx(r.Context()),
				"committed", rec.committed(),
				"stack", string(debug.Stack()),
			)
			if !rec.committed() {
				writeError(rec, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
