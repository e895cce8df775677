// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// apiCSP forbids every active content type. Responses are JSON or uploaded
// files, and an uploaded SVG opened directly must not run script.
const apiCSP = "default-src 'none'; frame-ancestors 'none'; sandbox"

// hstsValue is sent only over HTTPS, directly or behind a TLS proxy.
const hstsValue = "max-age=31536000; includeSubDomains"

// SecureHeaders sets the response hardening headers for the API.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", apiCSP)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		// The portfolio frontend embeds uploads from another origin.
		h.Set("Cross-Origin-Resource-Policy", "cross-origin")
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", hstsValue)
		}

		next.ServeHTTP(w, r)
	})
}
