// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespace matches runs of ASCII or Unicode spacing characters.
	whitespace = regexp.MustCompile(`[\s\p{Zs}]+`)
	// disallowed matches anything outside the slug alphabet.
	disallowed = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Front End & Design" → "front-end-design"
//
// The result only contains [a-z0-9_-], never starts or ends with a hyphen
// and never contains two hyphens in a row, so Generate(Generate(s)) equals
// Generate(s).
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespace.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
