// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package icons searches the devicon catalog for technology logos.
package icons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// MaxResults caps the number of icons returned by Search.
const MaxResults = 10

const iconURLFormat = "https://cdn.jsdelivr.net/gh/devicons/devicon@latest/icons/%s/%s-%s.svg"

// Icon is a search hit: a display name and the SVG URL of its logo.
type Icon struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// entry mirrors one element of devicon.json.
type entry struct {
	Name     string   `json:"name"`
	AltNames []string `json:"altnames"`
	Tags     []string `json:"tags"`
	Versions struct {
		SVG []string `json:"svg"`
	} `json:"versions"`
}

// Catalog fetches devicon.json on first use and keeps it for the lifetime of
// the process. A failed fetch is not remembered; the next search retries.
type Catalog struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	entries []entry
}

// NewCatalog creates a Catalog reading the devicon index from url.
func NewCatalog(url string) *Catalog {
	return &Catalog{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns up to MaxResults icons whose name, alternative name or tag
// contains q, case-insensitively. An empty query or an unreachable catalog
// yields an empty list.
func (c *Catalog) Search(ctx context.Context, q string) []Icon {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []Icon{}
	}

	entries, err := c.load(ctx)
	if err != nil {
		slog.Warn("icon catalog unavailable", "error", err)
		return []Icon{}
	}

	results := []Icon{}
	for _, e := range entries {
		if !e.matches(q) {
			continue
		}
		version := preferredVersion(e.Versions.SVG)
		if version == "" {
			continue
		}
		results = append(results, Icon{
			Name: e.Name,
			Icon: fmt.Sprintf(iconURLFormat, e.Name, e.Name, version),
		})
		if len(results) == MaxResults {
			break
		}
	}
	return results
}

// load returns the memoized catalog, fetching it if needed. The lock is held
// across the fetch so concurrent first searches issue a single request.
func (c *Catalog) load(ctx context.Context) ([]entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries != nil {
		return c.entries, nil
	}

	entries, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.entries = entries
	slog.Info("icon catalog loaded", "entries", len(entries))
	return entries, nil
}

func (c *Catalog) fetch(ctx context.Context) ([]entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("icon catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("icon catalog http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("icon catalog error (status %d): %s", resp.StatusCode, string(body))
	}

	entries := []entry{}
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("icon catalog decode: %w", err)
	}
	return entries, nil
}

func (e *entry) matches(q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	for _, s := range e.AltNames {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, s := range e.Tags {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// preferredVersion picks the "original" SVG variant, else the first one.
func preferredVersion(versions []string) string {
	for _, v := range versions {
		if v == "original" {
			return v
		}
	}
	if len(versions) > 0 {
		return versions[0]
	}
	return ""
}
