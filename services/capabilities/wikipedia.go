// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package capabilities

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WikipediaLookup resolves claims against the MediaWiki REST summary API.
type WikipediaLookup struct {
	httpClient HTTPClient
	baseURL    string
}

// wikipediaSummaryResponse is the subset of the REST summary body we read.
type wikipediaSummaryResponse struct {
	Type    string `json:"type"`
	Extract string `json:"extract"`
}

// NewWikipediaLookup builds the lookup client. WIKIPEDIA_API_URL_BASE
// overrides the public endpoint (used for tests and mirrors).
func NewWikipediaLookup() *WikipediaLookup {
	baseURL := os.Getenv("WIKIPEDIA_API_URL_BASE")
	if baseURL == "" {
		baseURL = "https://en.wikipedia.org"
	}
	return &WikipediaLookup{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Lookup implements the KnowledgeLookup interface.
//
// A 404 maps to LookupNotFound and a disambiguation page to
// LookupAmbiguous; both are outcomes, not errors. Anything the endpoint
// does unexpectedly is returned as an error for the fact chain to absorb.
func (w *WikipediaLookup) Lookup(ctx context.Context, query string) (*LookupResult, error) {
	endpoint := w.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build the summary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Debug("Querying the encyclopedia summary endpoint", "query", query)
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &LookupResult{Kind: LookupNotFound}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("summary endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the summary response: %w", err)
	}
	var summary wikipediaSummaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse the summary response: %w", err)
	}

	if summary.Type == "disambiguation" {
		return &LookupResult{Kind: LookupAmbiguous}, nil
	}
	extract := strings.TrimSpace(summary.Extract)
	if extract == "" {
		return &LookupResult{Kind: LookupNotFound}, nil
	}
	return &LookupResult{
		Kind:    LookupMatch,
		Summary: FirstSentences(extract, 2),
	}, nil
}

// FirstSentences returns the first n sentences of text, where a sentence
// ends at '.', '!' or '?' followed by whitespace or end of text.
func FirstSentences(text string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 == len(text) {
				return text
			}
			if text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t' {
				count++
				if count == n {
					return text[:i+1]
				}
			}
		}
	}
	return text
}
