// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package capabilities

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLookup(t *testing.T, handler http.HandlerFunc) *WikipediaLookup {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("WIKIPEDIA_API_URL_BASE", server.URL)
	return NewWikipediaLookup()
}

func TestWikipediaLookup_Match(t *testing.T) {
	lookup := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/api/rest_v1/page/summary/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"standard","extract":"Karnataka is a state in ` +
			`southern India. It was formed in 1956. Its capital is Bengaluru."}`))
	})

	result, err := lookup.Lookup(context.Background(), "Karnataka")

	require.NoError(t, err)
	assert.Equal(t, LookupMatch, result.Kind)
	// Only the first two sentences survive.
	assert.Equal(t, "Karnataka is a state in southern India. It was formed in 1956.",
		result.Summary)
}

func TestWikipediaLookup_Disambiguation(t *testing.T) {
	lookup := newTestLookup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"type":"disambiguation","extract":"Mercury may refer to:"}`))
	})

	result, err := lookup.Lookup(context.Background(), "Mercury")

	require.NoError(t, err)
	assert.Equal(t, LookupAmbiguous, result.Kind)
	assert.Empty(t, result.Summary)
}

func TestWikipediaLookup_NotFound(t *testing.T) {
	lookup := newTestLookup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	result, err := lookup.Lookup(context.Background(), "xyzzy")

	require.NoError(t, err)
	assert.Equal(t, LookupNotFound, result.Kind)
}

func TestWikipediaLookup_EmptyExtractIsNotFound(t *testing.T) {
	lookup := newTestLookup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"type":"standard","extract":"  "}`))
	})

	result, err := lookup.Lookup(context.Background(), "blank page")

	require.NoError(t, err)
	assert.Equal(t, LookupNotFound, result.Kind)
}

func TestWikipediaLookup_ServerErrorIsError(t *testing.T) {
	lookup := newTestLookup(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := lookup.Lookup(context.Background(), "anything")

	assert.Error(t, err)
}

func TestWikipediaLookup_QueryIsPathEscaped(t *testing.T) {
	var gotPath string
	lookup := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"type":"standard","extract":"ok."}`))
	})

	_, err := lookup.Lookup(context.Background(), "sun rises in the east")

	require.NoError(t, err)
	assert.Equal(t, "/api/rest_v1/page/summary/sun%20rises%20in%20the%20east", gotPath)
}

func TestFirstSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"two of three", "One. Two. Three.", 2, "One. Two."},
		{"fewer than requested", "Only one here.", 3, "Only one here."},
		{"question and bang", "Really? Yes! Sure.", 2, "Really? Yes!"},
		{"dot without following space is not a boundary", "e.g.sample sentence. Next.", 1,
			"e.g.sample sentence."},
		{"zero sentences", "Anything.", 0, ""},
		{"no terminator", "no punctuation at all", 2, "no punctuation at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstSentences(tt.text, tt.n))
		})
	}
}
