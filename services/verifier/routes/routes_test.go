// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"context"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard-ai/TruthGuardLocal/services/capabilities"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/auth"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/pipeline"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noopCapability struct{}

func (noopCapability) ClassifyText(_ context.Context, _ string) (float64, error) {
	return 0.5, nil
}

func (noopCapability) ClassifyImage(_ context.Context, _ image.Image) (float64, error) {
	return 0.5, nil
}

func (noopCapability) ClassifyAudio(_ context.Context, _ []float64, _ int) (float64, error) {
	return 0.5, nil
}

func (noopCapability) Transcribe(_ context.Context, _ []float64, _ int) (string, error) {
	return "", nil
}

func (noopCapability) ExtractText(_ context.Context, _ image.Image) (string, error) {
	return "", nil
}

func (noopCapability) Lookup(_ context.Context, _ string) (*capabilities.LookupResult, error) {
	return nil, errors.New("offline")
}

func newTestRouter(t *testing.T, authStore *auth.Store) *gin.Engine {
	t.Helper()
	noop := noopCapability{}
	svc := pipeline.New(&capabilities.Registry{
		Text:        noop,
		Image:       noop,
		Audio:       noop,
		Transcriber: noop,
		OCR:         noop,
		Knowledge:   noop,
	})

	router := gin.New()
	SetupRoutes(router, svc, authStore)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestSetupRoutes_OperationalEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	assert.Equal(t, http.StatusOK, get(router, "/").Code)
	assert.Equal(t, http.StatusOK, get(router, "/health").Code)

	metrics := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "go_goroutines")
}

func TestSetupRoutes_VerificationEndpointsAreMounted(t *testing.T) {
	router := newTestRouter(t, nil)

	paths := []string{
		"/verify",
		"/verify-image",
		"/extract-text",
		"/verify-image-text",
		"/verify-audio",
		"/verify-audio-text",
		"/verify-video",
		"/verify-video-text",
	}

	for _, path := range paths {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("x"))
		router.ServeHTTP(recorder, req)

		// Mounted endpoints answer 200 with the envelope regardless of
		// the payload; an unmounted one would be a 404.
		assert.Equal(t, http.StatusOK, recorder.Code, "path %s", path)
	}
}

func TestSetupRoutes_AuthUnmountedInLightweightMode(t *testing.T) {
	router := newTestRouter(t, nil)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"a","email":"a@b.c","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSetupRoutes_AuthMountedWithStore(t *testing.T) {
	store, err := auth.NewStore(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	router := newTestRouter(t, store)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "User registered successfully")
}
