// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers provides HTTP request handlers for the verifier
// service.
//
// Every verification endpoint replies with HTTP 200 and a status
// envelope: successful bodies carry "status": "success" alongside the
// result fields, failures carry {"status": "error", "message": ...}.
// Clients branch on the envelope, never on the HTTP status code.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/observability"
)

var handlerTracer = otel.Tracer("truthguard.verifier.handlers")

// metricEndpoint aliases the metrics label type to keep handler
// signatures short.
type metricEndpoint = observability.Endpoint

// uploadFieldName is the multipart form field carrying the media file.
const uploadFieldName = "file"

var metricsOnce sync.Once

// activeMetrics returns the process-wide metrics, initializing them on
// first use so handlers stay usable outside the full server bootstrap.
func activeMetrics() *observability.VerificationMetrics {
	metricsOnce.Do(func() {
		if observability.DefaultMetrics == nil {
			observability.InitMetrics()
		}
	})
	return observability.DefaultMetrics
}

// readUpload pulls the media bytes out of the request: the multipart
// "file" field when present, otherwise the raw request body.
func readUpload(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile(uploadFieldName)
	if err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return nil, &validationError{msg: fmt.Sprintf("failed to open the uploaded file: %v", err)}
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, &validationError{msg: fmt.Sprintf("failed to read the uploaded file: %v", err)}
		}
		return data, nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, &validationError{msg: fmt.Sprintf("failed to read the request body: %v", err)}
	}
	if len(data) == 0 {
		return nil, &validationError{msg: "no media content in the request"}
	}
	return data, nil
}

// validationError reports a malformed request before the pipeline runs.
type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

// respondOutcome flattens the result struct into the success envelope.
func respondOutcome(c *gin.Context, endpoint metricEndpoint, outcome any) {
	raw, err := json.Marshal(outcome)
	if err != nil {
		respondError(c, endpoint, err)
		return
	}
	body := gin.H{}
	if err := json.Unmarshal(raw, &body); err != nil {
		respondError(c, endpoint, err)
		return
	}
	body["status"] = "success"
	c.JSON(http.StatusOK, body)
}

// respondError renders the error envelope and records the categorized
// error metric. Always HTTP 200.
func respondError(c *gin.Context, endpoint metricEndpoint, err error) {
	code := classifyError(err)
	slog.Warn("Verification request failed",
		"endpoint", string(endpoint), "error_code", string(code), "error", err)
	activeMetrics().RecordError(endpoint, code)
	c.JSON(http.StatusOK, gin.H{
		"status":  "error",
		"message": errorMessage(err, code),
	})
}

// classifyError maps a pipeline failure onto its metrics error code.
func classifyError(err error) observability.ErrorCode {
	var ve *validationError
	switch {
	case datatypes.IsEmptyContent(err):
		return observability.ErrorCodeEmptyContent
	case datatypes.IsDecodeError(err):
		return observability.ErrorCodeDecode
	case datatypes.IsExternalToolError(err):
		return observability.ErrorCodeExternalTool
	case errors.As(err, &ve):
		return observability.ErrorCodeValidation
	default:
		return observability.ErrorCodeInternal
	}
}

// errorMessage picks the client-facing message. Typed pipeline errors
// surface verbatim; anything else gets the generic message so internal
// details never leak into the envelope.
func errorMessage(err error, code observability.ErrorCode) string {
	switch code {
	case observability.ErrorCodeEmptyContent,
		observability.ErrorCodeDecode,
		observability.ErrorCodeExternalTool,
		observability.ErrorCodeValidation:
		return err.Error()
	default:
		return "Verification failed"
	}
}
