// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// handleMedia is the shared skeleton for the upload endpoints: read the
// media bytes, run one pipeline operation, render the envelope, record
// the request metrics.
func handleMedia(endpoint metricEndpoint, spanName string,
	run func(ctx context.Context, data []byte) (any, error)) gin.HandlerFunc {

	return func(c *gin.Context) {
		metrics := activeMetrics()
		metrics.RequestStarted(endpoint)
		defer metrics.RequestEnded(endpoint)
		start := time.Now()

		ctx, span := handlerTracer.Start(c.Request.Context(), spanName)
		defer span.End()

		data, err := readUpload(c)
		if err != nil {
			respondError(c, endpoint, err)
			metrics.RecordRequest(endpoint, false, time.Since(start).Seconds())
			return
		}
		span.SetAttributes(attribute.Int("upload.bytes", len(data)))

		outcome, err := run(ctx, data)
		if err != nil {
			respondError(c, endpoint, err)
			metrics.RecordRequest(endpoint, false, time.Since(start).Seconds())
			return
		}
		respondOutcome(c, endpoint, outcome)
		metrics.RecordRequest(endpoint, true, time.Since(start).Seconds())
	}
}
