// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/datatypes"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/observability"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/pipeline"
)

// HandleVerifyText handles POST /verify.
//
// # Description
//
// Runs the text authorship classification and the fact verification
// chain over the JSON "text" field and returns the combined analysis.
//
// # Inputs
//
//   - Body: {"text": "..."}
//
// # Outputs
//
//   - 200 with the success envelope on completion
//   - 200 with the error envelope when the text is empty or the
//     classifier is unavailable
func HandleVerifyText(svc *pipeline.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const endpoint = observability.EndpointTextVerify
		metrics := activeMetrics()
		metrics.RequestStarted(endpoint)
		defer metrics.RequestEnded(endpoint)
		start := time.Now()

		ctx, span := handlerTracer.Start(c.Request.Context(), "HandleVerifyText")
		defer span.End()

		var req datatypes.VerifyTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, endpoint, &validationError{msg: "Invalid request body"})
			metrics.RecordRequest(endpoint, false, time.Since(start).Seconds())
			return
		}

		analysis, err := svc.VerifyText(ctx, req.Text)
		if err != nil {
			respondError(c, endpoint, err)
			metrics.RecordRequest(endpoint, false, time.Since(start).Seconds())
			return
		}
		respondOutcome(c, endpoint, analysis)
		metrics.RecordRequest(endpoint, true, time.Since(start).Seconds())
	}
}
