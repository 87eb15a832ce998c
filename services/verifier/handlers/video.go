// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/observability"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/pipeline"
)

// HandleVerifyVideo handles POST /verify-video: sampled-frame
// content-origin classification averaged into one verdict.
func HandleVerifyVideo(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointVideoVerify, "HandleVerifyVideo",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.VerifyVideo(ctx, data)
		})
}

// HandleVerifyVideoText handles POST /verify-video-text: frame OCR plus
// the audio-track transcript, merged and run through the full text
// check.
func HandleVerifyVideoText(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointVideoOCRCheck, "HandleVerifyVideoText",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.VerifyVideoText(ctx, data)
		})
}
