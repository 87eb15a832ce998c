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

// HandleVerifyImage handles POST /verify-image: the image content-origin
// check.
func HandleVerifyImage(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointImageVerify, "HandleVerifyImage",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.VerifyImage(ctx, data)
		})
}

// HandleExtractText handles POST /extract-text: OCR only, no analysis.
// An image without readable text yields an empty extracted_text, not an
// error.
func HandleExtractText(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointImageOCR, "HandleExtractText",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.ExtractImageText(ctx, data)
		})
}

// HandleVerifyImageText handles POST /verify-image-text: OCR followed by
// the full text check over the extracted text.
func HandleVerifyImageText(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointImageOCRCheck, "HandleVerifyImageText",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.VerifyImageText(ctx, data)
		})
}
