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

// HandleVerifyAudio handles POST /verify-audio: the voice-origin check
// over the full decoded waveform. The 30-second cap applies only to
// transcription, never here.
func HandleVerifyAudio(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointAudioVerify, "HandleVerifyAudio",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.VerifyAudio(ctx, data)
		})
}

// HandleVerifyAudioText handles POST /verify-audio-text: transcription
// followed by the full text check over the transcript.
func HandleVerifyAudioText(svc *pipeline.Service) gin.HandlerFunc {
	return handleMedia(observability.EndpointAudioOCRCheck, "HandleVerifyAudioText",
		func(ctx context.Context, data []byte) (any, error) {
			return svc.VerifyAudioText(ctx, data)
		})
}
