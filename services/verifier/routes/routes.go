// Copyright (C) 2025 TruthGuard (dev@truthguard.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/auth"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/handlers"
	"github.com/truthguard-ai/TruthGuardLocal/services/verifier/pipeline"
)

// SetupRoutes registers every endpoint on the router. The auth store is
// optional: when nil the /api/auth routes are simply not mounted
// (lightweight mode).
func SetupRoutes(router *gin.Engine, svc *pipeline.Service, authStore *auth.Store) {
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/verify", handlers.HandleVerifyText(svc))
	router.POST("/verify-image", handlers.HandleVerifyImage(svc))
	router.POST("/extract-text", handlers.HandleExtractText(svc))
	router.POST("/verify-image-text", handlers.HandleVerifyImageText(svc))
	router.POST("/verify-audio", handlers.HandleVerifyAudio(svc))
	router.POST("/verify-audio-text", handlers.HandleVerifyAudioText(svc))
	router.POST("/verify-video", handlers.HandleVerifyVideo(svc))
	router.POST("/verify-video-text", handlers.HandleVerifyVideoText(svc))

	if authStore != nil {
		authGroup := router.Group("/api/auth")
		{
			authGroup.POST("/register", auth.RegisterHandler(authStore))
		}
	}
}
