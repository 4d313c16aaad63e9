// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/sentibench/services/backend/config"
	"github.com/AleutianAI/sentibench/services/backend/handlers"
)

// SetupRoutes wires the backend endpoints onto the router.
// metricsHandler serves the Prometheus exposition for the registry the
// dispatcher reports into.
func SetupRoutes(router *gin.Engine, svc handlers.Analyzer,
	settings *config.Settings, metricsHandler http.Handler) {

	router.GET("/health", handlers.HealthCheck(settings))
	router.GET("/metrics", gin.WrapH(metricsHandler))
	router.POST("/analyze", handlers.HandleAnalyze(svc))
	router.POST("/analyze-batch", handlers.HandleAnalyzeBatch(svc))
}
