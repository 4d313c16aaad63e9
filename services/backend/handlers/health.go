// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/sentibench/services/backend/config"
	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

// HealthCheck serves GET /health, reporting which deployment endpoints
// are configured.
func HealthCheck(settings *config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, datatypes.HealthResponse{
			Status:             "healthy",
			ServerlessEndpoint: settings.ServerlessEndpoint,
			ClusterEndpoint:    settings.ClusterEndpoint,
			Timestamp:          time.Now().Format(time.RFC3339),
		})
	}
}
