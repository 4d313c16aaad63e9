// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/sentibench/services/backend/config"
	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAnalyzer struct{}

func (stubAnalyzer) Dispatch(ctx context.Context, text, target string) (*datatypes.AnalysisResponse, error) {
	return &datatypes.AnalysisResponse{
		Text:      text,
		Target:    target,
		Sentiment: "POSITIVE",
	}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	registry := prometheus.NewRegistry()
	router := gin.New()
	SetupRoutes(router, stubAnalyzer{}, &config.Settings{},
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return router
}

func TestSetupRoutes_RegistersAllEndpoints(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/analyze", `{"text":"hello"}`, http.StatusOK},
		{http.MethodPost, "/analyze-batch", `{"texts":["hello"]}`, http.StatusOK},
	}

	for _, tc := range cases {
		req, err := http.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		require.NoError(t, err)
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSetupRoutes_UnknownPathIs404(t *testing.T) {
	router := newTestRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
