// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers provides the gin handlers for the sentibench backend.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/sentibench/pkg/validation"
	"github.com/AleutianAI/sentibench/services/backend/datatypes"
	"github.com/AleutianAI/sentibench/services/backend/dispatch"
)

// Analyzer is the dispatch surface the handlers depend on.
type Analyzer interface {
	Dispatch(ctx context.Context, text, target string) (*datatypes.AnalysisResponse, error)
}

// HandleAnalyze serves POST /analyze.
//
// Configuration errors (unknown or unconfigured target) are the
// caller's fault and map to 400. Transient failures surface only after
// retries are exhausted, as 504 carrying the attempt count. Hard remote
// failures map to 502.
func HandleAnalyze(svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.AnalysisRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("failed to parse analyze request", "error", err)
			c.JSON(http.StatusBadRequest, errorBody("invalid request body", err.Error(), 0))
			return
		}
		if req.Target == "" {
			req.Target = string(datatypes.TargetServerless)
		}

		result, err := svc.Dispatch(c.Request.Context(), req.Text, req.Target)
		if err != nil {
			writeDispatchError(c, err)
			return
		}
		result.Timestamp = time.Now().Format(time.RFC3339)
		c.JSON(http.StatusOK, result)
	}
}

// HandleAnalyzeBatch serves POST /analyze-batch. Items are dispatched
// sequentially; a failed item is recorded and the batch continues.
func HandleAnalyzeBatch(svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.BatchRequest
		if err := c.BindJSON(&req); err != nil {
			slog.Error("failed to parse batch request", "error", err)
			c.JSON(http.StatusBadRequest, errorBody("invalid request body", err.Error(), 0))
			return
		}
		if req.Target == "" {
			req.Target = string(datatypes.TargetServerless)
		}

		out := datatypes.BatchResponse{Total: len(req.Texts)}
		for _, text := range req.Texts {
			item := datatypes.BatchItem{Text: text}
			if err := validation.ValidateAnalysisText(text); err != nil {
				item.Error = err.Error()
			} else if result, err := svc.Dispatch(c.Request.Context(), text, req.Target); err != nil {
				item.Error = err.Error()
			} else {
				result.Timestamp = time.Now().Format(time.RFC3339)
				item.Result = result
				out.Successful++
			}
			out.Results = append(out.Results, item)
		}
		c.JSON(http.StatusOK, out)
	}
}

// writeDispatchError maps the dispatch taxonomy onto HTTP statuses.
func writeDispatchError(c *gin.Context, err error) {
	var de *dispatch.DispatchError
	if !errors.As(err, &de) {
		slog.Error("analyze failed with unclassified error", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("analysis failed", err.Error(), 0))
		return
	}

	slog.Error("analyze failed", "kind", de.Kind, "detail", de.Message, "attempts", de.Attempts)
	switch de.Kind {
	case dispatch.KindUnknownTarget, dispatch.KindTargetUnconfigured:
		c.JSON(http.StatusBadRequest, errorBody(string(de.Kind), de.Message, 0))
	case dispatch.KindRetriesExhausted:
		c.JSON(http.StatusGatewayTimeout, errorBody(string(de.Kind), de.Error(), de.Attempts))
	default:
		c.JSON(http.StatusBadGateway, errorBody(string(de.Kind), de.Error(), de.Attempts))
	}
}

func errorBody(err, detail string, attempts int) datatypes.ErrorResponse {
	return datatypes.ErrorResponse{
		Error:     err,
		Detail:    detail,
		Attempts:  attempts,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
