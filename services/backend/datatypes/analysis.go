// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides the request and response types for the
// sentibench backend API.
package datatypes

// =============================================================================
// ENUMS
// =============================================================================

// Target identifies one of the two deployment endpoints under comparison.
//
// Valid Values:
//   - "serverless": the elastic, scale-to-zero deployment (cold starts expected)
//   - "cluster": the fixed-capacity cluster deployment (always warm)
type Target string

const (
	TargetServerless Target = "serverless"
	TargetCluster    Target = "cluster"
)

// validTargets contains all valid Target values for validation.
var validTargets = map[Target]bool{
	TargetServerless: true,
	TargetCluster:    true,
}

// IsValid checks if the Target is a recognized deployment name.
func (t Target) IsValid() bool {
	return validTargets[t]
}

// Targets returns the comparison order used in benchmark runs.
func Targets() []Target {
	return []Target{TargetServerless, TargetCluster}
}

// =============================================================================
// API TYPES
// =============================================================================

// AnalysisRequest is the body of POST /analyze.
//
// Target defaults to "serverless" when omitted, matching the primary
// deployment.
type AnalysisRequest struct {
	Text   string `json:"text" binding:"required,min=1,max=1000"`
	Target string `json:"target" binding:"omitempty,oneof=serverless cluster"`
}

// AnalysisResponse is the fully resolved outcome of a successful dispatch.
//
// RetryAttempts is the zero-based attempt index at which the call
// succeeded (0 means the first attempt worked). ResponseTimeMs is
// measured end to end from the first attempt's start, so it includes
// any backoff waits.
type AnalysisResponse struct {
	Text           string             `json:"text"`
	Sentiment      string             `json:"sentiment"`
	Confidence     float64            `json:"confidence"`
	Scores         map[string]float64 `json:"scores,omitempty"`
	Target         string             `json:"target"`
	RetryAttempts  int                `json:"retry_attempts"`
	ResponseTimeMs float64            `json:"response_time_ms"`
	Timestamp      string             `json:"timestamp,omitempty"`
}

// BatchRequest is the body of POST /analyze-batch.
type BatchRequest struct {
	Texts  []string `json:"texts" binding:"required,min=1"`
	Target string   `json:"target" binding:"omitempty,oneof=serverless cluster"`
}

// BatchItem is one per-text result in a batch response. Exactly one of
// Result and Error is set.
type BatchItem struct {
	Text   string            `json:"text"`
	Result *AnalysisResponse `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// BatchResponse summarizes a batch run. A failed item never aborts the
// rest of the batch.
type BatchResponse struct {
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Results    []BatchItem `json:"results"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status             string `json:"status"`
	ServerlessEndpoint string `json:"serverless_endpoint,omitempty"`
	ClusterEndpoint    string `json:"cluster_endpoint,omitempty"`
	Timestamp          string `json:"timestamp"`
}

// ErrorResponse is the error body returned by all endpoints.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	Attempts  int    `json:"attempts,omitempty"`
	Timestamp string `json:"timestamp"`
}
