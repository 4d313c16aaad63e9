// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all sentibench metrics.
const metricsNamespace = "sentibench"

// Subsystem for dispatch metrics.
const backendSubsystem = "backend"

// Metrics holds the Prometheus instruments observed by the dispatcher.
//
// The struct is injected into the Dispatcher rather than registered as
// process-wide singletons, so tests and concurrent benchmark runs can
// each carry an isolated registry. All operations are thread-safe via
// Prometheus's internal locking.
//
// Instruments:
//   - RequestsTotal: one increment per HTTP attempt, by target and
//     outcome status ("200", "504", "timeout", "unreachable", ...).
//   - RequestDurationSeconds: one observation per HTTP attempt, by target.
//   - RetryAttemptsTotal: one increment per transient-retry branch, by
//     target and reason (cold_start, request_timeout).
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec
	RetryAttemptsTotal     *prometheus.CounterVec
}

// NewMetrics creates and registers the dispatch instruments against the
// given registerer. A nil registerer falls back to the Prometheus
// default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: backendSubsystem,
			Name:      "requests_total",
			Help:      "Inference requests issued, by target and outcome status.",
		}, []string{"target", "status"}),

		RequestDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: backendSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Per-attempt request latency, by target.",
			// Cold starts on the serverless target routinely take tens of
			// seconds, so the buckets extend well past the defaults.
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"target"}),

		RetryAttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: backendSubsystem,
			Name:      "retry_attempts_total",
			Help:      "Transient failures that triggered the retry path, by target and reason.",
		}, []string{"target", "reason"}),
	}
}
