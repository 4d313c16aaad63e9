// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dispatch implements the resilient client that routes one
// "analyze" call to a deployment target, retrying transient failures
// with exponential backoff.
//
// The inference service is a black box with two interesting failure
// modes: a slow cold start (surfacing as HTTP 504 or a client-side
// timeout) and a hard failure (connection refused or any other error
// status). Cold starts are retried with growing backoff to give the
// service time to finish loading; hard failures fail fast so a real
// outage is never masked by futile retries.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

var dispatchTracer = otel.Tracer("sentibench.backend.dispatch")

// Config controls the retry loop.
type Config struct {
	// MaxRetries is the total number of HTTP attempts, minimum 1.
	MaxRetries int

	// InitialBackoff is the sleep before the first retry. Subsequent
	// sleeps grow by BackoffMultiplier.
	InitialBackoff time.Duration

	// RequestTimeout bounds each individual HTTP attempt.
	RequestTimeout time.Duration

	// BackoffMultiplier is the growth factor between retry sleeps.
	BackoffMultiplier float64
}

// DefaultConfig matches the backend's environment defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:        3,
		InitialBackoff:    5 * time.Second,
		RequestTimeout:    35 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxRetries < 1 {
		c.MaxRetries = def.MaxRetries
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = def.InitialBackoff
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.BackoffMultiplier <= 1 {
		c.BackoffMultiplier = def.BackoffMultiplier
	}
	return c
}

// Dispatcher issues analyze calls against resolved deployment endpoints.
//
// Safe for concurrent use: the retry state of each call lives entirely
// on that call's stack, and the metrics registry synchronizes itself.
type Dispatcher struct {
	resolver   *Resolver
	metrics    *Metrics
	cfg        Config
	httpClient *http.Client

	// sleep is swappable so tests don't pay for real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDispatcher builds a dispatcher. Out-of-range config values fall
// back to the defaults.
func NewDispatcher(resolver *Resolver, metrics *Metrics, cfg Config) *Dispatcher {
	cfg = cfg.normalized()
	return &Dispatcher{
		resolver:   resolver,
		metrics:    metrics,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		sleep:      sleepContext,
	}
}

// analyzePayload is the request body sent to the inference endpoint.
type analyzePayload struct {
	Text string `json:"text"`
}

// inferenceResult is the strict shape expected from an HTTP 200 body.
// Scores are optional; sentiment and confidence are not.
type inferenceResult struct {
	Sentiment  string             `json:"sentiment"`
	Confidence *float64           `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
}

// remoteErrorBody is a best-effort decode of non-200 error bodies.
type remoteErrorBody struct {
	Message string `json:"message"`
}

// Dispatch runs one logical analyze call against a target.
//
// It always resolves to exactly one of (*datatypes.AnalysisResponse, nil)
// or (nil, *DispatchError); no other error type escapes. Transient
// failures (HTTP 504, client-side timeout) are retried up to
// Config.MaxRetries total attempts with exponential backoff; everything
// else is terminal on the first occurrence. The backoff wait honors ctx
// cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, text, target string) (*datatypes.AnalysisResponse, error) {
	ctx, span := dispatchTracer.Start(ctx, "Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("target", target))

	endpoint, err := d.resolver.Resolve(target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	slog.Info("analyzing text", "target", target, "text", truncate(text, 50))

	start := time.Now()
	backoff := d.cfg.InitialBackoff
	var lastReason ErrorKind

	for attempt := 0; attempt < d.cfg.MaxRetries; attempt++ {
		slog.Debug("dispatch attempt", "target", target,
			"attempt", attempt+1, "max", d.cfg.MaxRetries)

		attemptStart := time.Now()
		resp, reqErr := d.post(ctx, endpoint, text)
		d.metrics.RequestDurationSeconds.WithLabelValues(target).
			Observe(time.Since(attemptStart).Seconds())

		if reqErr != nil {
			outcome := d.classifyRequestError(ctx, target, reqErr, attempt)
			if !outcome.Kind.Transient() {
				span.RecordError(outcome)
				span.SetStatus(codes.Error, outcome.Error())
				return nil, outcome
			}
			lastReason = outcome.Kind
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			d.metrics.RequestsTotal.
				WithLabelValues(target, strconv.Itoa(resp.StatusCode)).Inc()

			switch {
			case resp.StatusCode == http.StatusOK:
				out, parseErr := d.parseSuccess(body, readErr, attempt)
				if parseErr != nil {
					span.RecordError(parseErr)
					span.SetStatus(codes.Error, parseErr.Error())
					return nil, parseErr
				}
				out.Text = text
				out.Target = target
				out.ResponseTimeMs = float64(time.Since(start)) / float64(time.Millisecond)
				span.SetAttributes(attribute.Int("retry_attempts", attempt))
				slog.Info("dispatch succeeded", "target", target,
					"attempt", attempt+1, "elapsed_ms", out.ResponseTimeMs)
				return out, nil

			case resp.StatusCode == http.StatusGatewayTimeout:
				// Gateway timeout while the model loads: a cold start.
				lastReason = KindColdStart
				d.metrics.RetryAttemptsTotal.
					WithLabelValues(target, string(KindColdStart)).Inc()
				slog.Warn("gateway timeout from target", "target", target, "attempt", attempt+1)

			default:
				failure := &DispatchError{
					Kind:       KindRemoteError,
					StatusCode: resp.StatusCode,
					Message:    remoteMessage(resp.StatusCode, body),
					Attempts:   attempt + 1,
				}
				span.RecordError(failure)
				span.SetStatus(codes.Error, failure.Error())
				return nil, failure
			}
		}

		// Transient failure. Back off and go around, unless this was the
		// last allowed attempt.
		if attempt >= d.cfg.MaxRetries-1 {
			exhausted := &DispatchError{
				Kind:     KindRetriesExhausted,
				Reason:   lastReason,
				Attempts: d.cfg.MaxRetries,
				Message:  fmt.Sprintf("%s after %d attempts", lastReason, d.cfg.MaxRetries),
			}
			span.RecordError(exhausted)
			span.SetStatus(codes.Error, exhausted.Error())
			return nil, exhausted
		}

		slog.Info("waiting before retry", "target", target, "backoff", backoff)
		if sleepErr := d.sleep(ctx, backoff); sleepErr != nil {
			interrupted := &DispatchError{
				Kind:     KindRetriesExhausted,
				Reason:   lastReason,
				Attempts: attempt + 1,
				Message:  fmt.Sprintf("backoff interrupted: %v", sleepErr),
			}
			span.RecordError(interrupted)
			span.SetStatus(codes.Error, interrupted.Error())
			return nil, interrupted
		}
		backoff = time.Duration(float64(backoff) * d.cfg.BackoffMultiplier)
	}

	// Unreachable: every loop path returns.
	panic("dispatch: retry loop exited without a terminal outcome")
}

// classifyRequestError turns a transport-level error into the matching
// taxonomy entry and records its attempt metric.
//
// A client-side timeout before any response arrives looks exactly like
// a cold start from the caller's perspective, so it is transient. A
// dead context is terminal regardless: retrying a canceled call is
// pointless. Anything else (connection refused, DNS, TLS) means the
// service is down, not cold, and fails immediately.
func (d *Dispatcher) classifyRequestError(ctx context.Context, target string, err error, attempt int) *DispatchError {
	if ctxErr := ctx.Err(); ctxErr != nil {
		d.metrics.RequestsTotal.WithLabelValues(target, "timeout").Inc()
		return &DispatchError{
			Kind:     KindRetriesExhausted,
			Reason:   KindRequestTimeout,
			Attempts: attempt + 1,
			Message:  fmt.Sprintf("canceled: %v", ctxErr),
		}
	}
	if isTimeoutError(err) {
		d.metrics.RequestsTotal.WithLabelValues(target, "timeout").Inc()
		d.metrics.RetryAttemptsTotal.
			WithLabelValues(target, string(KindRequestTimeout)).Inc()
		slog.Warn("request timed out", "target", target, "attempt", attempt+1)
		return &DispatchError{
			Kind:     KindRequestTimeout,
			Message:  err.Error(),
			Attempts: attempt + 1,
		}
	}
	d.metrics.RequestsTotal.WithLabelValues(target, "unreachable").Inc()
	slog.Error("target unreachable", "target", target, "error", err)
	return &DispatchError{
		Kind:     KindUnreachable,
		Message:  fmt.Sprintf("cannot reach %s endpoint: %v", target, err),
		Attempts: attempt + 1,
	}
}

// parseSuccess decodes an HTTP 200 body, failing closed on anything
// missing or malformed rather than passing along a partial result.
func (d *Dispatcher) parseSuccess(body []byte, readErr error, attempt int) (*datatypes.AnalysisResponse, *DispatchError) {
	if readErr != nil {
		return nil, &DispatchError{
			Kind:     KindRemoteError,
			Message:  fmt.Sprintf("reading response body: %v", readErr),
			Attempts: attempt + 1,
		}
	}
	var parsed inferenceResult
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &DispatchError{
			Kind:     KindRemoteError,
			Message:  fmt.Sprintf("malformed response body: %v", err),
			Attempts: attempt + 1,
		}
	}
	if parsed.Sentiment == "" || parsed.Confidence == nil ||
		*parsed.Confidence < 0 || *parsed.Confidence > 1 {
		return nil, &DispatchError{
			Kind:     KindRemoteError,
			Message:  "response body missing sentiment or confidence",
			Attempts: attempt + 1,
		}
	}
	return &datatypes.AnalysisResponse{
		Sentiment:     parsed.Sentiment,
		Confidence:    *parsed.Confidence,
		Scores:        parsed.Scores,
		RetryAttempts: attempt,
	}, nil
}

func (d *Dispatcher) post(ctx context.Context, endpoint, text string) (*http.Response, error) {
	payload, err := json.Marshal(analyzePayload{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling analyze payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return d.httpClient.Do(req)
}

// remoteMessage extracts a human-readable message from a non-200 body.
func remoteMessage(status int, body []byte) string {
	var parsed remoteErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return fmt.Sprintf("%d: %s", status, parsed.Message)
	}
	return fmt.Sprintf("%d: %s", status, truncate(string(body), 200))
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
