// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

// Dispatcher is the single-call surface the harness drives. The real
// implementation lives in services/backend/dispatch.
type Dispatcher interface {
	Dispatch(ctx context.Context, text, target string) (*datatypes.AnalysisResponse, error)
}

// LoadOptions configures one load run against one target.
type LoadOptions struct {
	// Requests is the total number of dispatch calls to issue.
	Requests int

	// Concurrency bounds the worker pool. A dispatch sleeping through
	// its retry backoff blocks only its own worker.
	Concurrency int

	// RatePerSecond paces call submission; zero disables pacing.
	RatePerSecond float64

	// Progress, when set, is invoked every 10 completions and at the
	// end with (completed, total). Observability only.
	Progress func(completed, total int)
}

// LoadResult aggregates one load run. Latencies holds one entry per
// successful call (seconds, completion order); ErrorCount counts the
// failed calls. The two are mutually exclusive per call, so
// len(Latencies) + ErrorCount equals the number of issued calls.
type LoadResult struct {
	Latencies  []float64
	ErrorCount int
}

// RunLoad issues opts.Requests dispatch calls against one target using
// a bounded worker pool.
//
// A failed call increments ErrorCount and never aborts the batch; a run
// with a high error rate still produces a valid, if degraded, result.
// Canceling ctx stops issuing new calls and unblocks in-flight backoff
// waits; the partial result is returned alongside the context error.
func RunLoad(ctx context.Context, d Dispatcher, text, target string, opts LoadOptions) (*LoadResult, error) {
	if opts.Requests <= 0 {
		return nil, fmt.Errorf("requests must be positive, got %d", opts.Requests)
	}
	if opts.Concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be positive, got %d", opts.Concurrency)
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	slog.Info("starting load run", "target", target,
		"requests", opts.Requests, "concurrency", opts.Concurrency)

	var (
		mu        sync.Mutex
		result    LoadResult
		completed int
	)

	g := new(errgroup.Group)
	g.SetLimit(opts.Concurrency)

	for i := 0; i < opts.Requests; i++ {
		if ctx.Err() != nil {
			break
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		}

		g.Go(func() error {
			resp, err := d.Dispatch(ctx, text, target)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.ErrorCount++
				slog.Error("benchmark request failed", "target", target, "error", err)
			} else {
				result.Latencies = append(result.Latencies, resp.ResponseTimeMs/1000)
			}
			completed++
			if opts.Progress != nil && (completed%10 == 0 || completed == opts.Requests) {
				opts.Progress(completed, opts.Requests)
			}
			return nil
		})
	}

	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	slog.Info("load run finished", "target", target,
		"successes", len(result.Latencies), "errors", result.ErrorCount)
	return &result, ctx.Err()
}
