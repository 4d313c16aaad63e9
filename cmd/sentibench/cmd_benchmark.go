// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/sentibench/pkg/validation"
	"github.com/AleutianAI/sentibench/services/backend/config"
	"github.com/AleutianAI/sentibench/services/backend/datatypes"
	"github.com/AleutianAI/sentibench/services/backend/dispatch"
	"github.com/AleutianAI/sentibench/services/benchmark"
)

func runBenchmarkCommand(cmd *cobra.Command, args []string) error {
	if err := validation.ValidateAnalysisText(benchText); err != nil {
		return fmt.Errorf("invalid --text: %w", err)
	}

	settings := config.Load()
	pricing, err := benchmark.LoadPricing(benchPricingPath)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := dispatch.NewMetrics(registry)
	resolver := dispatch.NewResolver(settings.ServerlessEndpoint, settings.ClusterEndpoint)
	dispatcher := dispatch.NewDispatcher(resolver, metrics, dispatch.Config{
		MaxRetries:        settings.MaxRetries,
		InitialBackoff:    settings.InitialBackoff,
		RequestTimeout:    settings.RequestTimeout,
		BackoffMultiplier: 1.5,
	})

	ctx := context.Background()
	if benchDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, benchDeadline)
		defer cancel()
	}

	runID := uuid.NewString()
	writer, err := benchmark.NewReportWriter(benchOutput, runID)
	if err != nil {
		return err
	}
	defer writer.Close()

	slog.Info("starting benchmark comparison", "run_id", runID,
		"requests", benchRequests, "concurrency", benchConcurrency)

	reports := make(map[datatypes.Target]benchmark.TargetReport)
	for _, target := range datatypes.Targets() {
		report, runErr := benchmarkTarget(ctx, dispatcher, target, pricing, writer)
		if runErr != nil {
			return runErr
		}
		reports[target] = report
	}

	verdict, err := benchmark.Compare(
		reports[datatypes.TargetServerless], reports[datatypes.TargetCluster])
	if err != nil {
		return writer.Section(fmt.Sprintf("No verdict: %v", err))
	}
	return writer.Section(benchmark.FormatVerdict(verdict))
}

// benchmarkTarget runs the load harness against one target and writes
// its stats and cost sections. A target with zero successful requests
// still yields a report so the other side's numbers are not lost.
func benchmarkTarget(ctx context.Context, dispatcher *dispatch.Dispatcher,
	target datatypes.Target, pricing benchmark.Pricing,
	writer *benchmark.ReportWriter) (benchmark.TargetReport, error) {

	report := benchmark.TargetReport{Target: target}

	result, err := benchmark.RunLoad(ctx, dispatcher, benchText, string(target),
		benchmark.LoadOptions{
			Requests:      benchRequests,
			Concurrency:   benchConcurrency,
			RatePerSecond: benchRate,
			Progress: func(completed, total int) {
				slog.Info("benchmark progress", "target", target,
					"completed", completed, "total", total)
			},
		})
	if err != nil && result == nil {
		return report, fmt.Errorf("load run against %s: %w", target, err)
	}
	report.ErrorCount = result.ErrorCount

	stats, statsErr := benchmark.Summarize(result.Latencies)
	if statsErr == nil {
		report.Stats = stats
	}
	if werr := writer.Section(benchmark.FormatStats(target, report.Stats,
		result.Latencies, result.ErrorCount)); werr != nil {
		return report, werr
	}

	switch target {
	case datatypes.TargetServerless:
		if report.Stats != nil {
			report.Cost = benchmark.EstimateServerlessCost(report.Stats.Avg, pricing)
			return report, writer.Section(benchmark.FormatCost(report.Cost))
		}
	case datatypes.TargetCluster:
		report.Cost = benchmark.EstimateClusterCost(pricing)
		return report, writer.Section(benchmark.FormatCost(report.Cost))
	}
	return report, nil
}
