// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/sentibench/pkg/logging"
)

// --- Global Command Variables ---
var (
	logLevel string
	logDir   string

	benchRequests    int
	benchConcurrency int
	benchText        string
	benchOutput      string
	benchPricingPath string
	benchRate        float64
	benchDeadline    time.Duration

	appLogger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "sentibench",
		Short: "Compare serverless and cluster deployments of a sentiment inference service",
		Long: `Sentibench drives a sentiment inference service deployed on two
targets (an elastic serverless endpoint and a fixed-capacity cluster)
and compares them on latency, reliability, and estimated cost.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			appLogger = logging.Init(logging.Config{
				Level:   logLevel,
				LogDir:  logDir,
				Service: "sentibench",
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appLogger != nil {
				appLogger.Close()
			}
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the backend HTTP service (/analyze, /health, /metrics)",
		RunE:  runServeCommand,
	}

	benchmarkCmd = &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark both deployment targets and produce a comparison report",
		RunE:  runBenchmarkCommand,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"Directory for JSON log files (disabled when empty)")

	benchmarkCmd.Flags().IntVarP(&benchRequests, "requests", "n", 10,
		"Number of requests per target")
	benchmarkCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 5,
		"Worker pool size")
	benchmarkCmd.Flags().StringVarP(&benchText, "text", "t", "I hate this!",
		"Text submitted for analysis")
	benchmarkCmd.Flags().StringVarP(&benchOutput, "output", "o",
		"results/benchmark_results.txt", "Report file path")
	benchmarkCmd.Flags().StringVar(&benchPricingPath, "pricing", "sentibench.yaml",
		"Optional YAML file with pricing overrides")
	benchmarkCmd.Flags().Float64Var(&benchRate, "rate", 0,
		"Max request submissions per second (0 = unlimited)")
	benchmarkCmd.Flags().DurationVar(&benchDeadline, "deadline", 0,
		"Overall benchmark deadline (0 = none)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchmarkCmd)
}
