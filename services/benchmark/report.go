// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package benchmark

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

// ReportWriter appends human-readable report sections to a results
// file, echoing each section to the structured log.
type ReportWriter struct {
	file  *os.File
	runID string
}

// NewReportWriter truncates (or creates) the report file and writes the
// run header. Parent directories are created as needed.
func NewReportWriter(path, runID string) (*ReportWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}
	w := &ReportWriter{file: f, runID: runID}
	header := fmt.Sprintf("Benchmark Report %s - %s\n%s\n",
		runID, time.Now().Format("2006-01-02 15:04:05"), strings.Repeat("=", 50))
	if err := w.Section(header); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Section appends one block to the report and logs it.
func (w *ReportWriter) Section(content string) error {
	slog.Info("benchmark report", "run_id", w.runID, "section", content)
	if _, err := w.file.WriteString(content + "\n"); err != nil {
		return fmt.Errorf("writing report section: %w", err)
	}
	return nil
}

// Close flushes and closes the report file.
func (w *ReportWriter) Close() error {
	return w.file.Close()
}

// FormatStats renders one target's summary block. A nil summary means
// the run produced no successful requests.
func FormatStats(target datatypes.Target, stats *StatsSummary, latencies []float64, errorCount int) string {
	if stats == nil {
		return fmt.Sprintf("%s: no successful requests recorded (%d errors).", target, errorCount)
	}

	firstN := func(n int) []string {
		if n > len(latencies) {
			n = len(latencies)
		}
		out := make([]string, 0, n)
		for _, v := range latencies[:n] {
			out = append(out, fmt.Sprintf("%.4fs", v))
		}
		return out
	}
	lastN := func(n int) []string {
		if n > len(latencies) {
			n = len(latencies)
		}
		out := make([]string, 0, n)
		for _, v := range latencies[len(latencies)-n:] {
			out = append(out, fmt.Sprintf("%.4fs", v))
		}
		return out
	}

	return fmt.Sprintf(
		"\nResults for %s:\n"+
			"  Samples: %d\n"+
			"  Errors:  %d\n"+
			"  Avg:     %.4fs\n"+
			"  Min:     %.4fs\n"+
			"  Max:     %.4fs\n"+
			"  P50:     %.4fs\n"+
			"  P95:     %.4fs\n"+
			"  First 3: %s\n"+
			"  Last 3:  %s\n",
		target, stats.Count, errorCount, stats.Avg, stats.Min, stats.Max,
		stats.P50, stats.P95,
		strings.Join(firstN(3), ", "), strings.Join(lastN(3), ", "))
}

// FormatCost renders one target's cost block.
func FormatCost(est CostEstimate) string {
	if est.Target == datatypes.TargetServerless {
		return fmt.Sprintf(
			"Cost Estimation (%s):\n"+
				"  Cost per 1M requests: $%.4f\n"+
				"  (%s)\n"+
				"  Monthly Fixed Cost:   $0.00\n",
			est.Target, est.CostPerMillionUSD, est.Note)
	}
	return fmt.Sprintf(
		"Cost Estimation (%s):\n"+
			"  Monthly Fixed Cost:   $%.2f\n"+
			"  *Note: %s.\n",
		est.Target, est.MonthlyFixedUSD, est.Note)
}

// FormatVerdict renders the final comparison block.
func FormatVerdict(v *Verdict) string {
	return fmt.Sprintf(
		"\n--- FINAL VERDICT ---\n"+
			"Speed winner: %s (%.2fx faster on average)\n"+
			"Cost: %s\n",
		v.Winner, v.SpeedRatio, v.CostNote)
}
