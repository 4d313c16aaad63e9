// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

func TestReportWriter_WritesHeaderAndSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "report.txt")

	w, err := NewReportWriter(path, "run-123")
	require.NoError(t, err)
	require.NoError(t, w.Section("hello section"))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Benchmark Report run-123")
	assert.Contains(t, content, "hello section")
}

func TestFormatStats_NoSamples(t *testing.T) {
	out := FormatStats(datatypes.TargetServerless, nil, nil, 7)
	assert.Contains(t, out, "no successful requests")
	assert.Contains(t, out, "7 errors")
}

func TestFormatStats_FullSummary(t *testing.T) {
	latencies := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	stats, err := Summarize(latencies)
	require.NoError(t, err)

	out := FormatStats(datatypes.TargetCluster, stats, latencies, 1)
	assert.Contains(t, out, "Samples: 5")
	assert.Contains(t, out, "Errors:  1")
	assert.Contains(t, out, "Avg:     0.3000s")
	assert.Contains(t, out, "First 3: 0.1000s, 0.2000s, 0.3000s")
	assert.Contains(t, out, "Last 3:  0.3000s, 0.4000s, 0.5000s")
}

func TestFormatCost_BothShapes(t *testing.T) {
	serverless := FormatCost(EstimateServerlessCost(0.5, DefaultPricing()))
	assert.Contains(t, serverless, "Cost per 1M requests")
	assert.Contains(t, serverless, "Monthly Fixed Cost:   $0.00")

	cluster := FormatCost(EstimateClusterCost(DefaultPricing()))
	assert.Contains(t, cluster, "Monthly Fixed Cost")
	assert.NotContains(t, cluster, "Cost per 1M requests")
}

func TestFormatVerdict(t *testing.T) {
	out := FormatVerdict(&Verdict{
		Winner:     datatypes.TargetCluster,
		SpeedRatio: 2.5,
		CostNote:   "cluster is pricier at low volume",
	})
	assert.Contains(t, out, "FINAL VERDICT")
	assert.Contains(t, out, "cluster (2.50x faster")
	assert.Contains(t, out, "pricier at low volume")
}
