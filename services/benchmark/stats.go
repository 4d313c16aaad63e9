// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package benchmark drives concurrent load against a deployment target
// and reduces the observed latencies into the statistics and cost
// figures behind the final comparison verdict.
package benchmark

import (
	"errors"
	"math"
	"slices"
)

// ErrNoSamples is returned when a summary is requested over an empty
// sample collection. Callers must surface "no successful requests"
// rather than a zeroed summary.
var ErrNoSamples = errors.New("no latency samples to summarize")

// StatsSummary holds the reduced statistics of one benchmark run.
// All values are in seconds.
type StatsSummary struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
	P50   float64
	P95   float64
}

// Summarize reduces a latency sample collection.
//
// Input order is irrelevant; sorting is internal and the argument is
// not modified. The 95th percentile uses the nearest-rank method,
// rank = ceil(0.95*n) into the ascending sort. For n=20 that is the
// 19th value, matching the historical 20-bucket quantile behavior this
// tool has always reported; it is kept even though it biases estimates
// for sample counts that are not a multiple of 20.
func Summarize(samples []float64) (*StatsSummary, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrNoSamples
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}

	var p50 float64
	if n%2 == 1 {
		p50 = sorted[n/2]
	} else {
		p50 = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	rank := int(math.Ceil(0.95 * float64(n)))
	if rank < 1 {
		rank = 1
	}

	return &StatsSummary{
		Count: n,
		Avg:   sum / float64(n),
		Min:   sorted[0],
		Max:   sorted[n-1],
		P50:   p50,
		P95:   sorted[rank-1],
	}, nil
}
