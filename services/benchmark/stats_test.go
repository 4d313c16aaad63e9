// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package benchmark

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmptyInput(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Summarize([]float64{})
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestSummarize_SingleSample(t *testing.T) {
	stats, err := Summarize([]float64{0.42})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 0.42, stats.Avg)
	assert.Equal(t, 0.42, stats.Min)
	assert.Equal(t, 0.42, stats.Max)
	assert.Equal(t, 0.42, stats.P50)
	assert.Equal(t, 0.42, stats.P95)
}

func TestSummarize_TwentySamples(t *testing.T) {
	// 0.1, 0.2, ..., 2.0: the p95 must land on the 19th ascending value.
	samples := make([]float64, 20)
	for i := range samples {
		samples[i] = float64(i+1) * 0.1
	}

	stats, err := Summarize(samples)
	require.NoError(t, err)

	assert.Equal(t, 20, stats.Count)
	assert.InDelta(t, 1.05, stats.Avg, 1e-9)
	assert.InDelta(t, 0.1, stats.Min, 1e-9)
	assert.InDelta(t, 2.0, stats.Max, 1e-9)
	assert.InDelta(t, 1.05, stats.P50, 1e-9)
	assert.InDelta(t, 1.9, stats.P95, 1e-9)
}

func TestSummarize_OrderInvariant(t *testing.T) {
	samples := []float64{0.5, 0.1, 2.0, 0.9, 1.4, 0.3, 1.1}
	want, err := Summarize(samples)
	require.NoError(t, err)

	shuffled := append([]float64(nil), samples...)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := Summarize(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	_, err := Summarize(samples)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, samples)
}

func TestSummarize_MedianEvenCount(t *testing.T) {
	stats, err := Summarize([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, stats.P50, 1e-9)
}

func TestSummarize_OddCount(t *testing.T) {
	stats, err := Summarize([]float64{5, 1, 3})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 3.0, stats.Avg, 1e-9)
	assert.Equal(t, 3.0, stats.P50)
	// ceil(0.95*3) = 3, so p95 is the maximum.
	assert.Equal(t, 5.0, stats.P95)
}
