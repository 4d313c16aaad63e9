// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package benchmark

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

// ErrIncomparable is returned when one side of a comparison has no
// successful samples; a winner cannot be declared from thin air.
var ErrIncomparable = errors.New("cannot compare targets without samples on both sides")

// TargetReport bundles everything measured for one target.
type TargetReport struct {
	Target     datatypes.Target
	Stats      *StatsSummary
	Cost       CostEstimate
	ErrorCount int
}

// Verdict is the outcome of comparing two targets. Speed and cost are
// separate axes and are never merged into one score.
type Verdict struct {
	Winner     datatypes.Target
	SpeedRatio float64
	CostNote   string
}

// Compare picks the speed winner (lower average latency) and attaches a
// qualitative cost note.
func Compare(a, b TargetReport) (*Verdict, error) {
	if a.Stats == nil || a.Stats.Count == 0 || b.Stats == nil || b.Stats.Count == 0 {
		return nil, ErrIncomparable
	}

	winner, loser := a, b
	if b.Stats.Avg < a.Stats.Avg {
		winner, loser = b, a
	}
	ratio := 1.0
	if winner.Stats.Avg > 0 {
		ratio = loser.Stats.Avg / winner.Stats.Avg
	}

	return &Verdict{
		Winner:     winner.Target,
		SpeedRatio: ratio,
		CostNote:   costNote(a, b),
	}, nil
}

// costNote describes the cost trade-off independently of which target
// won on speed.
func costNote(a, b TargetReport) string {
	serverless, cluster := a, b
	if a.Target == datatypes.TargetCluster {
		serverless, cluster = b, a
	}
	return fmt.Sprintf(
		"%s costs $%.4f per 1M requests with no fixed cost; %s costs $%.2f/month regardless of traffic and wins only under sustained high throughput",
		serverless.Target, serverless.Cost.CostPerMillionUSD,
		cluster.Target, cluster.Cost.MonthlyFixedUSD)
}
