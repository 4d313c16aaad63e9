// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package benchmark

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

// Pricing holds the fixed unit prices the cost model is built on.
// The figures are illustrative estimates, not a billing reconstruction.
type Pricing struct {
	// Serverless: pure usage-based billing.
	ServerlessRequestUSD  float64 `yaml:"serverless_request_usd"`
	ServerlessGBSecondUSD float64 `yaml:"serverless_gb_second_usd"`
	ServerlessMemoryGB    float64 `yaml:"serverless_memory_gb"`

	// Cluster: fixed hourly cost regardless of traffic.
	ClusterControlPlaneHourlyUSD float64 `yaml:"cluster_control_plane_hourly_usd"`
	ClusterNodeHourlyUSD         float64 `yaml:"cluster_node_hourly_usd"`
}

// DefaultPricing returns the published on-demand rates for a 3 GB
// serverless function and a managed cluster with one small node.
func DefaultPricing() Pricing {
	return Pricing{
		ServerlessRequestUSD:         0.20 / 1_000_000,
		ServerlessGBSecondUSD:        0.0000166667,
		ServerlessMemoryGB:           3.0,
		ClusterControlPlaneHourlyUSD: 0.10,
		ClusterNodeHourlyUSD:         0.0208,
	}
}

// LoadPricing reads pricing overrides from a YAML file. A missing file
// returns the defaults; a malformed file is an error.
func LoadPricing(path string) (Pricing, error) {
	pricing := DefaultPricing()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pricing, nil
		}
		return pricing, fmt.Errorf("reading pricing file: %w", err)
	}
	if err := yaml.Unmarshal(data, &pricing); err != nil {
		return DefaultPricing(), fmt.Errorf("parsing pricing file %s: %w", path, err)
	}
	return pricing, nil
}

// CostEstimate is the normalized cost figure for one target.
type CostEstimate struct {
	Target datatypes.Target

	// CostPerMillionUSD is the usage-based cost of one million
	// requests. Zero for the cluster target, whose cost does not vary
	// with request volume.
	CostPerMillionUSD float64

	// MonthlyFixedUSD is the traffic-independent monthly cost. Zero for
	// the serverless target.
	MonthlyFixedUSD float64

	Note string
}

// EstimateServerlessCost prices one million requests on the serverless
// target given the measured average request duration.
func EstimateServerlessCost(avgLatencySeconds float64, p Pricing) CostEstimate {
	const million = 1_000_000
	computeCost := million * avgLatencySeconds * p.ServerlessMemoryGB * p.ServerlessGBSecondUSD
	requestCost := million * p.ServerlessRequestUSD
	return CostEstimate{
		Target:            datatypes.TargetServerless,
		CostPerMillionUSD: computeCost + requestCost,
		MonthlyFixedUSD:   0,
		Note: fmt.Sprintf("based on avg duration %.4fs @ %.0fGB RAM",
			avgLatencySeconds, p.ServerlessMemoryGB),
	}
}

// EstimateClusterCost prices the cluster target. There is no meaningful
// per-request figure under sustained low traffic, so the fixed monthly
// cost is reported instead.
func EstimateClusterCost(p Pricing) CostEstimate {
	hourly := p.ClusterControlPlaneHourlyUSD + p.ClusterNodeHourlyUSD
	return CostEstimate{
		Target:          datatypes.TargetCluster,
		MonthlyFixedUSD: hourly * 24 * 30,
		Note:            "fixed cost regardless of traffic; amortizes better only under sustained high throughput",
	}
}
