// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/sentibench/services/backend/datatypes"
)

// Resolver maps a logical deployment name to its endpoint URL.
//
// The mapping is fixed at construction; either endpoint may be empty,
// in which case resolving that target reports it as unconfigured
// instead of failing at startup.
type Resolver struct {
	endpoints map[datatypes.Target]string
}

// NewResolver builds a resolver for the two comparison targets.
// Trailing slashes and stray quotes are trimmed (container runtimes
// sometimes pass env values quoted literally).
func NewResolver(serverlessURL, clusterURL string) *Resolver {
	clean := func(u string) string {
		return strings.TrimSuffix(strings.Trim(u, "\"' "), "/")
	}
	return &Resolver{
		endpoints: map[datatypes.Target]string{
			datatypes.TargetServerless: clean(serverlessURL),
			datatypes.TargetCluster:    clean(clusterURL),
		},
	}
}

// Resolve returns the endpoint URL for a deployment name.
//
// An unrecognized name returns KindUnknownTarget; a recognized name
// with no configured URL returns KindTargetUnconfigured. Neither is
// retriable: both are caller configuration errors.
func (r *Resolver) Resolve(name string) (string, error) {
	target := datatypes.Target(name)
	if !target.IsValid() {
		return "", &DispatchError{
			Kind:    KindUnknownTarget,
			Message: fmt.Sprintf("unknown target %q", name),
		}
	}
	url := r.endpoints[target]
	if url == "" {
		return "", &DispatchError{
			Kind:    KindTargetUnconfigured,
			Message: fmt.Sprintf("target %q has no endpoint configured", name),
		}
	}
	return url, nil
}
