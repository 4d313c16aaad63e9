// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget_IsValid(t *testing.T) {
	assert.True(t, TargetServerless.IsValid())
	assert.True(t, TargetCluster.IsValid())

	assert.False(t, Target("").IsValid())
	assert.False(t, Target("mainframe").IsValid())
	assert.False(t, Target("Serverless").IsValid())
}

func TestTargets_ComparisonOrder(t *testing.T) {
	assert.Equal(t, []Target{TargetServerless, TargetCluster}, Targets())
}
