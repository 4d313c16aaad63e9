// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnalysisText(t *testing.T) {
	assert.NoError(t, ValidateAnalysisText("I hate this!"))
	assert.NoError(t, ValidateAnalysisText(strings.Repeat("a", MaxAnalysisTextLength)))

	assert.Error(t, ValidateAnalysisText(""))
	assert.Error(t, ValidateAnalysisText(strings.Repeat("a", MaxAnalysisTextLength+1)))
}

func TestValidateAnalysisText_CountsRunesNotBytes(t *testing.T) {
	// 1000 multibyte runes is within bounds even though the byte count
	// is well past the limit.
	assert.NoError(t, ValidateAnalysisText(strings.Repeat("é", MaxAnalysisTextLength)))
}

func TestValidateTargetName(t *testing.T) {
	valid := []string{"serverless", "cluster", "edge-2", "a"}
	for _, name := range valid {
		assert.NoError(t, ValidateTargetName(name), name)
	}

	invalid := []string{"", "Serverless", "2fast", "-edge", "has space",
		strings.Repeat("x", 33)}
	for _, name := range invalid {
		assert.Error(t, ValidateTargetName(name), name)
	}
}
