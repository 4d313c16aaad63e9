// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation for user-provided values
// that cross a service boundary (request bodies, CLI flags).
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// MaxAnalysisTextLength is the longest text accepted for analysis,
// in runes. Matches the inference service's own request limit.
const MaxAnalysisTextLength = 1000

// targetNamePattern matches logical deployment names: short, lowercase,
// alphanumeric with optional hyphens.
var targetNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)

// ValidateAnalysisText checks the bounds of a text submitted for
// sentiment analysis.
//
// Example:
//
//	if err := validation.ValidateAnalysisText(text); err != nil {
//	    return fmt.Errorf("invalid text: %w", err)
//	}
func ValidateAnalysisText(text string) error {
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if n := utf8.RuneCountInString(text); n > MaxAnalysisTextLength {
		return fmt.Errorf("text is %d characters, max is %d", n, MaxAnalysisTextLength)
	}
	return nil
}

// ValidateTargetName checks the shape of a deployment name before it is
// used as a lookup key or a metric label value.
func ValidateTargetName(name string) error {
	if name == "" {
		return fmt.Errorf("target cannot be empty")
	}
	if !targetNamePattern.MatchString(name) {
		return fmt.Errorf("invalid target name: %q", name)
	}
	return nil
}
