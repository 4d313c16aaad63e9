// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dispatch

import "fmt"

// ErrorKind classifies every way a dispatch can fail.
//
// The taxonomy is closed: a dispatch always resolves to a success or to
// a DispatchError carrying exactly one of these kinds.
//
//   - KindUnknownTarget, KindTargetUnconfigured: caller or configuration
//     errors, never retried.
//   - KindColdStart, KindRequestTimeout: transient, retried with
//     exponential backoff. Both usually mean the inference service is
//     still loading its model.
//   - KindUnreachable: connection-level failure (refused, DNS, TLS),
//     never retried. The service is down, not cold.
//   - KindRemoteError: any other non-200 status, never retried.
//   - KindRetriesExhausted: terminal outcome after transient retries run
//     out; carries the last transient reason and the attempt count.
type ErrorKind string

const (
	KindUnknownTarget      ErrorKind = "unknown_target"
	KindTargetUnconfigured ErrorKind = "target_unconfigured"
	KindColdStart          ErrorKind = "cold_start"
	KindRequestTimeout     ErrorKind = "request_timeout"
	KindUnreachable        ErrorKind = "unreachable"
	KindRemoteError        ErrorKind = "remote_error"
	KindRetriesExhausted   ErrorKind = "retries_exhausted"
)

// Transient reports whether a failure of this kind is worth retrying.
func (k ErrorKind) Transient() bool {
	return k == KindColdStart || k == KindRequestTimeout
}

// DispatchError is the terminal failure outcome of a dispatch call.
type DispatchError struct {
	Kind    ErrorKind
	Message string

	// StatusCode is set for KindRemoteError and KindColdStart.
	StatusCode int

	// Attempts is the number of HTTP attempts actually performed.
	Attempts int

	// Reason is the last transient kind observed, set only for
	// KindRetriesExhausted.
	Reason ErrorKind
}

func (e *DispatchError) Error() string {
	if e.Kind == KindRetriesExhausted {
		return fmt.Sprintf("%s: %s after %d attempts", e.Kind, e.Reason, e.Attempts)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}
