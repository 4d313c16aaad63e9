// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DEBUG", "SERVERLESS_ENDPOINT", "CLUSTER_ENDPOINT",
		"MAX_RETRIES", "INITIAL_BACKOFF", "REQUEST_TIMEOUT",
		"HOST", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s := Load()

	assert.Equal(t, "sentibench-backend", s.AppName)
	assert.False(t, s.Debug)
	assert.Empty(t, s.ServerlessEndpoint)
	assert.Empty(t, s.ClusterEndpoint)
	assert.Equal(t, DefaultMaxRetries, s.MaxRetries)
	assert.Equal(t, DefaultInitialBackoff, s.InitialBackoff)
	assert.Equal(t, DefaultRequestTimeout, s.RequestTimeout)
	assert.Equal(t, "0.0.0.0", s.Host)
	assert.Equal(t, 8000, s.Port)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBUG", "true")
	t.Setenv("SERVERLESS_ENDPOINT", "https://fn.example.com/analyze")
	t.Setenv("CLUSTER_ENDPOINT", "http://10.0.0.4:8080/analyze")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("INITIAL_BACKOFF", "0.5")
	t.Setenv("REQUEST_TIMEOUT", "10")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	s := Load()

	assert.True(t, s.Debug)
	assert.Equal(t, "https://fn.example.com/analyze", s.ServerlessEndpoint)
	assert.Equal(t, "http://10.0.0.4:8080/analyze", s.ClusterEndpoint)
	assert.Equal(t, 5, s.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, s.InitialBackoff)
	assert.Equal(t, 10*time.Second, s.RequestTimeout)
	assert.Equal(t, "127.0.0.1", s.Host)
	assert.Equal(t, 9000, s.Port)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_RETRIES", "lots")
	t.Setenv("INITIAL_BACKOFF", "-3")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("PORT", "http")

	s := Load()

	assert.Equal(t, DefaultMaxRetries, s.MaxRetries)
	assert.Equal(t, DefaultInitialBackoff, s.InitialBackoff)
	assert.Equal(t, DefaultRequestTimeout, s.RequestTimeout)
	assert.Equal(t, 8000, s.Port)
}

func TestEnvSeconds_FractionalValues(t *testing.T) {
	t.Setenv("TEST_BACKOFF_SECONDS", "1.25")
	assert.Equal(t, 1250*time.Millisecond, envSeconds("TEST_BACKOFF_SECONDS", time.Second))
}
