// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config provides environment-driven settings for the sentibench
// backend.
//
// Settings are read once at startup from environment variables, with a
// .env file loaded first when present (godotenv). Every knob has a
// default so the backend starts with zero configuration, except the two
// deployment endpoints which are independently optional: a target with
// an empty endpoint is reported as unconfigured at dispatch time rather
// than failing startup.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the retry and timeout knobs.
const (
	DefaultMaxRetries     = 3
	DefaultInitialBackoff = 5 * time.Second
	DefaultRequestTimeout = 35 * time.Second
)

// Settings holds the full backend configuration.
type Settings struct {
	AppName    string
	AppVersion string
	Debug      bool

	// Deployment endpoints. Either may be empty.
	ServerlessEndpoint string
	ClusterEndpoint    string

	// Retry configuration for the dispatcher.
	MaxRetries     int
	InitialBackoff time.Duration
	RequestTimeout time.Duration

	// Server configuration.
	Host string
	Port int

	LogLevel string
}

// Load reads settings from the environment, applying defaults.
//
// A .env file in the working directory is loaded first when present;
// a missing file is not an error (matches local-dev usage where the
// endpoints come from the shell instead).
func Load() *Settings {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	return &Settings{
		AppName:            "sentibench-backend",
		AppVersion:         "1.0.0",
		Debug:              os.Getenv("DEBUG") == "true",
		ServerlessEndpoint: os.Getenv("SERVERLESS_ENDPOINT"),
		ClusterEndpoint:    os.Getenv("CLUSTER_ENDPOINT"),
		MaxRetries:         envInt("MAX_RETRIES", DefaultMaxRetries),
		InitialBackoff:     envSeconds("INITIAL_BACKOFF", DefaultInitialBackoff),
		RequestTimeout:     envSeconds("REQUEST_TIMEOUT", DefaultRequestTimeout),
		Host:               envString("HOST", "0.0.0.0"),
		Port:               envInt("PORT", 8000),
		LogLevel:           envString("LOG_LEVEL", "info"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-integer environment value", "key", key, "value", v)
		return fallback
	}
	return n
}

// envSeconds parses a float number of seconds into a Duration.
func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("ignoring invalid duration environment value", "key", key, "value", v)
		return fallback
	}
	return time.Duration(f * float64(time.Second))
}
