// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for sentibench components.
//
// Built on the standard library slog package with two destinations:
// stderr text output by default (follows Unix CLI conventions), plus an
// optional JSON log file when a log directory is configured. The
// returned logger is installed as the slog default so package-level
// slog calls throughout the services flow through it.
//
// # Basic Usage
//
//	logger := logging.Init(logging.Config{Level: "info", Service: "backend"})
//	defer logger.Close()
//	slog.Info("dispatch succeeded", "target", target)
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config controls logger construction.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Unrecognized
	// values fall back to info.
	Level string

	// LogDir enables JSON file logging when non-empty. The file is
	// named {service}_{date}.log inside this directory.
	LogDir string

	// Service tags every record and names the log file.
	Service string
}

// Logger wraps slog with an optional file destination that must be
// closed on shutdown.
type Logger struct {
	*slog.Logger
	file *os.File
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds the logger and installs it as the slog default.
//
// File logging failures degrade to stderr-only with a warning; a
// logging problem should never take the service down.
func Init(cfg Config) *Logger {
	level := ParseLevel(cfg.Level)
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	handlers := []slog.Handler{stderrHandler}
	var file *os.File

	if cfg.LogDir != "" {
		f, err := openLogFile(cfg.LogDir, cfg.Service)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging: file destination disabled: %v\n", err)
		} else {
			file = f
			handlers = append(handlers,
				slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		}
	}

	var handler slog.Handler = stderrHandler
	if len(handlers) > 1 {
		handler = &multiHandler{handlers: handlers}
	}

	sl := slog.New(handler)
	if cfg.Service != "" {
		sl = sl.With("service", cfg.Service)
	}
	slog.SetDefault(sl)
	return &Logger{Logger: sl, file: file}
}

// Close flushes and closes the file destination, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func openLogFile(dir, service string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	if service == "" {
		service = "sentibench"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// multiHandler fans one record out to every destination.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, inner := range h.handlers {
		if inner.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, inner := range h.handlers {
		if inner.Enabled(ctx, r.Level) {
			if err := inner.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		out[i] = inner.WithAttrs(attrs)
	}
	return &multiHandler{handlers: out}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		out[i] = inner.WithGroup(name)
	}
	return &multiHandler{handlers: out}
}
