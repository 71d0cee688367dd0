// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package logging configures log/slog for arc-bookshelf.
//
// Logs go to stderr so they never mix with command output on stdout. When
// a log file is configured, entries are written there instead and rotated
// by size.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds a logger from cfg, installs it as the slog default and
// returns it with a closer for the underlying writer. The closer is a
// no-op for stderr.
//
// Level values: "debug", "info", "warn", "error". The config default is "warn";
// an empty or unknown level falls back to "info" (see ParseLevel).
// Format values: "text", "json" (default: "text")
func Setup(cfg config.LoggingConfig) (*slog.Logger, io.Closer) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		w, closer = lj, lj
	}

	logger := New(w, cfg.Level, cfg.Format)
	slog.SetDefault(logger)
	return logger, closer
}

// New returns a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
