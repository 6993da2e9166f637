// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the zerolog logger used by the wavl command.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jba/wavl/internal/config"
)

const consoleTimeFormat = "15:04:05.000"

// New returns a logger writing to w at the level and in the format
// named by cfg. Empty settings fall back to the config defaults.
func New(w io.Writer, cfg config.LogConfig) (zerolog.Logger, error) {
	levelName := cfg.Level
	if levelName == "" {
		levelName = config.DefaultLogLevel
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	var logger zerolog.Logger
	switch cfg.Format {
	case "", "console":
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: consoleTimeFormat,
		})
	case "json":
		logger = zerolog.New(w)
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", config.ErrInvalidLogFormat, cfg.Format)
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
