// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "errors"

// Config is the top-level configuration of the wavl command.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Bench   BenchConfig   `mapstructure:"bench"`
	Check   CheckConfig   `mapstructure:"check"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BenchConfig holds the settings of the bench command.
type BenchConfig struct {
	Size    int    `mapstructure:"size"`
	Pattern string `mapstructure:"pattern"`
	Seed    uint64 `mapstructure:"seed"`
}

// CheckConfig holds the settings of the randomized check command.
type CheckConfig struct {
	Ops      int    `mapstructure:"ops"`
	KeySpace int    `mapstructure:"key_space"`
	Seed     uint64 `mapstructure:"seed"`
}

// MetricsConfig holds the address of the metrics endpoint.
// An empty address disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Defaults.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultBenchSize     = 100000
	DefaultBenchPattern  = "random"
	DefaultBenchSeed     = 1
	DefaultCheckOps      = 10000
	DefaultCheckKeySpace = 1000
	DefaultCheckSeed     = 1
)

var (
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of trace, debug, info, warn, error")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("log.format must be console or json")
	// ErrInvalidBenchSize indicates the bench size is negative.
	ErrInvalidBenchSize = errors.New("bench.size must be non-negative")
	// ErrInvalidBenchPattern indicates an unknown key pattern.
	ErrInvalidBenchPattern = errors.New("bench.pattern must be sequential, reverse or random")
	// ErrInvalidCheckOps indicates the check op count is negative.
	ErrInvalidCheckOps = errors.New("check.ops must be non-negative")
	// ErrInvalidCheckKeySpace indicates the key space is negative.
	ErrInvalidCheckKeySpace = errors.New("check.key_space must be non-negative")
)

// Validate checks Config invariants and returns the first error found.
// Empty strings and zero numbers are accepted where a default applies.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return ErrInvalidLogFormat
	}

	if c.Bench.Size < 0 {
		return ErrInvalidBenchSize
	}
	switch c.Bench.Pattern {
	case "", "sequential", "reverse", "random":
	default:
		return ErrInvalidBenchPattern
	}

	if c.Check.Ops < 0 {
		return ErrInvalidCheckOps
	}
	if c.Check.KeySpace < 0 {
		return ErrInvalidCheckKeySpace
	}
	return nil
}
