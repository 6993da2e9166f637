// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands implements the subcommands of the wavl tool.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jba/wavl/internal/config"
	"github.com/jba/wavl/internal/logging"
)

// Persistent flags shared by every command.
const (
	ConfigFlag    = "config"
	LogLevelFlag  = "log-level"
	LogFormatFlag = "log-format"
)

// AddPersistentFlags registers the flags shared by every command on root.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().String(ConfigFlag, "", "config file (default .wavl.yaml in . or $HOME)")
	root.PersistentFlags().String(LogLevelFlag, config.DefaultLogLevel, "log level: trace, debug, info, warn or error")
	root.PersistentFlags().String(LogFormatFlag, config.DefaultLogFormat, "log format: console or json")
	config.BindFlag(root.PersistentFlags(), LogLevelFlag, "log.level")
	config.BindFlag(root.PersistentFlags(), LogFormatFlag, "log.format")
}

// setup loads the configuration for cmd and builds its logger,
// which writes to cmd's error stream.
func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	var path string
	if f := cmd.Flags().Lookup(ConfigFlag); f != nil {
		path = f.Value.String()
	}
	cfg, err := config.LoadConfig(path, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("logger: %w", err)
	}
	return cfg, log.With().Str("cmd", cmd.Name()).Logger(), nil
}
