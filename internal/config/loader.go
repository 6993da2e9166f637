// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the settings of the wavl command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".wavl"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for wavl settings.
const envPrefix = "WAVL"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// keyAnnotation is the pflag annotation naming the config key a flag sets.
const keyAnnotation = "wavl_config_key"

// BindFlag marks the flag called name in flags as setting key.
// LoadConfig lets a marked flag override other sources when it was set
// on the command line.
func BindFlag(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, keyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadConfig loads configuration from defaults, a config file,
// environment variables and flags, in increasing order of precedence.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
// Only flags marked with BindFlag that were set on the command line
// override other sources; flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := f.Annotations[keyAnnotation]
			if len(key) == 0 || !f.Changed || bindErr != nil {
				return
			}
			if err := viperCfg.BindPFlag(key[0], f); err != nil {
				bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.format", DefaultLogFormat)

	viperCfg.SetDefault("bench.size", DefaultBenchSize)
	viperCfg.SetDefault("bench.pattern", DefaultBenchPattern)
	viperCfg.SetDefault("bench.seed", DefaultBenchSeed)

	viperCfg.SetDefault("check.ops", DefaultCheckOps)
	viperCfg.SetDefault("check.key_space", DefaultCheckKeySpace)
	viperCfg.SetDefault("check.seed", DefaultCheckSeed)

	viperCfg.SetDefault("metrics.addr", "")
}
