// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"

	cwconfig "github.com/teradata-labs/cyberwallet/pkg/config"
	"github.com/teradata-labs/cyberwallet/pkg/color"
	"github.com/teradata-labs/cyberwallet/pkg/theme"
)

// EnvPrefix prefixes every environment override (CYBERWALLET_THEME_BACKEND, ...).
const EnvPrefix = "CYBERWALLET"

// Keyring entries.
const (
	KeyringService = "cyberwallet"
	ThemeKeyName   = "theme-db-key" // SQLCipher passphrase for the theme database
)

// Config is the effective cwcolor configuration.
type Config struct {
	Converter ConverterConfig `mapstructure:"converter"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Logging   LoggingConfig   `mapstructure:"logging"`

	// DataDir is resolved from CYBERWALLET_DATA_DIR, not from the file.
	DataDir string `mapstructure:"-"`
}

// ConverterConfig configures OKLCH conversion.
type ConverterConfig struct {
	Format   string `mapstructure:"format"`    // rgb or hsl
	MaxDepth int    `mapstructure:"max_depth"` // style tree nesting bound
}

// ThemeConfig configures theme preference persistence.
type ThemeConfig struct {
	DefaultMode string `mapstructure:"default_mode"`
	Backend     string `mapstructure:"backend"` // file or sqlite
	Path        string `mapstructure:"path"`    // empty means the data dir default
	Key         string `mapstructure:"key"`     // SQLCipher passphrase (sqlite only)
	Watch       bool   `mapstructure:"watch"`
	DebounceMs  int    `mapstructure:"debounce_ms"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// LoadConfig loads configuration into v from cfgFile (or the standard
// search paths), CYBERWALLET_* environment variables and bound flags.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		for _, p := range cwconfig.ConfigSearchPaths() {
			v.AddConfigPath(p)
		}
		v.SetConfigName(cwconfig.ConfigFileName) // cwcolor.yaml
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file; defaults + env vars + flags.
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.DataDir = cwconfig.GetDataDir()

	// Non-fatal: the keyring may be unavailable; the key can come from env or file.
	if config.Theme.Backend == "sqlite" && config.Theme.Key == "" {
		if key, err := keyring.Get(KeyringService, ThemeKeyName); err == nil {
			config.Theme.Key = key
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("converter.format", string(color.FormatRGB))
	v.SetDefault("converter.max_depth", color.DefaultMaxDepth)

	v.SetDefault("theme.default_mode", theme.ModeLight.String())
	v.SetDefault("theme.backend", "file")
	v.SetDefault("theme.path", "")
	v.SetDefault("theme.key", "")
	v.SetDefault("theme.watch", false)
	v.SetDefault("theme.debounce_ms", 200)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch color.Format(c.Converter.Format) {
	case color.FormatRGB, color.FormatHSL:
	default:
		return fmt.Errorf("invalid converter.format %q (want rgb or hsl)", c.Converter.Format)
	}
	if c.Converter.MaxDepth <= 0 {
		return fmt.Errorf("invalid converter.max_depth %d (must be positive)", c.Converter.MaxDepth)
	}
	if _, err := theme.ParseMode(c.Theme.DefaultMode); err != nil {
		return fmt.Errorf("invalid theme.default_mode: %w", err)
	}
	switch c.Theme.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("invalid theme.backend %q (want file or sqlite)", c.Theme.Backend)
	}
	if c.Theme.Key != "" && c.Theme.Backend != "sqlite" {
		return errors.New("theme.key is only supported by the sqlite backend")
	}
	return nil
}

// ThemePath returns the configured preference location, expanded.
func (c *Config) ThemePath() string {
	if c.Theme.Path == "" {
		return cwconfig.DefaultThemePath(c.Theme.Backend)
	}
	return cwconfig.ExpandPath(c.Theme.Path)
}

// DefaultMode returns the parsed theme.default_mode.
func (c *Config) DefaultMode() theme.Mode {
	m, err := theme.ParseMode(c.Theme.DefaultMode)
	if err != nil {
		return theme.ModeLight
	}
	return m
}

// NewConverter builds a converter from the converter section.
func (c *Config) NewConverter(logger *zap.Logger) *color.Converter {
	return color.NewConverter(
		color.WithLogger(logger),
		color.WithFormat(color.Format(c.Converter.Format)),
		color.WithMaxDepth(c.Converter.MaxDepth),
	)
}
