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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/cyberwallet/pkg/color"
	"github.com/teradata-labs/cyberwallet/pkg/theme"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CYBERWALLET_DATA_DIR", dir)

	config, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "rgb", config.Converter.Format)
	assert.Equal(t, color.DefaultMaxDepth, config.Converter.MaxDepth)
	assert.Equal(t, "light", config.Theme.DefaultMode)
	assert.Equal(t, "file", config.Theme.Backend)
	assert.Equal(t, 200, config.Theme.DebounceMs)
	assert.False(t, config.Theme.Watch)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	assert.Equal(t, dir, config.DataDir)
	assert.Equal(t, filepath.Join(dir, "theme.yaml"), config.ThemePath())
	assert.Equal(t, theme.ModeLight, config.DefaultMode())
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("CYBERWALLET_DATA_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
converter:
  format: hsl
  max_depth: 8
theme:
  default_mode: comfort
  backend: sqlite
  path: ~/wallet/theme.db
  watch: true
logging:
  level: debug
  format: json
`), 0o600))

	config, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, "hsl", config.Converter.Format)
	assert.Equal(t, 8, config.Converter.MaxDepth)
	assert.Equal(t, theme.ModeComfort, config.DefaultMode())
	assert.Equal(t, "sqlite", config.Theme.Backend)
	assert.Equal(t, filepath.Join(home, "wallet", "theme.db"), config.ThemePath())
	assert.True(t, config.Theme.Watch)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, color.FormatHSL, config.NewConverter(nil).Format())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("CYBERWALLET_DATA_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "cwcolor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("converter:\n  format: rgb\n"), 0o600))
	t.Setenv("CYBERWALLET_CONVERTER_FORMAT", "hsl")
	t.Setenv("CYBERWALLET_THEME_DEFAULT_MODE", "dark")

	config, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "hsl", config.Converter.Format)
	assert.Equal(t, theme.ModeDark, config.DefaultMode())
}

func TestLoadConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("converter: [\n"), 0o600))

	_, err := LoadConfig(viper.New(), path)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Converter: ConverterConfig{Format: "rgb", MaxDepth: 32},
			Theme:     ThemeConfig{DefaultMode: "light", Backend: "file"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"hsl", func(c *Config) { c.Converter.Format = "hsl" }, ""},
		{"bad format", func(c *Config) { c.Converter.Format = "hex" }, "converter.format"},
		{"zero depth", func(c *Config) { c.Converter.MaxDepth = 0 }, "converter.max_depth"},
		{"bad mode", func(c *Config) { c.Theme.DefaultMode = "sepia" }, "theme.default_mode"},
		{"bad backend", func(c *Config) { c.Theme.Backend = "redis" }, "theme.backend"},
		{"key on file backend", func(c *Config) { c.Theme.Key = "secret" }, "theme.key"},
		{"key on sqlite", func(c *Config) { c.Theme.Backend = "sqlite"; c.Theme.Key = "secret" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
