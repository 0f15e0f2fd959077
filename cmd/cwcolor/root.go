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
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teradata-labs/cyberwallet/internal/log"
	"github.com/teradata-labs/cyberwallet/internal/version"
	"github.com/teradata-labs/cyberwallet/pkg/color"
	"github.com/teradata-labs/cyberwallet/pkg/theme"
)

// app carries per-invocation state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	config  *Config
	logger  *zap.Logger
}

// Execute runs the root command.
func Execute() {
	err := newRootCmd().Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "cwcolor",
		Short: "CyberWallet OKLCH color converter",
		Long: heredoc.Doc(`
			cwcolor converts OKLCH color descriptors, as used by the CyberWallet
			design tokens, into rgb(), rgba(), hsl() and hex strings for renderers
			that cannot interpret OKLCH. It also reads and changes the persisted
			theme mode (light, dark or comfort).
		`),
		Version:           version.String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $CYBERWALLET_DATA_DIR/cwcolor.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("output-format", string(color.FormatRGB), "Style output format for deep and theme (rgb, hsl)")
	rootCmd.PersistentFlags().String("theme-backend", "file", "Theme preference backend (file, sqlite)")
	rootCmd.PersistentFlags().String("theme-path", "", "Theme preference file or database (default: data dir)")

	// Bind flags to viper
	_ = a.v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = a.v.BindPFlag("converter.format", rootCmd.PersistentFlags().Lookup("output-format"))
	_ = a.v.BindPFlag("theme.backend", rootCmd.PersistentFlags().Lookup("theme-backend"))
	_ = a.v.BindPFlag("theme.path", rootCmd.PersistentFlags().Lookup("theme-path"))

	rootCmd.AddCommand(
		newConvertCmd(a),
		newInspectCmd(a),
		newDeepCmd(a),
		newThemeCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads configuration and installs the logger before any subcommand runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	config, err := LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	a.config = config

	logger, err := log.New(config.Logging.Level, config.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger
	log.SetLogger(logger)
	return nil
}

func (a *app) converter() *color.Converter {
	return a.config.NewConverter(a.logger)
}

// openStore opens the configured theme backend and loads the preference.
func (a *app) openStore(ctx context.Context) (*theme.Store, error) {
	var backend theme.Backend
	path := a.config.ThemePath()

	switch a.config.Theme.Backend {
	case "sqlite":
		b, err := theme.NewSQLiteBackend(ctx, path, a.config.Theme.Key)
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		backend = theme.NewFileBackend(path)
	}

	store, err := theme.NewStore(ctx, backend, theme.StoreOptions{
		DefaultMode: a.config.DefaultMode(),
		Logger:      a.logger,
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	log.Debug("Opened theme store",
		zap.String("backend", a.config.Theme.Backend),
		zap.String("path", path))
	return store, nil
}
