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
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect cwcolor configuration",
		Long:  `Inspect the configuration merged from flags, environment, config file and defaults.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Long:  `Display the current configuration (merged from all sources).`,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runConfigShow(cmd, a)
			},
		},
		&cobra.Command{
			Use:   "example",
			Short: "Print an example cwcolor.yaml",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprint(cmd.OutOrStdout(), GenerateExampleConfig())
				return err
			},
		},
		&cobra.Command{
			Use:   "set-key",
			Short: "Save the theme database passphrase to the system keyring",
			Long: `Save the SQLCipher passphrase for the sqlite theme backend to the system
keyring. The passphrase is read without echo from a terminal, or as one line
from stdin otherwise.`,
			Args: cobra.NoArgs,
			RunE: runConfigSetKey,
		},
		&cobra.Command{
			Use:   "delete-key",
			Short: "Remove the theme database passphrase from the system keyring",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := keyring.Delete(KeyringService, ThemeKeyName); err != nil {
					return fmt.Errorf("failed to delete %s from keyring: %w", ThemeKeyName, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from system keyring\n", ThemeKeyName)
				return nil
			},
		},
	)
	return cmd
}

func runConfigShow(cmd *cobra.Command, a *app) error {
	c := a.config
	out := cmd.OutOrStdout()

	file := a.v.ConfigFileUsed()
	if file == "" {
		file = "(none)"
	}
	fmt.Fprintf(out, "Config file: %s\n", file)
	fmt.Fprintf(out, "Data dir:    %s\n\n", c.DataDir)

	fmt.Fprintln(out, "Converter:")
	fmt.Fprintf(out, "  Format:    %s\n", c.Converter.Format)
	fmt.Fprintf(out, "  Max depth: %d\n\n", c.Converter.MaxDepth)

	fmt.Fprintln(out, "Theme:")
	fmt.Fprintf(out, "  Default mode: %s\n", c.Theme.DefaultMode)
	fmt.Fprintf(out, "  Backend:      %s\n", c.Theme.Backend)
	fmt.Fprintf(out, "  Path:         %s\n", c.ThemePath())
	fmt.Fprintf(out, "  Encrypted:    %t\n", c.Theme.Key != "")
	fmt.Fprintf(out, "  Watch:        %t (debounce %dms)\n\n", c.Theme.Watch, c.Theme.DebounceMs)

	fmt.Fprintln(out, "Logging:")
	fmt.Fprintf(out, "  Level:  %s\n", c.Logging.Level)
	fmt.Fprintf(out, "  Format: %s\n", c.Logging.Format)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	secret, err := readSecret(cmd)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	if secret == "" {
		return errors.New("passphrase cannot be empty")
	}
	if err := keyring.Set(KeyringService, ThemeKeyName, secret); err != nil {
		return fmt.Errorf("error saving to keyring: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to system keyring\n", ThemeKeyName)
	return nil
}

// readSecret reads a hidden line from a terminal stdin, or a plain line otherwise.
func readSecret(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(cmd.OutOrStdout(), "Enter %s (input hidden): ", ThemeKeyName)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		return string(b), err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GenerateExampleConfig returns a commented cwcolor.yaml with the defaults.
func GenerateExampleConfig() string {
	defaults := map[string]any{
		"converter": map[string]any{"format": "rgb", "max_depth": 32},
		"theme": map[string]any{
			"default_mode": "light",
			"backend":      "file",
			"path":         "",
			"watch":        false,
			"debounce_ms":  200,
		},
		"logging": map[string]any{"level": "warn", "format": "text"},
	}
	body, err := yaml.Marshal(defaults)
	if err != nil {
		return ""
	}
	return "# cwcolor configuration. Every key can be overridden with\n" +
		"# CYBERWALLET_<SECTION>_<KEY>, e.g. CYBERWALLET_THEME_BACKEND=sqlite.\n" +
		string(body)
}
