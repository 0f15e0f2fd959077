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
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"charm.land/lipgloss/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/cyberwallet/internal/log"
	"github.com/teradata-labs/cyberwallet/pkg/color"
	"github.com/teradata-labs/cyberwallet/pkg/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show design tokens and manage the theme mode",
		Long: heredoc.Doc(`
			Manage the persisted theme mode (light, dark or comfort) and print the
			resolved design tokens for a mode.
		`),
	}
	cmd.AddCommand(
		newThemeShowCmd(a),
		newThemeGetCmd(a),
		newThemeSetCmd(a),
		newThemeToggleCmd(a),
	)
	return cmd
}

type themeShowOptions struct {
	mode    string
	filter  string
	noColor bool
	watch   bool
}

// renderOptions controls one palette listing.
type renderOptions struct {
	filter  string // fuzzy token-name filter; empty lists everything
	noColor bool
}

func newThemeShowCmd(a *app) *cobra.Command {
	opts := &themeShowOptions{}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved tokens for a mode",
		Long: heredoc.Doc(`
			Print every design token for the current mode (or --mode) next to its
			converted value and a color swatch. With --watch the listing is
			printed again whenever the preference file changes.
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runThemeShow(cmd, a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Mode to show (default: the persisted mode)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Only show tokens fuzzily matching this name")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Omit color swatches (default when not a terminal)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Re-render when the preference changes (file backend; default: theme.watch)")
	return cmd
}

func runThemeShow(cmd *cobra.Command, a *app, opts *themeShowOptions) error {
	out := cmd.OutOrStdout()
	conv := a.converter()
	ropts := renderOptions{
		filter:  opts.filter,
		noColor: opts.noColor || termenv.NewOutput(out).EnvColorProfile() == termenv.Ascii,
	}

	if opts.mode != "" {
		mode, err := theme.ParseMode(opts.mode)
		if err != nil {
			return err
		}
		return renderPalette(out, mode, conv, ropts)
	}

	ctx := cmd.Context()
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := renderPalette(out, store.Mode(), conv, ropts); err != nil {
		return err
	}

	watch := opts.watch || (!cmd.Flags().Changed("watch") && a.config.Theme.Watch)
	if !watch {
		return nil
	}
	return watchPalette(ctx, a, store, func(p theme.Preference) {
		fmt.Fprintln(out)
		_ = renderPalette(out, p.Mode, conv, ropts)
	})
}

// watchPalette blocks until interrupted, calling render after every change.
func watchPalette(ctx context.Context, a *app, store *theme.Store, render func(theme.Preference)) error {
	if a.config.Theme.Backend != "file" {
		return fmt.Errorf("--watch requires the file backend, not %q", a.config.Theme.Backend)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := theme.NewWatcher(store, theme.NewFileBackend(a.config.ThemePath()), theme.WatcherConfig{
		DebounceMs: a.config.Theme.DebounceMs,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}
	cancel := store.Subscribe(render)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Info("Stopped watching theme preference",
		zap.String("path", a.config.ThemePath()))
	return w.Stop()
}

func renderPalette(w io.Writer, mode theme.Mode, conv *color.Converter, opts renderOptions) error {
	raw := flatten(theme.Palette(mode), "")
	resolved := flatten(conv.DeepConvert(theme.Palette(mode)), "")

	keys := make([]string, 0, len(raw))
	for k, v := range raw {
		if _, ok := v.(string); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	if opts.filter != "" {
		matches := fuzzy.Find(opts.filter, keys)
		if len(matches) == 0 {
			return fmt.Errorf("no token matches %q", opts.filter)
		}
		filtered := make([]string, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, m.Str)
		}
		keys = filtered
	}

	width := 0
	for _, k := range keys {
		width = max(width, uniseg.StringWidth(k))
	}

	fmt.Fprintf(w, "Theme: %s\n", mode)
	for _, k := range keys {
		src := raw[k].(string)
		name := k + strings.Repeat(" ", width-uniseg.StringWidth(k))
		line := fmt.Sprintf("%s  %-28s  %s", name, src, resolved[k])
		if !opts.noColor {
			line = swatch(src) + " " + line
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// swatch renders a small block in the token's color.
func swatch(oklch string) string {
	o, err := color.Parse(oklch)
	if err != nil {
		return "  "
	}
	rgb, err := color.Encode(o)
	if err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(rgb.Hex())).Render("  ")
}

// flatten maps nested token groups to dotted keys.
func flatten(m color.StyleMap, prefix string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if group, ok := v.(color.StyleMap); ok {
			for gk, gv := range flatten(group, key) {
				out[gk] = gv
			}
			continue
		}
		out[key] = v
	}
	return out
}

func newThemeGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the persisted theme mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Fprintln(cmd.OutOrStdout(), store.Mode())
			return nil
		},
	}
}

func newThemeSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set <mode>",
		Short:     "Persist a theme mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: modeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := theme.ParseMode(args[0])
			if err != nil {
				return err
			}
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetMode(cmd.Context(), mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme mode set to %s\n", mode)
			return nil
		},
	}
}

func newThemeToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Advance to the next theme mode (light, dark, comfort)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mode, err := store.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme mode set to %s\n", mode)
			return nil
		},
	}
}

func modeNames() []string {
	names := make([]string, len(theme.Modes))
	for i, m := range theme.Modes {
		names[i] = m.String()
	}
	return names
}
