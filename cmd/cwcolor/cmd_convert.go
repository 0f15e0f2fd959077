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
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teradata-labs/cyberwallet/internal/log"
	"github.com/teradata-labs/cyberwallet/pkg/color"
)

const fallbackHex = "#808080"

type convertOptions struct {
	format string
	alpha  float64
	strict bool
	copy   bool
}

func newConvertCmd(a *app) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <color>...",
		Short: "Convert OKLCH colors to rgb, rgba, hsl or hex",
		Long: heredoc.Doc(`
			Convert one or more OKLCH descriptors. Values that are not OKLCH are
			printed unchanged. Malformed OKLCH prints the neutral gray fallback
			unless --strict is set.
		`),
		Example: heredoc.Doc(`
			cwcolor convert "oklch(62% 0.19 285)"
			cwcolor convert --format hsl "oklch(50% 0.1 10)"
			cwcolor convert --format rgba --alpha 0.5 "oklch(70% 0.15 145)"
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, a, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: rgb, rgba, hsl, hex (default: converter.format)")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", -1, "Alpha for rgba output (default: the descriptor's alpha)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on malformed or unconvertible OKLCH instead of printing the fallback")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Also copy the results to the system clipboard")
	return cmd
}

func runConvert(cmd *cobra.Command, a *app, opts *convertOptions, args []string) error {
	format := opts.format
	if format == "" {
		format = a.config.Converter.Format
	}
	switch format {
	case "rgb", "rgba", "hsl", "hex":
	default:
		return fmt.Errorf("invalid --format %q (want rgb, rgba, hsl or hex)", format)
	}

	conv := a.converter()
	results := make([]string, 0, len(args))
	for _, arg := range args {
		if !color.IsOklch(arg) {
			results = append(results, arg)
			continue
		}
		parsed, err := color.Parse(arg)
		if opts.strict {
			if err != nil {
				return err
			}
			if _, err := color.Encode(parsed); err != nil {
				return fmt.Errorf("failed to convert %q: %w", arg, err)
			}
		}

		switch format {
		case "rgb":
			results = append(results, conv.RGB(arg))
		case "rgba":
			alpha := opts.alpha
			if alpha < 0 {
				alpha = 1
				if err == nil {
					alpha = parsed.Alpha
				}
			}
			results = append(results, conv.RGBA(arg, alpha))
		case "hsl":
			results = append(results, conv.HSL(arg))
		case "hex":
			results = append(results, hexOf(arg, parsed, err))
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintln(out, r)
	}
	if opts.copy {
		if err := clipboard.WriteAll(strings.Join(results, "\n")); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}
	return nil
}

func hexOf(input string, parsed color.Oklch, parseErr error) string {
	if parseErr != nil {
		log.Warn("Malformed OKLCH color, using fallback",
			zap.String("input", input),
			zap.Error(parseErr))
		return fallbackHex
	}
	rgb, err := color.Encode(parsed)
	if err != nil {
		log.Warn("OKLCH conversion failed, using fallback",
			zap.String("input", input),
			zap.Error(err))
		return fallbackHex
	}
	return color.Hex{Color: rgb, A: parsed.Alpha}.String()
}
