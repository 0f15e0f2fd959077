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

// Package theme holds the CyberWallet design tokens and the state owner
// for the user's theme preference.
//
// Tokens are authored in OKLCH. Resolve converts a palette into device
// colors for renderers that cannot interpret OKLCH.
package theme

import (
	"sort"

	"github.com/teradata-labs/cyberwallet/pkg/color"
)

// Token groups that hold nested effect parameters rather than flat colors.
const (
	GroupGlass       = "glass"
	GroupNeumorphism = "neumorphism"
)

// Palette returns a fresh copy of the design tokens for mode. Callers may
// modify the result freely. Unknown modes get the light palette.
func Palette(mode Mode) color.StyleMap {
	switch mode {
	case ModeDark:
		return darkPalette()
	case ModeComfort:
		return comfortPalette()
	default:
		return lightPalette()
	}
}

// Resolve returns the palette for mode with every OKLCH token converted by
// conv. A nil converter uses the package default (rgb output).
func Resolve(mode Mode, conv *color.Converter) color.StyleMap {
	if conv == nil {
		return color.DeepConvert(Palette(mode))
	}
	return conv.DeepConvert(Palette(mode))
}

// TokenNames returns the top-level color token names in sorted order,
// excluding effect groups and numeric parameters.
func TokenNames(p color.StyleMap) []string {
	names := make([]string, 0, len(p))
	for k, v := range p {
		if _, ok := v.(string); ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

func lightPalette() color.StyleMap {
	return color.StyleMap{
		"surface":        "oklch(98% 0.005 250)",
		"surface_raised": "oklch(100% 0 0)",
		"text":           "oklch(22% 0.02 260)",
		"text_muted":     "oklch(50% 0.02 260)",
		"primary":        "oklch(62% 0.19 285)",
		"accent":         "oklch(78% 0.15 195)",
		"success":        "oklch(70% 0.17 150)",
		"warning":        "oklch(80% 0.16 85)",
		"danger":         "oklch(63% 0.22 25)",
		"border":         "oklch(90% 0.01 260)",
		"radius_px":      16,
		GroupGlass: color.StyleMap{
			"background": "oklch(100% 0 0 / 0.6)",
			"border":     "oklch(100% 0 0 / 0.35)",
			"blur_px":    16,
			"saturation": 1.4,
		},
		GroupNeumorphism: color.StyleMap{
			"highlight":   "oklch(100% 0 0)",
			"shadow":      "oklch(80% 0.01 260 / 0.6)",
			"distance_px": 8,
			"blur_px":     16,
		},
	}
}

func darkPalette() color.StyleMap {
	return color.StyleMap{
		"surface":        "oklch(18% 0.02 265)",
		"surface_raised": "oklch(24% 0.025 265)",
		"text":           "oklch(94% 0.01 260)",
		"text_muted":     "oklch(70% 0.02 260)",
		"primary":        "oklch(70% 0.18 290)",
		"accent":         "oklch(82% 0.14 195)",
		"success":        "oklch(75% 0.16 150)",
		"warning":        "oklch(84% 0.15 85)",
		"danger":         "oklch(68% 0.2 25)",
		"border":         "oklch(32% 0.02 265)",
		"radius_px":      16,
		GroupGlass: color.StyleMap{
			"background": "oklch(24% 0.025 265 / 0.55)",
			"border":     "oklch(100% 0 0 / 0.12)",
			"blur_px":    20,
			"saturation": 1.2,
		},
		GroupNeumorphism: color.StyleMap{
			"highlight":   "oklch(30% 0.02 265)",
			"shadow":      "oklch(8% 0.01 265 / 0.8)",
			"distance_px": 8,
			"blur_px":     16,
		},
	}
}

// comfortPalette is a warm, low-contrast variant for long reading sessions.
func comfortPalette() color.StyleMap {
	return color.StyleMap{
		"surface":        "oklch(95% 0.02 85)",
		"surface_raised": "oklch(97% 0.015 85)",
		"text":           "oklch(32% 0.03 60)",
		"text_muted":     "oklch(52% 0.03 60)",
		"primary":        "oklch(58% 0.12 50)",
		"accent":         "oklch(68% 0.1 160)",
		"success":        "oklch(64% 0.12 145)",
		"warning":        "oklch(74% 0.13 75)",
		"danger":         "oklch(58% 0.15 30)",
		"border":         "oklch(86% 0.03 80)",
		"radius_px":      18,
		GroupGlass: color.StyleMap{
			"background": "oklch(97% 0.015 85 / 0.65)",
			"border":     "oklch(86% 0.03 80 / 0.5)",
			"blur_px":    12,
			"saturation": 1.1,
		},
		GroupNeumorphism: color.StyleMap{
			"highlight":   "oklch(99% 0.01 85)",
			"shadow":      "oklch(78% 0.03 70 / 0.55)",
			"distance_px": 6,
			"blur_px":     14,
		},
	}
}
