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

// Package color converts CyberWallet design tokens authored in OKLCH into
// device colors (rgb, rgba, hsl, hsla) that renderers without OKLCH support
// can consume.
//
// The pipeline is:
//
//	"oklch(62% 0.19 285)" -> Oklch -> Oklab -> LinearRGB -> RGB -> "rgb(r, g, b)"
//
// Parse reports malformed input as *MalformedColorError. The top-level
// entry points (OklchToRGB, OklchToHSL, ConvertIfNeeded, DeepConvert) never
// fail: they log a warning and return a neutral gray fallback instead.
//
// Example:
//
//	conv := color.NewConverter(color.WithLogger(logger))
//	conv.ConvertIfNeeded("oklch(100% 0 0)") // "rgb(255, 255, 255)"
//	conv.ConvertIfNeeded("#ff0000")         // "#ff0000" (not OKLCH, unchanged)
package color
