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

package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Format selects the textual form produced by a Converter.
type Format string

const (
	FormatRGB Format = "rgb"
	FormatHSL Format = "hsl"
)

// Fallback strings returned when a conversion cannot be completed.
const (
	FallbackRGB = "rgb(128, 128, 128)"
	FallbackHSL = "hsl(0, 0%, 50%)"
)

// fallbackGray is the device color behind FallbackRGB.
var fallbackGray = RGB{R: 128, G: 128, B: 128}

// String renders "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBAString renders "rgba(r, g, b, a)" with alpha clamped to [0, 1].
func (c RGB) RGBAString(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(alpha))
}

// HSL returns hue in degrees [0, 360) and saturation and lightness in [0, 1].
func (c RGB) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// HSLString renders "hsl(h, s%, l%)" with integer components.
func (c RGB) HSLString() string {
	h, s, l := c.hslRounded()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
}

// HSLAString renders "hsla(h, s%, l%, a)".
func (c RGB) HSLAString(alpha float64) string {
	h, s, l := c.hslRounded()
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", h, s, l, formatAlpha(alpha))
}

// Hex renders "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) hslRounded() (h, s, l int) {
	hf, sf, lf := c.HSL()
	h = int(math.Round(hf)) % 360
	s = int(math.Round(sf * 100))
	l = int(math.Round(lf * 100))
	return h, s, l
}

func formatAlpha(a float64) string {
	if math.IsNaN(a) {
		a = 1
	}
	return formatFloat(clamp01(a), 3)
}
