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
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies the syntax a Value was parsed from.
type Kind int

const (
	KindOklch Kind = iota + 1
	KindRGB
	KindHSL
	KindHex
)

func (k Kind) String() string {
	switch k {
	case KindOklch:
		return "oklch"
	case KindRGB:
		return "rgb"
	case KindHSL:
		return "hsl"
	case KindHex:
		return "hex"
	default:
		return "unknown"
	}
}

// Value is a parsed color of any supported syntax. The concrete type is one
// of Oklch, RGBA, HSL or Hex.
type Value interface {
	Kind() Kind
	// RGB returns the gamma-encoded device color.
	RGB() RGB
	// Opacity returns alpha in [0, 1].
	Opacity() float64
	String() string
}

var (
	_ Value = Oklch{}
	_ Value = RGBA{}
	_ Value = HSL{}
	_ Value = Hex{}
)

// RGBA is a color given in rgb() or rgba() notation.
type RGBA struct {
	Color RGB
	A     float64
}

func (c RGBA) Kind() Kind       { return KindRGB }
func (c RGBA) RGB() RGB         { return c.Color }
func (c RGBA) Opacity() float64 { return c.A }

func (c RGBA) String() string {
	if c.A < 1 {
		return c.Color.RGBAString(c.A)
	}
	return c.Color.String()
}

// HSL is a color given in hsl() or hsla() notation. S and L are fractions.
type HSL struct {
	H, S, L float64
	A       float64
}

func (c HSL) Kind() Kind       { return KindHSL }
func (c HSL) Opacity() float64 { return c.A }

func (c HSL) RGB() RGB {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c HSL) String() string {
	if c.A < 1 {
		return c.RGB().HSLAString(c.A)
	}
	return c.RGB().HSLString()
}

// Hex is a color given as #rgb, #rgba, #rrggbb or #rrggbbaa.
type Hex struct {
	Color RGB
	A     float64
}

func (c Hex) Kind() Kind       { return KindHex }
func (c Hex) RGB() RGB         { return c.Color }
func (c Hex) Opacity() float64 { return c.A }

func (c Hex) String() string {
	if c.A < 1 {
		return fmt.Sprintf("%s%02x", c.Color.Hex(), to8bit(c.A))
	}
	return c.Color.Hex()
}

var (
	hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

	rgbPattern = regexp.MustCompile(`(?i)^\s*rgba?\(\s*` +
		`(` + number + `)(%)?` + sep +
		`(` + number + `)(%)?` + sep +
		`(` + number + `)(%)?` +
		`(?:\s*[/,]\s*(` + number + `)(%)?)?` +
		`\s*\)\s*$`)

	hslPattern = regexp.MustCompile(`(?i)^\s*hsla?\(\s*` +
		`(` + number + `)(?:deg)?` + sep +
		`(` + number + `)%?` + sep +
		`(` + number + `)%?` +
		`(?:\s*[/,]\s*(` + number + `)(%)?)?` +
		`\s*\)\s*$`)
)

// ParseValue parses any supported color syntax into its tagged variant.
func ParseValue(s string) (Value, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case IsOklch(t):
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(t, "#"):
		return parseHex(s)
	case strings.HasPrefix(t, "rgb"):
		return parseRGB(s)
	case strings.HasPrefix(t, "hsl"):
		return parseHSL(s)
	}
	return nil, &MalformedColorError{Input: s, Reason: "unrecognized color syntax"}
}

func parseHex(s string) (Value, error) {
	t := strings.TrimSpace(s)
	if !hexPattern.MatchString(t) {
		return nil, &MalformedColorError{Input: s, Reason: "invalid hex color"}
	}

	alpha := 1.0
	switch len(t) {
	case 5:
		a, _ := strconv.ParseUint(t[4:5], 16, 8)
		alpha = float64(a*17) / 255
		t = t[:4]
	case 9:
		a, _ := strconv.ParseUint(t[7:9], 16, 8)
		alpha = float64(a) / 255
		t = t[:7]
	}

	c, err := colorful.Hex(strings.ToLower(t))
	if err != nil {
		return nil, &MalformedColorError{Input: s, Reason: err.Error()}
	}
	r, g, b := c.RGB255()
	return Hex{Color: RGB{R: r, G: g, B: b}, A: alpha}, nil
}

func parseRGB(s string) (Value, error) {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, &MalformedColorError{Input: s}
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseComponent(s, m[1+2*i], "channel")
		if err != nil {
			return nil, err
		}
		if m[2+2*i] != "" {
			v = v / 100 * 255
		}
		ch[i] = to8bit(v / 255)
	}

	alpha, err := parseAlpha(s, m[7], m[8])
	if err != nil {
		return nil, err
	}
	return RGBA{Color: RGB{R: ch[0], G: ch[1], B: ch[2]}, A: alpha}, nil
}

func parseHSL(s string) (Value, error) {
	m := hslPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, &MalformedColorError{Input: s}
	}

	h, err := parseComponent(s, m[1], "hue")
	if err != nil {
		return nil, err
	}
	sat, err := parseComponent(s, m[2], "saturation")
	if err != nil {
		return nil, err
	}
	light, err := parseComponent(s, m[3], "lightness")
	if err != nil {
		return nil, err
	}
	alpha, err := parseAlpha(s, m[4], m[5])
	if err != nil {
		return nil, err
	}

	return HSL{
		H: normalizeHue(h),
		S: clamp01(sat / 100),
		L: clamp01(light / 100),
		A: alpha,
	}, nil
}

func parseAlpha(input, raw, percent string) (float64, error) {
	if raw == "" {
		return 1, nil
	}
	a, err := parseComponent(input, raw, "alpha")
	if err != nil {
		return 0, err
	}
	if percent != "" {
		a /= 100
	}
	return clamp01(a), nil
}
