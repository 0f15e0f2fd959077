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
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// oklchKeyword is the function name that marks an OKLCH color descriptor.
const oklchKeyword = "oklch("

// chromaPercentScale maps a chroma percentage to absolute chroma (100% = 0.4).
const chromaPercentScale = 0.4

// ErrMalformedColor is matched by every *MalformedColorError via errors.Is.
var ErrMalformedColor = errors.New("malformed color")

// MalformedColorError reports a color string that does not match the
// expected grammar.
type MalformedColorError struct {
	Input  string // original string as passed by the caller
	Reason string // optional detail
}

func (e *MalformedColorError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed color %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("malformed color %q", e.Input)
}

// Is makes errors.Is(err, ErrMalformedColor) true for any MalformedColorError.
func (e *MalformedColorError) Is(target error) bool {
	return target == ErrMalformedColor
}

// Oklch is a color in the OKLCH cylindrical space.
//
// L is the normalized lightness in [0, 1] (the textual form uses a
// percentage), C the chroma (>= 0, roughly 0-0.4 for displayable colors) and
// H the hue in degrees [0, 360). Alpha is the opacity in [0, 1]; Parse sets
// it to 1 when the descriptor carries no alpha.
type Oklch struct {
	L, C, H float64
	Alpha   float64
}

const number = `[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`

// sep accepts either whitespace or a comma (with optional surrounding space).
const sep = `(?:\s*,\s*|\s+)`

var oklchPattern = regexp.MustCompile(`(?i)^\s*oklch\(\s*` +
	`(` + number + `)(%)?` + sep +
	`(` + number + `)(%)?` + sep +
	`(` + number + `)(deg)?` +
	`(?:\s*[/,]\s*(` + number + `)(%)?)?` +
	`\s*\)\s*$`)

// IsOklch reports whether value starts with the OKLCH keyword. It is a
// cheap prefix check; it does not validate the rest of the descriptor.
func IsOklch(value string) bool {
	s := strings.TrimSpace(value)
	if len(s) < len(oklchKeyword) {
		return false
	}
	return strings.EqualFold(s[:len(oklchKeyword)], oklchKeyword)
}

// Parse decomposes an OKLCH descriptor of the form
// "oklch(<lightness>[%] <chroma> <hue>[ / <alpha>])".
//
// Lightness given without a percent sign is read as a fraction when it is
// at most 1 and as a percentage otherwise. Lightness and alpha are clamped
// to [0, 1], negative chroma is clamped to 0 and hue is wrapped into
// [0, 360).
func Parse(s string) (Oklch, error) {
	m := oklchPattern.FindStringSubmatch(s)
	if m == nil {
		return Oklch{}, &MalformedColorError{Input: s}
	}

	l, err := parseComponent(s, m[1], "lightness")
	if err != nil {
		return Oklch{}, err
	}
	if m[2] != "" || l > 1 {
		l /= 100
	}

	c, err := parseComponent(s, m[3], "chroma")
	if err != nil {
		return Oklch{}, err
	}
	if m[4] != "" {
		c = c / 100 * chromaPercentScale
	}

	h, err := parseComponent(s, m[5], "hue")
	if err != nil {
		return Oklch{}, err
	}

	alpha := 1.0
	if m[7] != "" {
		alpha, err = parseComponent(s, m[7], "alpha")
		if err != nil {
			return Oklch{}, err
		}
		if m[8] != "" {
			alpha /= 100
		}
	}

	return Oklch{
		L:     clamp01(l),
		C:     math.Max(c, 0),
		H:     normalizeHue(h),
		Alpha: clamp01(alpha),
	}, nil
}

func parseComponent(input, raw, name string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &MalformedColorError{Input: input, Reason: "invalid " + name + " " + strconv.Quote(raw)}
	}
	return v, nil
}

// String renders the color back into CSS OKLCH notation.
func (c Oklch) String() string {
	base := fmt.Sprintf("oklch(%s%% %s %s", formatFloat(c.L*100, 2), formatFloat(c.C, 4), formatFloat(c.H, 2))
	if c.Alpha < 1 {
		return base + " / " + formatFloat(c.Alpha, 3) + ")"
	}
	return base + ")"
}

// Kind implements Value.
func (c Oklch) Kind() Kind { return KindOklch }

// Opacity implements Value.
func (c Oklch) Opacity() float64 { return c.Alpha }

// RGB implements Value by running the full conversion pipeline.
func (c Oklch) RGB() RGB {
	return c.ToOklab().ToLinear().Encode()
}

// finite reports whether all components are usable numbers.
func (c Oklch) finite() bool {
	for _, v := range [...]float64{c.L, c.C, c.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatFloat prints v with at most prec decimals and no trailing zeros.
func formatFloat(v float64, prec int) string {
	p := math.Pow(10, float64(prec))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
