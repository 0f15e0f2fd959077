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

	"go.uber.org/zap"

	"github.com/teradata-labs/cyberwallet/internal/log"
)

// ErrNonFinite is returned when a conversion produces NaN or Inf.
var ErrNonFinite = errors.New("color: non-finite component")

// Converter turns OKLCH strings into device color strings. The zero value
// is not usable; build one with NewConverter. A Converter is stateless after
// construction and safe for concurrent use.
type Converter struct {
	logger   *zap.Logger
	format   Format
	maxDepth int
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for fallback warnings.
// Without it the converter logs through the global internal/log logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithFormat selects the output form used by ConvertIfNeeded and DeepConvert.
func WithFormat(f Format) Option {
	return func(c *Converter) { c.format = f }
}

// WithMaxDepth bounds the nesting DeepConvert will walk.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// NewConverter creates a converter emitting rgb() by default.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		format:   FormatRGB,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.format != FormatHSL {
		c.format = FormatRGB
	}
	return c
}

// Format returns the configured output form.
func (c *Converter) Format() Format { return c.format }

func (c *Converter) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return log.Logger()
}

// Encode runs the numeric pipeline for an already-parsed color and fails
// on non-finite input or output instead of silently clamping it.
func Encode(o Oklch) (RGB, error) {
	if !o.finite() {
		return RGB{}, fmt.Errorf("%w in %v", ErrNonFinite, o)
	}
	lin := o.ToOklab().ToLinear()
	if !lin.finite() {
		return RGB{}, fmt.Errorf("%w in linear result %v", ErrNonFinite, lin)
	}
	return lin.Encode(), nil
}

// convert parses and encodes s, logging and reporting ok=false on failure.
func (c *Converter) convert(s string) (Oklch, RGB, bool) {
	o, err := Parse(s)
	if err == nil {
		var rgb RGB
		if rgb, err = Encode(o); err == nil {
			return o, rgb, true
		}
	}
	c.log().Warn("OKLCH conversion failed, using fallback color",
		zap.String("input", s),
		zap.Error(err))
	return Oklch{}, RGB{}, false
}

// RGB converts an OKLCH string to "rgb(r, g, b)". It never fails: malformed
// input yields FallbackRGB.
func (c *Converter) RGB(s string) string {
	_, rgb, ok := c.convert(s)
	if !ok {
		return FallbackRGB
	}
	return rgb.String()
}

// RGBA converts an OKLCH string to "rgba(r, g, b, a)" using the given alpha,
// ignoring any alpha present in the descriptor.
func (c *Converter) RGBA(s string, alpha float64) string {
	_, rgb, ok := c.convert(s)
	if !ok {
		return fallbackGray.RGBAString(alpha)
	}
	return rgb.RGBAString(alpha)
}

// HSL converts an OKLCH string to "hsl(h, s%, l%)". It never fails:
// malformed input yields FallbackHSL.
func (c *Converter) HSL(s string) string {
	_, rgb, ok := c.convert(s)
	if !ok {
		return FallbackHSL
	}
	return rgb.HSLString()
}

// OklchString renders an already-parsed color in the configured format,
// falling back on non-finite components.
func (c *Converter) OklchString(o Oklch) string {
	rgb, err := Encode(o)
	if err != nil {
		c.log().Warn("OKLCH conversion failed, using fallback color",
			zap.String("input", o.String()),
			zap.Error(err))
		if c.format == FormatHSL {
			return FallbackHSL
		}
		return FallbackRGB
	}
	return c.emit(rgb, o.Alpha)
}

// ConvertIfNeeded converts value when it looks like OKLCH and returns it
// unchanged otherwise. Translucent OKLCH colors produce rgba()/hsla().
func (c *Converter) ConvertIfNeeded(value string) string {
	if !IsOklch(value) {
		return value
	}
	o, rgb, ok := c.convert(value)
	if !ok {
		if c.format == FormatHSL {
			return FallbackHSL
		}
		return FallbackRGB
	}
	return c.emit(rgb, o.Alpha)
}

// ConvertChecked is ConvertIfNeeded without the fallback: a malformed
// descriptor returns a *MalformedColorError and a non-finite conversion an
// error wrapping ErrNonFinite. Strings that are not OKLCH pass through.
func (c *Converter) ConvertChecked(value string) (string, error) {
	if !IsOklch(value) {
		return value, nil
	}
	o, err := Parse(value)
	if err != nil {
		return "", err
	}
	rgb, err := Encode(o)
	if err != nil {
		return "", err
	}
	return c.emit(rgb, o.Alpha), nil
}

func (c *Converter) emit(rgb RGB, alpha float64) string {
	translucent := alpha < 1
	switch {
	case c.format == FormatHSL && translucent:
		return rgb.HSLAString(alpha)
	case c.format == FormatHSL:
		return rgb.HSLString()
	case translucent:
		return rgb.RGBAString(alpha)
	default:
		return rgb.String()
	}
}

// defaultConverter backs the package-level helpers.
var defaultConverter = NewConverter()

// OklchToRGB converts s with the default converter. See Converter.RGB.
func OklchToRGB(s string) string { return defaultConverter.RGB(s) }

// OklchToRGBA converts s with the default converter. See Converter.RGBA.
func OklchToRGBA(s string, alpha float64) string { return defaultConverter.RGBA(s, alpha) }

// OklchToHSL converts s with the default converter. See Converter.HSL.
func OklchToHSL(s string) string { return defaultConverter.HSL(s) }

// ConvertIfNeeded converts s to rgb() if it is OKLCH. See Converter.ConvertIfNeeded.
func ConvertIfNeeded(s string) string { return defaultConverter.ConvertIfNeeded(s) }

// DeepConvert rewrites every OKLCH string in m to rgb(). See Converter.DeepConvert.
func DeepConvert(m StyleMap) StyleMap { return defaultConverter.DeepConvert(m) }
