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
	"regexp"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedConverter(opts ...Option) (*Converter, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	return NewConverter(opts...), logs
}

func TestOklchToRGB_KnownValues(t *testing.T) {
	assert.Equal(t, "rgb(255, 255, 255)", OklchToRGB("oklch(100% 0 0)"))
	assert.Equal(t, "rgb(0, 0, 0)", OklchToRGB("oklch(0% 0 0)"))
	assert.Equal(t, "rgb(147, 73, 86)", OklchToRGB("oklch(50% 0.1 10)"))
	assert.Equal(t, "rgb(126, 110, 242)", OklchToRGB("oklch(62% 0.19 285)"))
}

func TestOklchToHSL_KnownValues(t *testing.T) {
	assert.Equal(t, "hsl(0, 0%, 100%)", OklchToHSL("oklch(100% 0 0)"))
	assert.Equal(t, "hsl(0, 0%, 0%)", OklchToHSL("oklch(0% 0 0)"))
	assert.Equal(t, "hsl(349, 34%, 43%)", OklchToHSL("oklch(50% 0.1 10)"))
	assert.Equal(t, "hsl(247, 84%, 69%)", OklchToHSL("oklch(62% 0.19 285)"))
}

func TestOklchToRGBA(t *testing.T) {
	assert.Equal(t, "rgba(255, 255, 255, 0.6)", OklchToRGBA("oklch(100% 0 0)", 0.6))
	assert.Equal(t, "rgba(128, 128, 128, 0.6)", OklchToRGBA("not a color", 0.6))
}

func TestConversion_Deterministic(t *testing.T) {
	inputs := []string{"oklch(50% 0.1 10)", "oklch(73% 0.31 142 / 0.2)", "oklch(12% 0.02 300)"}
	for _, in := range inputs {
		first := ConvertIfNeeded(in)
		second := ConvertIfNeeded(in)
		assert.Equal(t, first, second, in)
		assert.Equal(t, OklchToHSL(in), OklchToHSL(in), in)
	}
}

func TestFallback(t *testing.T) {
	conv, logs := newObservedConverter()

	assert.Equal(t, "rgb(128, 128, 128)", conv.RGB("oklch(broken)"))
	assert.Equal(t, "hsl(0, 0%, 50%)", conv.HSL("oklch(broken)"))
	assert.Equal(t, FallbackRGB, conv.RGB(""))

	require.Equal(t, 3, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "oklch(broken)", entry.ContextMap()["input"])
}

func TestFallback_NonFiniteBypassingParser(t *testing.T) {
	conv, logs := newObservedConverter()

	nan := Oklch{L: math.NaN(), C: 0.1, H: 20, Alpha: 1}
	assert.Equal(t, "rgb(128, 128, 128)", conv.OklchString(nan))

	hslConv, _ := newObservedConverter(WithFormat(FormatHSL))
	assert.Equal(t, "hsl(0, 0%, 50%)", hslConv.OklchString(Oklch{L: 0.5, C: math.Inf(1), H: 20, Alpha: 1}))

	_, err := Encode(nan)
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Equal(t, 1, logs.Len())
}

func TestConvertIfNeeded(t *testing.T) {
	conv, logs := newObservedConverter()

	tests := []struct {
		input string
		want  string
	}{
		{"oklch(100% 0 0)", "rgb(255, 255, 255)"},
		{"oklch(100% 0 0 / 0.5)", "rgba(255, 255, 255, 0.5)"},
		{"rgb(1,2,3)", "rgb(1,2,3)"},
		{"#ffffff", "#ffffff"},
		{"16px", "16px"},
		{"", ""},
		{"oklch(garbage)", FallbackRGB},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, conv.ConvertIfNeeded(tt.input))
		})
	}

	// Only the malformed OKLCH string is logged; pass-through values are silent.
	assert.Equal(t, 1, logs.Len())
}

func TestConvertIfNeeded_HSLFormat(t *testing.T) {
	conv := NewConverter(WithFormat(FormatHSL), WithLogger(zap.NewNop()))
	assert.Equal(t, FormatHSL, conv.Format())
	assert.Equal(t, "hsl(0, 0%, 100%)", conv.ConvertIfNeeded("oklch(100% 0 0)"))
	assert.Equal(t, "hsla(0, 0%, 0%, 0.25)", conv.ConvertIfNeeded("oklch(0% 0 0 / 25%)"))
	assert.Equal(t, FallbackHSL, conv.ConvertIfNeeded("oklch(nope)"))
}

func TestNewConverter_UnknownFormatDefaultsToRGB(t *testing.T) {
	conv := NewConverter(WithFormat("cmyk"))
	assert.Equal(t, FormatRGB, conv.Format())
}

var rgbOutput = regexp.MustCompile(`^rgb\((\d+), (\d+), (\d+)\)$`)

func TestOklchToRGB_RangeInvariant(t *testing.T) {
	conv := NewConverter(WithLogger(zap.NewNop()))
	for l := 0.0; l <= 100; l += 12.5 {
		for c := 0.0; c <= 0.4; c += 0.05 {
			for h := 0.0; h < 360; h += 30 {
				in := fmt.Sprintf("oklch(%g%% %g %g)", l, c, h)
				out := conv.RGB(in)
				m := rgbOutput.FindStringSubmatch(out)
				require.NotNil(t, m, "unexpected output %q for %q", out, in)
				for _, ch := range m[1:] {
					v, err := strconv.Atoi(ch)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, v, 0)
					assert.LessOrEqual(t, v, 255)
				}
			}
		}
	}
}

func TestConverter_ConcurrentUse(t *testing.T) {
	conv := NewConverter(WithLogger(zap.NewNop()))
	want := conv.RGB("oklch(62% 0.19 285)")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, conv.RGB("oklch(62% 0.19 285)"))
			}
		}()
	}
	wg.Wait()
}

func TestConvertChecked(t *testing.T) {
	conv, logs := newObservedConverter(WithFormat(FormatHSL))

	out, err := conv.ConvertChecked("oklch(50% 0.1 10)")
	require.NoError(t, err)
	assert.Equal(t, "hsl(349, 34%, 43%)", out)

	out, err = conv.ConvertChecked("#fff")
	require.NoError(t, err)
	assert.Equal(t, "#fff", out)

	_, err = conv.ConvertChecked("oklch(broken)")
	assert.ErrorIs(t, err, ErrMalformedColor)
	var me *MalformedColorError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "oklch(broken)", me.Input)

	_, err = conv.ConvertChecked("oklch(50% 1e300 0)")
	assert.ErrorIs(t, err, ErrNonFinite)

	// Errors are returned, not logged.
	assert.Equal(t, 0, logs.Len())
}
