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

import "math"

// achromaticChroma is the chroma below which a color is treated as gray.
// The published matrices leave residual chroma around 4e-8 for pure grays.
const achromaticChroma = 1e-6

// Oklab is the Cartesian counterpart of Oklch.
type Oklab struct {
	L, A, B float64
}

// LinearRGB holds linear-light sRGB channels. Values are nominally in
// [0, 1] but fall outside that range for out-of-gamut colors.
type LinearRGB struct {
	R, G, B float64
}

// ToOklab converts polar OKLCH coordinates to OKLab.
func (c Oklch) ToOklab() Oklab {
	hRad := c.H * math.Pi / 180
	return Oklab{
		L: c.L,
		A: c.C * math.Cos(hRad),
		B: c.C * math.Sin(hRad),
	}
}

// ToOklch converts OKLab to polar OKLCH with alpha 1.
func (c Oklab) ToOklch() Oklch {
	chroma := math.Sqrt(c.A*c.A + c.B*c.B)
	hue := 0.0
	// Hue is meaningless for achromatic colors; keep it at 0 instead of atan2 noise.
	if chroma > achromaticChroma {
		hue = normalizeHue(math.Atan2(c.B, c.A) * 180 / math.Pi)
	}
	return Oklch{L: c.L, C: chroma, H: hue, Alpha: 1}
}

// ToLinear converts OKLab to linear sRGB using the published OKLab matrices.
func (c Oklab) ToLinear() LinearRGB {
	// OKLab -> nonlinear LMS
	l := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	m := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	s := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	// Undo the cube-root nonlinearity
	l = l * l * l
	m = m * m * m
	s = s * s * s

	// LMS -> linear sRGB
	return LinearRGB{
		R: +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
	}
}

// ToOklab converts linear sRGB to OKLab.
func (c LinearRGB) ToOklab() Oklab {
	l := 0.4122214708*c.R + 0.5363325363*c.G + 0.0514459929*c.B
	m := 0.2119034982*c.R + 0.6806995451*c.G + 0.1073969566*c.B
	s := 0.0883024619*c.R + 0.2817188376*c.G + 0.6299787005*c.B

	l = math.Cbrt(l)
	m = math.Cbrt(m)
	s = math.Cbrt(s)

	return Oklab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// InGamut reports whether every channel lies within [0, 1].
func (c LinearRGB) InGamut() bool {
	const eps = 1e-6
	for _, v := range [...]float64{c.R, c.G, c.B} {
		if v < -eps || v > 1+eps {
			return false
		}
	}
	return true
}

func (c LinearRGB) finite() bool {
	for _, v := range [...]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// FromRGB converts an encoded device color to OKLCH (alpha 1).
func FromRGB(c RGB) Oklch {
	return c.Linear().ToOklab().ToOklch()
}
