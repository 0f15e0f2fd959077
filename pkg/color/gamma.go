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

// RGB is a gamma-encoded 8-bit device color.
type RGB struct {
	R, G, B uint8
}

// EncodeChannel applies the sRGB (IEC 61966-2-1) transfer function to a
// linear-light channel.
func EncodeChannel(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// DecodeChannel is the inverse of EncodeChannel.
func DecodeChannel(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Encode gamma-encodes each channel, scales to [0, 255], rounds to the
// nearest integer and clamps. Out-of-gamut channels saturate at 0 or 255;
// NaN channels become 0.
func (c LinearRGB) Encode() RGB {
	return RGB{
		R: to8bit(EncodeChannel(c.R)),
		G: to8bit(EncodeChannel(c.G)),
		B: to8bit(EncodeChannel(c.B)),
	}
}

// Linear decodes the device color back to linear light.
func (c RGB) Linear() LinearRGB {
	return LinearRGB{
		R: DecodeChannel(float64(c.R) / 255),
		G: DecodeChannel(float64(c.G) / 255),
		B: DecodeChannel(float64(c.B) / 255),
	}
}

func to8bit(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
