// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hdr

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// FromImage converts an 8-bit sRGB image to a linear-light HDR image.
// An optional exposure factor scales the linear values, letting LDR input
// stand in for HDR scene color in tests and demos (exposure 1 is identity).
func FromImage(src image.Image, exposure float32) (*Image, error) {
	bounds := src.Bounds()
	m, err := NewImage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			r := srgbToLinear(float32(c.R)/255) * exposure
			g := srgbToLinear(float32(c.G)/255) * exposure
			b := srgbToLinear(float32(c.B)/255) * exposure
			m.SetTexel(x, y, r, g, b)
		}
	}
	return m, nil
}

// ToImage converts a linear-light image to an 8-bit sRGB image, clamping
// out-of-range values.
//
// Note: the bloom apply pass already tonemaps and gamma-encodes its output,
// so pipeline results should be exported with ToImageEncoded instead.
func ToImage(m *Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b := m.Texel(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = quantize(linearToSRGB(r))
			out.Pix[i+1] = quantize(linearToSRGB(g))
			out.Pix[i+2] = quantize(linearToSRGB(b))
			out.Pix[i+3] = 255
		}
	}
	return out
}

// ToImageEncoded converts an already display-encoded image (tonemapped and
// gamma-corrected, as produced by the apply pass) to 8-bit without applying
// a second transfer curve.
func ToImageEncoded(m *Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b := m.Texel(x, y)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = quantize(r)
			out.Pix[i+1] = quantize(g)
			out.Pix[i+2] = quantize(b)
			out.Pix[i+3] = 255
		}
	}
	return out
}

// Fit scales src to exactly width x height using Catmull-Rom resampling.
// Returns src unchanged when the dimensions already match.
func Fit(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// srgbToLinear applies the sRGB EOTF.
func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow((float64(v)+0.055)/1.055, 2.4))
}

// linearToSRGB applies the sRGB OETF.
func linearToSRGB(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
}

// quantize converts a [0,1] value to an 8-bit channel with rounding.
func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
