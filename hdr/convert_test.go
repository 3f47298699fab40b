// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hdr

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestFromImageToImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 60),
				G: uint8(y * 60),
				B: uint8((x + y) * 30),
				A: 255,
			})
		}
	}

	m, err := FromImage(src, 1)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	back := ToImage(m)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := src.NRGBAAt(x, y)
			got := back.NRGBAAt(x, y)
			if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || absDiff(got.B, want.B) > 1 {
				t.Errorf("pixel (%d,%d) = %v, want %v (±1)", x, y, got, want)
			}
		}
	}
}

func TestFromImageExposure(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	m, err := FromImage(src, 4)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	r, _, _ := m.Texel(0, 0)
	if math.Abs(float64(r)-4) > 1e-5 {
		t.Errorf("white at exposure 4 = %v, want 4", r)
	}
}

func TestSRGBTransferInverse(t *testing.T) {
	for _, v := range []float32{0, 0.001, 0.04, 0.2, 0.5, 0.9, 1} {
		got := linearToSRGB(srgbToLinear(v))
		if math.Abs(float64(got-v)) > 1e-5 {
			t.Errorf("linearToSRGB(srgbToLinear(%v)) = %v", v, got)
		}
	}
}

func TestToImageEncodedClamps(t *testing.T) {
	m, _ := NewImage(1, 1)
	m.SetTexel(0, 0, 2.5, -0.5, 1.0)

	out := ToImageEncoded(m)
	c := out.NRGBAAt(0, 0)
	if c.R != 255 || c.G != 0 || c.B != 255 {
		t.Errorf("encoded = %v, want clamped (255, 0, 255)", c)
	}
}

func TestFit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	dst := Fit(src, 5, 4)
	if b := dst.Bounds(); b.Dx() != 5 || b.Dy() != 4 {
		t.Errorf("Fit bounds = %v, want 5x4", b)
	}

	// Same size: returned unchanged.
	if got := Fit(src, 10, 10); got != image.Image(src) {
		t.Error("Fit at same size should return src")
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
