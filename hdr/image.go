// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hdr provides linear-light float32 image buffers for HDR
// post-processing.
//
// Images store RGBA float32 texels in a contiguous slice. Sampling follows
// GPU conventions: normalized UV coordinates, texel centers at half-texel
// offsets, bilinear filtering with clamp-to-edge addressing.
package hdr

import (
	"errors"
	"math"
)

// Common errors for HDR image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("hdr: invalid dimensions")

	// ErrInvalidLevelCount is returned when a pyramid level count is out of range.
	ErrInvalidLevelCount = errors.New("hdr: invalid level count")

	// ErrDimensionMismatch is returned when an image does not match the
	// dimensions expected by the caller.
	ErrDimensionMismatch = errors.New("hdr: dimension mismatch")
)

// Image is a linear-light RGBA float32 pixel buffer.
//
// Thread safety: concurrent reads are safe. Writes to distinct texels from
// different goroutines are safe; overlapping writes require external
// synchronization.
type Image struct {
	width  int
	height int
	pix    []float32 // RGBA, 4 floats per texel
}

// NewImage creates a zero-filled image with the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*4),
	}, nil
}

// Width returns the image width in texels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in texels.
func (m *Image) Height() int { return m.height }

// Pix returns the raw texel data (RGBA float32, 4 values per texel).
func (m *Image) Pix() []float32 { return m.pix }

// Texel returns the RGB components of the texel at (x, y).
// Coordinates outside the image are clamped to the edge.
func (m *Image) Texel(x, y int) (r, g, b float32) {
	x = clampIdx(x, m.width)
	y = clampIdx(y, m.height)
	i := (y*m.width + x) * 4
	return m.pix[i], m.pix[i+1], m.pix[i+2]
}

// SetTexel writes the RGB components of the texel at (x, y), leaving alpha
// at 1. It is the caller's responsibility to keep coordinates in bounds.
func (m *Image) SetTexel(x, y int, r, g, b float32) {
	i := (y*m.width + x) * 4
	m.pix[i] = r
	m.pix[i+1] = g
	m.pix[i+2] = b
	m.pix[i+3] = 1
}

// Clear zeroes all texels.
func (m *Image) Clear() {
	clear(m.pix)
}

// Sample returns the bilinearly filtered color at normalized UV coordinates.
// Texel centers sit at (x+0.5)/width; addressing is clamp-to-edge, matching
// a GPU sampler with linear filtering.
func (m *Image) Sample(u, v float32) (r, g, b float32) {
	fx := u*float32(m.width) - 0.5
	fy := v*float32(m.height) - 0.5

	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	r00, g00, b00 := m.Texel(x0, y0)
	r10, g10, b10 := m.Texel(x0+1, y0)
	r01, g01, b01 := m.Texel(x0, y0+1)
	r11, g11, b11 := m.Texel(x0+1, y0+1)

	w00 := (1 - tx) * (1 - ty)
	w10 := tx * (1 - ty)
	w01 := (1 - tx) * ty
	w11 := tx * ty

	r = r00*w00 + r10*w10 + r01*w01 + r11*w11
	g = g00*w00 + g10*w10 + g01*w01 + g11*w11
	b = b00*w00 + b10*w10 + b01*w01 + b11*w11
	return r, g, b
}

// clampIdx clamps an index to [0, n).
func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
