// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hdr

// Pyramid is an ordered chain of images where level i+1 has half the linear
// resolution of level i (floor division, minimum 1 texel per axis).
// Level 0 is the finest level.
type Pyramid struct {
	levels []*Image
}

// MipSize returns the dimensions of pyramid level n for a level-0 image of
// the given size.
func MipSize(width, height, n int) (int, int) {
	for range n {
		width = max(1, width/2)
		height = max(1, height/2)
	}
	return width, height
}

// NewPyramid allocates a pyramid with the given level-0 dimensions and
// level count. All levels start zero-filled.
func NewPyramid(width, height, levels int) (*Pyramid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if levels < 1 {
		return nil, ErrInvalidLevelCount
	}

	p := &Pyramid{levels: make([]*Image, levels)}
	for i := range levels {
		w, h := MipSize(width, height, i)
		img, err := NewImage(w, h)
		if err != nil {
			return nil, err
		}
		p.levels[i] = img
	}
	return p, nil
}

// WrapPyramid creates a single-level pyramid around an existing image
// without copying. Used to present a flat image (the scene color) through
// the same sampling interface as the bloom mip chains.
func WrapPyramid(img *Image) *Pyramid {
	return &Pyramid{levels: []*Image{img}}
}

// Level returns the image at level n, or nil if n is out of range.
func (p *Pyramid) Level(n int) *Image {
	if p == nil || n < 0 || n >= len(p.levels) {
		return nil
	}
	return p.levels[n]
}

// Levels returns the number of levels in the pyramid.
func (p *Pyramid) Levels() int {
	if p == nil {
		return 0
	}
	return len(p.levels)
}

// Clear zeroes every level.
func (p *Pyramid) Clear() {
	for _, l := range p.levels {
		l.Clear()
	}
}
