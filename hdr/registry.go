// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hdr

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	// ErrRegistryFull is returned when adding to a registry at capacity.
	ErrRegistryFull = errors.New("hdr: registry full")

	// ErrSlotOutOfRange is returned when a slot index refers to no resource.
	ErrSlotOutOfRange = errors.New("hdr: slot out of range")

	// ErrNilResource is returned when a nil resource is added to a registry.
	ErrNilResource = errors.New("hdr: nil resource")
)

// ImageRegistry is a fixed-capacity table of image handles indexed by slot.
//
// The bloom kernel addresses its write targets through small integers packed
// into the invocation descriptor. Out-of-range indices are host bugs; the
// registry surfaces them as explicit errors instead of letting them corrupt
// unrelated resources.
type ImageRegistry struct {
	name     string
	capacity int
	slots    []*Image
}

// NewImageRegistry creates an empty registry holding at most capacity images.
func NewImageRegistry(name string, capacity int) *ImageRegistry {
	return &ImageRegistry{
		name:     name,
		capacity: capacity,
		slots:    make([]*Image, 0, capacity),
	}
}

// Add appends an image and returns its slot index.
func (r *ImageRegistry) Add(img *Image) (int, error) {
	if img == nil {
		return 0, fmt.Errorf("%s: %w", r.name, ErrNilResource)
	}
	if len(r.slots) >= r.capacity {
		return 0, fmt.Errorf("%s: %w (capacity %d)", r.name, ErrRegistryFull, r.capacity)
	}
	r.slots = append(r.slots, img)
	return len(r.slots) - 1, nil
}

// Image returns the image at the given slot.
func (r *ImageRegistry) Image(slot int) (*Image, error) {
	if slot < 0 || slot >= len(r.slots) {
		return nil, fmt.Errorf("%s: %w (slot %d of %d)", r.name, ErrSlotOutOfRange, slot, len(r.slots))
	}
	return r.slots[slot], nil
}

// Len returns the number of occupied slots.
func (r *ImageRegistry) Len() int { return len(r.slots) }

// Capacity returns the maximum number of slots.
func (r *ImageRegistry) Capacity() int { return r.capacity }

// PyramidRegistry is a fixed-capacity table of mip pyramid handles.
// The kernel's sampled inputs (scene color and in-progress bloom chains)
// are addressed through it.
type PyramidRegistry struct {
	name     string
	capacity int
	slots    []*Pyramid
}

// NewPyramidRegistry creates an empty registry holding at most capacity pyramids.
func NewPyramidRegistry(name string, capacity int) *PyramidRegistry {
	return &PyramidRegistry{
		name:     name,
		capacity: capacity,
		slots:    make([]*Pyramid, 0, capacity),
	}
}

// Add appends a pyramid and returns its slot index.
func (r *PyramidRegistry) Add(p *Pyramid) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("%s: %w", r.name, ErrNilResource)
	}
	if len(r.slots) >= r.capacity {
		return 0, fmt.Errorf("%s: %w (capacity %d)", r.name, ErrRegistryFull, r.capacity)
	}
	r.slots = append(r.slots, p)
	return len(r.slots) - 1, nil
}

// Pyramid returns the pyramid at the given slot.
func (r *PyramidRegistry) Pyramid(slot int) (*Pyramid, error) {
	if slot < 0 || slot >= len(r.slots) {
		return nil, fmt.Errorf("%s: %w (slot %d of %d)", r.name, ErrSlotOutOfRange, slot, len(r.slots))
	}
	return r.slots[slot], nil
}

// Len returns the number of occupied slots.
func (r *PyramidRegistry) Len() int { return len(r.slots) }

// Capacity returns the maximum number of slots.
func (r *PyramidRegistry) Capacity() int { return r.capacity }
