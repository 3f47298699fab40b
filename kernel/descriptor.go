package kernel

import (
	"errors"
	"fmt"
)

// Descriptor bit layout, most significant bits first:
// [31:28] mode, [27:21] lod, [20:14] input, [13:7] output, [6:0] bloom.
const (
	modeShift   = 28
	lodShift    = 21
	inputShift  = 14
	outputShift = 7

	fieldMask = 0x7f // 7-bit lod/index fields
	modeMask  = 0xf

	// MaxLOD is the largest encodable mip level.
	MaxLOD = fieldMask

	// MaxIndex is the largest encodable resource slot.
	MaxIndex = fieldMask
)

// Descriptor errors.
var (
	// ErrInvalidMode is returned when a descriptor's mode field is not one
	// of the five dispatch modes.
	ErrInvalidMode = errors.New("kernel: invalid mode")

	// ErrFieldRange is returned when a descriptor field does not fit its
	// bit width.
	ErrFieldRange = errors.New("kernel: descriptor field out of range")
)

// Descriptor identifies one kernel dispatch: the pass mode, the mip level
// it reads, and the resource slots it addresses. On the GPU it travels as a
// single packed 32-bit push constant; on the CPU it is passed as-is.
//
// Pack validates that every field fits its bit width, so host-side bugs
// surface as errors before a dispatch is issued rather than as silently
// corrupted indices.
type Descriptor struct {
	Mode   Mode
	LOD    int // mip level the pass reads
	Input  int // sampled input slot
	Output int // write target slot
	Bloom  int // secondary sampled input slot (upsample/apply)
}

// Pack encodes the descriptor into its 32-bit wire form, validating that
// every field fits its bit width.
func (d Descriptor) Pack() (uint32, error) {
	if !d.Mode.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMode, int(d.Mode))
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"lod", d.LOD},
		{"input", d.Input},
		{"output", d.Output},
		{"bloom", d.Bloom},
	} {
		if f.v < 0 || f.v > fieldMask {
			return 0, fmt.Errorf("%w: %s = %d", ErrFieldRange, f.name, f.v)
		}
	}

	return uint32(d.Mode)<<modeShift |
		uint32(d.LOD)<<lodShift |
		uint32(d.Input)<<inputShift |
		uint32(d.Output)<<outputShift |
		uint32(d.Bloom), nil
}

// Decode extracts a descriptor from its 32-bit wire form. The index fields
// inherently fit their widths; the mode field is validated.
func Decode(word uint32) (Descriptor, error) {
	d := Descriptor{
		Mode:   Mode(word >> modeShift & modeMask),
		LOD:    int(word >> lodShift & fieldMask),
		Input:  int(word >> inputShift & fieldMask),
		Output: int(word >> outputShift & fieldMask),
		Bloom:  int(word & fieldMask),
	}
	if !d.Mode.Valid() {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrInvalidMode, int(d.Mode))
	}
	return d, nil
}
