package kernel

import (
	"errors"
	"fmt"

	"github.com/gogpu/bloom/hdr"
)

// Kernel errors.
var (
	// ErrLODOutOfRange is returned when a descriptor addresses a mip level
	// the bound pyramid does not have.
	ErrLODOutOfRange = errors.New("kernel: lod out of range")
)

// upsampleRadius is the tent filter radius in texels of the sampled level.
const upsampleRadius = 1.0

// Uniforms is the per-frame parameter block shared by every dispatch:
// the derived threshold curve, the bloom intensity, the combine constant,
// and the tonemap curve used by the apply pass.
type Uniforms struct {
	Curve           Curve
	Intensity       float32
	CombineConstant float32
	Tonemap         Tonemap
}

// Resources groups the registries a dispatch resolves its descriptor
// against. The host owns all images; the kernel only reads and writes
// through the slots named by the descriptor.
type Resources struct {
	Outputs *hdr.ImageRegistry   // write targets, one per pyramid level plus the final image
	Inputs  *hdr.PyramidRegistry // sampled sources
	Blooms  *hdr.PyramidRegistry // secondary sampled sources for upsample stages
}

// Bound is one dispatch with its descriptor resolved against the frame's
// resources. Resolution happens once per dispatch so that per-pixel
// invocations stay allocation-free and index-check-free.
type Bound struct {
	desc     Descriptor
	uniforms Uniforms

	out   *hdr.Image
	in    *hdr.Pyramid
	bloom *hdr.Pyramid
}

// Bind resolves a descriptor against the frame resources, validating every
// index and mip level up front. A failed Bind means a host-side sequencing
// or layout bug; nothing has been written.
func Bind(d Descriptor, u Uniforms, res Resources) (*Bound, error) {
	if !d.Mode.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(d.Mode))
	}

	out, err := res.Outputs.Image(d.Output)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", d.Mode, err)
	}
	in, err := res.Inputs.Pyramid(d.Input)
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", d.Mode, err)
	}

	b := &Bound{desc: d, uniforms: u, out: out, in: in}

	// Depth of input the mode actually samples.
	needLOD := d.LOD
	switch d.Mode {
	case ModeUpsampleFirst:
		needLOD = d.LOD + 1
	case ModeUpsample:
		// Samples the secondary pyramid at lod+1 and the input at lod.
		b.bloom, err = res.Blooms.Pyramid(d.Bloom)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", d.Mode, err)
		}
		if d.LOD+1 >= b.bloom.Levels() {
			return nil, fmt.Errorf("bind %s: %w (lod %d, bloom levels %d)",
				d.Mode, ErrLODOutOfRange, d.LOD, b.bloom.Levels())
		}
	case ModeApply:
		b.bloom, err = res.Blooms.Pyramid(d.Bloom)
		if err != nil {
			return nil, fmt.Errorf("bind %s: %w", d.Mode, err)
		}
		if d.LOD >= b.bloom.Levels() {
			return nil, fmt.Errorf("bind %s: %w (lod %d, bloom levels %d)",
				d.Mode, ErrLODOutOfRange, d.LOD, b.bloom.Levels())
		}
		// Apply reads the base scene color at mip 0.
		needLOD = 0
	}

	if needLOD >= in.Levels() {
		return nil, fmt.Errorf("bind %s: %w (lod %d, input levels %d)",
			d.Mode, ErrLODOutOfRange, needLOD, in.Levels())
	}

	return b, nil
}

// Width returns the output width in texels; dispatches cover it.
func (b *Bound) Width() int { return b.out.Width() }

// Height returns the output height in texels.
func (b *Bound) Height() int { return b.out.Height() }

// Invoke executes one kernel invocation for output texel (x, y). Invocations
// whose coordinates fall outside the output image (tile overrun at the image
// edge) perform no write. Invoke never fails: all fallible resolution
// happened in Bind.
func (b *Bound) Invoke(x, y int) {
	w := b.out.Width()
	h := b.out.Height()
	if x >= w || y >= h {
		return
	}

	u := (float32(x) + 0.5) / float32(w)
	v := (float32(y) + 0.5) / float32(h)

	var c RGB
	switch b.desc.Mode {
	case ModePrefilter:
		c = Prefilter(sampleRGB(b.in.Level(b.desc.LOD), u, v), b.uniforms.Curve)

	case ModeDownsample:
		c = DownsampleBox13(b.in.Level(b.desc.LOD), u, v)

	case ModeUpsampleFirst:
		src := b.in.Level(b.desc.LOD + 1)
		up := UpsampleTent9(src, u, v, upsampleRadius)
		c = Combine(sampleRGB(src, u, v), up, b.uniforms.CombineConstant)

	case ModeUpsample:
		up := UpsampleTent9(b.bloom.Level(b.desc.LOD+1), u, v, upsampleRadius)
		existing := sampleRGB(b.in.Level(b.desc.LOD), u, v)
		c = Combine(existing, up, b.uniforms.CombineConstant)

	case ModeApply:
		up := UpsampleTent9(b.bloom.Level(b.desc.LOD), u, v, upsampleRadius)
		up = up.Scale(b.uniforms.Intensity)
		base := sampleRGB(b.in.Level(0), u, v)
		c = Gamma(tonemapColor(b.uniforms.Tonemap, Combine(base, up, b.uniforms.CombineConstant)))
	}

	b.out.SetTexel(x, y, c.R, c.G, c.B)
}
