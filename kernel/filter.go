package kernel

import "github.com/gogpu/bloom/hdr"

// sampleRGB is a small adapter over the image's bilinear sampler.
func sampleRGB(src *hdr.Image, u, v float32) RGB {
	r, g, b := src.Sample(u, v)
	return RGB{r, g, b}
}

// DownsampleBox13 samples a 13-tap weighted box kernel around the
// normalized coordinate (u, v) on src. The taps form one center, four inner
// diagonals at half-texel offsets, and eight outer positions at full-texel
// offsets, grouped into an inner 2x2 box (weight 0.5) and four overlapping
// corner 2x2 boxes (weight 0.125 each), each box averaged. The layout is
// the canonical symmetric 13-sample pattern; energy is preserved for a
// constant field.
func DownsampleBox13(src *hdr.Image, u, v float32) RGB {
	tx := 1 / float32(src.Width())
	ty := 1 / float32(src.Height())

	a := sampleRGB(src, u-tx, v-ty)
	b := sampleRGB(src, u, v-ty)
	c := sampleRGB(src, u+tx, v-ty)

	d := sampleRGB(src, u-0.5*tx, v-0.5*ty)
	e := sampleRGB(src, u+0.5*tx, v-0.5*ty)

	f := sampleRGB(src, u-tx, v)
	g := sampleRGB(src, u, v)
	h := sampleRGB(src, u+tx, v)

	i := sampleRGB(src, u-0.5*tx, v+0.5*ty)
	j := sampleRGB(src, u+0.5*tx, v+0.5*ty)

	k := sampleRGB(src, u-tx, v+ty)
	l := sampleRGB(src, u, v+ty)
	m := sampleRGB(src, u+tx, v+ty)

	// Each 2x2 box is averaged (x0.25) then weighted.
	out := d.Add(e).Add(i).Add(j).Scale(0.25 * 0.5)
	out = out.Add(a.Add(b).Add(f).Add(g).Scale(0.25 * 0.125))
	out = out.Add(b.Add(c).Add(g).Add(h).Scale(0.25 * 0.125))
	out = out.Add(f.Add(g).Add(k).Add(l).Scale(0.25 * 0.125))
	out = out.Add(g.Add(h).Add(l).Add(m).Scale(0.25 * 0.125))
	return out
}

// UpsampleTent9 samples a 9-tap tent kernel around the normalized
// coordinate (u, v) on src. Taps sit at texel offsets scaled by radius,
// with weights 4 (center), 2 (edges), 1 (corners), normalized by 1/16 —
// the dual of the box downsample, used to re-expand the pyramid while
// accumulating blur.
func UpsampleTent9(src *hdr.Image, u, v, radius float32) RGB {
	tx := radius / float32(src.Width())
	ty := radius / float32(src.Height())

	out := sampleRGB(src, u, v).Scale(4)

	out = out.Add(sampleRGB(src, u-tx, v).Scale(2))
	out = out.Add(sampleRGB(src, u+tx, v).Scale(2))
	out = out.Add(sampleRGB(src, u, v-ty).Scale(2))
	out = out.Add(sampleRGB(src, u, v+ty).Scale(2))

	out = out.Add(sampleRGB(src, u-tx, v-ty))
	out = out.Add(sampleRGB(src, u+tx, v-ty))
	out = out.Add(sampleRGB(src, u-tx, v+ty))
	out = out.Add(sampleRGB(src, u+tx, v+ty))

	return out.Scale(1.0 / 16.0)
}
