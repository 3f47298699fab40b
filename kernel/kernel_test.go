package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/bloom/hdr"
)

// testResources builds a minimal frame: one 3-level bloom pyramid in the
// input and bloom registries, one output per level, and a scene image.
func testResources(t *testing.T, w, h int) (Resources, *hdr.Pyramid, *hdr.Image) {
	t.Helper()

	pyr, err := hdr.NewPyramid(w, h, 3)
	if err != nil {
		t.Fatalf("NewPyramid: %v", err)
	}
	scene, err := hdr.NewImage(w, h)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}

	outputs := hdr.NewImageRegistry("outputs", 8)
	for i := 0; i < 3; i++ {
		if _, err := outputs.Add(pyr.Level(i)); err != nil {
			t.Fatalf("outputs.Add: %v", err)
		}
	}
	final, _ := hdr.NewImage(w, h)
	if _, err := outputs.Add(final); err != nil {
		t.Fatalf("outputs.Add final: %v", err)
	}

	inputs := hdr.NewPyramidRegistry("inputs", 4)
	_, _ = inputs.Add(pyr)
	_, _ = inputs.Add(hdr.WrapPyramid(scene))

	blooms := hdr.NewPyramidRegistry("blooms", 4)
	_, _ = blooms.Add(pyr)

	return Resources{Outputs: outputs, Inputs: inputs, Blooms: blooms}, pyr, scene
}

func defaultUniforms() Uniforms {
	return Uniforms{
		Curve:           ThresholdCurve(1.0, 0.5),
		Intensity:       1,
		CombineConstant: 0,
		Tonemap:         TonemapGT,
	}
}

func TestBindRejectsBadOutputSlot(t *testing.T) {
	res, _, _ := testResources(t, 8, 8)
	d := Descriptor{Mode: ModePrefilter, LOD: 0, Input: 1, Output: 99}
	if _, err := Bind(d, defaultUniforms(), res); !errors.Is(err, hdr.ErrSlotOutOfRange) {
		t.Errorf("Bind err = %v, want ErrSlotOutOfRange", err)
	}
}

func TestBindRejectsBadInputSlot(t *testing.T) {
	res, _, _ := testResources(t, 8, 8)
	d := Descriptor{Mode: ModePrefilter, LOD: 0, Input: 3, Output: 0}
	if _, err := Bind(d, defaultUniforms(), res); !errors.Is(err, hdr.ErrSlotOutOfRange) {
		t.Errorf("Bind err = %v, want ErrSlotOutOfRange", err)
	}
}

func TestBindRejectsDeepLOD(t *testing.T) {
	res, _, _ := testResources(t, 8, 8)

	// Downsample reading past the pyramid depth.
	d := Descriptor{Mode: ModeDownsample, LOD: 5, Input: 0, Output: 1}
	if _, err := Bind(d, defaultUniforms(), res); !errors.Is(err, ErrLODOutOfRange) {
		t.Errorf("downsample Bind err = %v, want ErrLODOutOfRange", err)
	}

	// Upsample needs lod+1 in the bloom pyramid.
	d = Descriptor{Mode: ModeUpsample, LOD: 2, Input: 0, Output: 1, Bloom: 0}
	if _, err := Bind(d, defaultUniforms(), res); !errors.Is(err, ErrLODOutOfRange) {
		t.Errorf("upsample Bind err = %v, want ErrLODOutOfRange", err)
	}
}

func TestBindRejectsInvalidMode(t *testing.T) {
	res, _, _ := testResources(t, 8, 8)
	d := Descriptor{Mode: Mode(7)}
	if _, err := Bind(d, defaultUniforms(), res); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Bind err = %v, want ErrInvalidMode", err)
	}
}

func TestInvokeOutOfBoundsIsNoOp(t *testing.T) {
	res, pyr, scene := testResources(t, 4, 4)
	scene.SetTexel(0, 0, 5, 5, 5)

	d := Descriptor{Mode: ModePrefilter, LOD: 0, Input: 1, Output: 0}
	b, err := Bind(d, defaultUniforms(), res)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	// Tile overrun coordinates: no write, no panic.
	b.Invoke(4, 0)
	b.Invoke(0, 4)
	b.Invoke(100, 100)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if r, _, _ := pyr.Level(0).Texel(x, y); r != 0 {
				t.Errorf("unexpected write at (%d,%d): %v", x, y, r)
			}
		}
	}
}

func TestInvokePrefilterThresholds(t *testing.T) {
	res, pyr, scene := testResources(t, 4, 4)
	scene.SetTexel(1, 1, 10, 10, 10)
	scene.SetTexel(2, 2, 0.2, 0.2, 0.2)

	d := Descriptor{Mode: ModePrefilter, LOD: 0, Input: 1, Output: 0}
	b, err := Bind(d, defaultUniforms(), res)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.Invoke(x, y)
		}
	}

	// Bright pixel gated through near-unscaled, dim pixel suppressed.
	r, _, _ := pyr.Level(0).Texel(1, 1)
	if r < 8.9 {
		t.Errorf("bright pixel after prefilter = %v, want ~9 (scale (10-1)/10)", r)
	}
	r, _, _ = pyr.Level(0).Texel(2, 2)
	if r != 0 {
		t.Errorf("dim pixel after prefilter = %v, want 0", r)
	}
}

func TestInvokeDownsampleWritesCoarserLevel(t *testing.T) {
	res, pyr, _ := testResources(t, 8, 8)

	// Fill level 0 with a constant; the downsampled level must carry it.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pyr.Level(0).SetTexel(x, y, 0.5, 0.25, 0.75)
		}
	}

	d := Descriptor{Mode: ModeDownsample, LOD: 0, Input: 0, Output: 1}
	b, err := Bind(d, defaultUniforms(), res)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if b.Width() != 4 || b.Height() != 4 {
		t.Fatalf("bound extent = %dx%d, want 4x4", b.Width(), b.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.Invoke(x, y)
		}
	}

	r, g, bl := pyr.Level(1).Texel(2, 2)
	if math.Abs(float64(r-0.5)) > 1e-5 || math.Abs(float64(g-0.25)) > 1e-5 || math.Abs(float64(bl-0.75)) > 1e-5 {
		t.Errorf("downsampled constant = (%v, %v, %v), want (0.5, 0.25, 0.75)", r, g, bl)
	}
}

func TestInvokeApplyZeroIntensity(t *testing.T) {
	res, pyr, scene := testResources(t, 4, 4)

	// Bloom pyramid full of garbage that intensity=0 must erase.
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pyr.Level(0).SetTexel(x, y, 123, 456, 789)
			scene.SetTexel(x, y, 0.5, 0.25, 1.5)
		}
	}

	u := defaultUniforms()
	u.Intensity = 0

	d := Descriptor{Mode: ModeApply, LOD: 0, Input: 1, Output: 3, Bloom: 0}
	b, err := Bind(d, u, res)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.Invoke(x, y)
		}
	}

	final, _ := res.Outputs.Image(3)
	want := Gamma(GTTonemap(RGB{0.5, 0.25, 1.5}))
	r, g, bl := final.Texel(2, 1)
	if !rgbNear(RGB{r, g, bl}, want, 1e-6) {
		t.Errorf("apply with zero bloom = (%v, %v, %v), want %v", r, g, bl, want)
	}
}
