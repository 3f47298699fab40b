package bloom

import (
	"errors"
	"fmt"

	"github.com/gogpu/bloom/backend"
	"github.com/gogpu/bloom/hdr"
	"github.com/gogpu/bloom/kernel"
)

// DefaultMipCount is the default pyramid depth.
// Seven levels cover bloom radii up to 64 source texels.
const DefaultMipCount = 7

// MinMipCount is the smallest usable pyramid depth; the upsample chain
// needs at least one level below the finest.
const MinMipCount = 2

// Pipeline errors.
var (
	// ErrNilScene is returned by Process for a nil scene image.
	ErrNilScene = errors.New("bloom: nil scene image")

	// ErrClosed is returned by Process after Close.
	ErrClosed = errors.New("bloom: pipeline closed")
)

// pass is one precomputed kernel dispatch: the packed invocation word and
// the extent of the level it covers.
type pass struct {
	word   uint32
	width  int
	height int
}

// Pipeline runs the bloom effect over HDR scene images of a fixed size.
//
// A pipeline owns three working pyramids and a final output image, and
// replays a precomputed pass sequence through its compute backend:
// prefilter, a ping/pong downsample chain, a tent upsample chain that
// accumulates the bloom, and a final tonemapped composite.
//
// Pipeline is not safe for concurrent use; create one per goroutine or
// synchronize externally.
type Pipeline struct {
	width  int
	height int
	mips   int

	params  Params
	tonemap kernel.Tonemap

	// Working storage. images[0] holds the thresholded downsample chain,
	// images[1] is the ping half of the double-filtered downsample,
	// images[2] accumulates the upsampled bloom.
	images [3]*hdr.Pyramid
	final  *hdr.Image

	outputs *hdr.ImageRegistry
	passes  []pass

	backend backend.ComputeBackend
	closed  bool
}

// New creates a pipeline for width x height scenes.
//
// The mip count is clamped to the pyramid depth the extent supports.
// If no backend is injected, the best registered
// backend is selected and initialized.
func New(width, height int, opts ...Option) (*Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.params.Validate(); err != nil {
		return nil, err
	}

	mips := clampMips(o.mips, width, height)

	p := &Pipeline{
		width:   width,
		height:  height,
		mips:    mips,
		params:  o.params,
		tonemap: o.tonemap,
	}

	for i := range p.images {
		pyr, err := hdr.NewPyramid(width, height, mips)
		if err != nil {
			return nil, err
		}
		p.images[i] = pyr
	}
	final, err := hdr.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	p.final = final

	// Output slot layout: level j of pyramid i at slot i*mips+j,
	// the final image last.
	p.outputs = hdr.NewImageRegistry("outputs", 3*mips+1)
	for i := range p.images {
		for j := 0; j < mips; j++ {
			if _, err := p.outputs.Add(p.images[i].Level(j)); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.outputs.Add(p.final); err != nil {
		return nil, err
	}

	if err := p.buildPasses(); err != nil {
		return nil, err
	}

	b := o.backend
	injected := b != nil
	if !injected {
		b = backend.Default()
		if b == nil {
			return nil, backend.ErrBackendNotAvailable
		}
		if sw, ok := b.(*backend.SoftwareBackend); ok {
			sw.SetWorkers(o.workers)
		}
	}
	propagateLogger(b, Logger())
	if err := b.Init(); err != nil {
		if injected {
			return nil, fmt.Errorf("bloom: backend init: %w", err)
		}
		// A registry-selected backend that fails to initialize (no GPU,
		// driver missing) is not fatal; fall back to software execution.
		Logger().Warn("backend init failed, falling back to software",
			"backend", b.Name(), "error", err)
		b.Close()
		sw := backend.NewSoftwareBackend(o.workers)
		propagateLogger(sw, Logger())
		if err := sw.Init(); err != nil {
			return nil, fmt.Errorf("bloom: backend init: %w", err)
		}
		b = sw
	}
	p.backend = b

	Logger().Info("bloom pipeline created",
		"extent", fmt.Sprintf("%dx%d", width, height),
		"mips", mips,
		"backend", b.Name(),
		"passes", len(p.passes))

	return p, nil
}

// clampMips limits the pyramid depth so the downsample chain stops once
// the smaller dimension reaches one texel.
func clampMips(mips, width, height int) int {
	if mips < MinMipCount {
		mips = MinMipCount
	}
	maxMips := 1
	for m := min(width, height); m >= 2; m /= 2 {
		maxMips++
	}
	if maxMips < MinMipCount {
		maxMips = MinMipCount
	}
	if mips > maxMips {
		mips = maxMips
	}
	return mips
}

// buildPasses precomputes the full pass sequence as packed invocation
// words. The layout is fixed per pipeline; only the uniforms vary between
// frames.
//
// Input slots: 0..2 are the working pyramids, 3 is the scene.
// Bloom slot 2 is the accumulation pyramid.
func (p *Pipeline) buildPasses() error {
	mips := p.mips
	descs := make([]kernel.Descriptor, 0, 2*mips+mips+1)

	// Threshold the scene into the finest level of pyramid 0.
	descs = append(descs, kernel.Descriptor{
		Mode: kernel.ModePrefilter, LOD: 0, Input: 3, Output: 0,
	})

	// Downsample chain. Each level is filtered twice: pyramid 0 level i-1
	// into pyramid 1 level i (ping), then pyramid 1 level i back into
	// pyramid 0 level i at the same extent (pong).
	for i := 1; i < mips; i++ {
		descs = append(descs,
			kernel.Descriptor{
				Mode: kernel.ModeDownsample, LOD: i - 1, Input: 0, Output: mips + i,
			},
			kernel.Descriptor{
				Mode: kernel.ModeDownsample, LOD: i, Input: 1, Output: i,
			},
		)
	}

	// Seed the coarsest accumulation level from the coarsest downsample.
	descs = append(descs, kernel.Descriptor{
		Mode: kernel.ModeUpsampleFirst, LOD: mips - 2, Input: 0, Output: 3*mips - 1,
	})

	// Walk back up, combining each tent-upsampled coarser level with the
	// same-level downsample.
	for i := mips - 2; i >= 0; i-- {
		descs = append(descs, kernel.Descriptor{
			Mode: kernel.ModeUpsample, LOD: i, Input: 0, Output: 2*mips + i, Bloom: 2,
		})
	}

	// Composite onto the scene through the tonemap.
	descs = append(descs, kernel.Descriptor{
		Mode: kernel.ModeApply, LOD: 0, Input: 3, Output: 3 * mips, Bloom: 2,
	})

	p.passes = make([]pass, len(descs))
	for i, d := range descs {
		word, err := d.Pack()
		if err != nil {
			return fmt.Errorf("bloom: pack pass %d: %w", i, err)
		}
		out, err := p.outputs.Image(d.Output)
		if err != nil {
			return fmt.Errorf("bloom: pass %d output: %w", i, err)
		}
		p.passes[i] = pass{word: word, width: out.Width(), height: out.Height()}
	}
	return nil
}

// Process runs the full bloom sequence on scene and returns the composited,
// tonemapped, gamma-encoded result. The returned image is owned by the
// pipeline and is overwritten by the next Process call.
//
// The scene must match the pipeline extent. The scene is only read;
// processing never writes to it.
func (p *Pipeline) Process(scene *hdr.Image) (*hdr.Image, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if scene == nil {
		return nil, ErrNilScene
	}
	if scene.Width() != p.width || scene.Height() != p.height {
		return nil, fmt.Errorf("bloom: scene %dx%d: %w (pipeline %dx%d)",
			scene.Width(), scene.Height(), hdr.ErrDimensionMismatch, p.width, p.height)
	}

	// Frame resource set: the three working pyramids plus the scene,
	// rebound each frame like a per-frame descriptor update.
	inputs := hdr.NewPyramidRegistry("inputs", 4)
	blooms := hdr.NewPyramidRegistry("blooms", 4)
	for _, pyr := range p.images {
		if _, err := inputs.Add(pyr); err != nil {
			return nil, err
		}
		if _, err := blooms.Add(pyr); err != nil {
			return nil, err
		}
	}
	if _, err := inputs.Add(hdr.WrapPyramid(scene)); err != nil {
		return nil, err
	}

	res := kernel.Resources{Outputs: p.outputs, Inputs: inputs, Blooms: blooms}
	u := p.params.uniforms(p.tonemap)

	for i, ps := range p.passes {
		d, err := kernel.Decode(ps.word)
		if err != nil {
			return nil, fmt.Errorf("bloom: decode pass %d: %w", i, err)
		}
		if err := p.backend.Dispatch(d, u, res, ps.width, ps.height); err != nil {
			return nil, fmt.Errorf("bloom: pass %d: %w", i, err)
		}
	}

	return p.final, nil
}

// SetParams replaces the effect parameters for subsequent Process calls.
func (p *Pipeline) SetParams(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	p.params = params
	return nil
}

// Params returns the current effect parameters.
func (p *Pipeline) Params() Params {
	return p.params
}

// SetTonemap selects the tonemap curve for subsequent Process calls.
func (p *Pipeline) SetTonemap(tm kernel.Tonemap) {
	p.tonemap = tm
}

// Width returns the pipeline extent width in texels.
func (p *Pipeline) Width() int { return p.width }

// Height returns the pipeline extent height in texels.
func (p *Pipeline) Height() int { return p.height }

// MipCount returns the pyramid depth after clamping.
func (p *Pipeline) MipCount() int { return p.mips }

// Backend returns the name of the backend executing the passes.
func (p *Pipeline) Backend() string { return p.backend.Name() }

// Close releases the backend. The pipeline must not be used after Close.
func (p *Pipeline) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.backend != nil {
		p.backend.Close()
	}
}
