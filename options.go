package bloom

import (
	"github.com/gogpu/bloom/backend"
	"github.com/gogpu/bloom/kernel"
)

// Option configures a Pipeline during creation.
// Use functional options to customize Pipeline behavior.
//
// Example:
//
//	// Default: auto-selected backend, 7 mip levels
//	p, err := bloom.New(1920, 1080)
//
//	// Custom backend (dependency injection)
//	p, err := bloom.New(1920, 1080, bloom.WithBackend(myBackend))
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	mips    int
	workers int
	backend backend.ComputeBackend
	tonemap kernel.Tonemap
	params  Params
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		mips:    DefaultMipCount,
		workers: 0,   // GOMAXPROCS
		backend: nil, // Will be selected from the registry if nil
		tonemap: kernel.TonemapGT,
		params:  DefaultParams(),
	}
}

// WithMipCount sets the pyramid depth. Deeper pyramids spread the bloom
// wider; the count is clamped so the coarsest level is at least one texel.
func WithMipCount(n int) Option {
	return func(o *pipelineOptions) {
		if n > 0 {
			o.mips = n
		}
	}
}

// WithWorkers sets the worker count for the software backend.
// Zero or negative uses GOMAXPROCS. Ignored when a custom backend
// is injected via WithBackend.
func WithWorkers(n int) Option {
	return func(o *pipelineOptions) {
		o.workers = n
	}
}

// WithBackend injects a specific compute backend instead of selecting
// one from the registry. The pipeline takes ownership and closes the
// backend on Close.
func WithBackend(b backend.ComputeBackend) Option {
	return func(o *pipelineOptions) {
		o.backend = b
	}
}

// WithTonemap selects the tonemap curve applied in the final pass.
// The default is the GT curve; TonemapACES is the alternative.
func WithTonemap(tm kernel.Tonemap) Option {
	return func(o *pipelineOptions) {
		o.tonemap = tm
	}
}

// WithParams sets the initial effect parameters.
// Parameters can be changed later with Pipeline.SetParams.
func WithParams(p Params) Option {
	return func(o *pipelineOptions) {
		o.params = p
	}
}
