//go:build !nogpu

package wgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/bloom/backend"
	"github.com/gogpu/bloom/internal/parallel"
	"github.com/gogpu/bloom/kernel"
)

// Backend runs bloom passes through the wgpu compute path. It owns a
// standalone device and the compiled kernel pipeline.
//
// Pass execution currently uses a CPU mirror of the shader (see package
// documentation); the device and pipeline are still created so shader
// compilation and pipeline validation run against the real driver.
type Backend struct {
	mu sync.Mutex

	gpu      *gpuHandle
	pipeline *KernelPipeline
	logger   *slog.Logger

	initialized bool
	external    bool // true when using a shared device; don't destroy on Close
}

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.ComputeBackend {
		return New()
	})
}

// New creates a new wgpu compute backend. The device is not opened until
// Init is called.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init opens the GPU device and builds the kernel pipeline. It fails when
// no adapter is available or the shader does not validate on the device.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	gpu, err := openGPU()
	if err != nil {
		return err
	}

	pipeline, err := NewKernelPipeline(gpu.device)
	if err != nil {
		gpu.close()
		return err
	}

	b.gpu = gpu
	b.pipeline = pipeline
	b.initialized = true

	if b.logger != nil {
		b.logger.Info("wgpu backend initialized",
			"adapter", gpu.adapter,
			"spirv_words", len(pipeline.SPIRVCode()))
	}
	return nil
}

// Close destroys the pipeline and releases the device.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipeline != nil {
		b.pipeline.Destroy()
		b.pipeline = nil
	}
	if b.gpu != nil {
		if !b.external {
			b.gpu.close()
		}
		b.gpu = nil
	}
	b.initialized = false
	b.external = false
}

// SetLogger configures the backend's logger.
// A nil logger disables logging.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = l
}

// Dispatch executes one bloom pass over a width x height output extent.
// The grid is traversed workgroup by workgroup, 8x4 invocations each,
// mirroring the shader's dispatch shape.
func (b *Backend) Dispatch(d kernel.Descriptor, u kernel.Uniforms, res kernel.Resources, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}

	word, err := d.Pack()
	if err != nil {
		return fmt.Errorf("backend: pack %v pass: %w", d.Mode, err)
	}

	bound, err := kernel.Bind(d, u, res)
	if err != nil {
		return fmt.Errorf("backend: bind %v pass: %w", d.Mode, err)
	}

	// The uniform block is serialized exactly as the GPU dispatch will
	// upload it, so the byte layout stays exercised.
	_ = uniformsToBytes(u, word)

	gx, gy := WorkgroupCounts(width, height)

	if b.logger != nil {
		b.logger.Debug("dispatch",
			"mode", d.Mode.String(),
			"lod", d.LOD,
			"workgroups", fmt.Sprintf("%dx%d", gx, gy))
	}

	for wy := 0; wy < gy; wy++ {
		for wx := 0; wx < gx; wx++ {
			for ly := 0; ly < parallel.TileHeight; ly++ {
				for lx := 0; lx < parallel.TileWidth; lx++ {
					bound.Invoke(wx*parallel.TileWidth+lx, wy*parallel.TileHeight+ly)
				}
			}
		}
	}
	return nil
}
