package backend

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/bloom/internal/parallel"
	"github.com/gogpu/bloom/kernel"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the tile-parallel CPU backend.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU compute backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

// SoftwareBackend executes bloom passes on the CPU.
// Each pass is tiled into 8x4 blocks and distributed across a worker pool;
// Dispatch returns after the pool drains, which is the pass barrier.
type SoftwareBackend struct {
	workers int
	pool    *parallel.WorkerPool
	logger  *slog.Logger
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() ComputeBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software compute backend.
// If workers is 0 or negative, GOMAXPROCS workers are used.
func NewSoftwareBackend(workers int) *SoftwareBackend {
	return &SoftwareBackend{workers: workers}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init starts the worker pool.
func (b *SoftwareBackend) Init() error {
	if b.pool == nil {
		b.pool = parallel.NewWorkerPool(b.workers)
		if b.logger != nil {
			b.logger.Debug("software backend initialized", "workers", b.pool.Workers())
		}
	}
	return nil
}

// Close stops the worker pool and releases it.
func (b *SoftwareBackend) Close() {
	if b.pool != nil {
		b.pool.Close()
		b.pool = nil
	}
}

// SetLogger configures the backend's logger.
// A nil logger disables logging.
func (b *SoftwareBackend) SetLogger(l *slog.Logger) {
	b.logger = l
}

// SetWorkers sets the worker count for the pool.
// Takes effect on the next Init; no-op while the pool is running.
func (b *SoftwareBackend) SetWorkers(workers int) {
	b.workers = workers
}

// Dispatch binds the descriptor against the frame resources and runs the
// kernel over every tile of the width x height grid. It returns after all
// invocations complete, so pass ordering is preserved for the caller.
func (b *SoftwareBackend) Dispatch(d kernel.Descriptor, u kernel.Uniforms, res kernel.Resources, width, height int) error {
	if b.pool == nil {
		return ErrNotInitialized
	}

	bound, err := kernel.Bind(d, u, res)
	if err != nil {
		return fmt.Errorf("backend: bind %v pass: %w", d.Mode, err)
	}

	if b.logger != nil {
		b.logger.Debug("dispatch",
			"mode", d.Mode.String(),
			"lod", d.LOD,
			"extent", fmt.Sprintf("%dx%d", width, height))
	}

	parallel.ForEachPixel(b.pool, width, height, bound.Invoke)
	return nil
}
