package backend

import (
	"errors"

	"github.com/gogpu/bloom/kernel"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when Dispatch is called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// ComputeBackend is the interface for bloom pass execution.
// It abstracts where kernel invocations run, allowing the pipeline to
// support multiple backends (software, GPU via wgpu).
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type ComputeBackend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the backend.
	// This must be called before any Dispatch.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Dispatch executes one bloom pass: the kernel described by d, with
	// uniforms u and bound resources res, over a width x height invocation
	// grid. Dispatch returns only after every write of the pass is visible,
	// so the caller may immediately issue a pass that reads the output.
	Dispatch(d kernel.Descriptor, u kernel.Uniforms, res kernel.Resources, width, height int) error
}
