// Package backend provides a pluggable compute backend abstraction for
// the bloom pipeline.
//
// A backend executes one bloom pass: a single kernel dispatch described by a
// packed descriptor over one mip level. The pipeline stays backend-agnostic
// and issues the same pass sequence regardless of where the passes run.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/bloom/backend"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// # Available Backends
//
// - "software": tile-parallel CPU execution (always available)
// - "wgpu": GPU compute via gogpu/wgpu (registered by importing backend/wgpu)
package backend
