// Package wgpu provides a GPU compute backend for the bloom pipeline using
// gogpu/wgpu.
//
// The backend runs the bloom kernel as a WGSL compute shader. All five pass
// modes live in a single shader entry point, selected per dispatch by a
// packed invocation word, exactly as the CPU backend selects them from the
// same word.
//
// # Architecture Overview
//
//	Pipeline passes -> packed descriptor word -> cs_bloom @ 8x4 workgroups -> storage texture
//
// Key components:
//
//   - Backend: main entry point implementing backend.ComputeBackend
//   - KernelPipeline: compiled shader module, bind group layouts, compute pipeline
//   - shaders/bloom.wgsl: the five-mode kernel, compiled to SPIR-V via gogpu/naga
//
// # Registration and Selection
//
// The wgpu backend is automatically registered when this package is imported:
//
//	import _ "github.com/gogpu/bloom/backend/wgpu"
//
// The backend is preferred over the software backend when available. If GPU
// initialization fails, pipeline creation falls back to software execution.
//
// # Current Status
//
// Shader compilation, bind group layouts, and compute pipeline creation are
// fully implemented and validated against gogpu/naga. Kernel execution uses
// a CPU mirror of the shader until the core-to-HAL device bridge lands in
// gogpu/wgpu: per-mip texture views and bind group updates need buffer and
// texture handle plumbing that the HAL does not expose yet. The CPU mirror
// traverses the same 8x4 workgroup grid the shader would, so results are
// identical across both paths.
//
// # Requirements
//
//   - Go 1.25+
//   - gogpu/wgpu and gogpu/naga modules
//   - A GPU with Vulkan, Metal, or DX12 support (for device creation)
package wgpu
