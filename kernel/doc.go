// Package kernel implements the bloom compute kernel: a stateless
// per-pixel routine that, depending on a per-dispatch mode, performs
// bright-pass threshold extraction, 13-tap box downsampling, 9-tap tent
// upsampling with additive recombination, and a final tonemap composite.
//
// The kernel mirrors a GPU compute shader: the host issues one dispatch per
// (mode, mip level) pair across an image pyramid, and every invocation
// writes at most one output texel. Backends decide how invocations are
// scheduled (goroutine tile pool on the CPU, workgroups on the GPU); the
// kernel itself holds no state between invocations and performs no
// synchronization.
//
// Pass sequencing, resource allocation, and cross-pass memory visibility
// are host contracts, owned by the bloom.Pipeline type.
package kernel
