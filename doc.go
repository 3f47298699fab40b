// Package bloom implements a physically-inspired HDR bloom post-process.
//
// # Overview
//
// bloom takes a linear HDR scene image and produces a tonemapped,
// gamma-corrected output with light bleed around bright regions. The effect
// follows the mip-pyramid approach used in modern real-time renderers:
// bright pixels are extracted with a soft-knee threshold, blurred down a
// mip chain with a 13-tap box filter, accumulated back up with a 9-tap tent
// filter, and composited over the scene through a tonemap curve.
//
// # Quick Start
//
//	import "github.com/gogpu/bloom"
//
//	p, err := bloom.New(1920, 1080)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	out, err := p.Process(scene) // scene is an *hdr.Image
//
// # Architecture
//
// The library is organized into:
//   - Public API: Pipeline, Params, options
//   - kernel: the stateless per-pixel compute kernel and its packed descriptor
//   - hdr: float32 RGBA images, mip pyramids, resource registries
//   - backend: pluggable pass execution (software, wgpu)
//
// # Coordinate System
//
// Images use standard texture coordinates: origin at top-left, normalized
// UV in [0, 1], texel centers at (i + 0.5) / extent. Sampling is bilinear
// with clamp-to-edge addressing on both backends.
package bloom

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
