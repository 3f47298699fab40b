//go:build !nogpu

package wgpu

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/bloom/internal/parallel"
	"github.com/gogpu/bloom/kernel"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"
)

//go:embed shaders/bloom.wgsl
var bloomShaderWGSL string

// uniformBlockSize is the byte size of the Params uniform block in
// bloom.wgsl: curve vec4f, intensity f32, combine f32, tonemap u32,
// word u32.
const uniformBlockSize = 32

// KernelPipeline holds the compiled bloom shader and its compute pipeline.
// One entry point, cs_bloom, serves all five pass modes; the mode travels
// in the packed invocation word of the uniform block.
type KernelPipeline struct {
	mu sync.Mutex

	device hal.Device

	pipeline     hal.ComputePipeline
	shaderModule hal.ShaderModule

	pipelineLayout   hal.PipelineLayout
	paramsBindLayout hal.BindGroupLayout
	outputBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	initialized bool
	shaderReady bool
}

// NewKernelPipeline compiles the bloom shader and creates the compute
// pipeline on the given device. Returns an error if GPU compute is not
// supported.
func NewKernelPipeline(device hal.Device) (*KernelPipeline, error) {
	if device == nil {
		return nil, fmt.Errorf("wgpu: device is required")
	}

	p := &KernelPipeline{device: device}

	if err := p.init(); err != nil {
		p.Destroy()
		return nil, err
	}

	return p, nil
}

// init compiles the shader and creates layouts and the pipeline.
func (p *KernelPipeline) init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	spirvBytes, err := naga.Compile(bloomShaderWGSL)
	if err != nil {
		return fmt.Errorf("wgpu: failed to compile bloom shader: %w", err)
	}

	// Convert bytes to uint32 slice for SPIR-V
	p.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range p.spirvCode {
		p.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	p.shaderReady = true

	shaderModule, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "bloom_shader",
		Source: hal.ShaderSource{
			SPIRV: p.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create shader module: %w", err)
	}
	p.shaderModule = shaderModule

	if err := p.createBindGroupLayouts(); err != nil {
		return err
	}

	if err := p.createPipelineLayout(); err != nil {
		return err
	}

	if err := p.createPipeline(); err != nil {
		return err
	}

	p.initialized = true
	return nil
}

// createBindGroupLayouts creates the two bind group layouts: group 0 holds
// the uniform block and the sampled inputs, group 1 the storage output.
func (p *KernelPipeline) createBindGroupLayouts() error {
	paramsLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "bloom_params_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: uniformBlockSize,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Texture: &types.TextureBindingLayout{
					SampleType:    types.TextureSampleTypeFloat,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: types.ShaderStageCompute,
				Texture: &types.TextureBindingLayout{
					SampleType:    types.TextureSampleTypeFloat,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
			{
				Binding:    3,
				Visibility: types.ShaderStageCompute,
				Sampler: &types.SamplerBindingLayout{
					Type: types.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create params bind group layout: %w", err)
	}
	p.paramsBindLayout = paramsLayout

	outputLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "bloom_output_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				StorageTexture: &types.StorageTextureBindingLayout{
					Access:        types.StorageTextureAccessReadWrite,
					Format:        types.TextureFormatRGBA32Float,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create output bind group layout: %w", err)
	}
	p.outputBindLayout = outputLayout

	return nil
}

// createPipelineLayout creates the pipeline layout.
func (p *KernelPipeline) createPipelineLayout() error {
	layout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "bloom_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.paramsBindLayout, p.outputBindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create pipeline layout: %w", err)
	}
	p.pipelineLayout = layout
	return nil
}

// createPipeline creates the compute pipeline.
func (p *KernelPipeline) createPipeline() error {
	pipeline, err := p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "bloom_pipeline",
		Layout: p.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     p.shaderModule,
			EntryPoint: "cs_bloom",
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create bloom pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// WorkgroupCounts returns the dispatch grid for an output extent, rounding
// up so partial tiles at the right and bottom edges are covered.
func WorkgroupCounts(width, height int) (x, y int) {
	x = (width + parallel.TileWidth - 1) / parallel.TileWidth
	y = (height + parallel.TileHeight - 1) / parallel.TileHeight
	return x, y
}

// uniformsToBytes serializes the uniform block for one dispatch. The layout
// must match the Params struct in bloom.wgsl.
func uniformsToBytes(u kernel.Uniforms, word uint32) []byte {
	buf := make([]byte, uniformBlockSize)
	writeFloat32(buf, 0, u.Curve[0])
	writeFloat32(buf, 4, u.Curve[1])
	writeFloat32(buf, 8, u.Curve[2])
	writeFloat32(buf, 12, u.Curve[3])
	writeFloat32(buf, 16, u.Intensity)
	writeFloat32(buf, 20, u.CombineConstant)
	writeUint32(buf, 24, uint32(u.Tonemap))
	writeUint32(buf, 28, word)
	return buf
}

// IsInitialized returns whether the pipeline is ready for dispatch.
func (p *KernelPipeline) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// IsShaderReady returns whether the shader compiled successfully.
func (p *KernelPipeline) IsShaderReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shaderReady
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (p *KernelPipeline) SPIRVCode() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spirvCode
}

// Destroy releases all GPU resources.
func (p *KernelPipeline) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return
	}

	if p.pipeline != nil {
		p.device.DestroyComputePipeline(p.pipeline)
		p.pipeline = nil
	}

	if p.pipelineLayout != nil {
		p.device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}

	if p.paramsBindLayout != nil {
		p.device.DestroyBindGroupLayout(p.paramsBindLayout)
		p.paramsBindLayout = nil
	}
	if p.outputBindLayout != nil {
		p.device.DestroyBindGroupLayout(p.outputBindLayout)
		p.outputBindLayout = nil
	}

	if p.shaderModule != nil {
		p.device.DestroyShaderModule(p.shaderModule)
		p.shaderModule = nil
	}

	p.initialized = false
}

// Byte serialization helpers for the uniform block.

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}
