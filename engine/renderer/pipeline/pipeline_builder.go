package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/robokit/armviz/engine/renderer/shader"
)

// PipelineBuilderOption is a functional option applied by NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader sets the pipeline's vertex stage.
//
// Parameters:
//   - s: the vertex shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets the pipeline's fragment stage.
//
// Parameters:
//   - s: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled toggles depth testing. On by default.
//
// Parameters:
//   - enabled: whether fragments are depth-tested
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled toggles depth writes. On by default.
//
// Parameters:
//   - enabled: whether fragments write the depth buffer
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthBias applies a constant and slope-scaled depth bias. The flat-line
// pipeline uses a small negative bias so gizmo and polyline geometry wins the
// depth test against coincident link surfaces.
//
// Parameters:
//   - bias: constant bias in depth units
//   - slopeScale: bias scaled by the fragment's depth slope
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithBlendEnabled toggles alpha blending.
//
// Parameters:
//   - enabled: whether the color target blends
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithCullMode sets triangle culling. Line topologies ignore it.
//
// Parameters:
//   - mode: wgpu.CullModeNone, CullModeFront, or CullModeBack
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology. Triangles by default; the gizmo,
// polyline, and grid pipelines use wgpu.PrimitiveTopologyLineList.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the winding order that counts as front-facing.
//
// Parameters:
//   - frontFace: wgpu.FrontFaceCCW or wgpu.FrontFaceCW
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask restricts which color channels the pipeline writes.
//
// Parameters:
//   - writeMask: the color write mask
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}

// WithBlendState overrides the blend equation used when blending is enabled.
//
// Parameters:
//   - blendState: the blend state to use
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = blendState
	}
}
