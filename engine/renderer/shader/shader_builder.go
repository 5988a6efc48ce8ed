package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderBuilderOption is a functional option for configuring a Shader via NewShader.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name for the shader stage.
//
// Parameters:
//   - entryPoint: the WGSL entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option to a shader
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithVertexLayout declares the vertex buffer layout for a vertex buffer slot.
// The layout must match the @location declarations in the WGSL source.
//
// Parameters:
//   - slot: the vertex buffer slot index
//   - layout: the vertex buffer layouts for the slot
//
// Returns:
//   - ShaderBuilderOption: a function that applies the vertex layout option to a shader
func WithVertexLayout(slot int, layout ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[slot] = layout
	}
}

// WithBindGroupLayoutDescriptor declares the bind group layout for a group
// index. The descriptor must match the @group/@binding declarations in the
// WGSL source.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that applies the layout option to a shader
func WithBindGroupLayoutDescriptor(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}
