package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

// ArmLitSource is the WGSL program for lit arm geometry. The fragment stage
// applies headlight Lambert shading so link meshes stay readable from any
// orbit angle.
//
//go:embed assets/arm_lit.wgsl
var ArmLitSource string

// ArmFlatSource is the WGSL program for unlit geometry such as frame gizmos,
// link polylines, and the ground grid.
//
//go:embed assets/arm_flat.wgsl
var ArmFlatSource string

// Bind group indices shared by the lit and flat programs. Every pipeline in
// the visualizer binds the camera uniform at group 0, the per-object model
// matrix at group 1, and the material params at group 2.
const (
	GroupCamera   = 0
	GroupModel    = 1
	GroupMaterial = 2
)

// Uniform buffer sizes in bytes for the shared bind groups.
const (
	CameraUniformSize  = 80
	ModelDataSize      = 64
	MaterialParamsSize = 16
)

// ArmVertexLayout returns the vertex buffer layout for the interleaved
// 40-byte vertex format (position, normal, color) used by all arm geometry.
//
// Returns:
//   - []wgpu.VertexBufferLayout: a single-buffer layout with three attributes
func ArmVertexLayout() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 40,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
			},
		},
	}
}

// CameraBindGroupLayout returns the layout descriptor for the camera uniform
// at group 0. Visible to both stages since the fragment shader reads the
// camera position for headlight shading.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the camera uniform layout
func CameraBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: CameraUniformSize,
				},
			},
		},
	}
}

// ModelBindGroupLayout returns the layout descriptor for the per-object model
// matrix at group 1.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the model uniform layout
func ModelBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Model Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: ModelDataSize,
				},
			},
		},
	}
}

// MaterialBindGroupLayout returns the layout descriptor for the material
// params at group 2.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the material uniform layout
func MaterialBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: MaterialParamsSize,
				},
			},
		},
	}
}

// NewLitVertexShader builds the vertex stage for lit arm geometry with the
// standard vertex and bind group layouts declared.
//
// Returns:
//   - Shader: the lit vertex shader
func NewLitVertexShader() Shader {
	return NewShader("arm_lit_vs", ShaderTypeVertex, ArmLitSource,
		WithVertexLayout(0, ArmVertexLayout()...),
		WithBindGroupLayoutDescriptor(GroupCamera, CameraBindGroupLayout()),
		WithBindGroupLayoutDescriptor(GroupModel, ModelBindGroupLayout()),
		WithBindGroupLayoutDescriptor(GroupMaterial, MaterialBindGroupLayout()),
	)
}

// NewLitFragmentShader builds the fragment stage for lit arm geometry.
// It declares the camera group so the merged pipeline layout marks it
// fragment-visible for headlight shading.
//
// Returns:
//   - Shader: the lit fragment shader
func NewLitFragmentShader() Shader {
	return NewShader("arm_lit_fs", ShaderTypeFragment, ArmLitSource,
		WithBindGroupLayoutDescriptor(GroupCamera, CameraBindGroupLayout()),
	)
}

// NewFlatVertexShader builds the vertex stage for unlit geometry (gizmos,
// polylines, grid) with the standard layouts declared.
//
// Returns:
//   - Shader: the flat vertex shader
func NewFlatVertexShader() Shader {
	return NewShader("arm_flat_vs", ShaderTypeVertex, ArmFlatSource,
		WithVertexLayout(0, ArmVertexLayout()...),
		WithBindGroupLayoutDescriptor(GroupCamera, CameraBindGroupLayout()),
		WithBindGroupLayoutDescriptor(GroupModel, ModelBindGroupLayout()),
		WithBindGroupLayoutDescriptor(GroupMaterial, MaterialBindGroupLayout()),
	)
}

// NewFlatFragmentShader builds the fragment stage for unlit geometry.
//
// Returns:
//   - Shader: the flat fragment shader
func NewFlatFragmentShader() Shader {
	return NewShader("arm_flat_fs", ShaderTypeFragment, ArmFlatSource)
}
