package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option applied by
// NewBindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroup seeds the provider with an already-created bind group.
// Normally the renderer creates it during InitBindGroup instead.
//
// Parameters:
//   - bg: the bind group
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithBindGroup(bg *wgpu.BindGroup) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroup = bg
	}
}

// WithBindGroupLayout seeds the provider with an existing layout.
//
// Parameters:
//   - bgl: the bind group layout
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}

// WithBuffer attaches a GPU buffer at a binding index.
//
// Parameters:
//   - binding: the binding index
//   - buf: the buffer for that binding
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithBuffers replaces the provider's whole binding-to-buffer map.
//
// Parameters:
//   - buffers: binding indices mapped to buffers
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithBuffers(buffers map[int]*wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers = buffers
	}
}
