package renderer

// RendererBackendType selects the GPU backend behind the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU is the WebGPU backend, currently the only one.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how finished frames reach the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank, pinning the frame rate to
	// the monitor's refresh and avoiding tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Lowest latency, may tear.
	PresentModeUncapped
)

// MSAASampleCount is the multisample anti-aliasing sample count. WebGPU
// guarantees 1 and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisampling.
	MSAAOff MSAASampleCount = 1

	// MSAA4x is the default. The gizmo and polyline line geometry needs it
	// to stay readable.
	MSAA4x MSAASampleCount = 4

	// MSAA8x is adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x is adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// RendererBackend is what the renderer drives; it embeds the interface of
// the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
