package renderer

import (
	"github.com/robokit/armviz/engine/renderer/pipeline"
)

// RendererBuilderOption is a functional option applied by NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPipeline pre-registers a pipeline under the given key. The scene
// registers its lit and flat-line pipelines this way during Initialize.
//
// Parameters:
//   - key: the pipeline cache key, referenced later by DrawCall
//   - p: the Pipeline to cache
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPipeline(key string, p pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineCache[key] = p
	}
}

// WithPipelines replaces the whole pipeline cache.
//
// Parameters:
//   - pipelines: pipeline cache keys mapped to their pipelines
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPipelines(pipelines map[string]pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.pipelineCache = pipelines
	}
}

// WithPresentMode picks how frames reach the display. VSync is the default
// and the right choice for a visualizer; Uncapped trades tearing for latency.
//
// Parameters:
//   - mode: PresentModeVSync or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the multisample count. The default is MSAA4x, which WebGPU
// guarantees; 8x and 16x depend on the adapter. Thin gizmo and polyline
// geometry looks ragged without at least 4x.
//
// Parameters:
//   - count: MSAAOff, MSAA4x, MSAA8x, or MSAA16x
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer requests WGPU's CPU fallback adapter instead of
// the hardware GPU. Needs a software Vulkan ICD installed (SwiftShader or
// lavapipe); useful on headless boxes and in CI.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
