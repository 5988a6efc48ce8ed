package loader

import (
	"github.com/robokit/armviz/engine/model"
	"github.com/robokit/armviz/engine/renderer"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the Renderer used by the Loader.
// Without a Renderer the loader parses and caches models but skips GPU upload.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r renderer.Renderer) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithLoadWorkers is an option builder that overrides the worker count used by
// LoadAll. Values below 1 are ignored.
//
// Parameters:
//   - count: the number of parallel load workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count option to a loader
func WithLoadWorkers(count int) LoaderBuilderOption {
	return func(l *loader) {
		if count > 0 {
			l.loadWorkers = count
		}
	}
}
