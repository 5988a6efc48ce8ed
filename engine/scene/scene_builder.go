package scene

import (
	"github.com/robokit/armviz/engine/camera"
	"github.com/robokit/armviz/engine/loader"
	"github.com/robokit/armviz/engine/model"
	"github.com/robokit/armviz/engine/renderer"
)

// sceneConfig collects construction-only settings consumed while building the
// chain-derived objects. It never outlives NewScene.
type sceneConfig struct {
	// linkMeshes maps a chain frame index (1..DOF) to the mesh drawn for
	// that link instead of the fallback joint cylinder.
	linkMeshes map[int]model.Model
}

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *robotScene, cfg *sceneConfig)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene identifier, normally the robot name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *robotScene, _ *sceneConfig) {
		s.name = name
	}
}

// WithCamera sets the scene's camera. Without this option the scene builds a
// default orbit camera.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *robotScene, _ *sceneConfig) {
		s.cam = cam
	}
}

// WithRenderer attaches a renderer to the scene. Without this option the
// scene runs headless: transforms still update each tick, but Render fails.
//
// Parameters:
//   - r: the renderer to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *robotScene, _ *sceneConfig) {
		s.rend = r
	}
}

// WithLoader sets the asset loader used for the scene's mesh cache. Without
// this option the scene creates its own loader bound to its renderer.
//
// Parameters:
//   - l: the loader to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLoader(l loader.Loader) SceneBuilderOption {
	return func(s *robotScene, _ *sceneConfig) {
		s.assets = l
	}
}

// WithLinkMesh assigns a loaded mesh to a chain frame, replacing the fallback
// joint cylinder for that link.
//
// Parameters:
//   - frameIndex: the chain frame the mesh follows (1..DOF)
//   - mdl: the mesh model to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLinkMesh(frameIndex int, mdl model.Model) SceneBuilderOption {
	return func(_ *robotScene, cfg *sceneConfig) {
		cfg.linkMeshes[frameIndex] = mdl
	}
}

// WithGizmoLength sets the axis length of the per-frame coordinate triads.
//
// Parameters:
//   - length: axis length in meters
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGizmoLength(length float32) SceneBuilderOption {
	return func(s *robotScene, _ *sceneConfig) {
		if length > 0 {
			s.gizmoLength = length
		}
	}
}

// WithGrid sets the ground grid's half extent and line spacing.
//
// Parameters:
//   - halfExtent: distance from the center to each edge in meters
//   - step: spacing between grid lines in meters
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGrid(halfExtent, step float32) SceneBuilderOption {
	return func(s *robotScene, _ *sceneConfig) {
		if halfExtent > 0 && step > 0 {
			s.gridExtent = halfExtent
			s.gridStep = step
		}
	}
}
