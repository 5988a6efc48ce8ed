package scene_object

import (
	"github.com/robokit/armviz/engine/model"
)

// SceneObjectBuilderOption is a functional option used to configure a SceneObject during construction.
type SceneObjectBuilderOption func(*sceneObject)

// WithModel assigns a Model to the object.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - SceneObjectBuilderOption: a function that sets the model on the object
func WithModel(m model.Model) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.mdl = m
	}
}

// WithFrameIndex binds the object's transform to a kinematic frame index.
// Index 0 is the base frame; joint i drives frame i+1.
//
// Parameters:
//   - index: the kinematic frame index, or StaticFrame
//
// Returns:
//   - SceneObjectBuilderOption: a function that sets the frame index on the object
func WithFrameIndex(index int) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.frameIndex = index
	}
}

// WithTransform sets the object's initial world matrix (column-major).
//
// Parameters:
//   - transform: the world matrix
//
// Returns:
//   - SceneObjectBuilderOption: a function that sets the transform on the object
func WithTransform(transform [16]float32) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.transform = transform
	}
}

// WithEnabled sets whether the object starts enabled for rendering.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - SceneObjectBuilderOption: a function that sets the enabled state on the object
func WithEnabled(enabled bool) SceneObjectBuilderOption {
	return func(s *sceneObject) {
		s.enabled.Store(enabled)
	}
}
