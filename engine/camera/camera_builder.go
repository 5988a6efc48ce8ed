package camera

import (
	"github.com/robokit/armviz/engine/renderer/bind_group_provider"
)

// CameraBuilderOption is a functional option applied by NewCamera.
type CameraBuilderOption func(*viewCamera)

// WithUp overrides the up vector. The default is world z, matching the
// robot's base frame.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *viewCamera) {
		c.up = [3]float32{x, y, z}
		c.updateMatrices()
	}
}

// WithFov sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *viewCamera) {
		c.fov = fov
		c.updateMatrices()
	}
}

// WithAspect sets the initial aspect ratio. The scene keeps it current on
// resize afterwards.
//
// Parameters:
//   - aspect: width over height
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *viewCamera) {
		c.aspect = aspect
		c.updateMatrices()
	}
}

// WithNear sets the near clipping plane.
//
// Parameters:
//   - near: near plane distance in meters
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithNear(near float32) CameraBuilderOption {
	return func(c *viewCamera) {
		c.near = near
		c.updateMatrices()
	}
}

// WithFar sets the far clipping plane.
//
// Parameters:
//   - far: far plane distance in meters
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFar(far float32) CameraBuilderOption {
	return func(c *viewCamera) {
		c.far = far
		c.updateMatrices()
	}
}

// WithController attaches a controller. The camera recomputes its matrices
// from the controller once all options have applied.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *viewCamera) {
		c.controller = ctrl
	}
}

// WithBindGroupProvider replaces the camera's default GPU resource provider.
//
// Parameters:
//   - provider: the provider to attach
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) CameraBuilderOption {
	return func(c *viewCamera) {
		c.bindGroupProvider = provider
	}
}
