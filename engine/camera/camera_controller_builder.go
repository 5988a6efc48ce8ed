package camera

// CameraControllerOption is a functional option for configuring an orbit
// controller.
type CameraControllerOption func(*orbitController)

// WithRadius sets the starting distance from the pivot.
//
// Parameters:
//   - radius: distance in meters, must be positive
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadius(radius float32) CameraControllerOption {
	return func(oc *orbitController) {
		if radius > 0 {
			oc.radius = radius
		}
	}
}

// WithAzimuth sets the starting horizontal angle around the world z axis.
// Zero looks down the +x axis.
//
// Parameters:
//   - azimuth: angle in radians
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the starting angle above the ground plane.
//
// Parameters:
//   - elevation: angle in radians, zero is horizontal
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithElevation(elevation float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.elevation = elevation
	}
}

// WithTarget sets the orbit pivot, typically the robot's base or a point
// midway up the arm.
//
// Parameters:
//   - x, y, z: world-space pivot coordinates in meters
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithRadiusBounds sets how close and how far the camera may zoom.
//
// Parameters:
//   - min: minimum distance in meters
//   - max: maximum distance in meters
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(oc *orbitController) {
		if min > 0 && max >= min {
			oc.minRadius = min
			oc.maxRadius = max
		}
	}
}

// WithElevationBounds sets the tilt range. Keeping the bounds inside
// (-pi/2, pi/2) avoids gimbal flip at the poles.
//
// Parameters:
//   - min: lowest angle in radians
//   - max: highest angle in radians
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(oc *orbitController) {
		if max >= min {
			oc.minElevation = min
			oc.maxElevation = max
		}
	}
}

// WithOrbitSpeed sets the keyboard orbit step.
//
// Parameters:
//   - speed: radians per Orbit* call
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		if speed > 0 {
			oc.orbitSpeed = speed
		}
	}
}

// WithMouseSensitivity sets the radians-per-pixel factor for drag orbiting.
//
// Parameters:
//   - sensitivity: multiplier for cursor movement
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(oc *orbitController) {
		if sensitivity > 0 {
			oc.mouseSensitivity = sensitivity
		}
	}
}

// WithZoomSpeed sets the meters-per-step factor for Zoom.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		if speed > 0 {
			oc.zoomSpeed = speed
		}
	}
}

// WithPanSpeed sets the meters-per-step factor for panning.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		if speed > 0 {
			oc.panSpeed = speed
		}
	}
}
