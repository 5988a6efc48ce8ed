package camera

// CameraController owns the camera's positional state. The arm view uses one
// controller style: an orbit around a pivot near the robot base, expressed in
// spherical coordinates (radius, azimuth, elevation) in the z-up world frame,
// plus panning that shifts pivot and camera together.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the orbit pivot the camera looks at.
	//
	// Returns:
	//   - x, y, z: world-space pivot position
	Target() (x, y, z float32)

	// SetTarget moves the orbit pivot and recomputes the camera position from
	// the spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Zoom moves the camera along the view ray by delta times the zoom
	// speed. Positive deltas move closer, clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: zoom input, typically a scroll step
	Zoom(delta float32)

	// OrbitLeft swings the camera one orbit step counterclockwise around the
	// vertical axis through the pivot.
	OrbitLeft()

	// OrbitRight swings the camera one orbit step clockwise.
	OrbitRight()

	// OrbitUp tilts the view upward one orbit step, clamped to the elevation
	// bounds.
	OrbitUp()

	// OrbitDown tilts the view downward one orbit step, clamped to the
	// elevation bounds.
	OrbitDown()

	// Radius returns the distance from the pivot.
	//
	// Returns:
	//   - float32: distance in meters
	Radius() float32

	// SetRadius sets the distance from the pivot, clamped to the bounds.
	//
	// Parameters:
	//   - radius: new distance in meters
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the world z axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle and recomputes the position.
	//
	// Parameters:
	//   - azimuth: new angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle above the ground plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the bounds.
	//
	// Parameters:
	//   - elevation: new angle in radians
	SetElevation(elevation float32)

	// OrbitSpeed returns the keyboard orbit step in radians.
	//
	// Returns:
	//   - float32: radians per Orbit* call
	OrbitSpeed() float32

	// MouseSensitivity returns the radians-per-pixel factor for drag orbiting.
	//
	// Returns:
	//   - float32: multiplier for cursor movement
	MouseSensitivity() float32

	// ZoomSpeed returns the meters-per-step factor for Zoom.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32

	// PanRight shifts pivot and camera along the camera's local right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanRight(delta float32)

	// PanUp shifts pivot and camera along the camera's local up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanUp(delta float32)

	// PanForward dollies pivot and camera along the view direction.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanForward(delta float32)

	// PanSpeed returns the meters-per-step factor for panning.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32
}
