package camera

import (
	"math"
	"sync"
)

// orbitController implements CameraController for the z-up robot world.
// Azimuth sweeps the ground (xy) plane around the world z axis; elevation
// lifts the camera toward +z. All distances are meters.
type orbitController struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ CameraController = &orbitController{}

// NewOrbitController creates a controller orbiting the origin at desk scale:
// 1.5 m out, 30 degrees up, free to swing almost pole to pole.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	oc := &orbitController{
		mu: &sync.Mutex{},

		radius:    1.5,
		elevation: float32(math.Pi / 6),

		minRadius:    0.05,
		maxRadius:    20.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        0.1,
		panSpeed:         0.01,
	}

	for _, option := range options {
		option(oc)
	}

	oc.updatePosition()
	return oc
}

// updatePosition recomputes the camera position from the spherical
// coordinates. Caller must hold the mutex.
func (oc *orbitController) updatePosition() {
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	oc.position[0] = oc.target[0] + oc.radius*cosElev*cosAzim
	oc.position[1] = oc.target[1] + oc.radius*cosElev*sinAzim
	oc.position[2] = oc.target[2] + oc.radius*sinElev
}

// localAxes returns the camera's right, up, and forward unit vectors,
// consistent with a LookAt using world up (0,0,1). All components are zero
// when the camera sits on the pivot or looks straight along z. Caller must
// hold the mutex.
func (oc *orbitController) localAxes() (rx, ry, rz, ux, uy, uz, fx, fy, fz float32) {
	// backward = normalize(position - target)
	bx := oc.position[0] - oc.target[0]
	by := oc.position[1] - oc.target[1]
	bz := oc.position[2] - oc.target[2]
	bLen := float32(math.Sqrt(float64(bx*bx + by*by + bz*bz)))
	if bLen < 1e-8 {
		return
	}
	bx /= bLen
	by /= bLen
	bz /= bLen

	// right = normalize(cross(worldUp, backward)); cross((0,0,1), b) = (-by, bx, 0)
	rx = -by
	ry = bx
	rLen := float32(math.Sqrt(float64(rx*rx + ry*ry)))
	if rLen < 1e-8 {
		return
	}
	rx /= rLen
	ry /= rLen

	// up = cross(backward, right)
	ux = by*rz - bz*ry
	uy = bz*rx - bx*rz
	uz = bx*ry - by*rx

	fx, fy, fz = -bx, -by, -bz
	return
}

func (oc *orbitController) Position() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position[0], oc.position[1], oc.position[2]
}

func (oc *orbitController) Target() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target[0], oc.target[1], oc.target[2]
}

func (oc *orbitController) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
	oc.updatePosition()
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) OrbitLeft() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitRight() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = clamp(oc.elevation+oc.orbitSpeed, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) OrbitDown() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = clamp(oc.elevation-oc.orbitSpeed, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = clamp(radius, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) SetAzimuth(azimuth float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth = azimuth
	oc.updatePosition()
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitController) SetElevation(elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = clamp(elevation, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) OrbitSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.orbitSpeed
}

func (oc *orbitController) MouseSensitivity() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.mouseSensitivity
}

func (oc *orbitController) ZoomSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.zoomSpeed
}

func (oc *orbitController) PanRight(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	rx, ry, rz, _, _, _, _, _, _ := oc.localAxes()
	oc.shift(rx, ry, rz, delta*oc.panSpeed)
}

func (oc *orbitController) PanUp(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	_, _, _, ux, uy, uz, _, _, _ := oc.localAxes()
	oc.shift(ux, uy, uz, delta*oc.panSpeed)
}

func (oc *orbitController) PanForward(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	_, _, _, _, _, _, fx, fy, fz := oc.localAxes()
	oc.shift(fx, fy, fz, delta*oc.panSpeed)
}

func (oc *orbitController) PanSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.panSpeed
}

// shift translates pivot and camera together so panning never disturbs the
// orbit angles. Caller must hold the mutex.
func (oc *orbitController) shift(dx, dy, dz, offset float32) {
	oc.target[0] += dx * offset
	oc.target[1] += dy * offset
	oc.target[2] += dz * offset
	oc.position[0] += dx * offset
	oc.position[1] += dy * offset
	oc.position[2] += dz * offset
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
