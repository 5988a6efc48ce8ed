package kinematics

import "math"

// Frame is a rigid transform (rotation + translation) stored as a flat 4x4
// homogeneous matrix in column-major order, matching the layout convention
// used throughout the engine's matrix code. Kinematics runs in float64; the
// renderer narrows to float32 only at upload time.
//
// Frames are ephemeral values: every kinematics evaluation produces fresh
// ones and callers own the results.
type Frame [16]float64

// IdentityFrame returns the identity transform.
//
// Returns:
//   - Frame: the identity frame
func IdentityFrame() Frame {
	var f Frame
	f[0], f[5], f[10], f[15] = 1, 1, 1, 1
	return f
}

// FrameFromPose builds a frame from a translation and roll-pitch-yaw rotation.
// The rotation order is Rz * Ry * Rx (applied right-to-left), matching the
// RPY input convention used for physical link offsets.
//
// Parameters:
//   - tx, ty, tz: translation components
//   - rx, ry, rz: rotation angles in radians about the x, y, and z axes
//
// Returns:
//   - Frame: the composed rigid transform
func FrameFromPose(tx, ty, tz, rx, ry, rz float64) Frame {
	cx, sx := math.Cos(rx), math.Sin(rx)
	cy, sy := math.Cos(ry), math.Sin(ry)
	cz, sz := math.Cos(rz), math.Sin(rz)

	// R = Rz * Ry * Rx, written out column-major.
	var f Frame
	f[0] = cz * cy
	f[1] = sz * cy
	f[2] = -sy
	f[3] = 0

	f[4] = cz*sy*sx - sz*cx
	f[5] = sz*sy*sx + cz*cx
	f[6] = cy * sx
	f[7] = 0

	f[8] = cz*sy*cx + sz*sx
	f[9] = sz*sy*cx - cz*sx
	f[10] = cy * cx
	f[11] = 0

	f[12] = tx
	f[13] = ty
	f[14] = tz
	f[15] = 1
	return f
}

// Mul composes two frames: result = f * other. Both operands are unchanged.
//
// Parameters:
//   - other: the right-hand frame
//
// Returns:
//   - Frame: the composed frame
func (f Frame) Mul(other Frame) Frame {
	var out Frame
	for i := 0; i < 4; i++ { // column of other
		for j := 0; j < 4; j++ { // row of f
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += f[k*4+j] * other[i*4+k]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Position returns the frame origin in world coordinates.
//
// Returns:
//   - x, y, z: the translation components
func (f Frame) Position() (x, y, z float64) {
	return f[12], f[13], f[14]
}

// Axes returns the frame's basis vectors in world coordinates.
//
// Returns:
//   - xAxis, yAxis, zAxis: the three orthonormal axis vectors
func (f Frame) Axes() (xAxis, yAxis, zAxis [3]float64) {
	xAxis = [3]float64{f[0], f[1], f[2]}
	yAxis = [3]float64{f[4], f[5], f[6]}
	zAxis = [3]float64{f[8], f[9], f[10]}
	return
}

// Rotation returns the 3x3 rotation part as a flat column-major slice.
//
// Returns:
//   - [9]float64: the rotation matrix, column-major
func (f Frame) Rotation() [9]float64 {
	return [9]float64{
		f[0], f[1], f[2],
		f[4], f[5], f[6],
		f[8], f[9], f[10],
	}
}

// RotationDeterminant computes the determinant of the rotation part. A valid
// rigid transform has determinant +1 (within floating-point tolerance).
//
// Returns:
//   - float64: the 3x3 determinant
func (f Frame) RotationDeterminant() float64 {
	return f[0]*(f[5]*f[10]-f[9]*f[6]) -
		f[4]*(f[1]*f[10]-f[9]*f[2]) +
		f[8]*(f[1]*f[6]-f[5]*f[2])
}

// Mat32 narrows the frame to a flat [16]float32 column-major matrix for GPU
// upload. Precision loss is acceptable at the rendering boundary only.
//
// Returns:
//   - [16]float32: the narrowed matrix
func (f Frame) Mat32() [16]float32 {
	var out [16]float32
	for i, v := range f {
		out[i] = float32(v)
	}
	return out
}
