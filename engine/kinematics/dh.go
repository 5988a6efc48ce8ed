package kinematics

import "math"

// JointType identifies which DH parameter is the joint's variable coordinate.
type JointType int

const (
	// JointRevolute varies theta; a, alpha, and d are fixed link geometry.
	JointRevolute JointType = iota

	// JointPrismatic varies d; a, alpha, and theta are fixed link geometry.
	JointPrismatic
)

// String returns the joint type name.
func (t JointType) String() string {
	switch t {
	case JointRevolute:
		return "revolute"
	case JointPrismatic:
		return "prismatic"
	default:
		return "unknown"
	}
}

// DHParameter holds the four Denavit-Hartenberg scalars describing one link's
// rigid transform relative to the previous link. The value stored in the
// variable slot (Theta for revolute joints, D for prismatic joints) is the
// joint's rest value, used to initialize the joint variable at construction.
type DHParameter struct {
	// A is the link length: translation along the x-axis.
	A float64

	// Alpha is the link twist in radians: rotation about the x-axis.
	Alpha float64

	// D is the link offset: translation along the z-axis.
	D float64

	// Theta is the joint angle in radians: rotation about the z-axis.
	Theta float64
}

// Limit is an advisory (min, max) range for a joint variable. Limits are
// metadata only: neither SetJointVariables nor ForwardKinematics enforces
// them. Enforcement, when wanted, is a caller-level policy.
type Limit struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the limit range, inclusive.
//
// Parameters:
//   - v: the joint variable value to test
//
// Returns:
//   - bool: true if Min <= v <= Max
func (l Limit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// dhTransform computes the individual homogeneous transform A_i for one joint
// from its four DH parameters using the standard (distal) DH convention:
// rotation about z by theta, translation along z by d, translation along x
// by a, rotation about x by alpha. The closed form is written out directly,
// column-major. The standard and modified conventions are not numerically
// interchangeable; this engine uses standard throughout.
func dhTransform(a, alpha, d, theta float64) Frame {
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	ct, st := math.Cos(theta), math.Sin(theta)

	var f Frame
	f[0] = ct
	f[1] = st
	f[2] = 0
	f[3] = 0

	f[4] = -st * ca
	f[5] = ct * ca
	f[6] = sa
	f[7] = 0

	f[8] = st * sa
	f[9] = -ct * sa
	f[10] = ca
	f[11] = 0

	f[12] = a * ct
	f[13] = a * st
	f[14] = d
	f[15] = 1
	return f
}
