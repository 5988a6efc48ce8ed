// Package kinematics implements the forward-kinematics core of the arm
// visualizer: a chain of joints described by Denavit-Hartenberg parameters,
// evaluated into world-space frames for every link and the end-effector.
// The package has no dependency on mesh loading or rendering; those layers
// consume the frames this package produces.
package kinematics

import (
	"fmt"
	"sync"
)

// chain is the implementation of the Chain interface.
type chain struct {
	mu sync.RWMutex

	dhTable    []DHParameter
	jointTypes []JointType
	limits     []Limit
	baseFrame  Frame

	// offsets holds one physical link offset per joint, applied after the
	// pure DH frame to produce the actual joint frame. nil means identity
	// offsets for the whole chain.
	offsets []Frame

	// variables is the current joint-variable vector (theta for revolute
	// joints, d for prismatic), mutated only through SetJointVariables.
	variables []float64

	// version increments on every successful variable update so consumers
	// can detect staleness without comparing whole vectors.
	version uint64
}

// Chain is an ordered sequence of joints, base to tip, with an immutable
// topology (DH table, joint types, limits, base frame) and a mutable
// joint-variable vector. All operations are safe for concurrent use; a
// variable update is atomic, so a concurrent ForwardKinematics call observes
// either the whole previous vector or the whole new one, never a partial mix.
type Chain interface {
	// DOF returns the chain's degree-of-freedom count.
	//
	// Returns:
	//   - int: the number of joints
	DOF() int

	// BaseFrame returns the pose of joint 0's reference frame relative to
	// the world origin.
	//
	// Returns:
	//   - Frame: the base frame
	BaseFrame() Frame

	// DHTable returns a copy of the chain's DH parameter table, base to tip.
	//
	// Returns:
	//   - []DHParameter: one entry per joint
	DHTable() []DHParameter

	// JointTypes returns a copy of the per-joint type tags, base to tip.
	//
	// Returns:
	//   - []JointType: one entry per joint
	JointTypes() []JointType

	// Limits returns a copy of the per-joint advisory soft limits.
	//
	// Returns:
	//   - []Limit: one entry per joint
	Limits() []Limit

	// JointVariables returns a copy of the current joint-variable vector,
	// base to tip (theta for revolute joints, d for prismatic).
	//
	// Returns:
	//   - []float64: the current variables
	JointVariables() []float64

	// SetJointVariables atomically replaces the whole joint-variable vector.
	// Either all values are applied or none are; a wrong-length input leaves
	// the chain untouched. Values are not clamped to limits.
	//
	// Parameters:
	//   - values: one scalar per joint, base to tip
	//
	// Returns:
	//   - error: *DimensionError if len(values) != DOF()
	SetJointVariables(values []float64) error

	// Version returns the chain's variable-update counter. It increments on
	// every successful SetJointVariables call.
	//
	// Returns:
	//   - uint64: the current version
	Version() uint64

	// ForwardKinematics computes the pure DH frame of every link and the
	// end-effector relative to the world frame. The result has DOF()+1
	// entries: entry 0 is the base (link 0) frame, entry i is entry i-1
	// composed with joint i's DH transform, and the last entry is the
	// end-effector frame. The computation is a pure function of the current
	// variables and the fixed DH constants and cannot fail.
	//
	// Returns:
	//   - []Frame: DOF()+1 frames, base to tip, owned by the caller
	ForwardKinematics() []Frame

	// LinkFrames computes the actual physical joint frames: each pure DH
	// frame composed with that joint's link offset. With no offsets
	// configured this equals ForwardKinematics. The base entry never
	// carries an offset.
	//
	// Returns:
	//   - []Frame: DOF()+1 frames, base to tip, owned by the caller
	LinkFrames() []Frame

	// LinkOffsets returns a copy of the per-joint link offsets, or nil when
	// the chain was built without offsets.
	//
	// Returns:
	//   - []Frame: one offset per joint, base to tip, or nil
	LinkOffsets() []Frame
}

var _ Chain = &chain{}

// NewChain constructs a chain from parallel per-joint sequences. The three
// slices must have equal nonzero length and every limit pair must satisfy
// Min <= Max. Joint variables initialize to the DH table's stored value in
// each joint's variable slot (Theta for revolute, D for prismatic).
//
// Parameters:
//   - dhTable: one DHParameter per joint, base to tip
//   - jointTypes: parallel revolute/prismatic tags
//   - limits: parallel advisory soft limits
//   - options: functional options (base frame, link offsets)
//
// Returns:
//   - Chain: the constructed chain
//   - error: *ConfigurationError on length mismatch, inverted limits, or a
//     link-offset slice of the wrong length
func NewChain(dhTable []DHParameter, jointTypes []JointType, limits []Limit, options ...ChainBuilderOption) (Chain, error) {
	if len(dhTable) == 0 {
		return nil, &ConfigurationError{Joint: -1, Reason: "DH table is empty"}
	}
	if len(jointTypes) != len(dhTable) {
		return nil, &ConfigurationError{
			Joint:  -1,
			Reason: fmt.Sprintf("joint type count %d does not match DH table length %d", len(jointTypes), len(dhTable)),
		}
	}
	if len(limits) != len(dhTable) {
		return nil, &ConfigurationError{
			Joint:  -1,
			Reason: fmt.Sprintf("limit count %d does not match DH table length %d", len(limits), len(dhTable)),
		}
	}
	for i, l := range limits {
		if l.Min > l.Max {
			return nil, &ConfigurationError{Joint: i, Reason: "limit pair is inverted (min > max)"}
		}
	}

	c := &chain{
		dhTable:    append([]DHParameter(nil), dhTable...),
		jointTypes: append([]JointType(nil), jointTypes...),
		limits:     append([]Limit(nil), limits...),
		baseFrame:  IdentityFrame(),
		variables:  make([]float64, len(dhTable)),
	}

	for i := range c.dhTable {
		switch c.jointTypes[i] {
		case JointPrismatic:
			c.variables[i] = c.dhTable[i].D
		default:
			c.variables[i] = c.dhTable[i].Theta
		}
	}

	for _, option := range options {
		option(c)
	}

	if c.offsets != nil && len(c.offsets) != len(c.dhTable) {
		return nil, &ConfigurationError{
			Joint:  -1,
			Reason: fmt.Sprintf("link offset count %d does not match DH table length %d", len(c.offsets), len(c.dhTable)),
		}
	}

	return c, nil
}

func (c *chain) DOF() int {
	return len(c.dhTable)
}

func (c *chain) BaseFrame() Frame {
	return c.baseFrame
}

func (c *chain) DHTable() []DHParameter {
	return append([]DHParameter(nil), c.dhTable...)
}

func (c *chain) JointTypes() []JointType {
	return append([]JointType(nil), c.jointTypes...)
}

func (c *chain) Limits() []Limit {
	return append([]Limit(nil), c.limits...)
}

func (c *chain) JointVariables() []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]float64(nil), c.variables...)
}

func (c *chain) SetJointVariables(values []float64) error {
	if len(values) != len(c.dhTable) {
		return &DimensionError{Expected: len(c.dhTable), Actual: len(values)}
	}

	c.mu.Lock()
	copy(c.variables, values)
	c.version++
	c.mu.Unlock()
	return nil
}

func (c *chain) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *chain) ForwardKinematics() []Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.forwardKinematics(c.variables)
}

func (c *chain) LinkFrames() []Frame {
	c.mu.RLock()
	frames := c.forwardKinematics(c.variables)
	offsets := c.offsets
	c.mu.RUnlock()

	if offsets == nil {
		return frames
	}
	for i := 1; i < len(frames); i++ {
		frames[i] = frames[i].Mul(offsets[i-1])
	}
	return frames
}

func (c *chain) LinkOffsets() []Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.offsets == nil {
		return nil
	}
	out := make([]Frame, len(c.offsets))
	copy(out, c.offsets)
	return out
}

// forwardKinematics accumulates the DH chain from the base frame outward.
// Callers must hold at least a read lock.
func (c *chain) forwardKinematics(variables []float64) []Frame {
	frames := make([]Frame, len(c.dhTable)+1)
	frames[0] = c.baseFrame

	for i, dh := range c.dhTable {
		d, theta := dh.D, dh.Theta
		switch c.jointTypes[i] {
		case JointPrismatic:
			d = variables[i]
		default:
			theta = variables[i]
		}
		frames[i+1] = frames[i].Mul(dhTransform(dh.A, dh.Alpha, d, theta))
	}
	return frames
}
