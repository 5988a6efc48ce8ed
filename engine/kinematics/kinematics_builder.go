package kinematics

// ChainBuilderOption is a functional option for configuring a Chain during construction.
type ChainBuilderOption func(*chain)

// WithBaseFrame sets the pose of joint 0's reference frame relative to the
// world origin. Defaults to the identity frame.
//
// Parameters:
//   - base: the base frame transform
//
// Returns:
//   - ChainBuilderOption: functional option to set the base frame
func WithBaseFrame(base Frame) ChainBuilderOption {
	return func(c *chain) {
		c.baseFrame = base
	}
}

// WithLinkOffsets sets one physical offset transform per joint, applied after
// the pure DH frame to produce the actual joint frame reported by LinkFrames.
// The slice length must match the DH table length; NewChain validates this.
//
// Parameters:
//   - offsets: one offset Frame per joint, base to tip
//
// Returns:
//   - ChainBuilderOption: functional option to set the link offsets
func WithLinkOffsets(offsets []Frame) ChainBuilderOption {
	return func(c *chain) {
		c.offsets = append([]Frame(nil), offsets...)
	}
}
