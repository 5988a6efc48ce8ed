package kinematics

import "fmt"

// ConfigurationError reports malformed chain construction input: mismatched
// sequence lengths or an inverted limit pair. Joint is the offending joint
// index, or -1 when the error is not tied to a single joint.
type ConfigurationError struct {
	// Joint is the offending joint index, or -1 for chain-level errors.
	Joint int

	// Reason describes what was wrong with the input.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Joint >= 0 {
		return fmt.Sprintf("kinematics: invalid chain configuration at joint %d: %s", e.Joint, e.Reason)
	}
	return fmt.Sprintf("kinematics: invalid chain configuration: %s", e.Reason)
}

// DimensionError reports a joint-variable vector whose length does not match
// the chain's degree-of-freedom count.
type DimensionError struct {
	// Expected is the chain's degree-of-freedom count.
	Expected int

	// Actual is the length of the vector that was supplied.
	Actual int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("kinematics: joint variable vector has length %d, chain has %d joints", e.Actual, e.Expected)
}
