package ik

type SolverBuilderOption func(*solverImpl)

// WithMaxIterations caps the number of damped least-squares iterations per
// Solve call.
//
// Parameters:
//   - maxIterations: the iteration cap, ignored if not positive
//
// Returns:
//   - SolverBuilderOption: a function that sets the iteration cap
func WithMaxIterations(maxIterations int) SolverBuilderOption {
	return func(s *solverImpl) {
		if maxIterations > 0 {
			s.maxIterations = maxIterations
		}
	}
}

// WithTolerance sets the position error below which a solve is considered
// converged, in the chain's length units.
//
// Parameters:
//   - tolerance: the convergence tolerance, ignored if not positive
//
// Returns:
//   - SolverBuilderOption: a function that sets the tolerance
func WithTolerance(tolerance float64) SolverBuilderOption {
	return func(s *solverImpl) {
		if tolerance > 0 {
			s.tolerance = tolerance
		}
	}
}

// WithDamping sets the least-squares damping factor. Larger values are more
// stable near singular configurations but converge slower.
//
// Parameters:
//   - damping: the damping factor, ignored if not positive
//
// Returns:
//   - SolverBuilderOption: a function that sets the damping factor
func WithDamping(damping float64) SolverBuilderOption {
	return func(s *solverImpl) {
		if damping > 0 {
			s.damping = damping
		}
	}
}

// WithStepSize scales each joint update. Values in (0, 1] trade convergence
// speed for stability.
//
// Parameters:
//   - stepSize: the update scale, ignored if outside (0, 1]
//
// Returns:
//   - SolverBuilderOption: a function that sets the step size
func WithStepSize(stepSize float64) SolverBuilderOption {
	return func(s *solverImpl) {
		if stepSize > 0 && stepSize <= 1 {
			s.stepSize = stepSize
		}
	}
}
