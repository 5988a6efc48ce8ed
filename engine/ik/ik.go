// Package ik solves inverse kinematics for any chain using a damped
// least-squares iteration over a numerically differentiated Jacobian. It
// works for 2-DOF planar arms through 6-DOF industrial chains with no
// per-robot code.
package ik

import (
	"fmt"
	"math"

	"github.com/robokit/armviz/engine/kinematics"
)

const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-3
	defaultDamping       = 0.1
	defaultStepSize      = 0.5
	jacobianEpsilon      = 1e-6
)

type solverImpl struct {
	// scratch is a private copy of the source chain. Every candidate
	// configuration is applied here, so the caller's chain is never touched.
	scratch kinematics.Chain

	maxIterations int
	tolerance     float64
	damping       float64
	stepSize      float64
}

// Result describes the outcome of a Solve call. JointVariables always holds
// the best configuration found, converged or not.
type Result struct {
	Converged      bool
	JointVariables []float64
	Iterations     int
	FinalError     float64
	ErrorHistory   []float64
}

// Solver finds joint configurations that place a chain's end-effector at a
// target position. A Solver is stateless between calls apart from its
// configuration and is not safe for concurrent Solve calls.
type Solver interface {
	// Solve iterates from the given seed configuration toward the target
	// end-effector position using damped least-squares updates.
	//
	// Parameters:
	//   - seed: starting joint variables, one per joint
	//   - x, y, z: target end-effector position in world coordinates
	//
	// Returns:
	//   - Result: best configuration found plus convergence details
	//   - error: *kinematics.DimensionError if the seed has the wrong length
	Solve(seed []float64, x, y, z float64) (Result, error)

	// Reachable estimates whether a target position lies inside the chain's
	// workspace by comparing its distance from the world origin against the
	// summed link lengths with a 10% margin.
	//
	// Parameters:
	//   - x, y, z: target position in world coordinates
	//
	// Returns:
	//   - bool: true if the target is likely reachable
	//   - float64: distance from the origin to the target
	Reachable(x, y, z float64) (bool, float64)
}

var _ Solver = &solverImpl{}

// NewSolver constructs a Solver for the given chain. The chain's topology is
// copied into a private scratch chain, so subsequent Solve calls never mutate
// the original.
//
// Parameters:
//   - chain: the chain to solve for
//   - options: functional options (iteration cap, tolerance, damping, step size)
//
// Returns:
//   - Solver: the constructed solver
//   - error: if the chain's topology cannot be copied
func NewSolver(chain kinematics.Chain, options ...SolverBuilderOption) (Solver, error) {
	opts := []kinematics.ChainBuilderOption{kinematics.WithBaseFrame(chain.BaseFrame())}
	if offsets := chain.LinkOffsets(); offsets != nil {
		opts = append(opts, kinematics.WithLinkOffsets(offsets))
	}
	scratch, err := kinematics.NewChain(chain.DHTable(), chain.JointTypes(), chain.Limits(), opts...)
	if err != nil {
		return nil, fmt.Errorf("copying chain topology: %w", err)
	}

	s := &solverImpl{
		scratch:       scratch,
		maxIterations: defaultMaxIterations,
		tolerance:     defaultTolerance,
		damping:       defaultDamping,
		stepSize:      defaultStepSize,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func (s *solverImpl) Solve(seed []float64, x, y, z float64) (Result, error) {
	vars := make([]float64, len(seed))
	copy(vars, seed)
	if err := s.scratch.SetJointVariables(vars); err != nil {
		return Result{}, err
	}

	target := [3]float64{x, y, z}
	history := make([]float64, 0, s.maxIterations)
	errNorm := math.Inf(1)

	for iteration := 0; iteration < s.maxIterations; iteration++ {
		cx, cy, cz := s.tipPosition(vars)
		ev := [3]float64{target[0] - cx, target[1] - cy, target[2] - cz}
		errNorm = math.Sqrt(ev[0]*ev[0] + ev[1]*ev[1] + ev[2]*ev[2])
		history = append(history, errNorm)

		if errNorm < s.tolerance {
			return Result{
				Converged:      true,
				JointVariables: vars,
				Iterations:     iteration,
				FinalError:     errNorm,
				ErrorHistory:   history,
			}, nil
		}

		jac := s.jacobian(vars, cx, cy, cz)

		// Damped least squares: solve (J*J^T + lambda*I) dx = e in task
		// space, then map back with delta = J^T * dx. The damping keeps the
		// 3x3 system invertible near singular configurations.
		var jjt [9]float64
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				sum := 0.0
				for k := range vars {
					sum += jac[r][k] * jac[c][k]
				}
				jjt[r*3+c] = sum
			}
			jjt[r*3+r] += s.damping
		}

		dx, ok := solve3(jjt, ev)
		if !ok {
			break
		}
		for i := range vars {
			delta := jac[0][i]*dx[0] + jac[1][i]*dx[1] + jac[2][i]*dx[2]
			vars[i] += s.stepSize * delta
		}
	}

	return Result{
		Converged:      false,
		JointVariables: vars,
		Iterations:     s.maxIterations,
		FinalError:     errNorm,
		ErrorHistory:   history,
	}, nil
}

func (s *solverImpl) Reachable(x, y, z float64) (bool, float64) {
	distance := math.Sqrt(x*x + y*y + z*z)

	maxReach := 0.0
	for _, dh := range s.scratch.DHTable() {
		maxReach += math.Abs(dh.A) + math.Abs(dh.D)
	}
	return distance <= maxReach*1.1, distance
}

// tipPosition evaluates the end-effector position for a candidate
// configuration using the scratch chain.
func (s *solverImpl) tipPosition(vars []float64) (x, y, z float64) {
	// Length was validated on the first SetJointVariables in Solve.
	_ = s.scratch.SetJointVariables(vars)
	frames := s.scratch.LinkFrames()
	return frames[len(frames)-1].Position()
}

// jacobian builds the 3xN position Jacobian by forward differencing each
// joint variable.
func (s *solverImpl) jacobian(vars []float64, cx, cy, cz float64) [3][]float64 {
	jac := [3][]float64{
		make([]float64, len(vars)),
		make([]float64, len(vars)),
		make([]float64, len(vars)),
	}

	perturbed := make([]float64, len(vars))
	for i := range vars {
		copy(perturbed, vars)
		perturbed[i] += jacobianEpsilon

		px, py, pz := s.tipPosition(perturbed)
		jac[0][i] = (px - cx) / jacobianEpsilon
		jac[1][i] = (py - cy) / jacobianEpsilon
		jac[2][i] = (pz - cz) / jacobianEpsilon
	}
	return jac
}

// solve3 solves the 3x3 row-major system m*x = b by Gaussian elimination
// with partial pivoting. It reports false when the system is singular.
func solve3(m [9]float64, b [3]float64) ([3]float64, bool) {
	a := [3][4]float64{
		{m[0], m[1], m[2], b[0]},
		{m[3], m[4], m[5], b[1]},
		{m[6], m[7], m[8], b[2]},
	}

	for col := 0; col < 3; col++ {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return [3]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := 0; r < 3; r++ {
			if r == col {
				continue
			}
			factor := a[r][col] / a[col][col]
			for c := col; c < 4; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}

	return [3]float64{a[0][3] / a[0][0], a[1][3] / a[1][1], a[2][3] / a[2][2]}, true
}
