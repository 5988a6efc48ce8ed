package ik

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robokit/armviz/engine/kinematics"
)

func planarTwoLink(t *testing.T) kinematics.Chain {
	t.Helper()
	dh := []kinematics.DHParameter{{A: 1}, {A: 1}}
	types := []kinematics.JointType{kinematics.JointRevolute, kinematics.JointRevolute}
	limits := []kinematics.Limit{{Min: -math.Pi, Max: math.Pi}, {Min: -math.Pi, Max: math.Pi}}
	c, err := kinematics.NewChain(dh, types, limits)
	require.NoError(t, err)
	return c
}

func tipAt(t *testing.T, chain kinematics.Chain, vars []float64) (x, y, z float64) {
	t.Helper()
	require.NoError(t, chain.SetJointVariables(vars))
	frames := chain.LinkFrames()
	return frames[len(frames)-1].Position()
}

func TestSolveReachesPlanarTargets(t *testing.T) {
	tests := []struct {
		name   string
		target [3]float64
	}{
		{"near full reach", [3]float64{1.8, 0.4, 0}},
		{"close to base", [3]float64{0.5, 0.5, 0}},
		{"negative quadrant", [3]float64{-1.0, -0.8, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := planarTwoLink(t)
			solver, err := NewSolver(chain, WithMaxIterations(1000))
			require.NoError(t, err)

			res, err := solver.Solve([]float64{0.1, 0.1}, tt.target[0], tt.target[1], tt.target[2])
			require.NoError(t, err)
			require.True(t, res.Converged, "final error %g after %d iterations", res.FinalError, res.Iterations)
			assert.Less(t, res.FinalError, 1e-3)

			x, y, z := tipAt(t, chain, res.JointVariables)
			assert.InDelta(t, tt.target[0], x, 2e-3)
			assert.InDelta(t, tt.target[1], y, 2e-3)
			assert.InDelta(t, tt.target[2], z, 2e-3)
		})
	}
}

func TestSolveDoesNotMutateChain(t *testing.T) {
	chain := planarTwoLink(t)
	require.NoError(t, chain.SetJointVariables([]float64{0.2, -0.3}))
	before := chain.JointVariables()
	version := chain.Version()

	solver, err := NewSolver(chain)
	require.NoError(t, err)
	_, err = solver.Solve(before, 1.5, 0.5, 0)
	require.NoError(t, err)

	assert.Equal(t, before, chain.JointVariables())
	assert.Equal(t, version, chain.Version())
}

func TestSolveUnreachableTarget(t *testing.T) {
	chain := planarTwoLink(t)
	solver, err := NewSolver(chain, WithMaxIterations(50))
	require.NoError(t, err)

	res, err := solver.Solve([]float64{0, 0}, 5, 0, 0)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 50, res.Iterations)
	assert.NotEmpty(t, res.ErrorHistory)
	// The arm at full stretch leaves a 3-unit residual.
	assert.Greater(t, res.FinalError, 1.0)
}

func TestSolveWrongSeedLength(t *testing.T) {
	chain := planarTwoLink(t)
	solver, err := NewSolver(chain)
	require.NoError(t, err)

	_, err = solver.Solve([]float64{0, 0, 0}, 1, 0, 0)
	var dimErr *kinematics.DimensionError
	require.ErrorAs(t, err, &dimErr)
}

func TestReachable(t *testing.T) {
	chain := planarTwoLink(t)
	solver, err := NewSolver(chain)
	require.NoError(t, err)

	// Total reach is 2.0 with a 10% margin.
	ok, dist := solver.Reachable(1.5, 0, 0)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, dist, 1e-12)

	ok, dist = solver.Reachable(0, 3, 0)
	assert.False(t, ok)
	assert.InDelta(t, 3.0, dist, 1e-12)

	ok, _ = solver.Reachable(2.15, 0, 0)
	assert.True(t, ok)
}

func TestSolveRespectsLinkOffsets(t *testing.T) {
	dh := []kinematics.DHParameter{{A: 1}, {A: 1}}
	types := []kinematics.JointType{kinematics.JointRevolute, kinematics.JointRevolute}
	limits := []kinematics.Limit{{Min: -math.Pi, Max: math.Pi}, {Min: -math.Pi, Max: math.Pi}}
	offsets := []kinematics.Frame{
		kinematics.IdentityFrame(),
		kinematics.FrameFromPose(0.2, 0, 0, 0, 0, 0),
	}
	chain, err := kinematics.NewChain(dh, types, limits, kinematics.WithLinkOffsets(offsets))
	require.NoError(t, err)

	solver, err := NewSolver(chain, WithMaxIterations(1000))
	require.NoError(t, err)

	// Target only reachable when the 0.2 tool offset is accounted for.
	res, err := solver.Solve([]float64{0.1, 0.1}, 2.1, 0.2, 0)
	require.NoError(t, err)
	require.True(t, res.Converged, "final error %g", res.FinalError)

	require.NoError(t, chain.SetJointVariables(res.JointVariables))
	frames := chain.LinkFrames()
	x, y, _ := frames[len(frames)-1].Position()
	assert.InDelta(t, 2.1, x, 2e-3)
	assert.InDelta(t, 0.2, y, 2e-3)
}
