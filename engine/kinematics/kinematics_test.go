package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// sixDOFTable is a representative articulated-arm DH table used by tests that
// only need a valid 6-joint chain.
func sixDOFTable() ([]DHParameter, []JointType, []Limit) {
	dh := []DHParameter{
		{A: 0, Alpha: math.Pi / 2, D: 0.29, Theta: 0},
		{A: 0.27, Alpha: 0, D: 0, Theta: -math.Pi / 2},
		{A: 0.07, Alpha: math.Pi / 2, D: 0, Theta: 0},
		{A: 0, Alpha: -math.Pi / 2, D: 0.302, Theta: 0},
		{A: 0, Alpha: math.Pi / 2, D: 0, Theta: 0},
		{A: 0, Alpha: 0, D: 0.072, Theta: 0},
	}
	types := make([]JointType, 6)
	limits := make([]Limit, 6)
	for i := range limits {
		limits[i] = Limit{Min: -math.Pi, Max: math.Pi}
	}
	return dh, types, limits
}

func planarTwoLink() Chain {
	dh := []DHParameter{
		{A: 1},
		{A: 1},
	}
	c, err := NewChain(dh, []JointType{JointRevolute, JointRevolute}, []Limit{{-math.Pi, math.Pi}, {-math.Pi, math.Pi}})
	if err != nil {
		panic(err)
	}
	return c
}

func TestNewChainValidation(t *testing.T) {
	dh, types, limits := sixDOFTable()

	tests := []struct {
		name   string
		dh     []DHParameter
		types  []JointType
		limits []Limit
	}{
		{"empty table", nil, nil, nil},
		{"short joint types", dh, types[:5], limits},
		{"long joint types", dh, append(append([]JointType(nil), types...), JointRevolute), limits},
		{"short limits", dh, types, limits[:4]},
		{"inverted limit", dh, types, func() []Limit {
			bad := append([]Limit(nil), limits...)
			bad[3] = Limit{Min: 1, Max: -1}
			return bad
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChain(tt.dh, tt.types, tt.limits)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestNewChainInvertedLimitReportsJoint(t *testing.T) {
	dh, types, limits := sixDOFTable()
	limits[2] = Limit{Min: 0.5, Max: -0.5}

	_, err := NewChain(dh, types, limits)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 2, cfgErr.Joint)
}

func TestNewChainOffsetLengthValidated(t *testing.T) {
	dh, types, limits := sixDOFTable()
	_, err := NewChain(dh, types, limits, WithLinkOffsets([]Frame{IdentityFrame()}))
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestChainInitializesVariablesFromRestValues(t *testing.T) {
	dh, types, limits := sixDOFTable()
	types[3] = JointPrismatic

	c, err := NewChain(dh, types, limits)
	require.NoError(t, err)

	vars := c.JointVariables()
	// Revolute joints pick up the table theta, prismatic joints the table d.
	assert.Equal(t, dh[1].Theta, vars[1])
	assert.Equal(t, dh[3].D, vars[3])
}

func TestSetJointVariablesDimensionError(t *testing.T) {
	dh, types, limits := sixDOFTable()
	c, err := NewChain(dh, types, limits)
	require.NoError(t, err)

	for _, n := range []int{5, 7, 0} {
		err := c.SetJointVariables(make([]float64, n))
		var dimErr *DimensionError
		require.ErrorAs(t, err, &dimErr, "length %d", n)
		assert.Equal(t, 6, dimErr.Expected)
		assert.Equal(t, n, dimErr.Actual)
	}

	// A failed update must leave the chain untouched.
	assert.Equal(t, uint64(0), c.Version())
}

func TestSetJointVariablesIsAtomic(t *testing.T) {
	dh, types, limits := sixDOFTable()
	c, err := NewChain(dh, types, limits)
	require.NoError(t, err)

	want := []float64{0.1, -0.2, 0.3, -0.4, 0.5, -0.6}
	require.NoError(t, c.SetJointVariables(want))
	assert.Equal(t, want, c.JointVariables())
	assert.Equal(t, uint64(1), c.Version())

	// Mutating the caller's slice afterwards must not leak into the chain.
	want[0] = 99
	assert.Equal(t, 0.1, c.JointVariables()[0])
}

func TestForwardKinematicsFrameCountAndRigidity(t *testing.T) {
	dh, types, limits := sixDOFTable()
	c, err := NewChain(dh, types, limits)
	require.NoError(t, err)

	frames := c.ForwardKinematics()
	require.Len(t, frames, 7)

	for i, f := range frames {
		// Rotation part must be orthonormal with determinant +1.
		assert.InDelta(t, 1.0, f.RotationDeterminant(), tol, "frame %d determinant", i)

		x, y, z := f.Axes()
		assert.InDelta(t, 1.0, norm3(x), tol, "frame %d |x|", i)
		assert.InDelta(t, 1.0, norm3(y), tol, "frame %d |y|", i)
		assert.InDelta(t, 1.0, norm3(z), tol, "frame %d |z|", i)
		assert.InDelta(t, 0.0, dot3(x, y), tol, "frame %d x.y", i)
		assert.InDelta(t, 0.0, dot3(y, z), tol, "frame %d y.z", i)
	}
}

func TestForwardKinematicsIdempotent(t *testing.T) {
	dh, types, limits := sixDOFTable()
	c, err := NewChain(dh, types, limits)
	require.NoError(t, err)
	require.NoError(t, c.SetJointVariables([]float64{0.3, -1.1, 0.7, 0.2, -0.5, 1.4}))

	first := c.ForwardKinematics()
	second := c.ForwardKinematics()

	// Bit-identical, not merely close: no intervening update happened.
	assert.Equal(t, first, second)
}

func TestForwardKinematicsSingleJointRotation(t *testing.T) {
	// All DH parameters zero except joint 0 theta = 90 deg: the end-effector
	// rotation must be exactly a 90 deg rotation about the base z-axis.
	dh := []DHParameter{{}, {}}
	types := []JointType{JointRevolute, JointRevolute}
	limits := []Limit{{-math.Pi, math.Pi}, {-math.Pi, math.Pi}}

	c, err := NewChain(dh, types, limits)
	require.NoError(t, err)
	require.NoError(t, c.SetJointVariables([]float64{math.Pi / 2, 0}))

	frames := c.ForwardKinematics()
	got := frames[len(frames)-1].Rotation()

	// Rz(90 deg), column-major.
	want := [9]float64{
		0, 1, 0,
		-1, 0, 0,
		0, 0, 1,
	}
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "rotation element %d", i)
	}
}

func TestPlanarTwoLinkScenarios(t *testing.T) {
	tests := []struct {
		name    string
		thetas  []float64
		wantPos [3]float64
	}{
		{"stretched along x", []float64{0, 0}, [3]float64{2, 0, 0}},
		{"first joint up", []float64{math.Pi / 2, 0}, [3]float64{0, 2, 0}},
		{"elbow bent", []float64{math.Pi / 2, -math.Pi / 2}, [3]float64{1, 1, 0}},
		{"folded back", []float64{0, math.Pi}, [3]float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := planarTwoLink()
			require.NoError(t, c.SetJointVariables(tt.thetas))

			frames := c.ForwardKinematics()
			x, y, z := frames[len(frames)-1].Position()
			assert.InDelta(t, tt.wantPos[0], x, tol)
			assert.InDelta(t, tt.wantPos[1], y, tol)
			assert.InDelta(t, tt.wantPos[2], z, tol)
		})
	}
}

func TestPrismaticJointVariesOffset(t *testing.T) {
	dh := []DHParameter{{D: 0.5}}
	c, err := NewChain(dh, []JointType{JointPrismatic}, []Limit{{0, 2}})
	require.NoError(t, err)

	_, _, z := c.ForwardKinematics()[1].Position()
	assert.InDelta(t, 0.5, z, tol)

	require.NoError(t, c.SetJointVariables([]float64{1.25}))
	_, _, z = c.ForwardKinematics()[1].Position()
	assert.InDelta(t, 1.25, z, tol)
}

func TestBaseFrameComposition(t *testing.T) {
	base := FrameFromPose(0, 0, 1, 0, 0, math.Pi/2)
	dh := []DHParameter{{A: 1}}
	c, err := NewChain(dh, []JointType{JointRevolute}, []Limit{{-math.Pi, math.Pi}},
		WithBaseFrame(base),
	)
	require.NoError(t, err)

	frames := c.ForwardKinematics()
	require.Len(t, frames, 2)
	assert.Equal(t, base, frames[0])

	// The one-unit x reach is rotated into +y by the base yaw and lifted by
	// the base translation.
	x, y, z := frames[1].Position()
	assert.InDelta(t, 0, x, tol)
	assert.InDelta(t, 1, y, tol)
	assert.InDelta(t, 1, z, tol)
}

func TestLinkFramesApplyOffsets(t *testing.T) {
	dh := []DHParameter{{A: 1}, {A: 1}}
	types := []JointType{JointRevolute, JointRevolute}
	limits := []Limit{{-math.Pi, math.Pi}, {-math.Pi, math.Pi}}

	offsets := []Frame{
		IdentityFrame(),
		FrameFromPose(0, 0, 0.1, 0, 0, 0),
	}
	c, err := NewChain(dh, types, limits, WithLinkOffsets(offsets))
	require.NoError(t, err)

	dhFrames := c.ForwardKinematics()
	actual := c.LinkFrames()
	require.Len(t, actual, 3)

	assert.Equal(t, dhFrames[0], actual[0])
	assert.Equal(t, dhFrames[1], actual[1])

	wantTip := dhFrames[2].Mul(offsets[1])
	assert.Equal(t, wantTip, actual[2])
}

func TestForwardKinematicsDeterministic(t *testing.T) {
	dh, types, limits := sixDOFTable()
	vars := []float64{0.11, 0.22, -0.33, 0.44, -0.55, 0.66}

	c1, err := NewChain(dh, types, limits)
	require.NoError(t, err)
	require.NoError(t, c1.SetJointVariables(vars))

	c2, err := NewChain(dh, types, limits)
	require.NoError(t, err)
	require.NoError(t, c2.SetJointVariables(vars))

	f1 := c1.ForwardKinematics()
	f2 := c2.ForwardKinematics()
	for i := range f1 {
		for j := range f1[i] {
			assert.InDelta(t, f1[i][j], f2[i][j], tol)
		}
	}
}

func norm3(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
