package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityFrame(t *testing.T) {
	id := IdentityFrame()

	x, y, z := id.Position()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Zero(t, z)
	assert.InDelta(t, 1.0, id.RotationDeterminant(), tol)

	other := FrameFromPose(0.3, -0.7, 1.2, 0.1, 0.2, 0.3)
	assert.Equal(t, other, id.Mul(other))
}

func TestFrameFromPoseTranslationOnly(t *testing.T) {
	f := FrameFromPose(1, 2, 3, 0, 0, 0)
	x, y, z := f.Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)
	assert.Equal(t, 3.0, z)
	assert.Equal(t, IdentityFrame().Rotation(), f.Rotation())
}

func TestFrameFromPoseYaw(t *testing.T) {
	f := FrameFromPose(0, 0, 0, 0, 0, math.Pi/2)
	xAxis, yAxis, _ := f.Axes()

	assert.InDelta(t, 0, xAxis[0], tol)
	assert.InDelta(t, 1, xAxis[1], tol)
	assert.InDelta(t, -1, yAxis[0], tol)
	assert.InDelta(t, 0, yAxis[1], tol)
}

func TestFrameMulComposesTranslations(t *testing.T) {
	a := FrameFromPose(1, 0, 0, 0, 0, 0)
	b := FrameFromPose(0, 2, 0, 0, 0, 0)

	x, y, z := a.Mul(b).Position()
	assert.InDelta(t, 1, x, tol)
	assert.InDelta(t, 2, y, tol)
	assert.InDelta(t, 0, z, tol)
}

func TestFrameMulAssociative(t *testing.T) {
	a := FrameFromPose(1, 2, 3, 0.1, 0.2, 0.3)
	b := FrameFromPose(-0.5, 0.4, 0.9, -0.2, 0.6, 0)
	c := FrameFromPose(0, 0, 1, 0, 0, math.Pi/4)

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	for i := range left {
		assert.InDelta(t, left[i], right[i], tol, "element %d", i)
	}
}

func TestFrameMat32(t *testing.T) {
	f := FrameFromPose(1, 2, 3, 0, 0, math.Pi/2)
	m := f.Mat32()
	for i := range f {
		assert.InDelta(t, f[i], float64(m[i]), 1e-6, "element %d", i)
	}
}

func TestDHTransformPureRotation(t *testing.T) {
	f := dhTransform(0, 0, 0, math.Pi/2)
	xAxis, _, _ := f.Axes()
	assert.InDelta(t, 0, xAxis[0], tol)
	assert.InDelta(t, 1, xAxis[1], tol)
}

func TestDHTransformTwist(t *testing.T) {
	// A 90 deg alpha twist maps the joint z-axis onto the parent y-axis.
	f := dhTransform(0, math.Pi/2, 0, 0)
	_, _, zAxis := f.Axes()
	assert.InDelta(t, 0, zAxis[0], tol)
	assert.InDelta(t, 1, zAxis[1], tol)
	assert.InDelta(t, 0, zAxis[2], tol)
}
