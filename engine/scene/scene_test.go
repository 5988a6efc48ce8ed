package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robokit/armviz/engine/kinematics"
	"github.com/robokit/armviz/engine/model"
	"github.com/robokit/armviz/engine/scene_object"
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

func headlessScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s, err := NewScene(planarTwoLink(t), options...)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	return s
}

func objectByName(s Scene, name string) scene_object.SceneObject {
	rs := s.(*robotScene)
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	for _, obj := range rs.objects {
		if obj.Name() == name {
			return obj
		}
	}
	return nil
}

func TestNewSceneBuildsChainObjects(t *testing.T) {
	s := headlessScene(t)

	rs := s.(*robotScene)
	// Two joint bodies, three frame gizmos, the polyline, and the grid.
	assert.Len(t, rs.objects, 7)
	assert.Len(t, rs.gizmos, 3)
	assert.NotNil(t, objectByName(s, "joint_1"))
	assert.NotNil(t, objectByName(s, "joint_2"))
	assert.NotNil(t, objectByName(s, "link_polyline"))
	assert.NotNil(t, objectByName(s, "ground_grid"))
}

func TestNewSceneRequiresChain(t *testing.T) {
	_, err := NewScene(nil)
	assert.Error(t, err)
}

func TestInitializeTwiceFails(t *testing.T) {
	s := headlessScene(t)
	assert.Error(t, s.Initialize())
}

func TestUpdateAppliesPostedJointTargets(t *testing.T) {
	s := headlessScene(t)

	s.PostJointTargets([]float64{math.Pi / 2, 0})
	require.NoError(t, s.Update(0.016))

	assert.InDeltaSlice(t, []float64{math.Pi / 2, 0}, s.Chain().JointVariables(), 1e-12)

	// With joint 1 at +90 degrees both links point along +y; the tip body
	// follows frame 2.
	tip := objectByName(s, "joint_2")
	require.NotNil(t, tip)
	transform := tip.Transform()
	assert.InDelta(t, 0, transform[12], 1e-6)
	assert.InDelta(t, 2, transform[13], 1e-6)
	assert.InDelta(t, 0, transform[14], 1e-6)
}

func TestUpdateRejectsWrongLengthTarget(t *testing.T) {
	s := headlessScene(t)
	before := s.Chain().JointVariables()

	s.PostJointTargets([]float64{1, 2, 3})
	err := s.Update(0.016)

	var dimErr *kinematics.DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, before, s.Chain().JointVariables())
}

func TestLatestTargetWins(t *testing.T) {
	s := headlessScene(t)

	s.PostJointTargets([]float64{0.1, 0.1})
	s.PostJointTargets([]float64{0.7, -0.2})
	require.NoError(t, s.Update(0.016))

	assert.InDeltaSlice(t, []float64{0.7, -0.2}, s.Chain().JointVariables(), 1e-12)
}

func TestGizmoToggleDisablesTriads(t *testing.T) {
	s := headlessScene(t)
	require.True(t, s.FrameGizmosShown())

	s.ShowFrameGizmos(false)
	require.NoError(t, s.Update(0.016))

	rs := s.(*robotScene)
	for _, gizmo := range rs.gizmos {
		assert.False(t, gizmo.Enabled())
	}

	s.ShowFrameGizmos(true)
	require.NoError(t, s.Update(0.016))
	for _, gizmo := range rs.gizmos {
		assert.True(t, gizmo.Enabled())
	}
}

func TestGridToggle(t *testing.T) {
	s := headlessScene(t)

	s.ShowGrid(false)
	require.NoError(t, s.Update(0.016))
	assert.False(t, objectByName(s, "ground_grid").Enabled())
}

func TestGizmosFollowFrames(t *testing.T) {
	s := headlessScene(t)

	s.PostJointTargets([]float64{math.Pi / 2, 0})
	require.NoError(t, s.Update(0.016))

	rs := s.(*robotScene)
	frames := s.Chain().LinkFrames()
	for i, gizmo := range rs.gizmos {
		assert.Equal(t, frames[i].Mat32(), gizmo.Transform())
	}
}

func TestPolylineTracksLinkOrigins(t *testing.T) {
	s := headlessScene(t)

	s.PostJointTargets([]float64{math.Pi / 2, -math.Pi / 2})
	require.NoError(t, s.Update(0.016))

	poly := objectByName(s, "link_polyline")
	require.NotNil(t, poly)
	assert.True(t, poly.Model().Dynamic())

	rs := s.(*robotScene)
	data := rs.refreshPolylineData(s.Chain().LinkFrames())
	// Three points, 40 bytes each.
	assert.Len(t, data, 120)
}

func TestWithLinkMeshReplacesJointBody(t *testing.T) {
	custom := model.NewModel(
		model.WithName("gripper"),
		model.WithTopology(model.TopologyTriangles),
	)
	s := headlessScene(t, WithLinkMesh(2, custom))

	assert.Nil(t, objectByName(s, "joint_2"))
	obj := objectByName(s, "gripper")
	require.NotNil(t, obj)
	assert.Equal(t, 2, obj.FrameIndex())
	// Fallback material assignment still applies.
	require.NotNil(t, custom.RenderMaterial())
	assert.Equal(t, PipelineKeyLit, custom.RenderMaterial().PipelineKey())
}

func TestSolveToPostsConvergedTarget(t *testing.T) {
	s := headlessScene(t)

	res, err := s.SolveTo(1.2, 0.8, 0)
	require.NoError(t, err)
	assert.True(t, res.Converged)

	require.NoError(t, s.Update(0.016))
	frames := s.Chain().LinkFrames()
	x, y, _ := frames[len(frames)-1].Position()
	assert.InDelta(t, 1.2, x, 5e-3)
	assert.InDelta(t, 0.8, y, 5e-3)
}

func TestSolveToUnreachableTarget(t *testing.T) {
	s := headlessScene(t)
	before := s.Chain().JointVariables()

	_, err := s.SolveTo(10, 0, 0)
	require.Error(t, err)

	// Nothing posted; the chain keeps its pose on the next tick.
	require.NoError(t, s.Update(0.016))
	assert.Equal(t, before, s.Chain().JointVariables())
}

func TestRenderHeadlessFails(t *testing.T) {
	s := headlessScene(t)
	assert.Error(t, s.Render())
}

func TestAddObjectAssignsIDs(t *testing.T) {
	s := headlessScene(t)

	mdl := model.NewModel(model.WithName("marker"))
	obj := scene_object.NewSceneObject("marker", scene_object.WithModel(mdl))
	id, err := s.AddObject(obj)
	require.NoError(t, err)
	assert.Equal(t, obj, s.Object(id))

	s.RemoveObject(id)
	assert.Nil(t, s.Object(id))
}

func TestAddObjectRequiresModel(t *testing.T) {
	s := headlessScene(t)

	_, err := s.AddObject(scene_object.NewSceneObject("empty"))
	assert.Error(t, err)
	_, err = s.AddObject(nil)
	assert.Error(t, err)
}
