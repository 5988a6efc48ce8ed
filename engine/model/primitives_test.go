package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCylinder(t *testing.T) {
	white := [4]float32{1, 1, 1, 1}
	mesh := Cylinder("joint", 0.5, 2, 16, white)

	assert.Equal(t, "joint", mesh.Name)
	assert.Equal(t, TopologyTriangles, mesh.Topology)
	assert.Equal(t, len(mesh.Indices)%3, 0)

	for _, idx := range mesh.Indices {
		require.Less(t, int(idx), len(mesh.Vertices))
	}

	// Every vertex lies on the surface of the cylinder.
	for i, v := range mesh.Vertices {
		r := math.Sqrt(float64(v.Position[0]*v.Position[0] + v.Position[1]*v.Position[1]))
		onWall := math.Abs(r-0.5) < 1e-6
		onAxisOrCap := r < 0.5+1e-6 && math.Abs(float64(v.Position[2])) == 1
		assert.True(t, onWall || onAxisOrCap, "vertex %d at radius %f z %f", i, r, v.Position[2])
		assert.Equal(t, white, v.Color)
	}

	assert.InDelta(t, -1, float64(mesh.BoundingMin[2]), 1e-6)
	assert.InDelta(t, 1, float64(mesh.BoundingMax[2]), 1e-6)
}

func TestCylinderClampsSegments(t *testing.T) {
	mesh := Cylinder("tiny", 1, 1, 0, [4]float32{1, 0, 0, 1})
	assert.NotEmpty(t, mesh.Vertices)
	assert.NotEmpty(t, mesh.Indices)
}

func TestBox(t *testing.T) {
	mesh := Box("link", 2, 4, 6, [4]float32{0.5, 0.5, 0.5, 1})

	assert.Len(t, mesh.Vertices, 24)
	assert.Len(t, mesh.Indices, 36)
	assert.Equal(t, [3]float32{-1, -2, -3}, mesh.BoundingMin)
	assert.Equal(t, [3]float32{1, 2, 3}, mesh.BoundingMax)

	// Face normals are unit axis vectors.
	for _, v := range mesh.Vertices {
		n := v.Normal
		lenSq := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		assert.InDelta(t, 1, float64(lenSq), 1e-6)
	}
}

func TestAxisGizmo(t *testing.T) {
	mesh := AxisGizmo("frame", 0.25)

	assert.Equal(t, TopologyLines, mesh.Topology)
	require.Len(t, mesh.Vertices, 6)
	require.Len(t, mesh.Indices, 6)

	assert.Equal(t, [3]float32{0.25, 0, 0}, mesh.Vertices[1].Position)
	assert.Equal(t, [3]float32{0, 0.25, 0}, mesh.Vertices[3].Position)
	assert.Equal(t, [3]float32{0, 0, 0.25}, mesh.Vertices[5].Position)

	// Axis colors stay distinguishable.
	assert.NotEqual(t, mesh.Vertices[0].Color, mesh.Vertices[2].Color)
	assert.NotEqual(t, mesh.Vertices[2].Color, mesh.Vertices[4].Color)
}

func TestLinkPolyline(t *testing.T) {
	points := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}
	mesh := LinkPolyline("links", points, [4]float32{1, 1, 0, 1})

	assert.Equal(t, TopologyLines, mesh.Topology)
	assert.Len(t, mesh.Vertices, 4)
	// Three segments, two indices each.
	assert.Equal(t, []uint32{0, 1, 1, 2, 2, 3}, mesh.Indices)
}

func TestLinkPolylineDegenerate(t *testing.T) {
	mesh := LinkPolyline("single", [][3]float32{{1, 2, 3}}, [4]float32{1, 1, 1, 1})
	assert.Len(t, mesh.Vertices, 1)
	assert.Empty(t, mesh.Indices)
}

func TestGrid(t *testing.T) {
	mesh := Grid("floor", 1, 0.5, [4]float32{0.3, 0.3, 0.3, 1})

	assert.Equal(t, TopologyLines, mesh.Topology)
	// 5 lines per direction for halfExtent 1, step 0.5.
	assert.Len(t, mesh.Indices, 2*2*5)
	assert.Equal(t, [3]float32{-1, -1, 0}, mesh.BoundingMin)
}

func TestMarshalVertices(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 0, 1}, Color: [4]float32{1, 0, 0, 1}},
		{Position: [3]float32{4, 5, 6}, Normal: [3]float32{0, 1, 0}, Color: [4]float32{0, 1, 0, 1}},
	}
	buf := MarshalVertices(vertices)
	require.Len(t, buf, 80)
	assert.Equal(t, vertices[0].Marshal(), buf[:40])
	assert.Equal(t, vertices[1].Marshal(), buf[40:])
}

func TestComputeBoundingRadius(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{3, 4, 0}},
		{Position: [3]float32{1, 1, 1}},
	}
	assert.InDelta(t, 5.0, float64(ComputeBoundingRadius(vertices)), 1e-6)
	assert.Zero(t, ComputeBoundingRadius(nil))
}
