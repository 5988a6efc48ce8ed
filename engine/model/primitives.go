package model

import (
	"math"
)

// Cylinder builds a closed cylinder of the given radius and height, centered
// on the origin and extending along +z/-z. Joint bodies are drawn with these.
//
// Parameters:
//   - name: the mesh identifier
//   - radius: cylinder radius
//   - height: total cylinder height along z
//   - segments: radial subdivision count, minimum 3
//   - color: per-vertex RGBA color
//
// Returns:
//   - ImportedMesh: a triangle mesh with smooth side normals and flat caps
func Cylinder(name string, radius, height float32, segments int, color [4]float32) ImportedMesh {
	if segments < 3 {
		segments = 3
	}
	halfH := height / 2

	var vertices []GPUVertex
	var indices []uint32

	// Side wall, smooth radial normals. segments+1 columns so the seam
	// vertices can be shared by index.
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
		normal := [3]float32{c, s, 0}
		vertices = append(vertices,
			GPUVertex{Position: [3]float32{radius * c, radius * s, -halfH}, Normal: normal, Color: color},
			GPUVertex{Position: [3]float32{radius * c, radius * s, halfH}, Normal: normal, Color: color},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices,
			base, base+2, base+1,
			base+1, base+2, base+3,
		)
	}

	// Caps, flat normals.
	for _, end := range []struct {
		z      float32
		normal [3]float32
	}{
		{-halfH, [3]float32{0, 0, -1}},
		{halfH, [3]float32{0, 0, 1}},
	} {
		center := uint32(len(vertices))
		vertices = append(vertices, GPUVertex{Position: [3]float32{0, 0, end.z}, Normal: end.normal, Color: color})
		for i := 0; i <= segments; i++ {
			angle := 2 * math.Pi * float64(i) / float64(segments)
			c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{radius * c, radius * s, end.z},
				Normal:   end.normal,
				Color:    color,
			})
		}
		for i := 0; i < segments; i++ {
			rim := center + 1 + uint32(i)
			if end.normal[2] > 0 {
				indices = append(indices, center, rim, rim+1)
			} else {
				indices = append(indices, center, rim+1, rim)
			}
		}
	}

	return finishTriangleMesh(name, vertices, indices)
}

// Box builds an axis-aligned box centered on the origin with flat face
// normals.
//
// Parameters:
//   - name: the mesh identifier
//   - sx, sy, sz: full extents along each axis
//   - color: per-vertex RGBA color
//
// Returns:
//   - ImportedMesh: a 24-vertex, 36-index triangle mesh
func Box(name string, sx, sy, sz float32, color [4]float32) ImportedMesh {
	hx, hy, hz := sx/2, sy/2, sz/2

	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}, {hx, -hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, hy, -hz}, {-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{hx, hy, -hz}, {-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}

	var vertices []GPUVertex
	var indices []uint32
	for _, face := range faces {
		base := uint32(len(vertices))
		for _, corner := range face.corners {
			vertices = append(vertices, GPUVertex{Position: corner, Normal: face.normal, Color: color})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return finishTriangleMesh(name, vertices, indices)
}

// AxisGizmo builds a three-line frame gizmo at the origin: x red, y green,
// z blue, each of the given length. Scene code transforms one instance per
// joint frame.
//
// Parameters:
//   - name: the mesh identifier
//   - length: axis line length
//
// Returns:
//   - ImportedMesh: a 6-vertex line mesh
func AxisGizmo(name string, length float32) ImportedMesh {
	red := [4]float32{1, 0, 0, 1}
	green := [4]float32{0, 1, 0, 1}
	blue := [4]float32{0, 0.4, 1, 1}

	vertices := []GPUVertex{
		{Position: [3]float32{0, 0, 0}, Color: red},
		{Position: [3]float32{length, 0, 0}, Color: red},
		{Position: [3]float32{0, 0, 0}, Color: green},
		{Position: [3]float32{0, length, 0}, Color: green},
		{Position: [3]float32{0, 0, 0}, Color: blue},
		{Position: [3]float32{0, 0, length}, Color: blue},
	}
	indices := []uint32{0, 1, 2, 3, 4, 5}

	mesh := finishLineMesh(name, vertices, indices)
	return mesh
}

// LinkPolyline builds a line-list mesh connecting consecutive world-space
// points. Scene code regenerates it every frame from the chain's link
// positions.
//
// Parameters:
//   - name: the mesh identifier
//   - points: polyline vertices, base to tip
//   - color: per-vertex RGBA color
//
// Returns:
//   - ImportedMesh: a line mesh with len(points)-1 segments
func LinkPolyline(name string, points [][3]float32, color [4]float32) ImportedMesh {
	vertices := make([]GPUVertex, len(points))
	for i, p := range points {
		vertices[i] = GPUVertex{Position: p, Color: color}
	}

	var indices []uint32
	for i := 0; i+1 < len(points); i++ {
		indices = append(indices, uint32(i), uint32(i+1))
	}

	return finishLineMesh(name, vertices, indices)
}

// Grid builds a square ground grid of lines in the xy plane, centered on the
// origin.
//
// Parameters:
//   - name: the mesh identifier
//   - halfExtent: distance from the center to each edge
//   - step: spacing between grid lines
//   - color: per-vertex RGBA color
//
// Returns:
//   - ImportedMesh: a line mesh covering [-halfExtent, halfExtent] both ways
func Grid(name string, halfExtent, step float32, color [4]float32) ImportedMesh {
	var vertices []GPUVertex
	var indices []uint32

	addLine := func(a, b [3]float32) {
		base := uint32(len(vertices))
		vertices = append(vertices,
			GPUVertex{Position: a, Color: color},
			GPUVertex{Position: b, Color: color},
		)
		indices = append(indices, base, base+1)
	}

	for x := -halfExtent; x <= halfExtent+step/2; x += step {
		addLine([3]float32{x, -halfExtent, 0}, [3]float32{x, halfExtent, 0})
	}
	for y := -halfExtent; y <= halfExtent+step/2; y += step {
		addLine([3]float32{-halfExtent, y, 0}, [3]float32{halfExtent, y, 0})
	}

	return finishLineMesh(name, vertices, indices)
}

func finishTriangleMesh(name string, vertices []GPUVertex, indices []uint32) ImportedMesh {
	mesh := ImportedMesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Topology: TopologyTriangles,
	}
	mesh.BoundingMin, mesh.BoundingMax = boundingBox(vertices)
	return mesh
}

func finishLineMesh(name string, vertices []GPUVertex, indices []uint32) ImportedMesh {
	mesh := ImportedMesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Topology: TopologyLines,
	}
	mesh.BoundingMin, mesh.BoundingMax = boundingBox(vertices)
	return mesh
}

func boundingBox(vertices []GPUVertex) (bmin, bmax [3]float32) {
	if len(vertices) == 0 {
		return
	}
	bmin, bmax = vertices[0].Position, vertices[0].Position
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < bmin[i] {
				bmin[i] = v.Position[i]
			}
			if v.Position[i] > bmax[i] {
				bmax[i] = v.Position[i]
			}
		}
	}
	return
}
