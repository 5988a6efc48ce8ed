package model

// Topology selects how a mesh's indices are interpreted at draw time.
type Topology int

const (
	// TopologyTriangles draws indexed triangle lists (solid link meshes).
	TopologyTriangles Topology = iota

	// TopologyLines draws indexed line lists (frame gizmos, wire links).
	TopologyLines
)

// ImportedModel represents mesh data loaded from an external format.
// This is the universal in-memory format that file backends (STL, OBJ) and
// procedural primitives produce before GPU upload.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains all mesh data (a file may hold multiple groups).
	Meshes []ImportedMesh
}

// ImportedMesh represents a single mesh within an imported model.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the mesh vertices.
	Vertices []GPUVertex

	// Indices index into Vertices, interpreted per Topology.
	Indices []uint32

	// Topology is the primitive topology for Indices.
	Topology Topology

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}
