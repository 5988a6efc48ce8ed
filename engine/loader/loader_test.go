package loader

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/robokit/armviz/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binarySTLFixture encodes a single right triangle in the xy plane as a
// binary STL stream.
func binarySTLFixture(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.Write(make([]byte, 80))

	var count [4]byte
	binary.LittleEndian.PutUint32(count[:], 1)
	buf.Write(count[:])

	writeF32 := func(v float32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}

	// normal
	writeF32(0)
	writeF32(0)
	writeF32(1)
	// vertices
	for _, v := range [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
		writeF32(v[0])
		writeF32(v[1])
		writeF32(v[2])
	}
	buf.Write([]byte{0, 0})

	return buf.Bytes()
}

const asciiSTLFixture = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`

const objFixture = `# unit quad in the xy plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

func TestLoadReaderBinarySTL(t *testing.T) {
	l := NewLoader()

	m, err := l.LoadReader("tri", bytes.NewReader(binarySTLFixture(t)), BackendTypeSTL)
	require.NoError(t, err)

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, model.TopologyTriangles, m.Topology())
	assert.Equal(t, 3, m.IndexCount())
	assert.Len(t, m.VertexData(), 3*40)
	assert.Len(t, m.IndexData(), 3*4)
}

func TestLoadReaderASCIISTL(t *testing.T) {
	l := NewLoader()

	m, err := l.LoadReader("tri", strings.NewReader(asciiSTLFixture), BackendTypeSTL)
	require.NoError(t, err)

	assert.Equal(t, 3, m.IndexCount())
	assert.Len(t, m.VertexData(), 3*40)
}

func TestSTLZeroNormalRecovered(t *testing.T) {
	fixture := strings.ReplaceAll(asciiSTLFixture, "facet normal 0 0 1", "facet normal 0 0 0")

	backend := newSTLLoaderBackend()
	imported, err := backend.LoadReader(strings.NewReader(fixture), "tri")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	// CCW winding in the xy plane faces +z.
	for _, v := range imported.Meshes[0].Vertices {
		assert.InDelta(t, 0.0, v.Normal[0], 1e-6)
		assert.InDelta(t, 0.0, v.Normal[1], 1e-6)
		assert.InDelta(t, 1.0, v.Normal[2], 1e-6)
	}
}

func TestLoadReaderOBJTriangulatesQuad(t *testing.T) {
	l := NewLoader()

	m, err := l.LoadReader("quad", strings.NewReader(objFixture), BackendTypeOBJ)
	require.NoError(t, err)

	// A quad fan-triangulates into two triangles.
	assert.Equal(t, 6, m.IndexCount())
	assert.InDelta(t, math.Sqrt2, float64(m.BoundingRadius()), 1e-6)
}

func TestOBJNegativeIndices(t *testing.T) {
	fixture := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	backend := newOBJLoaderBackend()
	imported, err := backend.LoadReader(strings.NewReader(fixture), "tri")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	mesh := imported.Meshes[0]
	assert.Len(t, mesh.Indices, 3)
	assert.Equal(t, [3]float32{0, 0, 0}, mesh.Vertices[0].Position)
	assert.Equal(t, [3]float32{1, 0, 0}, mesh.Vertices[1].Position)
	// No vn lines, so the flat face normal is computed.
	assert.Equal(t, [3]float32{0, 0, 1}, mesh.Vertices[0].Normal)
}

func TestOBJBadFaceIndex(t *testing.T) {
	fixture := `v 0 0 0
f 1 2 3
`
	backend := newOBJLoaderBackend()
	_, err := backend.LoadReader(strings.NewReader(fixture), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoadReaderCaches(t *testing.T) {
	l := NewLoader()

	first, err := l.LoadReader("tri", strings.NewReader(asciiSTLFixture), BackendTypeSTL)
	require.NoError(t, err)

	// Second load by the same key returns the cached model without reading.
	second, err := l.LoadReader("tri", strings.NewReader("garbage"), BackendTypeSTL)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Same(t, first, l.Get("tri"))
	assert.Nil(t, l.Get("missing"))
	assert.Len(t, l.Models(), 1)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	l := NewLoader()

	_, err := l.Load("arm.gltf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported mesh format")
}
