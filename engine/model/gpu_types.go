package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (40 bytes, std430 aligned).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 40 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	Color    [4]float32 // offset 24: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 40-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 40)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[3]))
	return buf
}

// MarshalVertices serializes a vertex slice into a contiguous byte buffer
// suitable for GPU upload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices)*40 bytes ready for GPU upload.
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*40)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices serializes a uint32 index slice into a little-endian byte
// buffer suitable for GPU upload.
//
// Parameters:
//   - indices: the triangle or line indices to serialize
//
// Returns:
//   - []byte: len(indices)*4 bytes ready for GPU upload.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], idx)
	}
	return buf
}

// ComputeBoundingRadius calculates the bounding sphere radius from a slice of
// GPUVertex positions. The radius is the maximum distance from the origin
// across all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// GPUModelDataSource is the canonical WGSL definition of the ModelData struct for per-link model matrices.
// Matches GPUModelData layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the GPU-aligned representation of a single model-to-world matrix.
// Matches the WGSL ModelData struct layout exactly (see GPUModelDataSource).
// Size: 64 bytes (mat4x4<f32> = 16 × float32, std430 aligned, no padding required).
type GPUModelData struct {
	Model [16]float32 // offset 0: 4×4 model-to-world transform matrix (64 bytes)
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}
