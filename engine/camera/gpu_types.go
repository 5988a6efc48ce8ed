package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the camera uniform buffer bound at group 0 by every arm
// pipeline. The layout mirrors the CameraUniform struct in the WGSL sources:
// 80 bytes, with the camera position padded out to a 16-byte boundary.
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset  0: combined view-projection matrix
	CameraPosition [3]float32  // offset 64: world-space position for headlight shading
	_pad           float32     // offset 76
}

// Size returns the uniform's byte size.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform for GPU upload, little-endian.
//
// Returns:
//   - []byte: the serialized buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], 0)
	return buf
}
