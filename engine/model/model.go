package model

import (
	"github.com/robokit/armviz/engine/renderer/bind_group_provider"
	"github.com/robokit/armviz/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	topology              Topology
	dynamic               bool
	renderMaterial        material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a renderable mesh.
// A Model is a GPU-ready container holding mesh buffers via a
// BindGroupProvider plus the material used to draw them. It is produced by the
// Loader after importing a mesh file or building a procedural primitive.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Topology reports how the model's indices are interpreted at draw time.
	//
	// Returns:
	//   - Topology: triangles or lines
	Topology() Topology

	// Dynamic reports whether the model's vertex data is rewritten per frame
	// (frame gizmos tracking a moving chain) rather than uploaded once.
	//
	// Returns:
	//   - bool: true if the vertex buffer is updated every frame
	Dynamic() bool

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// RenderMaterial retrieves the render-ready material for this model.
	//
	// Returns:
	//   - material.Material: the material used during DrawCalls
	RenderMaterial() material.Material

	// SetRenderMaterial replaces the render-ready material for this model.
	//
	// Parameters:
	//   - mat: the render-ready material to set
	SetRenderMaterial(mat material.Material)

	// BoundingRadius returns the bounding sphere radius for this model,
	// measured as the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// SetVertexData sets the raw vertex data for this model's mesh.
	//
	// Parameters:
	//   - data: the vertex data to set
	SetVertexData(data []byte)

	// SetIndexData sets the raw index data for this model's mesh.
	//
	// Parameters:
	//   - data: the index data to set
	SetIndexData(data []byte)

	// SetIndexCount sets the number of indices in the model's mesh.
	//
	// Parameters:
	//   - count: the index count to set
	SetIndexCount(count int)
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Topology() Topology {
	return m.topology
}

func (m *model) Dynamic() bool {
	return m.dynamic
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) SetVertexData(data []byte) {
	m.vertexData = data
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) SetIndexData(data []byte) {
	m.indexData = data
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) SetIndexCount(count int) {
	m.indexCount = count
}

func (m *model) RenderMaterial() material.Material {
	return m.renderMaterial
}

func (m *model) SetRenderMaterial(mat material.Material) {
	m.renderMaterial = mat
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
