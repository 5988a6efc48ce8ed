package model

import (
	"github.com/robokit/armviz/engine/renderer/bind_group_provider"
	"github.com/robokit/armviz/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithTopology is an option builder that sets how the Model's indices are
// interpreted at draw time.
//
// Parameters:
//   - topology: triangles or lines
//
// Returns:
//   - ModelBuilderOption: a function that applies the topology option to a model
func WithTopology(topology Topology) ModelBuilderOption {
	return func(m *model) {
		m.topology = topology
	}
}

// WithDynamic is an option builder that marks the Model's vertex buffer as
// rewritten per frame.
//
// Parameters:
//   - dynamic: true if the vertex buffer is updated every frame
//
// Returns:
//   - ModelBuilderOption: a function that applies the dynamic option to a model
func WithDynamic(dynamic bool) ModelBuilderOption {
	return func(m *model) {
		m.dynamic = dynamic
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers and bind group data
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithBoundingRadius is an option builder that manually sets the bounding sphere radius.
// Use this to override the auto-computed value from ComputeBoundingRadius when a manually
// tuned conservative bound is preferred.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

// WithRenderMaterial is an option builder that sets the render-ready material for the Model.
//
// Parameters:
//   - mat: the render-ready material to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the render material option to a model
func WithRenderMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.renderMaterial = mat
	}
}

// WithVertexData is an option builder that sets the raw vertex data for this model's mesh.
//
// Parameters:
//   - data: the vertex data to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex data option to a model
func WithVertexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = data
	}
}

// WithIndexData is an option builder that sets the raw index data for this model's mesh.
//
// Parameters:
//   - data: the index data to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the index data option to a model
func WithIndexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.indexData = data
	}
}

// WithIndexCount is an option builder that sets the number of indices in the model's mesh.
//
// Parameters:
//   - count: the index count to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the index count option to a model
func WithIndexCount(count int) ModelBuilderOption {
	return func(m *model) {
		m.indexCount = count
	}
}
