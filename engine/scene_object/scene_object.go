package scene_object

import (
	"sync"
	"sync/atomic"

	"github.com/robokit/armviz/engine/model"
	"github.com/robokit/armviz/engine/renderer/bind_group_provider"
)

// StaticFrame marks an object whose transform is not driven by the kinematic
// chain (the ground grid, for example).
const StaticFrame = -1

var identity = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

type sceneObject struct {
	mu sync.RWMutex

	id      uint64
	name    string
	enabled atomic.Bool

	mdl model.Model

	// frameIndex selects which kinematic frame drives this object's world
	// transform each tick. Index 0 is the base frame; StaticFrame means the
	// transform is set once and left alone.
	frameIndex int

	// transform is the object's world matrix in column-major order.
	transform [16]float32

	// modelProvider holds the per-object model uniform buffer and bind group.
	modelProvider bind_group_provider.BindGroupProvider
}

// SceneObject defines the interface for a renderable entity in the robot scene.
// Link meshes, joint frame gizmos, and the ground grid are all SceneObjects;
// the scene drives each object's world transform from the kinematic chain via
// its frame index.
type SceneObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's debug name.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// FrameIndex returns the kinematic frame index driving this object's
	// transform, or StaticFrame when the object is not chain-driven.
	//
	// Returns:
	//   - int: the frame index
	FrameIndex() int

	// Transform returns the object's current world matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the world matrix
	Transform() [16]float32

	// BindGroupProvider returns the object's model uniform provider, or nil
	// if GPU resources have not been initialized.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetTransform sets the object's world matrix (column-major).
	//
	// Parameters:
	//   - transform: the new world matrix
	SetTransform(transform [16]float32)

	// SetBindGroupProvider sets the object's model uniform provider.
	//
	// Parameters:
	//   - provider: the provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ SceneObject = &sceneObject{}

// NewSceneObject creates a new SceneObject configured with the given options.
// Objects default to enabled, a static frame, and an identity transform.
//
// Parameters:
//   - name: a debug name for the object
//   - options: functional options to configure the object
//
// Returns:
//   - SceneObject: the newly created object
func NewSceneObject(name string, options ...SceneObjectBuilderOption) SceneObject {
	obj := &sceneObject{
		name:       name,
		frameIndex: StaticFrame,
		transform:  identity,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (s *sceneObject) ID() uint64 {
	return s.id
}

func (s *sceneObject) Name() string {
	return s.name
}

func (s *sceneObject) Enabled() bool {
	return s.enabled.Load()
}

func (s *sceneObject) Model() model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mdl
}

func (s *sceneObject) FrameIndex() int {
	return s.frameIndex
}

func (s *sceneObject) Transform() [16]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

func (s *sceneObject) BindGroupProvider() bind_group_provider.BindGroupProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelProvider
}

func (s *sceneObject) SetID(id uint64) {
	s.id = id
}

func (s *sceneObject) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

func (s *sceneObject) SetModel(m model.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mdl = m
}

func (s *sceneObject) SetTransform(transform [16]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transform = transform
}

func (s *sceneObject) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelProvider = provider
}
