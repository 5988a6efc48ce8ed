package scene

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/robokit/armviz/engine/camera"
	"github.com/robokit/armviz/engine/ik"
	"github.com/robokit/armviz/engine/kinematics"
	"github.com/robokit/armviz/engine/loader"
	"github.com/robokit/armviz/engine/model"
	"github.com/robokit/armviz/engine/renderer"
	"github.com/robokit/armviz/engine/renderer/bind_group_provider"
	"github.com/robokit/armviz/engine/renderer/material"
	"github.com/robokit/armviz/engine/renderer/pipeline"
	"github.com/robokit/armviz/engine/renderer/shader"
	"github.com/robokit/armviz/engine/scene_object"
)

const (
	// PipelineKeyLit is the render pipeline for solid link meshes (triangle
	// list, headlight shading).
	PipelineKeyLit = "arm_lit"

	// PipelineKeyFlatLines is the render pipeline for gizmos, polylines and
	// the ground grid (line list, unlit).
	PipelineKeyFlatLines = "arm_flat_lines"
)

// Default visual parameters, tuned against a ~0.5 m reach desktop arm.
const (
	defaultGizmoLength   = 0.06
	defaultGridExtent    = 0.5
	defaultGridStep      = 0.05
	defaultJointRadius   = 0.02
	defaultJointSegments = 24
)

var (
	polylineColor = [4]float32{1, 0.65, 0, 1}
	gridColor     = [4]float32{0.3, 0.3, 0.33, 1}
	jointColor    = [4]float32{0.75, 0.78, 0.82, 1}
)

// robotScene is the implementation of the Scene interface.
type robotScene struct {
	mu sync.RWMutex

	name  string
	chain kinematics.Chain

	// mailbox carries target joint vectors from input, serial, and IK
	// goroutines into the tick loop. Latest write wins.
	mailbox *kinematics.Mailbox

	cam    camera.Camera
	rend   renderer.Renderer
	assets loader.Loader

	objects map[uint64]scene_object.SceneObject
	nextID  uint64

	// gizmos holds one axis triad per chain frame, enabled as a group.
	gizmos []scene_object.SceneObject

	// polyline is the dynamic wire connecting consecutive link origins in
	// world space. Its vertex buffer is rewritten every tick.
	polyline scene_object.SceneObject

	grid scene_object.SceneObject

	showGizmos atomic.Bool
	showGrid   atomic.Bool

	gizmoLength float32
	gridExtent  float32
	gridStep    float32
	initialized bool
}

// Scene is the robot arm view: it owns the kinematic chain, the camera, and
// the renderable objects derived from the chain (link meshes, joint bodies,
// frame gizmos, the link polyline, and the ground grid). Per tick it drains
// the joint-target mailbox, runs forward kinematics, and repositions every
// frame-driven object. Safe for concurrent use; joint targets may be posted
// from any goroutine via PostJointTargets.
type Scene interface {
	// Name returns the scene's identifier, normally the robot name.
	Name() string

	// Chain returns the kinematic chain driving the scene.
	Chain() kinematics.Chain

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer, or nil when running headless.
	Renderer() renderer.Renderer

	// Loader returns the asset loader holding the scene's mesh cache.
	Loader() loader.Loader

	// Initialize registers the scene's render pipelines, creates the camera
	// and per-object bind groups, and uploads mesh buffers for every object
	// added so far. Must be called once, after the renderer's surface exists
	// and before the first Update. Headless scenes skip GPU setup.
	//
	// Returns:
	//   - error: error if pipeline registration or bind group creation fails
	Initialize() error

	// AddObject registers a renderable object with the scene and assigns it
	// an ID. Objects added after Initialize get their GPU resources created
	// immediately.
	//
	// Parameters:
	//   - obj: the object to add; its FrameIndex selects the chain frame that
	//     drives it, or scene_object.StaticFrame for fixed geometry
	//
	// Returns:
	//   - uint64: the assigned object ID
	//   - error: error if GPU resource creation fails
	AddObject(obj scene_object.SceneObject) (uint64, error)

	// Object retrieves a registered object by ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - scene_object.SceneObject: the object or nil
	Object(id uint64) scene_object.SceneObject

	// RemoveObject unregisters an object by ID. GPU resources are not
	// released until the renderer shuts down.
	//
	// Parameters:
	//   - id: the object's unique ID
	RemoveObject(id uint64)

	// PostJointTargets posts a target joint vector for the next tick. The
	// vector is applied atomically; posting again before the tick replaces
	// the previous target. Safe to call from any goroutine.
	//
	// Parameters:
	//   - values: one scalar per joint, base to tip
	PostJointTargets(values []float64)

	// SolveTo runs the scene's IK solver toward a world-space target position
	// and, if the solve converges, posts the resulting joint vector. The
	// chain itself is only mutated on the next tick.
	//
	// Parameters:
	//   - x, y, z: the target tip position in meters
	//
	// Returns:
	//   - ik.Result: iteration count, final error, and the best joint vector
	//   - error: error if the solver cannot run or does not converge
	SolveTo(x, y, z float64) (ik.Result, error)

	// Update drains the joint-target mailbox, applies it to the chain, runs
	// forward kinematics, repositions all frame-driven objects, and stages
	// the camera and model uniform writes for the next frame.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	//
	// Returns:
	//   - error: error if a staged GPU write fails
	Update(deltaTime float64) error

	// Render draws all enabled objects and presents the frame. Returns an
	// error when the scene is headless or a draw call fails.
	//
	// Returns:
	//   - error: error if the frame cannot be rendered
	Render() error

	// ShowFrameGizmos toggles the per-frame coordinate axis triads.
	//
	// Parameters:
	//   - show: true to draw the triads
	ShowFrameGizmos(show bool)

	// FrameGizmosShown reports whether the axis triads are drawn.
	//
	// Returns:
	//   - bool: true if the triads are drawn
	FrameGizmosShown() bool

	// ShowGrid toggles the ground grid.
	//
	// Parameters:
	//   - show: true to draw the grid
	ShowGrid(show bool)

	// GridShown reports whether the ground grid is drawn.
	//
	// Returns:
	//   - bool: true if the grid is drawn
	GridShown() bool

	// Resize updates the camera aspect ratio and the render surface for a new
	// window size.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)
}

var _ Scene = &robotScene{}

// NewScene constructs a robot scene around a kinematic chain. The scene
// builds its chain-derived objects (joint bodies or configured link meshes,
// axis gizmos, link polyline, ground grid) from the chain's topology; call
// Initialize after construction to create GPU resources.
//
// Parameters:
//   - chain: the kinematic chain to visualize
//   - options: functional options (camera, renderer, loader, link meshes,
//     gizmo and grid sizing)
//
// Returns:
//   - Scene: the constructed scene
//   - error: error if a chain-derived object cannot be built
func NewScene(chain kinematics.Chain, options ...SceneBuilderOption) (Scene, error) {
	if chain == nil {
		return nil, fmt.Errorf("scene requires a chain")
	}

	s := &robotScene{
		name:        "robot",
		chain:       chain,
		mailbox:     kinematics.NewMailbox(),
		objects:     make(map[uint64]scene_object.SceneObject),
		gizmoLength: defaultGizmoLength,
		gridExtent:  defaultGridExtent,
		gridStep:    defaultGridStep,
	}
	s.showGizmos.Store(true)
	s.showGrid.Store(true)

	cfg := &sceneConfig{linkMeshes: make(map[int]model.Model)}
	for _, option := range options {
		option(s, cfg)
	}

	if s.assets == nil {
		s.assets = loader.NewLoader(loader.WithRenderer(s.rend))
	}
	if s.cam == nil {
		s.cam = camera.NewCamera(
			camera.WithController(camera.NewOrbitController(
				camera.WithRadius(3 * s.gridExtent),
				camera.WithElevation(0.5),
			)),
		)
	}
	// Robot arms live in a z-up world; the camera default is y-up.
	s.cam.SetUp(0, 0, 1)

	if err := s.buildChainObjects(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *robotScene) Name() string {
	return s.name
}

func (s *robotScene) Chain() kinematics.Chain {
	return s.chain
}

func (s *robotScene) Camera() camera.Camera {
	return s.cam
}

func (s *robotScene) Renderer() renderer.Renderer {
	return s.rend
}

func (s *robotScene) Loader() loader.Loader {
	return s.assets
}

func (s *robotScene) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return fmt.Errorf("scene %q already initialized", s.name)
	}
	s.initialized = true

	if s.rend == nil {
		return nil
	}

	lit := pipeline.NewPipeline(
		PipelineKeyLit,
		pipeline.WithVertexShader(shader.NewLitVertexShader()),
		pipeline.WithFragmentShader(shader.NewLitFragmentShader()),
	)
	flatLines := pipeline.NewPipeline(
		PipelineKeyFlatLines,
		pipeline.WithVertexShader(shader.NewFlatVertexShader()),
		pipeline.WithFragmentShader(shader.NewFlatFragmentShader()),
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		// Lines sit on top of coincident surfaces (gizmos on link meshes,
		// grid on the base plane).
		pipeline.WithDepthBias(-2, -1),
	)
	if err := s.rend.RegisterPipelines(lit, flatLines); err != nil {
		return fmt.Errorf("failed to register scene pipelines: %w", err)
	}

	if err := s.initCameraProvider(); err != nil {
		return err
	}
	for _, obj := range s.objects {
		if err := s.initObjectResources(obj); err != nil {
			return err
		}
	}
	return nil
}

func (s *robotScene) AddObject(obj scene_object.SceneObject) (uint64, error) {
	if obj == nil {
		return 0, fmt.Errorf("cannot add a nil object")
	}
	if obj.Model() == nil {
		return 0, fmt.Errorf("object %q has no model", obj.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	obj.SetID(s.nextID)
	s.objects[s.nextID] = obj

	if s.initialized && s.rend != nil {
		if err := s.initObjectResources(obj); err != nil {
			delete(s.objects, s.nextID)
			return 0, err
		}
	}
	return s.nextID, nil
}

func (s *robotScene) Object(id uint64) scene_object.SceneObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[id]
}

func (s *robotScene) RemoveObject(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, id)
}

func (s *robotScene) PostJointTargets(values []float64) {
	s.mailbox.Put(values)
}

func (s *robotScene) SolveTo(x, y, z float64) (ik.Result, error) {
	solver, err := ik.NewSolver(s.chain)
	if err != nil {
		return ik.Result{}, fmt.Errorf("failed to build solver: %w", err)
	}

	result, err := solver.Solve(s.chain.JointVariables(), x, y, z)
	if err != nil {
		return result, err
	}
	if !result.Converged {
		return result, fmt.Errorf("ik did not converge after %d iterations (error %.6f m)", result.Iterations, result.FinalError)
	}
	s.mailbox.Put(result.JointVariables)
	return result, nil
}

func (s *robotScene) Update(deltaTime float64) error {
	_ = deltaTime

	if target, ok := s.mailbox.Take(); ok {
		if err := s.chain.SetJointVariables(target); err != nil {
			// A wrong-length vector is a caller bug upstream of the mailbox;
			// the chain stays on its previous pose.
			return fmt.Errorf("rejected joint target: %w", err)
		}
	}

	frames := s.chain.LinkFrames()

	s.mu.Lock()
	defer s.mu.Unlock()

	showGizmos := s.showGizmos.Load()
	for i, gizmo := range s.gizmos {
		gizmo.SetEnabled(showGizmos)
		if i < len(frames) {
			gizmo.SetTransform(frames[i].Mat32())
		}
	}
	if s.grid != nil {
		s.grid.SetEnabled(s.showGrid.Load())
	}

	for _, obj := range s.objects {
		idx := obj.FrameIndex()
		if idx == scene_object.StaticFrame || idx >= len(frames) {
			continue
		}
		obj.SetTransform(frames[idx].Mat32())
	}

	if s.rend == nil {
		return nil
	}

	s.cam.Update()
	s.stageUniformWrites(frames)
	return nil
}

func (s *robotScene) Render() error {
	if s.rend == nil {
		return fmt.Errorf("scene %q has no renderer", s.name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.rend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	for _, obj := range s.objects {
		if !obj.Enabled() {
			continue
		}
		mdl := obj.Model()
		mat := mdl.RenderMaterial()

		bindGroups := []bind_group_provider.BindGroupProvider{
			s.cam.BindGroupProvider(),
			obj.BindGroupProvider(),
			mat.BindGroupProvider(),
		}
		if err := s.rend.DrawCall(mat.PipelineKey(), mdl.MeshProvider(), 1, bindGroups); err != nil {
			s.rend.EndFrame()
			s.rend.Present()
			return fmt.Errorf("draw call for %q failed: %w", obj.Name(), err)
		}
	}

	s.rend.EndFrame()
	s.rend.Present()
	return nil
}

func (s *robotScene) ShowFrameGizmos(show bool) {
	s.showGizmos.Store(show)
}

func (s *robotScene) FrameGizmosShown() bool {
	return s.showGizmos.Load()
}

func (s *robotScene) ShowGrid(show bool) {
	s.showGrid.Store(show)
}

func (s *robotScene) GridShown() bool {
	return s.showGrid.Load()
}

func (s *robotScene) Resize(width, height int) {
	if height > 0 {
		s.cam.SetAspect(float32(width) / float32(height))
	}
	if s.rend != nil {
		s.rend.Resize(width, height)
	}
}

// buildChainObjects derives the scene's standing objects from the chain:
// one body per joint frame (a configured link mesh or a fallback cylinder),
// an axis gizmo per frame, the link polyline, and the ground grid.
func (s *robotScene) buildChainObjects(cfg *sceneConfig) error {
	dof := s.chain.DOF()

	for i := 1; i <= dof; i++ {
		mdl := cfg.linkMeshes[i]
		if mdl == nil {
			var err error
			mdl, err = s.assets.AddMesh(model.Cylinder(
				fmt.Sprintf("joint_%d", i),
				defaultJointRadius,
				defaultJointRadius*3,
				defaultJointSegments,
				jointColor,
			))
			if err != nil {
				return fmt.Errorf("failed to build joint body %d: %w", i, err)
			}
		}
		if mdl.RenderMaterial() == nil {
			mdl.SetRenderMaterial(material.NewMaterial(
				material.WithName(mdl.Name()+"_mat"),
				material.WithPipelineKey(PipelineKeyLit),
			))
		}
		obj := scene_object.NewSceneObject(
			mdl.Name(),
			scene_object.WithModel(mdl),
			scene_object.WithFrameIndex(i),
		)
		if _, err := s.addLocked(obj); err != nil {
			return err
		}
	}

	for i := 0; i <= dof; i++ {
		mdl, err := s.assets.AddMesh(model.AxisGizmo(fmt.Sprintf("gizmo_%d", i), s.gizmoLength))
		if err != nil {
			return fmt.Errorf("failed to build gizmo %d: %w", i, err)
		}
		mdl.SetRenderMaterial(material.NewMaterial(
			material.WithName(mdl.Name()+"_mat"),
			material.WithPipelineKey(PipelineKeyFlatLines),
			material.WithUnlit(true),
		))
		obj := scene_object.NewSceneObject(
			mdl.Name(),
			scene_object.WithModel(mdl),
			scene_object.WithFrameIndex(i),
		)
		if _, err := s.addLocked(obj); err != nil {
			return err
		}
		s.gizmos = append(s.gizmos, obj)
	}

	points := make([][3]float32, dof+1)
	polyMesh := model.LinkPolyline("link_polyline", points, polylineColor)
	polyModel, err := s.assets.AddMesh(polyMesh, model.WithDynamic(true))
	if err != nil {
		return fmt.Errorf("failed to build link polyline: %w", err)
	}
	polyModel.SetRenderMaterial(material.NewMaterial(
		material.WithName("link_polyline_mat"),
		material.WithPipelineKey(PipelineKeyFlatLines),
		material.WithUnlit(true),
	))
	s.polyline = scene_object.NewSceneObject(
		"link_polyline",
		scene_object.WithModel(polyModel),
	)
	if _, err := s.addLocked(s.polyline); err != nil {
		return err
	}

	gridModel, err := s.assets.AddMesh(model.Grid("ground_grid", s.gridExtent, s.gridStep, gridColor))
	if err != nil {
		return fmt.Errorf("failed to build ground grid: %w", err)
	}
	gridModel.SetRenderMaterial(material.NewMaterial(
		material.WithName("ground_grid_mat"),
		material.WithPipelineKey(PipelineKeyFlatLines),
		material.WithUnlit(true),
	))
	s.grid = scene_object.NewSceneObject(
		"ground_grid",
		scene_object.WithModel(gridModel),
	)
	if _, err := s.addLocked(s.grid); err != nil {
		return err
	}

	// Seed every frame-driven transform from the rest pose so the first
	// rendered frame is correct even before the first tick.
	frames := s.chain.LinkFrames()
	for _, obj := range s.objects {
		idx := obj.FrameIndex()
		if idx == scene_object.StaticFrame || idx >= len(frames) {
			continue
		}
		obj.SetTransform(frames[idx].Mat32())
	}
	for i, gizmo := range s.gizmos {
		gizmo.SetTransform(frames[i].Mat32())
	}
	s.refreshPolylineData(frames)

	return nil
}

// addLocked registers an object without touching GPU state. Construction-time
// registration only; AddObject is the runtime path.
func (s *robotScene) addLocked(obj scene_object.SceneObject) (uint64, error) {
	s.nextID++
	obj.SetID(s.nextID)
	s.objects[s.nextID] = obj
	return s.nextID, nil
}

// initCameraProvider creates the group-0 uniform buffer and bind group on
// the camera's provider.
func (s *robotScene) initCameraProvider() error {
	provider := s.cam.BindGroupProvider()
	if provider == nil {
		provider = bind_group_provider.NewBindGroupProvider("camera")
		s.cam.SetBindGroupProvider(provider)
	}
	err := s.rend.InitBindGroup(
		provider,
		shader.CameraBindGroupLayout(),
		nil,
		map[int]uint64{0: shader.CameraUniformSize},
	)
	if err != nil {
		return fmt.Errorf("failed to init camera bind group: %w", err)
	}
	return nil
}

// initObjectResources uploads the object's mesh buffers and creates its
// model (group 1) and material (group 2) bind groups.
func (s *robotScene) initObjectResources(obj scene_object.SceneObject) error {
	mdl := obj.Model()

	meshProvider := mdl.MeshProvider()
	if meshProvider != nil && meshProvider.VertexBuffer() == nil {
		err := s.rend.InitMeshBuffers(meshProvider, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount())
		if err != nil {
			return fmt.Errorf("failed to init mesh buffers for %q: %w", obj.Name(), err)
		}
	}

	if obj.BindGroupProvider() == nil {
		provider := bind_group_provider.NewBindGroupProvider(obj.Name() + "_model")
		err := s.rend.InitBindGroup(
			provider,
			shader.ModelBindGroupLayout(),
			nil,
			map[int]uint64{0: shader.ModelDataSize},
		)
		if err != nil {
			return fmt.Errorf("failed to init model bind group for %q: %w", obj.Name(), err)
		}
		obj.SetBindGroupProvider(provider)
	}

	mat := mdl.RenderMaterial()
	if mat != nil && mat.BindGroupProvider() == nil {
		provider := bind_group_provider.NewBindGroupProvider(mat.Name())
		err := s.rend.InitBindGroup(
			provider,
			shader.MaterialBindGroupLayout(),
			nil,
			map[int]uint64{0: shader.MaterialParamsSize},
		)
		if err != nil {
			return fmt.Errorf("failed to init material bind group for %q: %w", mat.Name(), err)
		}
		mat.SetBindGroupProvider(provider)

		// Material params never change after load; write them once here.
		params := material.GPUMaterialParams{BaseColor: mat.BaseColor()}
		s.rend.WriteBuffers([]bind_group_provider.BufferWrite{
			{Provider: provider, Binding: 0, Data: params.Marshal()},
		})
	}

	return nil
}

// stageUniformWrites uploads the camera uniform, every frame-driven model
// matrix, and the rebuilt polyline vertices. Callers must hold the write lock.
func (s *robotScene) stageUniformWrites(frames []kinematics.Frame) {
	var writes []bind_group_provider.BufferWrite

	camUniform := camera.GPUCameraUniform{
		ViewProj: s.cam.ViewProjectionMatrix(),
	}
	if ctrl := s.cam.Controller(); ctrl != nil {
		cx, cy, cz := ctrl.Position()
		camUniform.CameraPosition = [3]float32{cx, cy, cz}
	}
	if provider := s.cam.BindGroupProvider(); provider != nil {
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: provider,
			Binding:  0,
			Data:     camUniform.Marshal(),
		})
	}

	for _, obj := range s.objects {
		provider := obj.BindGroupProvider()
		if provider == nil {
			continue
		}
		data := model.GPUModelData{Model: obj.Transform()}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: provider,
			Binding:  0,
			Data:     data.Marshal(),
		})
	}

	s.rend.WriteBuffers(writes)

	if s.polyline != nil && s.polyline.Model().Dynamic() {
		vertexData := s.refreshPolylineData(frames)
		if meshProvider := s.polyline.Model().MeshProvider(); meshProvider != nil && meshProvider.VertexBuffer() != nil {
			s.rend.WriteVertexBuffer(meshProvider, vertexData)
		}
	}
}

// refreshPolylineData rebuilds the polyline's vertex bytes from the current
// link origins and stages them on the model for the next upload.
//
// Parameters:
//   - frames: the chain's current link frames, base to tip
//
// Returns:
//   - []byte: the marshaled vertex data
func (s *robotScene) refreshPolylineData(frames []kinematics.Frame) []byte {
	vertices := make([]model.GPUVertex, len(frames))
	for i, f := range frames {
		x, y, z := f.Position()
		vertices[i] = model.GPUVertex{
			Position: [3]float32{float32(x), float32(y), float32(z)},
			Color:    polylineColor,
		}
	}
	data := model.MarshalVertices(vertices)
	s.polyline.Model().SetVertexData(data)
	return data
}
