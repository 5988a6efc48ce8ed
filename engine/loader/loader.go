package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/robokit/armviz/engine/model"
	"github.com/robokit/armviz/engine/renderer"
	"github.com/robokit/armviz/engine/renderer/bind_group_provider"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeSTL selects the STL loader backend (binary and ASCII).
	BackendTypeSTL LoaderBackendType = iota

	// BackendTypeOBJ selects the Wavefront OBJ loader backend.
	BackendTypeOBJ
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	renderer renderer.Renderer

	modelCache map[string]model.Model

	backends map[LoaderBackendType]loaderBackend

	// loadPool manages a bounded set of reusable goroutines for LoadAll.
	// Parsing link meshes is CPU-bound and the arm configs reference up to
	// seven mesh files, so parallel parse cuts startup time noticeably.
	loadPool    worker.DynamicWorkerPool
	loadWorkers int
}

// Loader defines the public-facing interface for loading and caching link meshes.
// It abstracts the file format (STL, OBJ) behind a generic backend and manages a
// cache of previously loaded models.
type Loader interface {
	// Load imports a mesh file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension (.stl or .obj).
	//
	// Parameters:
	//   - path: the file path to the mesh file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadAll imports multiple mesh files in parallel using the loader's worker
	// pool and caches each result. Already-cached paths are skipped. The first
	// error encountered is returned after all loads finish.
	//
	// Parameters:
	//   - paths: the mesh file paths to load
	//
	// Returns:
	//   - error: the first load error, or nil if all succeeded
	LoadAll(paths ...string) error

	// LoadReader imports a mesh from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing mesh data
	//   - format: the file format the reader provides
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, format LoaderBackendType) (model.Model, error)

	// AddMesh converts a procedural mesh (joint cylinder, gizmo, grid) into an
	// engine-ready Model and caches it by the mesh name, replacing any previous
	// entry. GPU buffers are created when a Renderer is attached.
	//
	// Parameters:
	//   - mesh: the CPU-side mesh data
	//   - options: extra model options applied after conversion (dynamic flag,
	//     bounding radius override)
	//
	// Returns:
	//   - model.Model: the engine-ready Model
	//   - error: error if GPU resource creation fails
	AddMesh(mesh model.ImportedMesh, options ...model.ModelBuilderOption) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the full model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the STL and OBJ backends
// registered and the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]model.Model),
		backends: map[LoaderBackendType]loaderBackend{
			BackendTypeSTL: newSTLLoaderBackend(),
			BackendTypeOBJ: newOBJLoaderBackend(),
		},
		loadWorkers: runtime.NumCPU(),
	}

	for _, option := range options {
		option(l)
	}

	// Initialize the load pool after options so WithLoadWorkers can override the default.
	l.loadPool = worker.NewDynamicWorkerPool(l.loadWorkers, 64, 1*time.Second)

	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m, err := l.importedToModel(imported)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) LoadAll(paths ...string) error {
	var wg sync.WaitGroup
	errs := make([]error, len(paths))

	taskID := 0
	for i, path := range paths {
		wg.Add(1)
		idx, p := i, path
		l.loadPool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				_, err := l.Load(p)
				errs[idx] = err
				return nil, err
			},
		})
		taskID++
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) LoadReader(name string, r io.Reader, format LoaderBackendType) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, ok := l.backends[format]
	if !ok {
		return nil, fmt.Errorf("no loader backend registered for format %d", format)
	}

	imported, err := backend.LoadReader(r, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	m, err := l.importedToModel(imported)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) AddMesh(mesh model.ImportedMesh, options ...model.ModelBuilderOption) (model.Model, error) {
	m, err := l.importedToModel(&model.ImportedModel{
		Name:   mesh.Name,
		Meshes: []model.ImportedMesh{mesh},
	}, options...)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.modelCache[mesh.Name] = m
	l.mu.Unlock()
	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".stl":
		return l.backends[BackendTypeSTL], nil
	case ".obj":
		return l.backends[BackendTypeOBJ], nil
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// importedToModel converts an ImportedModel (CPU data) into a Model (engine-ready).
// It combines all mesh vertex and index data into a single BindGroupProvider and
// uploads the data to the GPU via InitMeshBuffers when a Renderer is available.
// Without a Renderer the staged vertex and index bytes remain on the Model, which
// keeps the loader usable from headless commands and tests.
//
// Parameters:
//   - imported: the CPU-side ImportedModel containing mesh data
//   - extra: extra model options applied after the defaults
//
// Returns:
//   - model.Model: the engine-ready Model
//   - error: error if GPU resource creation fails
func (l *loader) importedToModel(imported *model.ImportedModel, extra ...model.ModelBuilderOption) (model.Model, error) {
	// Combine all meshes into one vertex + index buffer
	var allVertices []model.GPUVertex
	var allIndexBytes []byte
	totalIndices := 0
	indexOffset := uint32(0)

	topology := model.TopologyTriangles
	for meshIdx, mesh := range imported.Meshes {
		if meshIdx == 0 {
			topology = mesh.Topology
		}
		allVertices = append(allVertices, mesh.Vertices...)

		// Reindex: offset each index by the running vertex count across meshes
		adjusted := make([]uint32, len(mesh.Indices))
		for i, idx := range mesh.Indices {
			adjusted[i] = idx + indexOffset
		}
		allIndexBytes = append(allIndexBytes, model.MarshalIndices(adjusted)...)

		totalIndices += len(mesh.Indices)
		indexOffset += uint32(len(mesh.Vertices))
	}

	allVertexBytes := model.MarshalVertices(allVertices)

	// Create BindGroupProvider with staged vertex/index data
	provider := bind_group_provider.NewBindGroupProvider(
		imported.Name + "_mesh",
	)

	// Upload to GPU if renderer is available
	if l.renderer != nil {
		if err := l.renderer.InitMeshBuffers(provider, allVertexBytes, allIndexBytes, totalIndices); err != nil {
			return nil, fmt.Errorf("failed to init mesh buffers for %q: %w", imported.Name, err)
		}
	}

	opts := []model.ModelBuilderOption{
		model.WithName(imported.Name),
		model.WithTopology(topology),
		model.WithMeshProvider(provider),
		model.WithVertexData(allVertexBytes),
		model.WithIndexData(allIndexBytes),
		model.WithIndexCount(totalIndices),
		model.WithBoundingRadius(model.ComputeBoundingRadius(allVertices)),
	}
	opts = append(opts, extra...)
	mdl := model.NewModel(opts...)

	return mdl, nil
}
