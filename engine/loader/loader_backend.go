package loader

import (
	"io"

	"github.com/robokit/armviz/engine/model"
)

// loaderBackend defines the generic interface for loading meshes from files or streams.
// Concrete implementations (stlLoaderBackend, objLoaderBackend) handle format-specific details.
// Backends produce CPU-side ImportedModel data; GPU upload happens in the Loader.
type loaderBackend interface {
	// Load performs a mesh import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing mesh data
	//   - name: the name to assign to the imported model
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(r io.Reader, name string) (*model.ImportedModel, error)
}
