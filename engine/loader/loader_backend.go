package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
)

// loaderBackend defines the generic interface for summarizing model files.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load reads and summarizes the model stored at name inside fsys.
	//
	// Parameters:
	//   - fsys: the asset file system
	//   - name: slash-separated path of the model inside fsys
	//
	// Returns:
	//   - *model.ImportedModel: the imported model summary
	//   - error: error if loading fails
	Load(fsys fs.FS, name string) (*model.ImportedModel, error)
}
