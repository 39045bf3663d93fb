package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
)

var (
	// ErrUnsupportedFormat is returned for paths whose extension has no backend.
	ErrUnsupportedFormat = errors.New("loader: unsupported model format")
	// ErrInvalidAsset wraps every parse or validation failure of a model file.
	ErrInvalidAsset = errors.New("loader: invalid asset")
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// cacheEntry is one path's load result. done closes once m/err are set.
type cacheEntry struct {
	done chan struct{}
	m    model.Model
	err  error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys fs.FS

	modelCache map[string]*cacheEntry

	backend loaderBackend
}

// Loader defines the synchronous interface for loading and caching model files.
// It abstracts the file format (glTF, GLB) behind a backend and keeps one result per path;
// a failed path stays failed for the life of the loader.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the path is cached, or already being loaded by another goroutine, the same
	// result is returned without decoding again.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: slash-separated path of the model inside the loader's file system
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// Get retrieves a successfully loaded model. Returns nil if not found or still loading.
	//
	// Parameters:
	//   - path: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(path string) model.Model

	// Models returns every successfully loaded model.
	//
	// Returns:
	//   - map[string]model.Model: loaded models keyed by path
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
// Without WithFS, paths resolve against the process working directory.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]*cacheEntry),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	if l.fsys == nil {
		l.fsys = os.DirFS(".")
	}
	return l
}

func (l *loader) Load(p string) (model.Model, error) {
	l.mu.Lock()
	if entry, ok := l.modelCache[p]; ok {
		l.mu.Unlock()
		<-entry.done
		return entry.m, entry.err
	}
	entry := &cacheEntry{done: make(chan struct{})}
	l.modelCache[p] = entry
	l.mu.Unlock()

	entry.m, entry.err = l.load(p)
	close(entry.done)
	return entry.m, entry.err
}

func (l *loader) load(p string) (model.Model, error) {
	backend, err := l.resolveBackend(p)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", p, err)
	}

	return model.FromImported(p, imported), nil
}

func (l *loader) Get(p string) model.Model {
	l.mu.RLock()
	entry, ok := l.modelCache[p]
	l.mu.RUnlock()
	if !ok {
		return nil
	}
	select {
	case <-entry.done:
		return entry.m
	default:
		return nil
	}
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, entry := range l.modelCache {
		select {
		case <-entry.done:
			if entry.err == nil {
				result[k] = entry.m
			}
		default:
		}
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(p string) (loaderBackend, error) {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".gltf", ".glb":
		if l.backend == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
