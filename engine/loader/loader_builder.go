package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS is an option builder that sets the file system model paths resolve against.
//
// Parameters:
//   - fsys: the asset file system
//
// Returns:
//   - LoaderBuilderOption: a function that applies the file system option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		entry := &cacheEntry{done: make(chan struct{}), m: m}
		close(entry.done)
		l.modelCache[key] = entry
	}
}
