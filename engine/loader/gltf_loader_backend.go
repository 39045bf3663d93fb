package loader

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(fsys fs.FS, name string) (*model.ImportedModel, error) {
	p := newGLTFParser(fsys)
	if err := p.Parse(name); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAsset, name, err)
	}
	imported, err := summarize(p.Document(), name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidAsset, name, err)
	}
	if p.IsGLB() {
		imported.Format = model.FormatGLB
	} else {
		imported.Format = model.FormatGLTF
	}
	return imported, nil
}

// summarize walks the document's meshes and collects vertex counts and POSITION bounds.
func summarize(doc *gltfDocument, name string) (*model.ImportedModel, error) {
	imported := &model.ImportedModel{
		Name:          assetName(doc, name),
		NodeCount:     len(doc.Nodes),
		MaterialCount: len(doc.Materials),
		Meshes:        make([]model.ImportedMesh, 0, len(doc.Meshes)),
	}

	for mi, mesh := range doc.Meshes {
		out := model.ImportedMesh{Name: mesh.Name}
		for pi, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltfAttributePosition]
			if !ok {
				continue
			}
			if idx < 0 || idx >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %d primitive %d: position accessor %d out of range", mi, pi, idx)
			}
			acc := doc.Accessors[idx]
			out.VertexCount += acc.Count
			if acc.Type != gltfAccessorTypeVec3 || len(acc.Min) != 3 || len(acc.Max) != 3 {
				continue
			}
			lo := mgl32.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]}
			hi := mgl32.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]}
			if !out.HasBounds {
				out.Min, out.Max, out.HasBounds = lo, hi, true
				continue
			}
			for i := 0; i < 3; i++ {
				out.Min[i] = min(out.Min[i], lo[i])
				out.Max[i] = max(out.Max[i], hi[i])
			}
		}
		imported.Meshes = append(imported.Meshes, out)
	}

	for ni, node := range doc.Nodes {
		if node.Mesh != nil && (*node.Mesh < 0 || *node.Mesh >= len(doc.Meshes)) {
			return nil, fmt.Errorf("node %d references missing mesh %d", ni, *node.Mesh)
		}
	}

	return imported, nil
}

// assetName prefers the default scene's name, then the file's base name without extension.
func assetName(doc *gltfDocument, name string) string {
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx >= 0 && sceneIdx < len(doc.Scenes) && doc.Scenes[sceneIdx].Name != "" {
		return doc.Scenes[sceneIdx].Name
	}
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
