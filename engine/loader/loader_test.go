package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-scroll/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headDocument = `{
	"asset": {"version": "2.0"},
	"scene": 0,
	"scenes": [{"name": "Head", "nodes": [0]}],
	"nodes": [{"mesh": 0}, {"name": "pivot"}],
	"meshes": [{"name": "face", "primitives": [{"attributes": {"POSITION": 0}, "material": 0}]}],
	"accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [-1, -2, -3], "max": [1, 2, 3]}],
	"buffers": [{"byteLength": 36}],
	"materials": [{"name": "skin"}]
}`

// buildGLB packs a JSON document and optional binary chunk into a GLB container.
func buildGLB(t *testing.T, doc string, bin []byte) []byte {
	t.Helper()

	jsonChunk := []byte(doc)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}

	total := 12 + 8 + len(jsonChunk)
	if bin != nil {
		total += 8 + len(bin)
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonChunk)), ChunkType: gltfGLBChunkJSON}))
	buf.Write(jsonChunk)
	if bin != nil {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN}))
		buf.Write(bin)
	}
	return buf.Bytes()
}

func carDocument() string {
	data := base64.StdEncoding.EncodeToString(make([]byte, 48))
	return fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"nodes": [{"mesh": 0}, {"mesh": 1}, {"children": [0, 1]}],
	"meshes": [
		{"name": "body", "primitives": [{"attributes": {"POSITION": 0}}]},
		{"name": "wheel", "primitives": [{"attributes": {"POSITION": 1}}, {"attributes": {"NORMAL": 2}}]}
	],
	"accessors": [
		{"componentType": 5126, "count": 2, "type": "VEC3", "min": [-2, 0, -1], "max": [2, 1, 1]},
		{"componentType": 5126, "count": 2, "type": "VEC3", "min": [-1, -0.5, -3], "max": [1, 0.5, 3]},
		{"componentType": 5126, "count": 2, "type": "VEC3"}
	],
	"buffers": [{"uri": "data:application/octet-stream;base64,%s", "byteLength": 48}]
}`, data)
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"models/head.glb":      {Data: buildGLB(t, headDocument, make([]byte, 36))},
		"models/car.gltf":      {Data: []byte(carDocument())},
		"models/short.glb":     {Data: buildGLB(t, headDocument, make([]byte, 12))},
		"models/old.gltf":      {Data: []byte(`{"asset": {"version": "1.0"}}`)},
		"models/garbage.glb":   {Data: []byte("not a model at all")},
		"models/external.gltf": {Data: []byte(`{"asset": {"version": "2.0"}, "buffers": [{"uri": "external.bin", "byteLength": 8}]}`)},
		"models/external.bin":  {Data: make([]byte, 8)},
		"models/model.obj":     {Data: []byte("o cube")},
	}
}

func TestLoader_LoadGLB(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithFS(testFS(t)))

	m, err := l.Load("models/head.glb")
	require.NoError(t, err)

	assert.Equal(t, "Head", m.Name())
	assert.Equal(t, "models/head.glb", m.Path())
	assert.Equal(t, model.FormatGLB, m.Format())
	assert.Equal(t, 1, m.MeshCount())
	assert.Equal(t, 2, m.NodeCount())
	assert.Equal(t, 1, m.MaterialCount())
	assert.Equal(t, 3, m.VertexCount())

	min, max := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, max)
}

func TestLoader_LoadGLTFWithDataURI(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithFS(testFS(t)))

	m, err := l.Load("models/car.gltf")
	require.NoError(t, err)

	assert.Equal(t, "car", m.Name(), "falls back to the file name without a named scene")
	assert.Equal(t, model.FormatGLTF, m.Format())
	assert.Equal(t, 2, m.MeshCount())
	assert.Equal(t, 3, m.NodeCount())
	assert.Equal(t, 4, m.VertexCount())

	min, max := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-2, -0.5, -3}, min)
	assert.Equal(t, mgl32.Vec3{2, 1, 3}, max)
}

func TestLoader_LoadExternalBuffer(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithFS(testFS(t)))

	m, err := l.Load("models/external.gltf")
	require.NoError(t, err)
	assert.Equal(t, 0, m.MeshCount())
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "unsupported extension", path: "models/model.obj", want: ErrUnsupportedFormat},
		{name: "short binary chunk", path: "models/short.glb", want: ErrInvalidAsset},
		{name: "glTF 1.0", path: "models/old.gltf", want: ErrInvalidAsset},
		{name: "not a model", path: "models/garbage.glb", want: ErrInvalidAsset},
		{name: "missing file", path: "models/missing.glb", want: ErrInvalidAsset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(BackendTypeGLTF, WithFS(testFS(t)))

			m, err := l.Load(tt.path)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_MissingFileKeepsCause(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithFS(testFS(t)))

	_, err := l.Load("models/missing.glb")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_CachesByPath(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithFS(testFS(t)))

	first, err := l.Load("models/head.glb")
	require.NoError(t, err)
	second, err := l.Load("models/head.glb")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, l.Get("models/head.glb"))
	assert.Nil(t, l.Get("models/car.gltf"))

	_, err = l.Load("models/old.gltf")
	require.Error(t, err)
	models := l.Models()
	assert.Len(t, models, 1)
	assert.Contains(t, models, "models/head.glb")
}

func TestLoader_WithModel(t *testing.T) {
	pre := model.NewModel(model.WithName("prebuilt"))
	l := NewLoader(BackendTypeGLTF, WithFS(fstest.MapFS{}), WithModel("virtual.glb", pre))

	m, err := l.Load("virtual.glb")
	require.NoError(t, err)
	assert.Same(t, pre, m)
}
