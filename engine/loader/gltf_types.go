package loader

// gltfDocument is the subset of a glTF 2.0 document the summary backend reads.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
type gltfDocument struct {
	Asset     gltfAsset      `json:"asset"`
	Scene     *int           `json:"scene,omitempty"`
	Scenes    []gltfScene    `json:"scenes,omitempty"`
	Nodes     []gltfNode     `json:"nodes,omitempty"`
	Meshes    []gltfMesh     `json:"meshes,omitempty"`
	Accessors []gltfAccessor `json:"accessors,omitempty"`
	Buffers   []gltfBuffer   `json:"buffers,omitempty"`
	Materials []gltfMaterial `json:"materials,omitempty"`

	// ExtensionsRequired lists extensions a consumer must support to load the asset.
	ExtensionsRequired []string `json:"extensionsRequired,omitempty"`
}

type gltfAsset struct {
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
	Generator  string `json:"generator,omitempty"`
}

type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

type gltfNode struct {
	Name     string `json:"name,omitempty"`
	Children []int  `json:"children,omitempty"`
	Mesh     *int   `json:"mesh,omitempty"`
}

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
}

// gltfAttributePosition is the vertex position attribute semantic.
const gltfAttributePosition = "POSITION"

type gltfAccessor struct {
	BufferView    *int      `json:"bufferView,omitempty"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
}

const gltfAccessorTypeVec3 = "VEC3"

type gltfBuffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

type gltfMaterial struct {
	Name string `json:"name,omitempty"`
}

// --- GLB Binary Format ---

// gltfGLBHeader is the header of a GLB file (12 bytes).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
type gltfGLBHeader struct {
	Magic   uint32 // Must be 0x46546C67 ("glTF" in ASCII)
	Version uint32 // Must be 2
	Length  uint32 // Total file length
}

// gltfGLBChunkHeader is the header of a GLB chunk (8 bytes).
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32 // 0x4E4F534A for JSON, 0x004E4942 for BIN
}

// GLB magic number and chunk type constants
const (
	gltfGLBMagic     = 0x46546C67 // "glTF" in little-endian ASCII
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON" in little-endian ASCII
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0" in little-endian ASCII
)
