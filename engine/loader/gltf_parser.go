package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Common errors returned by the parser
var (
	errInvalidGLTFVersion = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic    = errors.New("invalid GLB magic number")
	errInvalidGLBVersion  = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk   = errors.New("GLB file missing JSON chunk")
	errInvalidBufferURI   = errors.New("invalid buffer URI")
	errBufferSizeMismatch = errors.New("buffer size mismatch")
)

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	fsys           fs.FS
	baseDir        string
	document       *gltfDocument
	glbBinaryChunk []byte
	isGLB          bool
}

// gltfParser defines the interface for reading glTF/GLB documents out of an fs.FS.
// Buffers are checked for presence and size but never decoded into vertex data.
type gltfParser interface {
	// Parse loads and parses a glTF/GLB file from the given slash-separated path.
	// Automatically detects .gltf (JSON) vs .glb (binary) format.
	//
	// Parameters:
	//   - name: path to the glTF or GLB file inside the file system
	//
	// Returns:
	//   - error: error if parsing fails
	Parse(name string) error

	// ParseBytes parses a document that has already been read.
	//
	// Parameters:
	//   - data: glTF JSON or GLB bytes
	//
	// Returns:
	//   - error: error if parsing fails
	ParseBytes(data []byte) error

	// Document returns the parsed glTF document.
	// Returns nil if Parse has not been called successfully.
	//
	// Returns:
	//   - *gltfDocument: the parsed document or nil
	Document() *gltfDocument

	// IsGLB reports whether the last parsed document came from a binary container.
	//
	// Returns:
	//   - bool: true for GLB input
	IsGLB() bool
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser reading external resources from fsys.
//
// Parameters:
//   - fsys: the file system external buffer URIs resolve against
//
// Returns:
//   - gltfParser: a new parser instance
func newGLTFParser(fsys fs.FS) gltfParser {
	return &gltfParserImpl{fsys: fsys, baseDir: "."}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) IsGLB() bool {
	return p.isGLB
}

func (p *gltfParserImpl) Parse(name string) error {
	p.baseDir = path.Dir(name)

	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseBytes(data)
}

func (p *gltfParserImpl) ParseBytes(data []byte) error {
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic {
		p.isGLB = true
		return p.parseGLB(data)
	}
	p.isGLB = false
	return p.parseGLTF(data)
}

// parseGLTF parses a glTF JSON file.
func (p *gltfParserImpl) parseGLTF(data []byte) error {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}

	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}

	if err := p.checkBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// parseGLB parses a GLB binary file.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func (p *gltfParserImpl) parseGLB(data []byte) error {
	if len(data) < 12 {
		return errors.New("GLB file too small")
	}

	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to read GLB header: %w", err)
	}

	if header.Magic != gltfGLBMagic {
		return errInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return errInvalidGLBVersion
	}

	var jsonData []byte
	var binData []byte

	for {
		var chunkHeader gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunkHeader); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read chunk header: %w", err)
		}

		if int64(chunkHeader.ChunkLength) > int64(r.Len()) {
			return fmt.Errorf("failed to read chunk data: %w", io.ErrUnexpectedEOF)
		}
		chunkData := make([]byte, chunkHeader.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return fmt.Errorf("failed to read chunk data: %w", err)
		}

		switch chunkHeader.ChunkType {
		case gltfGLBChunkJSON:
			jsonData = chunkData
		case gltfGLBChunkBIN:
			binData = chunkData
		}
	}

	if jsonData == nil {
		return errMissingJSONChunk
	}

	p.glbBinaryChunk = binData

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}

	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}

	if err := p.checkBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// checkBuffers verifies every buffer is present (GLB binary chunk, data URI or external file)
// and at least as long as its declared byteLength.
func (p *gltfParserImpl) checkBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		if buf.URI == "" {
			if i == 0 && p.glbBinaryChunk != nil {
				if len(p.glbBinaryChunk) < buf.ByteLength {
					return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
				}
				continue
			}
			return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
		}

		size, err := p.bufferSize(buf.URI)
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		if size < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}

	return nil
}

// bufferSize returns the byte length of a buffer URI (data: URI or file path).
func (p *gltfParserImpl) bufferSize(uri string) (int, error) {
	if strings.HasPrefix(uri, "data:") {
		data, err := p.loadDataURI(uri)
		if err != nil {
			return 0, err
		}
		return len(data), nil
	}

	if p.fsys == nil {
		return 0, fmt.Errorf("external buffer %q with no file system", uri)
	}
	info, err := fs.Stat(p.fsys, path.Join(p.baseDir, uri))
	if err != nil {
		return 0, fmt.Errorf("failed to load buffer file %q: %w", uri, err)
	}
	return int(info.Size()), nil
}

// loadDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func (p *gltfParserImpl) loadDataURI(uri string) ([]byte, error) {
	commaIdx := strings.Index(uri, ",")
	if commaIdx < 0 {
		return nil, errInvalidBufferURI
	}

	header := uri[5:commaIdx]
	dataStr := uri[commaIdx+1:]

	if !strings.Contains(header, "base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(dataStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	return data, nil
}
