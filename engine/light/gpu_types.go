package light

import (
	"encoding/binary"
	"math"
)

// MaxGPULights is the maximum number of lights marshaled into the light storage buffer per
// frame. Lights past the budget are dropped in order.
const MaxGPULights = 64

// GPULightHeaderSize and GPULightSize are the std430 sizes of the buffer records.
const (
	GPULightHeaderSize = 16
	GPULightSize       = 64
)

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position     [3]float32 // offset  0: world-space position (point/spot) or unused (directional)
	LightType    uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Color        [3]float32 // offset 16: linear RGB
	Intensity    float32    // offset 28: scalar multiplier
	Direction    [3]float32 // offset 32: normalized direction (directional/spot) or unused (point)
	LightRange   float32    // offset 44: attenuation cutoff distance
	InnerCone    float32    // offset 48: cos(inner half-angle) for spot
	OuterCone    float32    // offset 52: cos(outer half-angle) for spot
	CastsShadows uint32     // offset 56: 1 = casts shadows, 0 = does not
	_pad         uint32     // offset 60: padding to 64-byte alignment
}

// Marshal serializes the GPULight into dst, which must hold GPULightSize bytes.
//
// Parameters:
//   - dst: the destination slice
func (g *GPULight) Marshal(dst []byte) {
	putVec(dst[0:12], g.Position)
	binary.LittleEndian.PutUint32(dst[12:16], g.LightType)
	putVec(dst[16:28], g.Color)
	binary.LittleEndian.PutUint32(dst[28:32], math.Float32bits(g.Intensity))
	putVec(dst[32:44], g.Direction)
	binary.LittleEndian.PutUint32(dst[44:48], math.Float32bits(g.LightRange))
	binary.LittleEndian.PutUint32(dst[48:52], math.Float32bits(g.InnerCone))
	binary.LittleEndian.PutUint32(dst[52:56], math.Float32bits(g.OuterCone))
	binary.LittleEndian.PutUint32(dst[56:60], g.CastsShadows)
	binary.LittleEndian.PutUint32(dst[60:64], 0)
}

// ToGPULight converts a Light into its GPU-aligned representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	shadowVal := uint32(0)
	if l.CastsShadows() {
		shadowVal = 1
	}
	c := l.Color()
	return GPULight{
		Position:     l.Position(),
		LightType:    uint32(l.Type()),
		Color:        [3]float32{float32(c.R), float32(c.G), float32(c.B)},
		Intensity:    l.Intensity(),
		Direction:    l.Direction(),
		LightRange:   l.Range(),
		InnerCone:    l.InnerCone(),
		OuterCone:    l.OuterCone(),
		CastsShadows: shadowVal,
	}
}

// MarshalLightBuffer packs enabled lights into the light storage buffer layout:
//
//	[ambient rgb, count u32 (16 bytes)] [GPULight × count (64 bytes each)]
//
// Enabled ambient lights add color × intensity to the ambient term instead of taking a slot.
//
// Parameters:
//   - lights: every light in the scene
//   - ambient: the scene's base ambient RGB
//
// Returns:
//   - []byte: the marshaled buffer
//   - int: the number of light records written
func MarshalLightBuffer(lights []Light, ambient [3]float32) ([]byte, int) {
	count := 0
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		if l.Type() == LightTypeAmbient {
			c := l.Color()
			ambient[0] += float32(c.R) * l.Intensity()
			ambient[1] += float32(c.G) * l.Intensity()
			ambient[2] += float32(c.B) * l.Intensity()
			continue
		}
		if count < MaxGPULights {
			count++
		}
	}

	buf := make([]byte, GPULightHeaderSize+count*GPULightSize)
	putVec(buf[0:12], ambient)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(count))

	offset := GPULightHeaderSize
	written := 0
	for _, l := range lights {
		if written == count {
			break
		}
		if !l.Enabled() || l.Type() == LightTypeAmbient {
			continue
		}
		gpu := ToGPULight(l)
		gpu.Marshal(buf[offset : offset+GPULightSize])
		offset += GPULightSize
		written++
	}
	return buf, count
}

func putVec(dst []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v[2]))
}
