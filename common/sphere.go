package common

import "github.com/go-gl/mathgl/mgl32"

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Merge returns the smallest sphere enclosing both s and o.
//
// Parameters:
//   - o: the sphere to merge in
//
// Returns:
//   - Sphere: the enclosing sphere
func (s Sphere) Merge(o Sphere) Sphere {
	offset := o.Center.Sub(s.Center)
	d := offset.Len()
	switch {
	case d+o.Radius <= s.Radius:
		return s
	case d+s.Radius <= o.Radius:
		return o
	}
	r := (d + s.Radius + o.Radius) / 2
	return Sphere{
		Center: s.Center.Add(offset.Mul((r - s.Radius) / d)),
		Radius: r,
	}
}
