package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ConstantMedium is a homogeneous participating medium filling a convex,
// bounded boundary primitive.
type ConstantMedium struct {
	Boundary      Primitive
	negInvDensity float64
	phase         material.Material
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Primitive, density float64, color core.Vec3) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		negInvDensity: -1 / density,
		phase:         material.NewIsotropic(color),
	}
}

// Hit samples a free-flight distance inside the medium. The ray is first
// moved back far enough to start outside the boundary, so the boundary's own
// Hit finds the entry, and a second query from just past the entry finds
// whether the exit comes before the sampled distance. The flight starts no
// earlier than Epsilon along the original ray.
func (m *ConstantMedium) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	box := m.Boundary.BoundingBox()
	o := ray.Origin
	reverseDist := 1 +
		math.Max(math.Abs(o.X-box.Min.X), math.Abs(o.X-box.Max.X)) +
		math.Max(math.Abs(o.Y-box.Min.Y), math.Abs(o.Y-box.Max.Y)) +
		math.Max(math.Abs(o.Z-box.Min.Z), math.Abs(o.Z-box.Max.Z))

	shifted := core.NewRay(ray.At(-reverseDist), ray.Direction)
	shiftedMax := tMax
	if !math.IsInf(tMax, 1) {
		shiftedMax += reverseDist
	}

	var entry HitRecord
	if !m.Boundary.Hit(shifted, shiftedMax, tc, &entry) {
		return false
	}

	// 1-U lies in (0, 1], keeping the logarithm finite
	t := math.Max(entry.T-reverseDist, core.Epsilon) + m.negInvDensity*math.Log(1-tc.Sampler.Get1D())
	if t <= core.Epsilon || t > tMax {
		return false
	}

	inside := entry.T + 2*core.Epsilon
	shifted.Origin = shifted.At(inside)
	var exit HitRecord
	if m.Boundary.Hit(shifted, t+reverseDist-inside, tc, &exit) {
		return false
	}

	rec.T = t
	rec.Object = m
	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}

// Normal is a random direction: a medium has no surface
func (m *ConstantMedium) Normal(point core.Vec3, ray core.Ray, sampler core.Sampler) core.Vec3 {
	return core.SampleOnUnitSphere(sampler.Get2D())
}

// UV is constant inside a medium
func (m *ConstantMedium) UV(point, normal core.Vec3) core.Vec2 {
	return core.Vec2{}
}

// Material returns the isotropic phase function
func (m *ConstantMedium) Material() material.Material {
	return m.phase
}
