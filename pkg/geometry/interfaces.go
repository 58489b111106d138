package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive is anything a ray can be intersected with.
//
// Hit only records the distance and the object that was hit; shading data is
// derived afterwards from the record through Normal, UV and Material, since
// most candidates are rejected before a full hit is needed. Composite
// primitives (lists and BVH nodes) never appear in a HitRecord.
type Primitive interface {
	// Hit reports the nearest intersection in (Epsilon, tMax) and fills rec.
	Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool
	BoundingBox() core.AABB

	// Normal returns the outward surface normal at point.
	Normal(point core.Vec3, ray core.Ray, sampler core.Sampler) core.Vec3
	UV(point, normal core.Vec3) core.Vec2
	Material() material.Material
}

// HitRecord contains the result of a ray-primitive intersection
type HitRecord struct {
	T      float64   // Parameter t along the ray
	Object Primitive // The primitive that was hit, never a composite
}

// Interaction resolves the shading information of a hit
func (h *HitRecord) Interaction(ray core.Ray, sampler core.Sampler) material.SurfaceInteraction {
	point := ray.At(h.T)
	outward := h.Object.Normal(point, ray, sampler)

	si := material.SurfaceInteraction{Point: point, T: h.T}
	si.SetFaceNormal(ray, outward)
	si.UV = h.Object.UV(point, outward)
	return si
}

// composite provides the shading methods of primitives that only group others
type composite struct{}

func (composite) Normal(point core.Vec3, ray core.Ray, sampler core.Sampler) core.Vec3 {
	return core.Vec3{}
}

func (composite) UV(point, normal core.Vec3) core.Vec2 {
	return core.Vec2{}
}

func (composite) Material() material.Material {
	return nil
}
