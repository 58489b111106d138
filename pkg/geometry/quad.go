package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad is a parallelogram given by a corner A and the two corners B and C
// adjacent to it; the fourth corner is B + C - A. It shares the triangle's
// plane math and differs only in the accepted coordinate region.
type Quad struct {
	A, B, C  core.Vec3
	TwoSided bool // Both faces are front faces
	plane    planar
	material material.Material
	box      core.AABB
}

// NewQuad creates a new quad, failing if the corners are collinear
func NewQuad(a, b, c core.Vec3, material material.Material) (*Quad, error) {
	plane, err := newPlanar(a, b, c)
	if err != nil {
		return nil, err
	}
	d := b.Add(c).Subtract(a)
	return &Quad{
		A:        a,
		B:        b,
		C:        c,
		plane:    plane,
		material: material,
		box:      core.NewAABBFromPoints(a, b, c, d).Padded(core.Epsilon),
	}, nil
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	tc.Counters.TriangleTests++
	t, u, v, ok := q.plane.intersect(ray, tMax)
	if !ok || u < 0 || u > 1 || v < 0 || v > 1 {
		return false
	}
	rec.T = t
	rec.Object = q
	return true
}

// BoundingBox returns the bounding box of the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.box
}

// Normal returns the geometric normal, flipped towards the ray for two-sided quads
func (q *Quad) Normal(point core.Vec3, ray core.Ray, sampler core.Sampler) core.Vec3 {
	return q.plane.facing(ray, q.TwoSided)
}

// UV returns the coordinates of point along the edges AB and AC
func (q *Quad) UV(point, normal core.Vec3) core.Vec2 {
	return core.NewVec2(q.plane.pointCoords(point))
}

// Material returns the quad's material
func (q *Quad) Material() material.Material {
	return q.material
}
