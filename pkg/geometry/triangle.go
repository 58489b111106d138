package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrDegenerateTriangle is returned when the vertices of a triangle or quad do not span a plane.
	ErrDegenerateTriangle = errors.New("geometry: degenerate triangle")
)

// planar holds the plane of a triangle or parallelogram spanned by the
// edges e1 = b-a and e2 = c-a, projected along the dominant axis of its
// normal. The projection turns intersection into one division for t and
// two affine evaluations for the edge coordinates.
type planar struct {
	normal core.Vec3 // unit normal, e1 × e2 normalized
	axis   int       // dominant axis of the normal
	invT   [9]float64
}

func newPlanar(a, b, c core.Vec3) (planar, error) {
	e1, e2 := b.Subtract(a), c.Subtract(a)
	normal := e1.Cross(e2)

	var p planar
	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	switch {
	case ax > ay && ax > az:
		p.axis = 0
	case ay > az:
		p.axis = 1
	case az > 0:
		p.axis = 2
	default:
		return planar{}, errors.Wrapf(ErrDegenerateTriangle, "vertices %v, %v, %v", a, b, c)
	}

	y, z := (p.axis+1)%3, (p.axis+2)%3
	in := 1 / normal.Axis(p.axis)

	p.invT[0] = e2.Axis(z) * in
	p.invT[1] = -e2.Axis(y) * in
	p.invT[2] = (c.Axis(y)*a.Axis(z) - c.Axis(z)*a.Axis(y)) * in

	p.invT[3] = -e1.Axis(z) * in
	p.invT[4] = e1.Axis(y) * in
	p.invT[5] = -(b.Axis(y)*a.Axis(z) - b.Axis(z)*a.Axis(y)) * in

	p.invT[6] = normal.Axis(y) * in
	p.invT[7] = normal.Axis(z) * in
	p.invT[8] = -a.Dot(normal) * in

	p.normal = normal.Normalize()
	return p, nil
}

// intersect returns the plane distance in (Epsilon, tMax) and the edge
// coordinates of the hit point.
func (p *planar) intersect(ray core.Ray, tMax float64) (t, u, v float64, ok bool) {
	y, z := (p.axis+1)%3, (p.axis+2)%3
	o, d := ray.Origin, ray.Direction

	t = -(o.Axis(p.axis) + p.invT[6]*o.Axis(y) + p.invT[7]*o.Axis(z) + p.invT[8]) /
		(d.Axis(p.axis) + p.invT[6]*d.Axis(y) + p.invT[7]*d.Axis(z))
	// NaN from a ray parallel to the plane fails both comparisons
	if !(t > core.Epsilon && t < tMax) {
		return 0, 0, 0, false
	}

	py := o.Axis(y) + t*d.Axis(y)
	pz := o.Axis(z) + t*d.Axis(z)
	u, v = p.coords(py, pz)
	return t, u, v, true
}

func (p *planar) coords(py, pz float64) (float64, float64) {
	return p.invT[0]*py + p.invT[1]*pz + p.invT[2], p.invT[3]*py + p.invT[4]*pz + p.invT[5]
}

func (p *planar) pointCoords(point core.Vec3) (float64, float64) {
	return p.coords(point.Axis((p.axis+1)%3), point.Axis((p.axis+2)%3))
}

func (p *planar) facing(ray core.Ray, twoSided bool) core.Vec3 {
	if twoSided && p.normal.Dot(ray.Direction) > 0 {
		return p.normal.Negate()
	}
	return p.normal
}

// Triangle represents a single triangle. Its front face is the side the
// normal (b-a) × (c-a) points to.
type Triangle struct {
	A, B, C  core.Vec3
	TwoSided bool // Both faces are front faces
	plane    planar
	material material.Material
	box      core.AABB
}

// NewTriangle creates a new triangle, failing if the vertices are collinear
func NewTriangle(a, b, c core.Vec3, material material.Material) (*Triangle, error) {
	plane, err := newPlanar(a, b, c)
	if err != nil {
		return nil, err
	}
	return &Triangle{
		A:        a,
		B:        b,
		C:        c,
		plane:    plane,
		material: material,
		box:      core.NewAABBFromPoints(a, b, c).Padded(core.Epsilon),
	}, nil
}

// Hit tests if a ray intersects with the triangle
func (tr *Triangle) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	tc.Counters.TriangleTests++
	t, u, v, ok := tr.plane.intersect(ray, tMax)
	if !ok || u < 0 || v < 0 || u+v > 1 {
		return false
	}
	rec.T = t
	rec.Object = tr
	return true
}

// BoundingBox returns the bounding box of the triangle
func (tr *Triangle) BoundingBox() core.AABB {
	return tr.box
}

// Normal returns the geometric normal, flipped towards the ray for two-sided triangles
func (tr *Triangle) Normal(point core.Vec3, ray core.Ray, sampler core.Sampler) core.Vec3 {
	return tr.plane.facing(ray, tr.TwoSided)
}

// UV returns the barycentric coordinates of point along the two edges from A
func (tr *Triangle) UV(point, normal core.Vec3) core.Vec2 {
	return core.NewVec2(tr.plane.pointCoords(point))
}

// Material returns the triangle's material
func (tr *Triangle) Material() material.Material {
	return tr.material
}
