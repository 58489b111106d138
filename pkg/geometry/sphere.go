package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Inverted bool // Normals point towards the center, for hollow shells
	material material.Material
	box      core.AABB
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	r := core.NewVec3(radius, radius, radius)
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
		box:      core.NewAABB(center.Subtract(r), center.Add(r)),
	}
}

// NewInvertedSphere creates a sphere whose normals point inwards
func NewInvertedSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	s := NewSphere(center, radius, material)
	s.Inverted = true
	return s
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	tc.Counters.SphereTests++

	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	discriminant := halfB*halfB - a*(oc.LengthSquared()-s.Radius*s.Radius)
	if discriminant <= 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (halfB - sqrtD) / a
	if t <= core.Epsilon {
		// Origin inside the sphere or just leaving it: take the far root
		t = (halfB + sqrtD) / a
		if t <= core.Epsilon {
			return false
		}
	}
	if t >= tMax {
		return false
	}

	rec.T = t
	rec.Object = s
	return true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.box
}

// Normal returns the unit normal at point
func (s *Sphere) Normal(point core.Vec3, ray core.Ray, sampler core.Sampler) core.Vec3 {
	if s.Inverted {
		return s.Center.Subtract(point).Multiply(1 / s.Radius)
	}
	return point.Subtract(s.Center).Multiply(1 / s.Radius)
}

// UV maps the point to longitude/latitude coordinates, with v=0 at the bottom pole
func (s *Sphere) UV(point, normal core.Vec3) core.Vec2 {
	p := point.Subtract(s.Center).Multiply(1 / s.Radius)
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.material
}
