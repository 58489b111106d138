package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MeshTransform places a mesh in the scene. The mesh is first fitted into a
// unit cube centered at the origin, then rotated by Angle degrees about
// Axis, scaled uniformly and moved to Position.
type MeshTransform struct {
	Axis     core.Vec3
	Angle    float64 // degrees
	Scale    float64
	Position core.Vec3
}

// Apply returns the transformed copy of vertices
func (m MeshTransform) Apply(vertices []core.Vec3) []core.Vec3 {
	if len(vertices) == 0 {
		return nil
	}

	bounds := core.NewAABBFromPoints(vertices...)
	center := bounds.Center()
	fit := 1.0
	if extent := bounds.Size().MaxComponent(); extent > 0 {
		fit = 1 / extent
	}

	z := m.Axis.Normalize()
	x, y := core.OrthonormalBasis(z)
	angle := m.Angle * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)

	out := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		v = v.Subtract(center).Multiply(fit)
		vx, vy, vz := v.Dot(x), v.Dot(y), v.Dot(z)
		rotated := x.Multiply(vx*cos - vy*sin).
			Add(y.Multiply(vx*sin + vy*cos)).
			Add(z.Multiply(vz))
		out[i] = m.Position.Add(rotated.Multiply(m.Scale))
	}
	return out
}

// NewTriangleMesh creates one triangle per face. Faces hold 0-based vertex
// indices. A face that references a missing vertex or collapses to a line
// is an error.
func NewTriangleMesh(vertices []core.Vec3, faces [][3]int, material material.Material) ([]Primitive, error) {
	triangles := make([]Primitive, 0, len(faces))
	for i, face := range faces {
		for _, index := range face {
			if index < 0 || index >= len(vertices) {
				return nil, errors.Errorf("face %d: vertex index %d out of range [0, %d)", i, index, len(vertices))
			}
		}
		triangle, err := NewTriangle(vertices[face[0]], vertices[face[1]], vertices[face[2]], material)
		if err != nil {
			return nil, errors.Wrapf(err, "face %d", i)
		}
		triangles = append(triangles, triangle)
	}
	return triangles, nil
}
