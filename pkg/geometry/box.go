package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox creates an outward-facing box of six quads. The box spans size from
// corner and is rotated by angleY degrees about the vertical axis through corner.
func NewBox(size, corner core.Vec3, angleY float64, material material.Material) (*List, error) {
	angle := angleY * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)

	// p returns the box corner at unit offsets (x, y, z)
	p := func(x, y, z float64) core.Vec3 {
		lx, ly, lz := x*size.X, y*size.Y, z*size.Z
		return corner.Add(core.NewVec3(lx*cos-lz*sin, ly, lx*sin+lz*cos))
	}

	// Each face is (corner, adjacent, adjacent) ordered so the normal points out
	faces := [6][3]core.Vec3{
		{p(0, 0, 0), p(1, 0, 0), p(0, 0, 1)}, // bottom
		{p(0, 1, 0), p(0, 1, 1), p(1, 1, 0)}, // top
		{p(0, 0, 0), p(0, 1, 0), p(1, 0, 0)}, // front (z-)
		{p(0, 0, 1), p(1, 0, 1), p(0, 1, 1)}, // back (z+)
		{p(0, 0, 0), p(0, 0, 1), p(0, 1, 0)}, // left (x-)
		{p(1, 0, 0), p(1, 1, 0), p(1, 0, 1)}, // right (x+)
	}

	box := NewList()
	for _, f := range faces {
		quad, err := NewQuad(f[0], f[1], f[2], material)
		if err != nil {
			return nil, err
		}
		box.Add(quad)
	}
	return box, nil
}
