package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker is a 3D checkerboard: the sign parity of sin(8p) on each axis
// selects between two colors.
type Checker struct {
	Even, Odd core.Vec3
}

// NewChecker creates a new 3D checker texture
func NewChecker(even, odd core.Vec3) *Checker {
	return &Checker{Even: even, Odd: odd}
}

// Evaluate implements Texture
func (c *Checker) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	odd := (math.Sin(8*point.X) < 0) != (math.Sin(8*point.Y) < 0)
	odd = odd != (math.Sin(8*point.Z) < 0)
	if odd {
		return c.Odd
	}
	return c.Even
}
