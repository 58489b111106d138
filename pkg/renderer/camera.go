package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position      core.Vec3 // Camera position
	Direction     core.Vec3 // Viewing direction, need not be normalized
	Up            core.Vec3 // Up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height ratio
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus
}

// Camera generates rays through a thin lens
type Camera struct {
	config     CameraConfig
	origin     core.Vec3
	corner     core.Vec3 // Bottom-left corner of the focus plane
	horizontal core.Vec3
	vertical   core.Vec3
	u, v       core.Vec3
	lensRadius float64
}

// NewCamera creates a camera from config. A non-positive focus distance
// puts the focus plane at unit distance.
func NewCamera(config CameraConfig) *Camera {
	focus := config.FocusDistance
	if focus <= 0 {
		focus = 1
	}

	theta := config.VFov * math.Pi / 180
	height := 2 * math.Tan(theta/2)
	width := height * config.AspectRatio

	w := config.Direction.Normalize()
	u := w.Cross(config.Up).Normalize()
	v := u.Cross(w)

	horizontal := u.Multiply(width * focus)
	vertical := v.Multiply(height * focus)
	corner := config.Position.
		Add(w.Multiply(focus)).
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &Camera{
		config:     config,
		origin:     config.Position,
		corner:     corner,
		horizontal: horizontal,
		vertical:   vertical,
		u:          u,
		v:          v,
		lensRadius: config.Aperture / 2,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns a normalized ray through image coordinates (x, y), where
// (0, 0) is the bottom-left corner and (1, 1) the top-right one
func (c *Camera) GetRay(x, y float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		offset := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(offset.X)).Add(c.v.Multiply(offset.Y))
	}

	target := c.corner.Add(c.horizontal.Multiply(x)).Add(c.vertical.Multiply(y))
	return core.NewRay(origin, target.Subtract(origin).Normalize())
}
