package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

var up = core.NewVec3(0, 1, 0)

// Options selects the optional assets and the random layout of a scene
type Options struct {
	MeshFile    string // OBJ mesh shown by scenes that have one, empty to leave it out
	TextureFile string // Image wrapped around the earth spheres, empty for a procedural stand-in
	Seed        int64  // Seed of the random layout
}

// Scene contains everything a render needs besides the image settings
type Scene struct {
	Name   string
	Camera renderer.CameraConfig
	Width  int // Default image width
	Height int // Default image height

	Sky bool    // Rays leaving the scene pick up the sky gradient
	Fog float64 // Fog coefficient applied to the travelled distance

	Objects *geometry.List // Top-level primitives, wrapped in a BVH by Root
	Lights  *pdf.Registry  // Importance samplers aimed at the emitters

	random core.Sampler
}

// newScene creates an empty scene whose random layout follows opts.Seed
func newScene(name string, opts Options) *Scene {
	return &Scene{
		Name:    name,
		Objects: geometry.NewList(),
		Lights:  pdf.NewRegistry(),
		random:  core.NewSeededSampler(opts.Seed),
	}
}

// setCamera places the camera. fov is the horizontal field of view in
// degrees; the image height follows from width and aspect.
func (s *Scene) setCamera(position, direction core.Vec3, fov, aspect, aperture, focus float64, width int) {
	s.Camera = renderer.CameraConfig{
		Position:      position,
		Direction:     direction,
		Up:            up,
		VFov:          verticalFOV(fov, aspect),
		AspectRatio:   aspect,
		Aperture:      aperture,
		FocusDistance: focus,
	}
	s.Width = width
	s.Height = int(math.Round(float64(width) / aspect))
}

// verticalFOV converts a horizontal field of view to a vertical one, both in degrees
func verticalFOV(hfov, aspect float64) float64 {
	half := hfov * math.Pi / 360
	return 2 * math.Atan(math.Tan(half)/aspect) * 180 / math.Pi
}

// Add appends primitives to the top level of the scene
func (s *Scene) Add(objects ...geometry.Primitive) {
	for _, object := range objects {
		s.Objects.Add(object)
	}
}

// AddSphereLight adds an emissive sphere and aims an importance sampler at it
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3, priority float64) {
	s.Add(geometry.NewSphere(center, radius, material.NewDiffuseLight(emission)))
	s.Lights.Add(priority, pdf.NewTargetCone(center, radius))
}

// AddQuadLight adds an emissive quad, lit on the side its normal points to,
// and aims an importance sampler at the sphere that bounds it
func (s *Scene) AddQuadLight(a, b, c, emission core.Vec3, priority float64) error {
	quad, err := geometry.NewQuad(a, b, c, material.NewDiffuseLight(emission))
	if err != nil {
		return err
	}
	s.Add(quad)

	center := b.Add(c).Multiply(0.5)
	radius := math.Max(center.Subtract(a).Length(), center.Subtract(b).Length())
	s.Lights.Add(priority, pdf.NewTargetCone(center, radius))
	return nil
}

// AddBox adds a box of six quads, see geometry.NewBox
func (s *Scene) AddBox(size, corner core.Vec3, angleY float64, mat material.Material) error {
	box, err := geometry.NewBox(size, corner, angleY, mat)
	if err != nil {
		return err
	}
	s.Add(box.Objects...)
	return nil
}

// Root returns the primitive the integrator traces against. Scenes with at
// least two objects are wrapped in a BVH; tree selects best-first traversal
// over ordered descent.
func (s *Scene) Root(tree bool) (geometry.Primitive, error) {
	switch s.Objects.Len() {
	case 0:
		return s.Objects, nil
	case 1:
		return s.Objects.Objects[0], nil
	}

	if tree {
		root, err := geometry.NewBVHTree(s.Objects.Objects)
		if err != nil {
			return nil, err
		}
		return root, nil
	}
	root, err := geometry.NewBVHNode(s.Objects.Objects)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// NewCamera returns the scene camera, adjusted to the aspect ratio of a
// width x height image
func (s *Scene) NewCamera(width, height int) *renderer.Camera {
	config := s.Camera
	if width > 0 && height > 0 {
		config.AspectRatio = float64(width) / float64(height)
	}
	return renderer.NewCamera(config)
}

// uniform returns a uniform random number in [from, to)
func (s *Scene) uniform(from, to float64) float64 {
	return from + (to-from)*s.random.Get1D()
}

// color returns a random color with components in [from, to)
func (s *Scene) color(from, to float64) core.Vec3 {
	return core.NewVec3(s.uniform(from, to), s.uniform(from, to), s.uniform(from, to))
}

func (s *Scene) logSummary() {
	logger.Infof("scene %s: %d objects, %d materials, %d light samplers",
		s.Name, s.Objects.Len(), s.Objects.Materials(), s.Lights.Len())
}
