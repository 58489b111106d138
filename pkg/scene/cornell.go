package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewCornellScene creates the classic Cornell box: a 555-unit room with a
// red and a green wall, a ceiling light and two rotated white boxes. With a
// mesh file the mesh takes the place of the tall box.
func NewCornellScene(opts Options) (*Scene, error) {
	s := newScene("cornell", opts)
	s.setCamera(core.NewVec3(278, 278, -800), core.NewVec3(0, 0, 1), 40, 1, 3, 600, 720)

	red := material.NewLambertian(core.NewVec3(.65, .05, .05))
	white := material.NewLambertian(core.NewVec3(.73, .73, .73))
	green := material.NewLambertian(core.NewVec3(.12, .45, .15))

	walls := []struct {
		a, b, c core.Vec3
		mat     material.Material
	}{
		{core.NewVec3(555, 0, 0), core.NewVec3(555, 0, 555), core.NewVec3(555, 555, 0), green},
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 555, 0), core.NewVec3(0, 0, 555), red},
		{core.NewVec3(0, 555, 555), core.NewVec3(555, 555, 555), core.NewVec3(0, 0, 555), white},
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 555), core.NewVec3(555, 0, 0), white},
		{core.NewVec3(0, 555, 0), core.NewVec3(555, 555, 0), core.NewVec3(0, 555, 555), white},
	}
	for _, wall := range walls {
		quad, err := geometry.NewQuad(wall.a, wall.b, wall.c, wall.mat)
		if err != nil {
			return nil, err
		}
		s.Add(quad)
	}

	err := s.AddQuadLight(core.NewVec3(213, 554, 227), core.NewVec3(343, 554, 227), core.NewVec3(213, 554, 332),
		core.NewVec3(15, 15, 15), 1)
	if err != nil {
		return nil, err
	}

	mesh, err := loadMesh(opts, geometry.MeshTransform{
		Axis:     up,
		Angle:    180,
		Scale:    320,
		Position: core.NewVec3(278, 153, 320),
	}, material.NewTexturedLambertian(material.NewNoise(.09, opts.Seed)))
	if err != nil {
		return nil, err
	}
	if mesh != nil {
		object, err := group(mesh)
		if err != nil {
			return nil, err
		}
		s.Add(object)
	} else if err := s.AddBox(core.NewVec3(165, 330, 165), core.NewVec3(265, 0, 295), -15, white); err != nil {
		return nil, err
	}

	if err := s.AddBox(core.NewVec3(165, 165, 165), core.NewVec3(130, 0, 65), 18, white); err != nil {
		return nil, err
	}

	s.logSummary()
	return s, nil
}
