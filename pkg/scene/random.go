package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// smallLightPriority is the importance of each glowing sphere in the grid
const smallLightPriority = 0.05

// NewRandomScene creates a field of small random spheres on a checkered
// ground around three large ones. With a mesh file the mesh replaces the
// large spheres.
func NewRandomScene(opts Options) (*Scene, error) {
	s := newScene("random", opts)

	camPos := core.NewVec3(13.6, 2, 3.6)
	s.setCamera(camPos, camPos.Negate(), 30, 16.0/9.0, 0.09, 10, 1280)

	checker := material.NewChecker(core.NewVec3(.6, .6, .6), core.NewVec3(1, .3, .1))
	s.Add(geometry.NewSphere(core.NewVec3(0, -5000, 0), 5000, material.NewTexturedLambertian(checker)))

	mesh, err := loadMesh(opts, geometry.MeshTransform{
		Axis:     up,
		Angle:    90,
		Scale:    2,
		Position: core.NewVec3(4, .96, 1),
	}, goldMetal())
	if err != nil {
		return nil, err
	}

	s.addSphereGrid(mesh != nil)

	if mesh != nil {
		s.Add(mesh...)
	} else {
		glass := material.NewDielectric(1.5)
		s.Add(
			geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(.4, .2, .1))),
			geometry.NewSphere(core.NewVec3(0, .95, 0), .95, glass),
			geometry.NewInvertedSphere(core.NewVec3(0, .95, 0), .75, glass),
			geometry.NewSphere(core.NewVec3(4, .9, 0), .9, material.NewMetal(core.NewVec3(.7, .6, .5), 0)),
		)
	}

	earth, err := earthMaterial(opts, .5)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewSphere(core.NewVec3(4, 1.3, 2.7), .5, earth))

	s.logSummary()
	return s, nil
}

// addSphereGrid scatters small spheres of random materials over the ground,
// keeping clear of the large objects
func (s *Scene) addSphereGrid(mesh bool) {
	type clearing struct {
		center core.Vec3
		dist2  float64
	}
	clearings := []clearing{
		{core.NewVec3(4, .9, 0), 1.21},
		{core.NewVec3(0, .95, 0), 1.33},
		{core.NewVec3(-4, 1, 0), 1.44},
	}
	if mesh {
		clearings = []clearing{{core.NewVec3(4, .2, 1), 1}}
	}

	for x := -10; x <= 9; x++ {
	grid:
		for z := -8; z <= 4; z++ {
			center := core.NewVec3(float64(x)+.66*s.uniform(0, 1), .2, float64(z)+.66*s.uniform(0, 1))
			for _, c := range clearings {
				if center.Subtract(c.center).LengthSquared() < c.dist2 {
					continue grid
				}
			}

			choice := s.uniform(0, 1)
			switch {
			case choice < .5:
				albedo := s.color(0, 1).MultiplyVec(s.color(0, 1))
				s.Add(geometry.NewSphere(center, .2, material.NewLambertian(albedo)))
			case choice < .8:
				albedo := s.color(.5, 1)
				s.Add(geometry.NewSphere(center, .2, material.NewMetal(albedo, s.uniform(0, .5))))
			case choice < .9:
				s.AddSphereLight(center, .2, s.color(.5, 2.8), smallLightPriority)
			default:
				s.Add(geometry.NewSphere(center, .2, material.NewDielectric(1.5)))
			}
		}
	}
}
