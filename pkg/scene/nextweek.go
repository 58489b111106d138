package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewNextWeekScene creates the showcase scene: a field of boxes under a
// ceiling light, spheres of every material, a blue subsurface ball, a thin
// mist over everything and a rotated cluster of small balls.
func NewNextWeekScene(opts Options) (*Scene, error) {
	s := newScene("next-week", opts)
	s.setCamera(core.NewVec3(478, 278, -600), core.NewVec3(-200, 0, 600), 40, 1, 3, 600, 720)

	ground := material.NewLambertian(core.NewVec3(.48, .83, .53))
	glass := material.NewDielectric(1.5)

	const boxWidth = 100.0
	for i := -5; i < 8; i++ {
		for j := -2; j < 7; j++ {
			if i == 0 && j == 2 {
				continue
			}
			corner := core.NewVec3(boxWidth*float64(i), 0, boxWidth*float64(j))
			size := core.NewVec3(boxWidth, s.uniform(1, 100), boxWidth)
			if err := s.AddBox(size, corner, 0, ground); err != nil {
				return nil, err
			}
		}
	}
	err := s.AddBox(core.NewVec3(.999*boxWidth, 106, .999*boxWidth), core.NewVec3(.0005*boxWidth, 0, 2.0005*boxWidth), 0, glass)
	if err != nil {
		return nil, err
	}

	s.AddSphereLight(core.NewVec3(50, 50, 250), 25, core.NewVec3(2, 2, 2), .25)
	err = s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(423, 554, 147), core.NewVec3(113, 554, 412),
		core.NewVec3(7, 7, 7), 1)
	if err != nil {
		return nil, err
	}

	mesh, err := loadMesh(opts, geometry.MeshTransform{
		Axis:     up,
		Angle:    180,
		Scale:    140,
		Position: core.NewVec3(60, 175.336, 250),
	}, goldMetal())
	if err != nil {
		return nil, err
	}
	if mesh != nil {
		object, err := group(mesh)
		if err != nil {
			return nil, err
		}
		s.Add(object)
	}

	earth, err := earthMaterial(opts, 100)
	if err != nil {
		return nil, err
	}
	s.Add(
		geometry.NewSphere(core.NewVec3(415, 400, 200), 50, material.NewLambertian(core.NewVec3(.7, .3, .1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(.8, .8, .9), .8)),
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoise(.1, opts.Seed))),
	)

	// Glass ball filled with a blue medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	s.Add(boundary, geometry.NewConstantMedium(boundary, .02, core.NewVec3(.2, .4, .9)))

	// Mist around the whole scene
	mist := geometry.NewSphere(core.NewVec3(100, 50, 200), 800, glass)
	s.Add(geometry.NewConstantMedium(mist, 8e-5, core.NewVec3(1, 1, 1)))

	cluster, err := s.ballCluster()
	if err != nil {
		return nil, err
	}
	s.Add(cluster)

	s.logSummary()
	return s, nil
}

// ballCluster scatters balls over the shell of a 165-unit cube, rotated
// -15 degrees about the vertical axis, and wraps them in a BVH
func (s *Scene) ballCluster() (geometry.Primitive, error) {
	white := material.NewLambertian(core.NewVec3(.73, .73, .73))
	angle := -15 * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)

	var balls []geometry.Primitive
	for i := 0; i < 1000; i++ {
		r := s.color(0, 165)
		if r.Y > 10 && r.Y < 158 && math.Max(r.X, 165-r.Z) < 135 && math.Max(165-r.X, r.Z) > 40 {
			continue
		}
		center := core.NewVec3(-100+r.X*cos-r.Z*sin, 270+r.Y, 395+r.X*sin+r.Z*cos)
		balls = append(balls, geometry.NewSphere(center, 10, white))
	}
	return group(balls)
}
