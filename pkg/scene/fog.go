package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// fogCoefficient dims light by exp(fogCoefficient * distance)
const fogCoefficient = -0.05

// NewFogScene creates two rows of spheres fading into the distance under an
// open sky, lit by a warm sphere light
func NewFogScene(opts Options) (*Scene, error) {
	s := newScene("fog", opts)
	s.setCamera(core.NewVec3(0, 2.5, 10), core.NewVec3(0, -1.5, -10), 60, 16.0/9.0, 0.05, 10, 960)
	s.Sky = true
	s.Fog = fogCoefficient

	ground := material.NewTexturedLambertian(material.NewNoise(2, opts.Seed))
	s.Add(geometry.NewSphere(core.NewVec3(0, -5000, 0), 5000, ground))

	for k := 0; k < 10; k++ {
		z := 2 - 5*float64(k)
		s.Add(
			geometry.NewSphere(core.NewVec3(-3, 1, z), 1, material.NewLambertian(s.color(.2, .9))),
			geometry.NewSphere(core.NewVec3(3, 1, z), 1, material.NewMetal(s.color(.5, 1), s.uniform(0, .3))),
		)
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, 1, -4), 1, material.NewDielectric(1.5)))

	s.AddSphereLight(core.NewVec3(0, 8, -6), 2, core.NewVec3(12, 10, 7), 1)

	s.logSummary()
	return s, nil
}
