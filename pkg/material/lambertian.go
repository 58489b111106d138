package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance (can be solid or textured)
	lobe   pdf.Cosine
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return NewTexturedLambertian(NewSolidColor(albedo))
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo, lobe: pdf.NewCosine(1)}
}

// Scatter implements the Material interface for lambertian scattering.
// The direction is left to the integrator, which samples the cosine lobe
// together with the scene's light samplers.
func (l *Lambertian) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: l.Albedo.Evaluate(hit.UV, hit.Point),
		Scattered:   core.Ray{Origin: hit.Point},
		PDF:         l.lobe,
	}, true
}

// ScatteringPDF is cos(θ)/π above the surface and zero below it
func (l *Lambertian) ScatteringPDF(hit SurfaceInteraction, direction core.Vec3) float64 {
	cosTheta := hit.Normal.Dot(direction)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}
