package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Isotropic is the phase function of a participating medium: every
// direction is equally likely.
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// Scatter implements the Material interface for isotropic scattering
func (i *Isotropic) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
		Scattered:   core.Ray{Origin: hit.Point},
		PDF:         pdf.UniformSphere,
	}, true
}

// ScatteringPDF is constant over the sphere
func (i *Isotropic) ScatteringPDF(hit SurfaceInteraction, direction core.Vec3) float64 {
	return pdf.UniformSphere.Value(hit.Point, hit.Normal, direction)
}
