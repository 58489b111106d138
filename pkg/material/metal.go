package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter reflects the ray about the normal, perturbed by a point in a
// ball of radius Fuzzness. Rays pushed below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterRecord, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzzness))
	}
	reflected = reflected.Normalize()

	return ScatterRecord{
		Attenuation: m.Albedo,
		Specular:    true,
		Scattered:   core.NewRay(hit.Point, reflected),
	}, reflected.Dot(hit.Normal) > 0
}

// ScatteringPDF is zero: a delta distribution has no density to evaluate
func (m *Metal) ScatteringPDF(hit SurfaceInteraction, direction core.Vec3) float64 {
	return 0
}
