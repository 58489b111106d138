package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material describes how light interacts with a surface or medium.
type Material interface {
	// Scatter samples the material at a hit. The returned record always carries
	// the emitted radiance; the boolean reports whether the path continues.
	Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the material's density for scattering toward direction.
	// It must agree with Value of the PDF the material reports in its records.
	ScatteringPDF(hit SurfaceInteraction, direction core.Vec3) float64
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Emitted     core.Vec3 // Radiance emitted at the hit
	Attenuation core.Vec3 // Color attenuation
	Specular    bool      // Delta distribution, Scattered is the only possible direction
	Scattered   core.Ray  // Outgoing ray, set for specular records
	PDF         pdf.PDF   // Sampling strategy for non-specular records
}

// SurfaceInteraction is the shading information resolved for a hit
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal facing against the incoming ray
	UV        core.Vec2 // Surface coordinates
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
