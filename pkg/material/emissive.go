package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight is a light-emitting material. It emits only from its front
// face and absorbs every incoming ray.
type DiffuseLight struct {
	Emission Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a new emitter with uniform emission
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new emitter whose emission varies over the surface
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter never continues the path
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterRecord, bool) {
	var record ScatterRecord
	if hit.FrontFace {
		record.Emitted = e.Emission.Evaluate(hit.UV, hit.Point)
	}
	return record, false
}

// ScatteringPDF is zero: lights don't reflect
func (e *DiffuseLight) ScatteringPDF(hit SurfaceInteraction, direction core.Vec3) float64 {
	return 0
}
