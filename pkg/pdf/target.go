package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TargetCosine is a cosine-power lobe aimed from the shading point at a
// spherical light. The power grows with the squared distance so that the
// lobe's angular width tracks the light's apparent radius. The surface
// normal is ignored.
type TargetCosine struct {
	Center   core.Vec3
	powerMul float64
}

// NewTargetCosine aims a cosine lobe at the sphere (center, radius)
func NewTargetCosine(center core.Vec3, radius float64) TargetCosine {
	return TargetCosine{Center: center, powerMul: 2 / (radius * radius)}
}

func (p TargetCosine) lobe(origin core.Vec3) (core.Vec3, float64) {
	toLight := p.Center.Subtract(origin)
	dist2 := toLight.LengthSquared()
	return toLight.Multiply(1 / math.Sqrt(dist2)), p.powerMul * dist2
}

// Value returns the density of the lobe aimed from origin at the light
func (p TargetCosine) Value(origin, normal, direction core.Vec3) float64 {
	axis, power := p.lobe(origin)
	return cosineDensity(axis.Dot(direction), power)
}

// Generate draws a direction from the lobe aimed from origin at the light
func (p TargetCosine) Generate(origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64) {
	axis, power := p.lobe(origin)
	return sampleCosineLobe(axis, power, sampler)
}

// TargetCone samples uniformly over the cone of directions subtended by a
// spherical light as seen from the shading point. From inside the sphere
// the cone opens to the full sphere of directions.
type TargetCone struct {
	Center core.Vec3
	rad2   float64
}

// NewTargetCone aims a cone at the sphere (center, radius)
func NewTargetCone(center core.Vec3, radius float64) TargetCone {
	return TargetCone{Center: center, rad2: radius * radius}
}

func (p TargetCone) cone(origin core.Vec3) (core.Vec3, float64) {
	toLight := p.Center.Subtract(origin)
	dist2 := toLight.LengthSquared()
	axis := toLight.Multiply(1 / math.Sqrt(dist2))
	if dist2 <= p.rad2 {
		return axis, -1
	}
	return axis, clampCosMax(math.Sqrt(1 - p.rad2/dist2))
}

// Value returns the density of the cone the light subtends from origin
func (p TargetCone) Value(origin, normal, direction core.Vec3) float64 {
	axis, cosMax := p.cone(origin)
	if axis.Dot(direction) < cosMax {
		return 0
	}
	return coneDensity(cosMax)
}

// Generate draws a direction uniformly within the cone the light subtends from origin
func (p TargetCone) Generate(origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64) {
	axis, cosMax := p.cone(origin)
	return sampleCone(axis, cosMax, sampler), coneDensity(cosMax)
}
