// Package pdf implements the direction sampling strategies shared by the
// materials and the integrator. Every PDF reports a density for a direction
// and can draw directions distributed according to that same density.
package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PDF is a direction sampling strategy. origin is the shading point and
// normal the surface normal there; directions are unit vectors.
//
// For any implementation, Value(origin, normal, d) must equal the density
// returned by Generate for the direction d it produced.
type PDF interface {
	Value(origin, normal, direction core.Vec3) float64
	Generate(origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64)
}

const uniformDensity = 1.0 / (4.0 * math.Pi)

// Uniform samples the whole sphere of directions with constant density 1/4π.
type Uniform struct{}

// UniformSphere is the shared stateless instance
var UniformSphere PDF = Uniform{}

// Value returns 1/4π for every direction
func (Uniform) Value(origin, normal, direction core.Vec3) float64 {
	return uniformDensity
}

// Generate draws a uniform direction on the unit sphere
func (Uniform) Generate(origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64) {
	return core.SampleOnUnitSphere(sampler.Get2D()), uniformDensity
}

// Cosine is a lobe around the normal with density ∝ cosθ^Power.
// Power 1 is the cosine-weighted hemisphere.
type Cosine struct {
	Power float64
}

// NewCosine creates a cosine-power lobe
func NewCosine(power float64) Cosine {
	return Cosine{Power: power}
}

// Value returns the lobe density, zero below the surface
func (c Cosine) Value(origin, normal, direction core.Vec3) float64 {
	return cosineDensity(normal.Dot(direction), c.Power)
}

// Generate draws a direction from the lobe around normal
func (c Cosine) Generate(origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64) {
	return sampleCosineLobe(normal, c.Power, sampler)
}

func cosineDensity(cosTheta, power float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return math.Pow(cosTheta, power) * (power + 1) / (2 * math.Pi)
}

// sampleCosineLobe inverts the CDF of cosθ, which is cosθ^(power+1).
func sampleCosineLobe(axis core.Vec3, power float64, sampler core.Sampler) (core.Vec3, float64) {
	sample := sampler.Get2D()
	cosTheta := math.Pow(sample.X, 1.0/(power+1))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y

	u, v := core.OrthonormalBasis(axis)
	direction := u.Multiply(sinTheta * math.Cos(phi)).
		Add(v.Multiply(sinTheta * math.Sin(phi))).
		Add(axis.Multiply(cosTheta))
	return direction, cosineDensity(cosTheta, power)
}

// Cone samples uniformly over the spherical cap of directions within
// acos(CosMax) of the normal.
type Cone struct {
	CosMax float64
	value  float64
}

// NewCone creates a cone PDF. cosMax is clamped to [-1, 1); -1 is the full sphere.
func NewCone(cosMax float64) Cone {
	cosMax = clampCosMax(cosMax)
	return Cone{CosMax: cosMax, value: coneDensity(cosMax)}
}

// Value returns the cap density inside the cone and zero outside
func (c Cone) Value(origin, normal, direction core.Vec3) float64 {
	if normal.Dot(direction) < c.CosMax {
		return 0
	}
	return c.value
}

// Generate draws a direction uniformly within the cone around normal
func (c Cone) Generate(origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64) {
	return sampleCone(normal, c.CosMax, sampler), c.value
}

const maxCosMax = 1 - 1e-12

func clampCosMax(cosMax float64) float64 {
	return math.Max(-1, math.Min(maxCosMax, cosMax))
}

func coneDensity(cosMax float64) float64 {
	return 1.0 / (2 * math.Pi * (1 - cosMax))
}

func sampleCone(axis core.Vec3, cosMax float64, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	cosTheta := 1 - sample.X*(1-cosMax)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y

	u, v := core.OrthonormalBasis(axis)
	return u.Multiply(sinTheta * math.Cos(phi)).
		Add(v.Multiply(sinTheta * math.Sin(phi))).
		Add(axis.Multiply(cosTheta))
}
