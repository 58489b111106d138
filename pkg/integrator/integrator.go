package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, tc *geometry.TraceContext) core.Vec3
}

// Config holds the path tracing parameters
type Config struct {
	MaxDepth      int     // Maximum number of surface interactions per path
	MinThroughput float64 // Paths whose fog-weighted throughput drops below this are cut off

	// FogCoefficient scales the total distance travelled in the exponent of
	// the fog transmittance exp(FogCoefficient * distance). Zero disables fog,
	// negative values attenuate.
	FogCoefficient float64

	Sky     bool      // Whether rays leaving the scene pick up the sky gradient
	SkyDown core.Vec3 // Sky color looking straight down
	SkyUp   core.Vec3 // Sky color looking straight up
}

// DefaultConfig returns sensible defaults for path tracing
func DefaultConfig() Config {
	return Config{
		MaxDepth:       30,
		MinThroughput:  1e-4,
		FogCoefficient: 0,
		Sky:            false,
		SkyDown:        core.NewVec3(0.18, 0.09, 0.03),
		SkyUp:          core.NewVec3(0, 0, 0),
	}
}

// Termination tells why a path stopped
type Termination int

const (
	Escaped     Termination = iota // Left the scene
	Absorbed                       // The material did not scatter
	DepthLimit                     // MaxDepth interactions reached
	Cutoff                         // Throughput fell below MinThroughput
	ZeroDensity                    // The sampled direction had no density
)

func (t Termination) String() string {
	switch t {
	case Escaped:
		return "escaped"
	case Absorbed:
		return "absorbed"
	case DepthLimit:
		return "depth limit"
	case Cutoff:
		return "cutoff"
	case ZeroDensity:
		return "zero density"
	}
	return "unknown"
}

// PathResult is the outcome of tracing a single camera path
type PathResult struct {
	Color       core.Vec3   // Accumulated radiance
	Throughput  core.Vec3   // Throughput when the path stopped
	Bounces     int         // Number of surface interactions
	Distance    float64     // Total distance travelled along the path
	Termination Termination // Why the path stopped
}

// PathTracingIntegrator implements unidirectional path tracing with
// multiple importance sampling between the material and the scene lights
type PathTracingIntegrator struct {
	root     geometry.Primitive
	registry *pdf.Registry
	config   Config
}

// NewPathTracingIntegrator creates a path tracer over the scene root. A nil
// registry samples materials only.
func NewPathTracingIntegrator(root geometry.Primitive, registry *pdf.Registry, config Config) *PathTracingIntegrator {
	if registry == nil {
		registry = pdf.NewRegistry()
	}
	return &PathTracingIntegrator{root: root, registry: registry, config: config}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, tc *geometry.TraceContext) core.Vec3 {
	return pt.Trace(ray, tc).Color
}

// Trace follows a path from ray until it escapes, is absorbed or is cut off
func (pt *PathTracingIntegrator) Trace(ray core.Ray, tc *geometry.TraceContext) PathResult {
	result := PathResult{Throughput: core.NewVec3(1, 1, 1)}
	current := ray

	for {
		var rec geometry.HitRecord
		if !pt.root.Hit(current, math.Inf(1), tc, &rec) {
			if pt.config.Sky {
				result.Color = result.Color.Add(result.Throughput.MultiplyVec(pt.sky(current)))
			}
			result.Termination = Escaped
			return result
		}

		si := rec.Interaction(current, tc.Sampler)
		scatter, ok := rec.Object.Material().Scatter(current, si, tc.Sampler)

		result.Distance += rec.T * current.Direction.Length()
		fog := pt.fog(result.Distance)
		result.Color = result.Color.Add(result.Throughput.MultiplyVec(scatter.Emitted).Multiply(fog))
		result.Bounces++

		if !ok {
			result.Termination = Absorbed
			return result
		}
		if result.Bounces >= pt.config.MaxDepth {
			result.Termination = DepthLimit
			return result
		}

		result.Throughput = result.Throughput.MultiplyVec(scatter.Attenuation)
		if pt.cutOff(result.Throughput, fog) {
			result.Termination = Cutoff
			return result
		}

		if scatter.Specular {
			current = scatter.Scattered
			continue
		}
		if scatter.PDF == nil {
			result.Termination = ZeroDensity
			return result
		}

		direction, combined := pt.registry.Sample(scatter.PDF, si.Point, si.Normal, tc.Sampler)
		if !(combined > 0) {
			result.Termination = ZeroDensity
			return result
		}
		weight := rec.Object.Material().ScatteringPDF(si, direction) * pt.registry.PrioritySum() / combined
		result.Throughput = result.Throughput.Multiply(weight)
		if pt.cutOff(result.Throughput, fog) {
			result.Termination = Cutoff
			return result
		}
		current = core.NewRay(si.Point, direction)
	}
}

func (pt *PathTracingIntegrator) cutOff(throughput core.Vec3, fog float64) bool {
	return fog*throughput.MaxComponent() < pt.config.MinThroughput
}

// fog returns the transmittance after travelling distance
func (pt *PathTracingIntegrator) fog(distance float64) float64 {
	if pt.config.FogCoefficient == 0 {
		return 1
	}
	return math.Exp(pt.config.FogCoefficient * distance)
}

// sky returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) sky(r core.Ray) core.Vec3 {
	t := 0.5 * (r.Direction.Normalize().Y + 1.0)
	return pt.config.SkyDown.Multiply(1.0 - t).Add(pt.config.SkyUp.Multiply(t))
}
