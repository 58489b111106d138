package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := SurfaceInteraction{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	record, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}
	if !record.Specular {
		t.Error("Metal scattering should be specular")
	}
	if record.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, record.Attenuation)
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if record.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, record.Scattered.Direction)
	}
	if record.Scattered.Origin != hit.Point {
		t.Errorf("Scattered ray should start at the hit point, got %v", record.Scattered.Origin)
	}
}

// A grazing ray with maximum fuzz is pushed below the surface often; those
// samples must be absorbed, the rest must stay above.
func TestMetal_RejectsBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))

	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0).Normalize())
	hit := SurfaceInteraction{Point: core.Vec3{}, Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	absorbed, reflected := 0, 0
	for i := 0; i < 1000; i++ {
		record, ok := metal.Scatter(rayIn, hit, sampler)
		above := record.Scattered.Direction.Dot(hit.Normal) > 0
		if ok != above {
			t.Fatalf("Scatter returned %t for direction %v", ok, record.Scattered.Direction)
		}
		if ok {
			reflected++
		} else {
			absorbed++
		}
	}
	if absorbed == 0 || reflected == 0 {
		t.Errorf("Expected both outcomes, got %d absorbed and %d reflected", absorbed, reflected)
	}
}

func TestMetal_ScatteredIsUnit(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0.3)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.2, -1, 0))
	hit := SurfaceInteraction{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	for i := 0; i < 100; i++ {
		record, _ := metal.Scatter(rayIn, hit, sampler)
		if l := record.Scattered.Direction.Length(); l < 1-1e-9 || l > 1+1e-9 {
			t.Fatalf("Expected unit direction, got length %f", l)
		}
	}
}
