package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func newTestContext(seed int64) *TraceContext {
	return NewTraceContext(core.NewRandomSampler(rand.New(rand.NewSource(seed))))
}

func TestSphereHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	tests := []struct {
		name      string
		ray       core.Ray
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits sphere center",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			tMax:      math.Inf(1),
			shouldHit: true,
			expectedT: 0.5,
		},
		{
			name:      "Ray misses sphere",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			tMax:      math.Inf(1),
			shouldHit: false,
		},
		{
			name:      "Ray from inside takes the far root",
			ray:       core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1)),
			tMax:      math.Inf(1),
			shouldHit: true,
			expectedT: 0.5,
		},
		{
			name:      "Hit beyond tMax",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			tMax:      0.4,
			shouldHit: false,
		},
		{
			name:      "Sphere behind ray",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			tMax:      math.Inf(1),
			shouldHit: false,
		},
		{
			name:      "Tangent ray misses",
			ray:       core.NewRay(core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, -1)),
			tMax:      math.Inf(1),
			shouldHit: false,
		},
		{
			name:      "Non-unit direction",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2)),
			tMax:      math.Inf(1),
			shouldHit: true,
			expectedT: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec HitRecord
			hit := sphere.Hit(tt.ray, tt.tMax, newTestContext(1), &rec)
			if hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit)
			}
			if hit {
				if math.Abs(rec.T-tt.expectedT) > 1e-9 {
					t.Errorf("Expected t=%f, got %f", tt.expectedT, rec.T)
				}
				if rec.Object != sphere {
					t.Error("Hit record should reference the sphere")
				}
			}
		})
	}
}

func TestSphereRoundTrip(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	tc := newTestContext(2)

	for i := 0; i < 1000; i++ {
		center := core.NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
		radius := 0.1 + random.Float64()*3
		sphere := NewSphere(center, radius, nil)

		// Fire from outside at a random point inside the sphere: always a chord
		dir := core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
		origin := center.Add(dir.Multiply(radius * 3))
		target := center.Add(core.SamplePointInUnitSphere(core.NewVec3(random.Float64(), random.Float64(), random.Float64())).Multiply(radius * 0.9))
		ray := core.NewRay(origin, target.Subtract(origin).Normalize())

		var rec HitRecord
		if !sphere.Hit(ray, math.Inf(1), tc, &rec) {
			t.Fatalf("Ray %v should hit sphere at %v radius %f", ray, center, radius)
		}
		if d := ray.At(rec.T).Subtract(center).Length(); math.Abs(d-radius) > 1e-9*math.Max(1, radius) {
			t.Fatalf("Hit point is %f from center, expected %f", d, radius)
		}
	}
	if tc.Counters.SphereTests != 1000 {
		t.Errorf("Expected 1000 sphere tests, got %d", tc.Counters.SphereTests)
	}
}

func TestSphereNormalAndUV(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	sphere := NewSphere(center, 2, nil)
	inverted := NewInvertedSphere(center, 2, nil)
	point := center.Add(core.NewVec3(0, 2, 0))
	ray := core.NewRay(core.NewVec3(1, 10, 3), core.NewVec3(0, -1, 0))

	if n := sphere.Normal(point, ray, nil); n != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected outward normal (0,1,0), got %v", n)
	}
	if n := inverted.Normal(point, ray, nil); n != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected inward normal (0,-1,0), got %v", n)
	}

	// Top pole maps to v=1, bottom pole to v=0
	if uv := sphere.UV(point, core.NewVec3(0, 1, 0)); math.Abs(uv.Y-1) > 1e-12 {
		t.Errorf("Expected v=1 at the top pole, got %f", uv.Y)
	}
	bottom := center.Add(core.NewVec3(0, -2, 0))
	if uv := sphere.UV(bottom, core.NewVec3(0, -1, 0)); math.Abs(uv.Y) > 1e-12 {
		t.Errorf("Expected v=0 at the bottom pole, got %f", uv.Y)
	}
}

func TestHitRecordInteraction(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	tc := newTestContext(3)

	tests := []struct {
		name      string
		ray       core.Ray
		frontFace bool
	}{
		{"From outside", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), true},
		{"From inside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec HitRecord
			if !sphere.Hit(tt.ray, math.Inf(1), tc, &rec) {
				t.Fatal("Expected a hit")
			}
			si := rec.Interaction(tt.ray, tc.Sampler)
			if si.FrontFace != tt.frontFace {
				t.Errorf("Expected front face %v, got %v", tt.frontFace, si.FrontFace)
			}
			if si.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Shading normal %v should face the incoming ray", si.Normal)
			}
			if math.Abs(si.Point.Length()-1) > 1e-9 {
				t.Errorf("Hit point %v is not on the sphere", si.Point)
			}
		})
	}
}
