package geometry

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestTriangleAcceptanceRegion(t *testing.T) {
	// Triangle in the z=0 plane with edges along X and Y
	tri, err := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	quad, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		x, y       float64
		hitsTri    bool
		hitsQuad   bool
		expectedUV core.Vec2
	}{
		{"Inside both", 0.2, 0.2, true, true, core.NewVec2(0.2, 0.2)},
		{"Upper half of quad only", 0.8, 0.8, false, true, core.NewVec2(0.8, 0.8)},
		{"Outside on x", 1.2, 0.2, false, false, core.Vec2{}},
		{"Negative y", 0.2, -0.1, false, false, core.Vec2{}},
		{"Near hypotenuse inside", 0.49, 0.49, true, true, core.NewVec2(0.49, 0.49)},
		{"Near hypotenuse outside", 0.51, 0.51, false, true, core.NewVec2(0.51, 0.51)},
	}

	tc := newTestContext(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dir := range []float64{-1, 1} {
				ray := core.NewRay(core.NewVec3(tt.x, tt.y, -2*dir), core.NewVec3(0, 0, dir))

				var rec HitRecord
				if got := tri.Hit(ray, math.Inf(1), tc, &rec); got != tt.hitsTri {
					t.Errorf("Triangle hit=%v, expected %v", got, tt.hitsTri)
				} else if got && math.Abs(rec.T-2) > 1e-9 {
					t.Errorf("Triangle t=%f, expected 2", rec.T)
				}

				if got := quad.Hit(ray, math.Inf(1), tc, &rec); got != tt.hitsQuad {
					t.Errorf("Quad hit=%v, expected %v", got, tt.hitsQuad)
				} else if got {
					uv := quad.UV(ray.At(rec.T), core.Vec3{})
					if math.Abs(uv.X-tt.expectedUV.X) > 1e-9 || math.Abs(uv.Y-tt.expectedUV.Y) > 1e-9 {
						t.Errorf("Quad UV %v, expected %v", uv, tt.expectedUV)
					}
				}
			}
		})
	}
}

// The plane solve must work whichever axis dominates the normal
func TestTriangleDominantAxes(t *testing.T) {
	tc := newTestContext(2)
	tests := []struct {
		name    string
		a, b, c core.Vec3
		ray     core.Ray
	}{
		{
			"X dominant",
			core.NewVec3(2, 0, 0), core.NewVec3(2, 1, 0), core.NewVec3(2, 0, 1),
			core.NewRay(core.NewVec3(0, 0.25, 0.25), core.NewVec3(1, 0, 0)),
		},
		{
			"Y dominant",
			core.NewVec3(0, 2, 0), core.NewVec3(0, 2, 1), core.NewVec3(1, 2, 0),
			core.NewRay(core.NewVec3(0.25, 0, 0.25), core.NewVec3(0, 1, 0)),
		},
		{
			"Z dominant, tilted",
			core.NewVec3(0, 0, 2), core.NewVec3(1, 0, 2.3), core.NewVec3(0, 1, 2.1),
			core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(0, 0, 1)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri, err := NewTriangle(tt.a, tt.b, tt.c, nil)
			if err != nil {
				t.Fatal(err)
			}
			var rec HitRecord
			if !tri.Hit(tt.ray, math.Inf(1), tc, &rec) {
				t.Fatal("Expected a hit")
			}
			// The hit point must lie in the triangle's plane
			normal := tt.b.Subtract(tt.a).Cross(tt.c.Subtract(tt.a)).Normalize()
			if d := tt.ray.At(rec.T).Subtract(tt.a).Dot(normal); math.Abs(d) > 1e-9 {
				t.Errorf("Hit point is %g off the plane", d)
			}
		})
	}
}

func TestTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c core.Vec3
	}{
		{"Collinear", core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2)},
		{"Repeated vertex", core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTriangle(tt.a, tt.b, tt.c, nil); !errors.Is(err, ErrDegenerateTriangle) {
				t.Errorf("Expected ErrDegenerateTriangle, got %v", err)
			}
			if _, err := NewQuad(tt.a, tt.b, tt.c, nil); !errors.Is(err, ErrDegenerateTriangle) {
				t.Errorf("Expected ErrDegenerateTriangle, got %v", err)
			}
		})
	}
}

func TestTriangleTwoSided(t *testing.T) {
	tri, err := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	front := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	back := core.NewRay(core.NewVec3(0.2, 0.2, -1), core.NewVec3(0, 0, 1))

	if n := tri.Normal(core.Vec3{}, back, nil); n != core.NewVec3(0, 0, 1) {
		t.Errorf("One-sided triangle should keep its normal, got %v", n)
	}
	tri.TwoSided = true
	if n := tri.Normal(core.Vec3{}, back, nil); n != core.NewVec3(0, 0, -1) {
		t.Errorf("Two-sided triangle should face the ray, got %v", n)
	}
	if n := tri.Normal(core.Vec3{}, front, nil); n != core.NewVec3(0, 0, 1) {
		t.Errorf("Two-sided triangle seen from the front, got %v", n)
	}
}

func TestQuadBoundingBoxCoversFourthCorner(t *testing.T) {
	quad, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 3), nil)
	if err != nil {
		t.Fatal(err)
	}
	box := quad.BoundingBox()
	fourth := core.NewAABB(core.NewVec3(3, 0, 3), core.NewVec3(3, 0, 3))
	if !box.Contains(fourth, 0) {
		t.Errorf("Box %v does not contain the fourth corner", box)
	}
	if box.Size().Y <= 0 {
		t.Error("Flat quad box should be padded")
	}
}

func TestNewBox(t *testing.T) {
	box, err := NewBox(core.NewVec3(1, 2, 3), core.NewVec3(10, 0, 0), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if box.Len() != 6 {
		t.Fatalf("Expected 6 faces, got %d", box.Len())
	}
	bounds := core.NewAABB(core.NewVec3(10, 0, 0), core.NewVec3(11, 2, 3))
	if !box.BoundingBox().Contains(bounds, 0) || !bounds.Contains(box.BoundingBox(), 2*core.Epsilon) {
		t.Errorf("Unexpected bounds %v", box.BoundingBox())
	}

	// Every face is hit from outside on its front side
	tc := newTestContext(1)
	center := core.NewVec3(10.5, 1, 1.5)
	for _, dir := range []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	} {
		ray := core.NewRay(center.Add(dir.Multiply(10)), dir.Negate())
		var rec HitRecord
		if !box.Hit(ray, math.Inf(1), tc, &rec) {
			t.Fatalf("Ray from %v missed the box", dir)
		}
		if si := rec.Interaction(ray, tc.Sampler); !si.FrontFace {
			t.Errorf("Face seen from %v should be a front face", dir)
		}
	}
}

func TestNewBoxRotated(t *testing.T) {
	box, err := NewBox(core.NewVec3(1, 1, 1), core.Vec3{}, 90, nil)
	if err != nil {
		t.Fatal(err)
	}
	// x' = x cos - z sin, z' = x sin + z cos: a quarter turn maps [0,1]x[0,1] to [-1,0]x[0,1]
	expected := core.NewAABB(core.NewVec3(-1, 0, 0), core.NewVec3(0, 1, 1))
	if !expected.Contains(box.BoundingBox(), 2*core.Epsilon) || !box.BoundingBox().Contains(expected, 1e-9) {
		t.Errorf("Unexpected rotated bounds %v", box.BoundingBox())
	}
}
