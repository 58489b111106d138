package renderer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

func testCamera() *Camera {
	return NewCamera(CameraConfig{
		Position:      core.NewVec3(0, 0, 0),
		Direction:     core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   1,
		FocusDistance: 3,
	})
}

// lightAbove is a single emitter in the upper part of the test camera's view
func lightAbove() geometry.Primitive {
	return geometry.NewList(geometry.NewSphere(core.NewVec3(0, 2, -3), 0.8, material.NewDiffuseLight(core.NewVec3(1, 1, 1))))
}

func TestNewRendererValidation(t *testing.T) {
	integ := integrator.NewPathTracingIntegrator(lightAbove(), nil, integrator.DefaultConfig())

	tests := []struct {
		name    string
		camera  *Camera
		integ   integrator.Integrator
		options Options
		want    error
	}{
		{"no camera", nil, integ, DefaultOptions(), ErrNoCamera},
		{"no integrator", testCamera(), nil, DefaultOptions(), ErrNoIntegrator},
		{"zero width", testCamera(), integ, Options{Width: 0, Height: 10, SamplesPerPixel: 1}, ErrInvalidResolution},
		{"negative height", testCamera(), integ, Options{Width: 10, Height: -1, SamplesPerPixel: 1}, ErrInvalidResolution},
		{"no samples", testCamera(), integ, Options{Width: 10, Height: 10}, ErrInvalidSamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenderer(tt.camera, tt.integ, tt.options)
			if errors.Cause(err) != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRenderPassImageLayout(t *testing.T) {
	integ := integrator.NewPathTracingIntegrator(lightAbove(), nil, integrator.DefaultConfig())
	r, err := NewRenderer(testCamera(), integ, Options{Width: 20, Height: 20, SamplesPerPixel: 4, Workers: 4, Seed: 1})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	frame, err := r.RenderPass("test", 4)
	if err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}
	if len(frame.Pixels) != 3*20*20 || len(frame.Radiance) != 20*20 {
		t.Fatalf("Unexpected buffer sizes %d and %d", len(frame.Pixels), len(frame.Radiance))
	}

	// The light sits in the top of the image, which comes first in the buffer
	if got := frame.Radiance[10+3*20]; got != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected the light near the top, got %v", got)
	}
	if got := frame.Pixel(10, 3); got != [3]byte{255, 255, 255} {
		t.Errorf("Expected a white pixel near the top, got %v", got)
	}
	if got := frame.Radiance[10+16*20]; got != (core.Vec3{}) {
		t.Errorf("Expected darkness near the bottom, got %v", got)
	}
	if got := frame.Pixel(10, 16); got != [3]byte{3, 3, 3} {
		t.Errorf("Expected a floored black pixel near the bottom, got %v", got)
	}
}

func TestRenderPassCounters(t *testing.T) {
	integ := integrator.NewPathTracingIntegrator(lightAbove(), nil, integrator.DefaultConfig())
	r, err := NewRenderer(testCamera(), integ, Options{Width: 16, Height: 9, SamplesPerPixel: 3, Workers: 3, Seed: 1})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, err := r.RenderPass("test", 3); err != nil {
		t.Fatalf("RenderPass failed: %v", err)
	}

	stats := r.Stats()
	if len(stats.Passes) != 1 {
		t.Fatalf("Expected 1 pass, got %d", len(stats.Passes))
	}
	pass := stats.Passes[0]
	if pass.CameraRays != 16*9*3 {
		t.Errorf("Expected %d camera rays, got %d", 16*9*3, pass.CameraRays)
	}
	// Every camera ray either misses or stops at the light after one test
	if pass.Counters.SphereTests != pass.CameraRays {
		t.Errorf("Expected one sphere test per camera ray, got %d for %d rays", pass.Counters.SphereTests, pass.CameraRays)
	}
	if pass.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", pass.Workers)
	}
	if pass.MinColumns < 0 || pass.MaxColumns > 16 || pass.MinColumns > pass.MaxColumns {
		t.Errorf("Inconsistent column counts %d-%d", pass.MinColumns, pass.MaxColumns)
	}
}

func TestRenderIsDeterministicPerSeed(t *testing.T) {
	ground := geometry.NewSphere(core.NewVec3(0, -1003, -3), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	light := geometry.NewSphere(core.NewVec3(0, 2, -3), 0.8, material.NewDiffuseLight(core.NewVec3(3, 3, 3)))
	integ := integrator.NewPathTracingIntegrator(geometry.NewList(ground, light), nil, integrator.DefaultConfig())
	options := Options{Width: 12, Height: 12, SamplesPerPixel: 4, Workers: 1, Seed: 7}

	render := func(options Options) *Frame {
		r, err := NewRenderer(testCamera(), integ, options)
		if err != nil {
			t.Fatalf("NewRenderer failed: %v", err)
		}
		frame, err := r.RenderPass("test", options.SamplesPerPixel)
		if err != nil {
			t.Fatalf("RenderPass failed: %v", err)
		}
		return frame
	}

	first := render(options)
	second := render(options)
	if !reflect.DeepEqual(first.Radiance, second.Radiance) {
		t.Error("Expected identical radiance for identical seeds")
	}

	options.Seed = 8
	third := render(options)
	if reflect.DeepEqual(first.Radiance, third.Radiance) {
		t.Error("Expected different radiance for a different seed")
	}
}

func TestRenderRunsPreviewThenFinal(t *testing.T) {
	integ := integrator.NewPathTracingIntegrator(lightAbove(), nil, integrator.DefaultConfig())
	r, err := NewRenderer(testCamera(), integ, Options{Width: 8, Height: 8, SamplesPerPixel: 4, PreviewSamples: 1, Workers: 2, Seed: 1})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var names []string
	err = r.Render(func(name string, frame *Frame) error {
		names = append(names, name)
		return nil
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"preview", "final"}) {
		t.Errorf("Expected preview then final, got %v", names)
	}

	stats := r.Stats()
	if len(stats.Passes) != 2 || stats.Passes[0].SamplesPerPixel != 1 || stats.Passes[1].SamplesPerPixel != 4 {
		t.Errorf("Unexpected passes %+v", stats.Passes)
	}

	table := stats.Table()
	for _, want := range []string{stats.RenderID.String(), "preview", "final", "Sphere tests", "TOTAL"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}

func TestRenderStopsOnEmitError(t *testing.T) {
	integ := integrator.NewPathTracingIntegrator(lightAbove(), nil, integrator.DefaultConfig())
	r, err := NewRenderer(testCamera(), integ, Options{Width: 4, Height: 4, SamplesPerPixel: 2, PreviewSamples: 1, Workers: 1})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	boom := errors.New("disk full")
	calls := 0
	err = r.Render(func(name string, frame *Frame) error {
		calls++
		return boom
	})
	if err != boom {
		t.Errorf("Expected the emit error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected rendering to stop after the preview, got %d calls", calls)
	}
	if _, err := r.RenderPass("bad", 0); errors.Cause(err) != ErrInvalidSamples {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}
}
