package renderer

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// Plastic constant: the R2 sequence steps by its reciprocal powers
const plastic = 1.324717957244746026

// Options contains the image and sampling configuration of a render
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int   // Samples of the final pass
	PreviewSamples  int   // Samples of the preview pass, 0 to skip it
	Workers         int   // Rendering goroutines including the caller, <= 0 for one per CPU
	Seed            int64 // Base seed of the per-worker random streams
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		PreviewSamples:  5,
		Workers:         0,
		Seed:            1,
	}
}

// Frame is the result of a render pass
type Frame struct {
	Width  int
	Height int

	// Pixels holds packed 8-bit RGB, row-major with the top image row first
	Pixels []byte

	// Radiance holds the averaged linear radiance in the same pixel order
	Radiance []core.Vec3
}

// Pixel returns the tone mapped color at image column x and row y, row 0 being the top
func (f *Frame) Pixel(x, y int) [3]byte {
	i := 3 * (x + y*f.Width)
	return [3]byte{f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2]}
}

// Renderer renders frames of a scene with a pool of workers
type Renderer struct {
	camera     *Camera
	integrator integrator.Integrator
	options    Options
	pool       *WorkerPool
	stats      RenderStats
	passes     int
}

// NewRenderer creates a renderer. The scene behind the integrator must not
// be modified while the renderer is in use.
func NewRenderer(camera *Camera, integ integrator.Integrator, options Options) (*Renderer, error) {
	if camera == nil {
		return nil, ErrNoCamera
	}
	if integ == nil {
		return nil, ErrNoIntegrator
	}
	if options.Width <= 0 || options.Height <= 0 {
		return nil, ErrInvalidResolution
	}
	if options.SamplesPerPixel <= 0 {
		return nil, ErrInvalidSamples
	}

	return &Renderer{
		camera:     camera,
		integrator: integ,
		options:    options,
		pool:       NewWorkerPool(options.Workers),
		stats: RenderStats{
			RenderID: uuid.New(),
			Width:    options.Width,
			Height:   options.Height,
		},
	}, nil
}

// Stats returns the statistics of all passes rendered so far
func (r *Renderer) Stats() RenderStats {
	stats := r.stats
	stats.Passes = append([]PassStats(nil), r.stats.Passes...)
	return stats
}

// Render renders the preview pass, if enabled, followed by the final pass,
// handing each finished frame to emit. Rendering stops at the first error
// returned by emit.
func (r *Renderer) Render(emit func(name string, frame *Frame) error) error {
	if r.options.PreviewSamples > 0 {
		frame, err := r.RenderPass("preview", r.options.PreviewSamples)
		if err != nil {
			return err
		}
		if err := emit("preview", frame); err != nil {
			return err
		}
	}

	frame, err := r.RenderPass("final", r.options.SamplesPerPixel)
	if err != nil {
		return err
	}
	return emit("final", frame)
}

// RenderPass renders a complete frame at the given number of samples per pixel
func (r *Renderer) RenderPass(name string, samples int) (*Frame, error) {
	if samples <= 0 {
		return nil, ErrInvalidSamples
	}

	width, height := r.options.Width, r.options.Height
	frame := &Frame{
		Width:    width,
		Height:   height,
		Pixels:   make([]byte, 3*width*height),
		Radiance: make([]core.Vec3, width*height),
	}

	// Every worker owns its random stream and counters for the whole pass
	contexts := make([]*geometry.TraceContext, r.pool.GetNumWorkers())
	jitter := make([]core.Vec2, len(contexts))
	for i := range contexts {
		seed := r.options.Seed + int64(r.passes)*int64(len(contexts)) + int64(i)
		contexts[i] = geometry.NewTraceContext(core.NewSeededSampler(seed))
		jitter[i] = contexts[i].Sampler.Get2D()
	}
	r.passes++

	logger.Infof("%s pass: %dx%d at %d spp on %d workers", name, width, height, samples, len(contexts))
	start := time.Now()

	var shared geometry.SharedCounters
	r.pool.Run(width, func(worker *Worker, column int) {
		tc := contexts[worker.ID]
		r.renderColumn(frame, column, samples, tc, &jitter[worker.ID])
	}, func(worker *Worker) {
		shared.Flush(&contexts[worker.ID].Counters)
	})

	columns := lo.Map(r.pool.Workers(), func(w *Worker, _ int) int { return w.Columns })
	pass := PassStats{
		Name:            name,
		SamplesPerPixel: samples,
		CameraRays:      uint64(width) * uint64(height) * uint64(samples),
		Duration:        time.Since(start),
		Counters:        shared.Snapshot(),
		Workers:         len(contexts),
		MaxColumns:      lo.Max(columns),
		MinColumns:      lo.Min(columns),
	}
	r.stats.Passes = append(r.stats.Passes, pass)

	logger.Infof("%s pass finished in %s", name, pass.Duration)
	return frame, nil
}

// renderColumn renders image column i bottom to top. Samples inside each
// pixel follow the worker's R2 sequence, which continues across pixels.
func (r *Renderer) renderColumn(frame *Frame, i, samples int, tc *geometry.TraceContext, jitter *core.Vec2) {
	ax := 1 / plastic
	ay := ax * ax
	width, height := float64(frame.Width), float64(frame.Height)

	for j := 0; j < frame.Height; j++ {
		var color core.Vec3
		for s := 0; s < samples; s++ {
			jitter.X += ax
			jitter.Y += ay
			jitter.X += float64(i) - math.Floor(jitter.X)
			jitter.Y += float64(j) - math.Floor(jitter.Y)

			ray := r.camera.GetRay(jitter.X/width, jitter.Y/height, tc.Sampler)
			color = color.Add(r.integrator.RayColor(ray, tc))
		}
		color = color.Multiply(1 / float64(samples))

		index := i + (frame.Height-1-j)*frame.Width
		frame.Radiance[index] = color
		rgb := ToneMap(color)
		copy(frame.Pixels[3*index:3*index+3], rgb[:])
	}
}
