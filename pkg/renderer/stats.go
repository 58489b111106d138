package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// PassStats contains statistics about a single render pass
type PassStats struct {
	Name            string
	SamplesPerPixel int
	CameraRays      uint64 // width * height * samples per pixel
	Duration        time.Duration
	Counters        geometry.Counters // Intersection tests performed during the pass
	Workers         int
	MaxColumns      int // Most columns rendered by a single worker
	MinColumns      int // Fewest columns rendered by a single worker
}

// RenderStats collects the statistics of every pass of a render
type RenderStats struct {
	RenderID uuid.UUID
	Width    int
	Height   int
	Passes   []PassStats
}

// Total returns the duration and counters summed over all passes
func (s RenderStats) Total() (time.Duration, geometry.Counters) {
	var duration time.Duration
	var counters geometry.Counters
	for _, pass := range s.Passes {
		duration += pass.Duration
		counters.Add(pass.Counters)
	}
	return duration, counters
}

// Table renders the statistics as a text table
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "render %s (%dx%d)\n", s.RenderID, s.Width, s.Height)

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Pass", "SPP", "Camera rays", "Sphere tests", "Triangle tests", "Node visits", "Box tests", "Columns/worker", "Time"})
	for _, pass := range s.Passes {
		table.Append([]string{
			pass.Name,
			fmt.Sprintf("%d", pass.SamplesPerPixel),
			fmt.Sprintf("%d", pass.CameraRays),
			fmt.Sprintf("%d", pass.Counters.SphereTests),
			fmt.Sprintf("%d", pass.Counters.TriangleTests),
			fmt.Sprintf("%d", pass.Counters.NodeVisits),
			fmt.Sprintf("%d", pass.Counters.BoxTests),
			fmt.Sprintf("%d-%d", pass.MinColumns, pass.MaxColumns),
			pass.Duration.Round(time.Millisecond).String(),
		})
	}

	duration, counters := s.Total()
	table.SetFooter([]string{
		"TOTAL", "", "",
		fmt.Sprintf("%d", counters.SphereTests),
		fmt.Sprintf("%d", counters.TriangleTests),
		fmt.Sprintf("%d", counters.NodeVisits),
		fmt.Sprintf("%d", counters.BoxTests),
		"",
		duration.Round(time.Millisecond).String(),
	})
	table.Render()
	return buf.String()
}
