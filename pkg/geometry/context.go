package geometry

import (
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Counters are intersection statistics gathered by a single worker.
type Counters struct {
	SphereTests   uint64
	TriangleTests uint64
	NodeVisits    uint64
	BoxTests      uint64
}

// Add accumulates other into c
func (c *Counters) Add(other Counters) {
	c.SphereTests += other.SphereTests
	c.TriangleTests += other.TriangleTests
	c.NodeVisits += other.NodeVisits
	c.BoxTests += other.BoxTests
}

// SharedCounters are totals shared by all workers of a render.
type SharedCounters struct {
	sphereTests   atomic.Uint64
	triangleTests atomic.Uint64
	nodeVisits    atomic.Uint64
	boxTests      atomic.Uint64
}

// Flush moves a worker's local counts into the shared totals and resets them
func (s *SharedCounters) Flush(local *Counters) {
	s.sphereTests.Add(local.SphereTests)
	s.triangleTests.Add(local.TriangleTests)
	s.nodeVisits.Add(local.NodeVisits)
	s.boxTests.Add(local.BoxTests)
	*local = Counters{}
}

// Snapshot returns the current totals
func (s *SharedCounters) Snapshot() Counters {
	return Counters{
		SphereTests:   s.sphereTests.Load(),
		TriangleTests: s.triangleTests.Load(),
		NodeVisits:    s.nodeVisits.Load(),
		BoxTests:      s.boxTests.Load(),
	}
}

// TraceContext is the per-worker state threaded through intersection and
// shading: the worker's own random stream, its local counters and scratch
// space for best-first traversal. A context must not be shared between goroutines.
type TraceContext struct {
	Sampler  core.Sampler
	Counters Counters
	queue    nodeQueue
}

// NewTraceContext creates a context around a worker's sampler
func NewTraceContext(sampler core.Sampler) *TraceContext {
	return &TraceContext{Sampler: sampler}
}
