package pdf

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Importance pairs a light-targeting PDF with its selection priority.
type Importance struct {
	Priority float64
	PDF      PDF
}

// Registry holds the scene's light importance samplers. It is filled while
// the scene is built and only read while rendering.
//
// The material's own PDF always takes part in sampling with an implicit
// priority of 1, so PrioritySum is the sum of the registered priorities plus one.
type Registry struct {
	entries  []Importance
	priority float64
}

// NewRegistry creates a registry from the given importance samplers
func NewRegistry(entries ...Importance) *Registry {
	r := &Registry{}
	for _, entry := range entries {
		r.Add(entry.Priority, entry.PDF)
	}
	return r
}

// Add registers a light-targeting PDF. Non-positive priorities are ignored.
func (r *Registry) Add(priority float64, p PDF) {
	if priority <= 0 || p == nil {
		return
	}
	r.entries = append(r.entries, Importance{Priority: priority, PDF: p})
	r.priority = lo.SumBy(r.entries, func(e Importance) float64 { return e.Priority })
}

// Len returns the number of registered light samplers
func (r *Registry) Len() int {
	return len(r.entries)
}

// PrioritySum returns the registered priorities plus one for the material strategy
func (r *Registry) PrioritySum() float64 {
	return 1 + r.priority
}

// Sample picks a strategy with probability proportional to its priority,
// draws a direction from it, and returns that direction together with the
// priority-weighted sum of every strategy's density for it. Dividing by
// the returned value and multiplying by PrioritySum gives the balance
// heuristic estimator.
func (r *Registry) Sample(material PDF, origin, normal core.Vec3, sampler core.Sampler) (core.Vec3, float64) {
	chosen := material
	u := sampler.Get1D() * r.PrioritySum()
	if u >= 1 {
		u -= 1
		for _, entry := range r.entries {
			chosen = entry.PDF
			if u < entry.Priority {
				break
			}
			u -= entry.Priority
		}
	}

	direction, _ := chosen.Generate(origin, normal, sampler)
	direction = direction.Normalize()
	return direction, r.Value(material, origin, normal, direction)
}

// Value returns the priority-weighted density sum for direction
func (r *Registry) Value(material PDF, origin, normal, direction core.Vec3) float64 {
	combined := material.Value(origin, normal, direction)
	for _, entry := range r.entries {
		combined += entry.Priority * entry.PDF.Value(origin, normal, direction)
	}
	return combined
}

// String returns a string representation for debugging
func (r *Registry) String() string {
	if len(r.entries) == 0 {
		return "Registry{no lights}"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Registry{%d lights, prioritySum %.2f:\n", len(r.entries), r.PrioritySum())
	for i, entry := range r.entries {
		fmt.Fprintf(&b, "  [%d] %T: %.1f%%\n", i, entry.PDF, 100*entry.Priority/r.PrioritySum())
	}
	b.WriteString("}")
	return b.String()
}
