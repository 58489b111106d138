package geometry

import (
	"github.com/samber/lo"

	"github.com/df07/go-pathtracer/pkg/core"
)

// List is a flat collection of primitives tested one after another.
type List struct {
	composite
	Objects []Primitive
	box     core.AABB
}

// NewList creates a list from the given primitives
func NewList(objects ...Primitive) *List {
	l := &List{}
	for _, object := range objects {
		l.Add(object)
	}
	return l
}

// Add appends a primitive and grows the list's bounding box
func (l *List) Add(object Primitive) {
	if len(l.Objects) == 0 {
		l.box = object.BoundingBox()
	} else {
		l.box = l.box.Surround(object.BoundingBox())
	}
	l.Objects = append(l.Objects, object)
}

// AddAll appends every primitive of objects
func (l *List) AddAll(objects []Primitive) {
	for _, object := range objects {
		l.Add(object)
	}
}

// Len returns the number of primitives in the list
func (l *List) Len() int {
	return len(l.Objects)
}

// Hit returns the nearest hit among all primitives
func (l *List) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	hitAnything := false
	for _, object := range l.Objects {
		if object.Hit(ray, tMax, tc, rec) {
			hitAnything = true
			tMax = rec.T
		}
	}
	return hitAnything
}

// BoundingBox returns the union of the primitives' boxes
func (l *List) BoundingBox() core.AABB {
	return l.box
}

// Materials returns the distinct materials used by directly held primitives
func (l *List) Materials() int {
	return len(lo.Uniq(lo.FilterMap(l.Objects, func(p Primitive, _ int) (any, bool) {
		m := p.Material()
		return m, m != nil
	})))
}
