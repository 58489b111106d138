package geometry

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

var (
	// ErrTooFewPrimitives is returned when a BVH is built over fewer than two primitives.
	ErrTooFewPrimitives = errors.New("geometry: a BVH needs at least 2 primitives")
)

var bvhLogger = log.New("bvh")

// BVHNode is an internal node of a bounding volume hierarchy. Each child is
// either another node or a primitive; single primitives are never wrapped in
// a node. The node's box is the union of its children's boxes.
type BVHNode struct {
	composite
	Left, Right Primitive
	box         core.AABB
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	nodes    int
	leafs    int
	maxDepth int
}

// NewBVHNode builds a hierarchy over primitives using the surface area
// heuristic. The input slice is not modified.
func NewBVHNode(primitives []Primitive) (*BVHNode, error) {
	if len(primitives) < 2 {
		return nil, errors.Wrapf(ErrTooFewPrimitives, "got %d", len(primitives))
	}

	work := make([]Primitive, len(primitives))
	copy(work, primitives)

	var stats bvhStats
	start := time.Now()
	root := buildBVH(work, 0, &stats)
	bvhLogger.Debugf(
		"BVH build time: %d ms, primitives: %d, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Milliseconds(), len(primitives), stats.maxDepth, stats.nodes, stats.leafs,
	)
	return root, nil
}

// buildBVH sorts work along each axis by the boxes' maximum coordinate and
// scores every split position with leftArea*leftCount + rightArea*rightCount.
// len(work) must be at least 2.
func buildBVH(work []Primitive, depth int, stats *bvhStats) *BVHNode {
	stats.nodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	nb := len(work)
	bestAxis, bestSplit := 0, 1
	bestScore := math.Inf(1)
	// surfaces[i] is the area of the union of work[0..i]
	surfaces := make([]float64, nb-1)

	for axis := 0; axis < 3; axis++ {
		sortByMax(work, axis)

		box := work[0].BoundingBox()
		for i := 0; i < nb-1; i++ {
			if i > 0 {
				box = box.Surround(work[i].BoundingBox())
			}
			surfaces[i] = box.Surface()
		}

		box = work[nb-1].BoundingBox()
		for i := nb - 1; i > 0; i-- {
			if i < nb-1 {
				box = box.Surround(work[i].BoundingBox())
			}
			score := box.Surface()*float64(nb-i) + surfaces[i-1]*float64(i)
			if score < bestScore {
				bestScore = score
				bestAxis = axis
				bestSplit = i
			}
		}
	}

	// The last sort was along Z
	if bestAxis < 2 {
		sortByMax(work, bestAxis)
	}

	node := &BVHNode{
		Left:  buildChild(work[:bestSplit], depth+1, stats),
		Right: buildChild(work[bestSplit:], depth+1, stats),
	}
	node.box = node.Left.BoundingBox().Surround(node.Right.BoundingBox())
	return node
}

func buildChild(work []Primitive, depth int, stats *bvhStats) Primitive {
	if len(work) == 1 {
		stats.leafs++
		if depth > stats.maxDepth {
			stats.maxDepth = depth
		}
		return work[0]
	}
	return buildBVH(work, depth, stats)
}

func sortByMax(work []Primitive, axis int) {
	sort.Slice(work, func(i, j int) bool {
		return work[i].BoundingBox().Max.Axis(axis) < work[j].BoundingBox().Max.Axis(axis)
	})
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.box
}

// Hit traverses the hierarchy front to back. The node's own box is assumed
// to have been tested by the caller.
func (n *BVHNode) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	return n.hit(ray, ray.Inverse(), tMax, tc, rec)
}

func (n *BVHNode) hit(ray, inv core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	tc.Counters.NodeVisits++
	tc.Counters.BoxTests += 2
	hitLeft, tLeft := n.Left.BoundingBox().HitInverse(inv, tMax)
	hitRight, tRight := n.Right.BoundingBox().HitInverse(inv, tMax)

	switch {
	case hitLeft && hitRight:
		near, far, tFar := n.Left, n.Right, tRight
		if tRight < tLeft {
			near, far, tFar = n.Right, n.Left, tLeft
		}
		if hitChild(near, ray, inv, tMax, tc, rec) {
			// Only the far subtree can still hold a closer hit, and only
			// if it starts before the near hit
			if rec.T > tFar {
				hitChild(far, ray, inv, rec.T, tc, rec)
			}
			return true
		}
		return hitChild(far, ray, inv, tMax, tc, rec)
	case hitLeft:
		return hitChild(n.Left, ray, inv, tMax, tc, rec)
	case hitRight:
		return hitChild(n.Right, ray, inv, tMax, tc, rec)
	}
	return false
}

// hitChild keeps the precomputed inverse ray for nested nodes
func hitChild(child Primitive, ray, inv core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	if node, ok := child.(*BVHNode); ok {
		return node.hit(ray, inv, tMax, tc, rec)
	}
	return child.Hit(ray, tMax, tc, rec)
}
