package geometry

import (
	"container/heap"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BVHTree shares the BVHNode hierarchy but traverses it best-first: pending
// subtrees wait in a priority queue keyed by their box entry distance, so
// the closest candidate anywhere in the tree is always expanded next.
type BVHTree struct {
	composite
	root Primitive
}

// NewBVHTree builds a SAH hierarchy over primitives for best-first traversal
func NewBVHTree(primitives []Primitive) (*BVHTree, error) {
	root, err := NewBVHNode(primitives)
	if err != nil {
		return nil, err
	}
	return &BVHTree{root: root}, nil
}

// BoundingBox returns the root's box
func (t *BVHTree) BoundingBox() core.AABB {
	return t.root.BoundingBox()
}

// Hit returns the nearest hit in (Epsilon, tMax)
func (t *BVHTree) Hit(ray core.Ray, tMax float64, tc *TraceContext, rec *HitRecord) bool {
	inv := ray.Inverse()

	// Borrow the worker's scratch queue; a nested tree finds none and allocates its own
	queue := tc.queue[:0]
	tc.queue = nil

	queue.push(queueEntry{t: core.Epsilon, prim: t.root})

	hitAnything := false
	for queue.Len() > 0 {
		if queue[0].t >= tMax {
			break
		}
		h := queue.pop().prim

		// t0 bounds how far we may go before another queued subtree could be closer
		t0 := math.Inf(1)
		if queue.Len() > 0 {
			t0 = queue[0].t + core.Epsilon
		}

		for h != nil {
			node, ok := h.(*BVHNode)
			if !ok {
				break
			}
			tc.Counters.NodeVisits++
			h = nil

			tc.Counters.BoxTests++
			hitLeft, tLeft := node.Left.BoundingBox().HitInverse(inv, tMax)
			tc.Counters.BoxTests++
			hitRight, tRight := node.Right.BoundingBox().HitInverse(inv, tMax)

			switch {
			case hitLeft && hitRight:
				near, far, tNear, tFar := node.Left, node.Right, tLeft, tRight
				if tRight <= tLeft {
					near, far, tNear, tFar = node.Right, node.Left, tRight, tLeft
				}
				queue.push(queueEntry{t: tFar, prim: far})
				if tNear < t0 {
					h = near
					t0 = math.Min(t0, tFar+core.Epsilon)
				} else {
					queue.push(queueEntry{t: tNear, prim: near})
				}
			case hitLeft:
				if tLeft < t0 {
					h = node.Left
				} else {
					queue.push(queueEntry{t: tLeft, prim: node.Left})
				}
			case hitRight:
				if tRight < t0 {
					h = node.Right
				} else {
					queue.push(queueEntry{t: tRight, prim: node.Right})
				}
			}
		}

		if h != nil && h.Hit(ray, tMax, tc, rec) {
			hitAnything = true
			tMax = rec.T
		}
	}

	tc.queue = queue[:0]
	return hitAnything
}

type queueEntry struct {
	t    float64
	prim Primitive
}

// nodeQueue is a min-heap of pending subtrees ordered by box entry distance.
type nodeQueue []queueEntry

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].t < q[j].t }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueEntry)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	old[n-1] = queueEntry{}
	*q = old[:n-1]
	return entry
}

// push and pop avoid boxing entries into interfaces on the hot path
func (q *nodeQueue) push(entry queueEntry) {
	*q = append(*q, entry)
	heap.Fix(q, len(*q)-1)
}

func (q *nodeQueue) pop() queueEntry {
	old := *q
	top := old[0]
	n := len(old) - 1
	old[0] = old[n]
	old[n] = queueEntry{}
	*q = old[:n]
	if n > 0 {
		heap.Fix(q, 0)
	}
	return top
}
