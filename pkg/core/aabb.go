package core

// AABB represents an axis-aligned bounding box. Min <= Max on every axis.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// Hit tests the ray against the box using the slab method. It returns the
// entry distance, which is never below Epsilon. The running interval is
// checked after every axis so most misses exit after the first slab.
func (aabb AABB) Hit(ray Ray, tMax float64) (bool, float64) {
	return aabb.HitInverse(ray.Inverse(), tMax)
}

// HitInverse is Hit for a ray whose direction already holds the reciprocal
// of the real direction components.
func (aabb AABB) HitInverse(inv Ray, tMax float64) (bool, float64) {
	t := Epsilon

	var ok bool
	if t, tMax, ok = slab(aabb.Min.X, aabb.Max.X, inv.Origin.X, inv.Direction.X, t, tMax); !ok {
		return false, t
	}
	if t, tMax, ok = slab(aabb.Min.Y, aabb.Max.Y, inv.Origin.Y, inv.Direction.Y, t, tMax); !ok {
		return false, t
	}
	t, tMax, ok = slab(aabb.Min.Z, aabb.Max.Z, inv.Origin.Z, inv.Direction.Z, t, tMax)
	return ok, t
}

// slab narrows [t, tMax) by one axis. invD may be ±Inf for axis-parallel rays;
// a NaN bound (origin exactly on the slab plane) leaves the interval untouched.
func slab(min, max, origin, invD, t, tMax float64) (float64, float64, bool) {
	var t0, t1 float64
	if invD < 0 {
		t0 = invD * (max - origin)
		t1 = invD * (min - origin)
	} else {
		t0 = invD * (min - origin)
		t1 = invD * (max - origin)
	}
	if t0 > t {
		t = t0
	}
	if t1 < tMax {
		tMax = t1
	}
	return t, tMax, t < tMax
}

// Padded returns the box grown by delta on both sides of every axis thinner
// than delta. Planar primitives use it so their boxes have a non-empty slab
// interval.
func (aabb AABB) Padded(delta float64) AABB {
	size := aabb.Size()
	pad := NewVec3(padAxis(size.X, delta), padAxis(size.Y, delta), padAxis(size.Z, delta))
	return AABB{Min: aabb.Min.Subtract(pad), Max: aabb.Max.Add(pad)}
}

func padAxis(size, delta float64) float64 {
	if size < delta {
		return delta
	}
	return 0
}

// Surround returns the smallest box containing both this box and other
func (aabb AABB) Surround(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Surface returns half the surface area of the box. The constant factor is
// irrelevant to the SAH cost comparison it feeds.
func (aabb AABB) Surface() float64 {
	d := aabb.Size()
	return d.X*(d.Y+d.Z) + d.Y*d.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if min <= max on all axes
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Contains reports whether other lies inside this box, within tolerance
func (aabb AABB) Contains(other AABB, tolerance float64) bool {
	return other.Min.X >= aabb.Min.X-tolerance && other.Max.X <= aabb.Max.X+tolerance &&
		other.Min.Y >= aabb.Min.Y-tolerance && other.Max.Y <= aabb.Max.Y+tolerance &&
		other.Min.Z >= aabb.Min.Z-tolerance && other.Max.Z <= aabb.Max.Z+tolerance
}
