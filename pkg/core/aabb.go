package core

import "math"

// aabbPadding is the minimum thickness of every bounding box axis.
// Flat primitives (quads, triangles lying in an axis plane) would otherwise
// produce zero-width slabs that the slab test cannot hit reliably.
const aabbPadding = 1e-4

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// NewAABB creates a box from per-axis intervals, padding degenerate axes
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}.Pad()
}

// NewAABBFromPoints creates the smallest box that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB()
	}

	minP := points[0]
	maxP := points[0]

	for _, point := range points[1:] {
		minP.X = math.Min(minP.X, point.X)
		minP.Y = math.Min(minP.Y, point.Y)
		minP.Z = math.Min(minP.Z, point.Z)

		maxP.X = math.Max(maxP.X, point.X)
		maxP.Y = math.Max(maxP.Y, point.Y)
		maxP.Z = math.Max(maxP.Z, point.Z)
	}

	return NewAABB(
		NewInterval(minP.X, maxP.X),
		NewInterval(minP.Y, maxP.Y),
		NewInterval(minP.Z, maxP.Z),
	)
}

// EmptyAABB returns a box that contains nothing; combining with it is the identity
func EmptyAABB() AABB {
	return AABB{X: EmptyInterval(), Y: EmptyInterval(), Z: EmptyInterval()}
}

// Pad widens every axis narrower than the minimum thickness.
// Empty axes are left alone so that EmptyAABB stays the combine identity.
func (aabb AABB) Pad() AABB {
	pad := func(i Interval) Interval {
		if i.IsEmpty() || i.Size() >= aabbPadding {
			return i
		}
		return i.Expand(aabbPadding / 2)
	}
	return AABB{X: pad(aabb.X), Y: pad(aabb.Y), Z: pad(aabb.Z)}
}

// Axis returns the interval for axis n (0=X, 1=Y, 2=Z)
func (aabb AABB) Axis(n int) Interval {
	switch n {
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		return aabb.X
	}
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method.
// A ray parallel to an axis (direction component +0 or -0) hits that slab
// only when its origin lies inside it, boundary planes included.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if direction == 0 {
			if !slab.Contains(origin) {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		// An overlap that shrinks to a single point counts as a miss
		rayT = rayT.Intersect(NewInterval(t0, t1))
		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// Combine returns the tightest box that bounds both boxes
func (aabb AABB) Combine(other AABB) AABB {
	return AABB{
		X: aabb.X.Combine(other.X),
		Y: aabb.Y.Combine(other.Y),
		Z: aabb.Z.Combine(other.Z),
	}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		a, b := aabb.Axis(axis), other.Axis(axis)
		if b.Min < a.Min || b.Max > a.Max {
			return false
		}
	}
	return true
}

// Shift translates the box by offset
func (aabb AABB) Shift(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}

// Min returns the minimum corner of the box
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner of the box
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties are broken in favour of X, then Y.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x >= y && x >= z {
		return 0
	}
	if y >= z {
		return 1
	}
	return 2
}

// IsEmpty returns true if any axis of the box is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}
