package types

import "math"

// AABB is an axis-aligned bounding box. The zero value is NOT empty; use
// EmptyAABB to obtain a box that can be grown with Union calls.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create an empty box. Its min corner is +Inf and its max corner is -Inf
// so the first union with a point or box replaces both corners.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Create a box from two corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: MinVec3(min, max), Max: MaxVec3(min, max)}
}

// Create a box with the given center and size.
func AABBFromCenterSize(center, size Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Returns true if the box has not been grown by any union.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Returns true if both corners only contain finite values.
func (b AABB) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Grow the box so it also encloses other.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: MinVec3(b.Min, other.Min), Max: MaxVec3(b.Max, other.Max)}
}

// Grow the box so it also encloses p.
func (b AABB) UnionPoint(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Get the box center. The corners are halved before adding so boxes near
// the float32 range limits do not overflow.
func (b AABB) Centroid() Vec3 {
	return b.Min.Mul(0.5).Add(b.Max.Mul(0.5))
}

// Get the box extent along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box surface area. Empty boxes have zero area.
func (b AABB) SurfaceArea() float32 {
	if b.IsEmpty() {
		return 0
	}
	d := b.Size()
	return 2 * (d[0]*d[1] + d[0]*d[2] + d[1]*d[2])
}

// Get the index of the axis with the largest extent. Ties resolve to the
// lowest axis index.
func (b AABB) MaximumExtent() int {
	d := b.Size()
	if d[0] >= d[1] && d[0] >= d[2] {
		return 0
	}
	if d[1] >= d[2] {
		return 1
	}
	return 2
}

// Map p to its relative position inside the box so that Min maps to 0 and
// Max maps to 1 on each axis. Axes with zero extent map to 0.
func (b AABB) Normalize(p Vec3) Vec3 {
	out := p.Sub(b.Min)
	for axis := 0; axis < 3; axis++ {
		if b.Max[axis] > b.Min[axis] {
			out[axis] /= b.Max[axis] - b.Min[axis]
		} else {
			out[axis] = 0
		}
	}
	return out
}
