package scene

import "github.com/microsoft/morphcharts-sub001/types"

// LinearNode is a BVH node inside a flattened, depth-first ordered node list.
//
// Leaf nodes have NPrimitives > 0 and reference the primitive range
// [PrimitivesOffset, PrimitivesOffset+NPrimitives) of the ordered primitive
// list. Interior nodes have NPrimitives == 0; their left child is always
// stored right after them and their right child lives at SecondChildOffset.
type LinearNode struct {
	BoundsCenter     types.Vec3
	PrimitivesOffset uint32

	BoundsSize        types.Vec3
	SecondChildOffset uint32

	NPrimitives uint32

	// Split axis for interior nodes (0=x, 1=y, 2=z).
	Axis uint8
}

// Set bounding box.
func (n *LinearNode) SetBBox(bbox types.AABB) {
	n.BoundsCenter = bbox.Centroid()
	n.BoundsSize = bbox.Size()
}

// Get bounding box.
func (n *LinearNode) BBox() types.AABB {
	return types.AABBFromCenterSize(n.BoundsCenter, n.BoundsSize)
}

// Set primitive index and count.
func (n *LinearNode) SetPrimitives(firstPrimIndex, count uint32) {
	n.PrimitivesOffset = firstPrimIndex
	n.NPrimitives = count
}

// Get primitive index and count.
func (n *LinearNode) GetPrimitives() (firstPrimIndex, count uint32) {
	return n.PrimitivesOffset, n.NPrimitives
}

// Set right child index and split axis.
func (n *LinearNode) SetSecondChild(index uint32, axis uint8) {
	n.SecondChildOffset = index
	n.NPrimitives = 0
	n.Axis = axis
}

// Returns true if this is a leaf.
func (n *LinearNode) IsLeaf() bool {
	return n.NPrimitives > 0
}
