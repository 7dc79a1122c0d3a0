package bvh

import "github.com/microsoft/morphcharts-sub001/asset/scene"

// Flatten the build tree rooted at root into a depth-first node list. The
// left child of each interior node is emitted right after its parent and
// the right child index is recorded as the parent's second child offset.
func flatten(nodes []buildNode, root int) []scene.LinearNode {
	out := make([]scene.LinearNode, 0, len(nodes))

	var visit func(index int) uint32
	visit = func(index int) uint32 {
		node := &nodes[index]
		offset := uint32(len(out))
		out = append(out, scene.LinearNode{})
		out[offset].SetBBox(node.bounds)

		if node.isLeaf() {
			out[offset].SetPrimitives(node.firstPrimOffset, node.nPrimitives)
			return offset
		}

		visit(node.left)
		secondChild := visit(node.right)
		out[offset].SetSecondChild(secondChild, node.splitAxis)
		return offset
	}

	visit(root)
	return out
}
