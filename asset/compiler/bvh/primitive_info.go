package bvh

import (
	"github.com/microsoft/morphcharts-sub001/types"
)

// The BoundedVolume interface is implemented by all primitives that can
// be partitioned by the bvh builder.
type BoundedVolume interface {
	BBox() types.AABB
}

// Per-primitive data staged for a single build. The staging slice is
// reordered in place while partitioning.
type primitiveInfo struct {
	primitiveIndex int
	bounds         types.AABB
	centroid       types.Vec3
}

// Capture the bounds and centroid of every item in the work list. All items
// are checked before returning so the error lists every malformed primitive.
func stagePrimitives(workList []BoundedVolume) ([]primitiveInfo, error) {
	infos := make([]primitiveInfo, len(workList))
	var invalid []int
	for index, item := range workList {
		bbox := item.BBox()
		if !bbox.IsFinite() || bbox.IsEmpty() {
			invalid = append(invalid, index)
			continue
		}

		infos[index] = primitiveInfo{
			primitiveIndex: index,
			bounds:         bbox,
			centroid:       bbox.Centroid(),
		}
	}

	if len(invalid) != 0 {
		return nil, &InvalidBoundsError{Indices: invalid}
	}
	return infos, nil
}
