package scene

import "github.com/microsoft/morphcharts-sub001/types"

type PrimitiveType uint32

const (
	SpherePrimitive PrimitiveType = iota
	CuboidPrimitive
	CylinderPrimitive
)

// String returns the primitive type name used by scene files.
func (t PrimitiveType) String() string {
	switch t {
	case SpherePrimitive:
		return "sphere"
	case CuboidPrimitive:
		return "cuboid"
	case CylinderPrimitive:
		return "cylinder"
	}
	return "unknown"
}

// A GPU-ready primitive record. Records are stored in BVH order so each
// leaf addresses a contiguous run of them.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// The index of the chart mark this primitive was generated from.
	ID uint32

	// The primitive origin.
	Origin types.Vec3

	// Primitive dimensions. The meaning of each component depends on the
	// primitive type.
	Dimensions types.Vec3
}
