package input

import (
	"fmt"
	"strings"

	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/types"
)

// A chart primitive. Kind selects how Center and Dimensions are
// interpreted:
//
//   - sphere: Dimensions[0] is the radius
//   - cuboid: Dimensions holds the full extent along each axis
//   - cylinder: y-aligned; Dimensions[0] is the radius, Dimensions[1] the height
type Primitive struct {
	Kind       scene.PrimitiveType
	Center     types.Vec3
	Dimensions types.Vec3
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float32) *Primitive {
	return &Primitive{Kind: scene.SpherePrimitive, Center: center, Dimensions: types.Vec3{radius}}
}

// Create new cuboid primitive.
func NewCuboid(center, size types.Vec3) *Primitive {
	return &Primitive{Kind: scene.CuboidPrimitive, Center: center, Dimensions: size}
}

// Create new y-aligned cylinder primitive.
func NewCylinder(center types.Vec3, radius, height float32) *Primitive {
	return &Primitive{Kind: scene.CylinderPrimitive, Center: center, Dimensions: types.Vec3{radius, height}}
}

// Get the primitive AABB. Primitives with an unknown kind return an empty
// box, which the BVH builder rejects.
func (p *Primitive) BBox() types.AABB {
	var half types.Vec3
	switch p.Kind {
	case scene.SpherePrimitive:
		half = types.Splat(p.Dimensions[0])
	case scene.CuboidPrimitive:
		half = p.Dimensions.Mul(0.5)
	case scene.CylinderPrimitive:
		half = types.XYZ(p.Dimensions[0], 0.5*p.Dimensions[1], p.Dimensions[0])
	default:
		return types.EmptyAABB()
	}
	return types.AABB{Min: p.Center.Sub(half), Max: p.Center.Add(half)}
}

// Check that the primitive kind is known and its dimensions are usable.
func (p *Primitive) Validate() error {
	if !p.Center.IsFinite() || !p.Dimensions.IsFinite() {
		return fmt.Errorf("%s primitive has non-finite parameters", p.Kind)
	}

	var dims []float32
	switch p.Kind {
	case scene.SpherePrimitive:
		dims = p.Dimensions[:1]
	case scene.CuboidPrimitive:
		dims = p.Dimensions[:]
	case scene.CylinderPrimitive:
		dims = p.Dimensions[:2]
	default:
		return fmt.Errorf("unknown primitive kind %d", p.Kind)
	}

	for _, d := range dims {
		if d < 0 {
			return fmt.Errorf("%s primitive has negative dimensions %v", p.Kind, p.Dimensions)
		}
	}
	return nil
}

// Convert the primitive into a GPU record tagged with the given id.
func (p *Primitive) Record(id uint32) scene.Primitive {
	return scene.Primitive{
		Type:       p.Kind,
		ID:         id,
		Origin:     p.Center,
		Dimensions: p.Dimensions,
	}
}

// Parse a primitive kind name.
func ParseKind(name string) (scene.PrimitiveType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sphere":
		return scene.SpherePrimitive, nil
	case "cuboid", "box":
		return scene.CuboidPrimitive, nil
	case "cylinder":
		return scene.CylinderPrimitive, nil
	}
	return 0, fmt.Errorf("unknown primitive kind %q", name)
}

// The scene contains all primitives that are processed and optimized by the
// scene compiler.
type Scene struct {
	Name       string
	Primitives []*Primitive
}

// Create a new scene.
func NewScene(name string) *Scene {
	return &Scene{
		Name:       name,
		Primitives: make([]*Primitive, 0),
	}
}

// Get the union of all primitive bounds.
func (s *Scene) BBox() types.AABB {
	bbox := types.EmptyAABB()
	for _, prim := range s.Primitives {
		bbox = bbox.Union(prim.BBox())
	}
	return bbox
}
