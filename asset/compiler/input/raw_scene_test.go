package input

import (
	"testing"

	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/types"
)

func TestPrimitiveBBox(t *testing.T) {
	specs := []struct {
		prim   *Primitive
		expMin types.Vec3
		expMax types.Vec3
	}{
		{NewSphere(types.XYZ(1, 1, 1), 2), types.XYZ(-1, -1, -1), types.XYZ(3, 3, 3)},
		{NewCuboid(types.XYZ(0, 0, 0), types.XYZ(2, 4, 6)), types.XYZ(-1, -2, -3), types.XYZ(1, 2, 3)},
		{NewCylinder(types.XYZ(0, 5, 0), 1, 10), types.XYZ(-1, 0, -1), types.XYZ(1, 10, 1)},
	}

	for idx, spec := range specs {
		bbox := spec.prim.BBox()
		if bbox.Min != spec.expMin || bbox.Max != spec.expMax {
			t.Errorf("[spec %d] expected bbox [%v, %v]; got [%v, %v]", idx, spec.expMin, spec.expMax, bbox.Min, bbox.Max)
		}
	}

	unknown := &Primitive{Kind: scene.PrimitiveType(99)}
	if !unknown.BBox().IsEmpty() {
		t.Fatal("expected unknown primitive kind to produce an empty bbox")
	}
}

func TestPrimitiveValidate(t *testing.T) {
	if err := NewSphere(types.XYZ(0, 0, 0), 1).Validate(); err != nil {
		t.Fatal(err)
	}
	if err := NewSphere(types.XYZ(0, 0, 0), -1).Validate(); err == nil {
		t.Fatal("expected negative radius to be rejected")
	}
	if err := NewCuboid(types.XYZ(0, 0, 0), types.XYZ(1, -1, 1)).Validate(); err == nil {
		t.Fatal("expected negative cuboid size to be rejected")
	}
	if err := (&Primitive{Kind: scene.PrimitiveType(99)}).Validate(); err == nil {
		t.Fatal("expected unknown kind to be rejected")
	}
}

func TestParseKind(t *testing.T) {
	specs := map[string]scene.PrimitiveType{
		"sphere":   scene.SpherePrimitive,
		"Box":      scene.CuboidPrimitive,
		"cuboid":   scene.CuboidPrimitive,
		"cylinder": scene.CylinderPrimitive,
	}
	for name, expKind := range specs {
		kind, err := ParseKind(name)
		if err != nil {
			t.Fatal(err)
		}
		if kind != expKind {
			t.Errorf("expected %q to parse as %s; got %s", name, expKind, kind)
		}
	}

	if _, err := ParseKind("torus"); err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

func TestSceneBBox(t *testing.T) {
	sc := NewScene("test")
	sc.Primitives = append(sc.Primitives,
		NewSphere(types.XYZ(0, 0, 0), 1),
		NewCuboid(types.XYZ(10, 0, 0), types.XYZ(2, 2, 2)),
	)

	bbox := sc.BBox()
	if bbox.Min != types.XYZ(-1, -1, -1) || bbox.Max != types.XYZ(11, 1, 1) {
		t.Fatalf("unexpected scene bbox %v", bbox)
	}
}
