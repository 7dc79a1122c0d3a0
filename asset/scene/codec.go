package scene

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/microsoft/morphcharts-sub001/types"
)

// Each node is packed into 12 float32 values (48 bytes). The layout is
// shared with the GPU traversal kernel:
//
//	[0-2]  bounds center
//	[3]    primitives offset
//	[4-6]  bounds size
//	[7]    second child offset
//	[8]    primitive count
//	[9]    split axis
//	[10-11] padding
//
// Integer fields are stored as float32 values, not as reinterpreted bits.
// Bounds must be finite; boxes spanning more than the float32 range cannot
// be encoded.
const (
	NodeFloats = 12
	NodeStride = NodeFloats * 4

	// Largest integer that survives a float32 round trip without loss.
	maxExactFloat32Int = 1 << 24
)

// Pack nodes into a float32 slice suitable for uploading to the GPU.
func EncodeNodesFloat32(nodes []LinearNode) ([]float32, error) {
	out := make([]float32, len(nodes)*NodeFloats)
	for index := range nodes {
		if err := packNode(out[index*NodeFloats:(index+1)*NodeFloats], &nodes[index]); err != nil {
			return nil, fmt.Errorf("%w (node %d)", err, index)
		}
	}
	return out, nil
}

// Pack nodes into a little-endian byte buffer using NodeStride bytes per node.
func EncodeNodes(nodes []LinearNode) ([]byte, error) {
	floats, err := EncodeNodesFloat32(nodes)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(floats)*4)
	for index, f := range floats {
		binary.LittleEndian.PutUint32(out[index*4:], math.Float32bits(f))
	}
	return out, nil
}

// Unpack a little-endian node buffer produced by EncodeNodes.
func DecodeNodes(data []byte) ([]LinearNode, error) {
	if len(data)%NodeStride != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrNodeBufferSize, len(data))
	}

	floats := make([]float32, len(data)/4)
	for index := range floats {
		floats[index] = math.Float32frombits(binary.LittleEndian.Uint32(data[index*4:]))
	}
	return DecodeNodesFloat32(floats)
}

// Unpack a float32 node buffer produced by EncodeNodesFloat32.
func DecodeNodesFloat32(data []float32) ([]LinearNode, error) {
	if len(data)%NodeFloats != 0 {
		return nil, fmt.Errorf("%w: got %d floats", ErrNodeBufferSize, len(data))
	}

	nodes := make([]LinearNode, len(data)/NodeFloats)
	for index := range nodes {
		if err := unpackNode(&nodes[index], data[index*NodeFloats:(index+1)*NodeFloats]); err != nil {
			return nil, fmt.Errorf("%w (node %d)", err, index)
		}
	}
	return nodes, nil
}

func packNode(rec []float32, n *LinearNode) error {
	if n.PrimitivesOffset > maxExactFloat32Int ||
		n.SecondChildOffset > maxExactFloat32Int ||
		n.NPrimitives > maxExactFloat32Int {
		return ErrIndexNotRepresentable
	}

	// Extents wider than the float32 range overflow to +Inf.
	if !n.BoundsCenter.IsFinite() || !n.BoundsSize.IsFinite() {
		return ErrNodeBoundsNotFinite
	}

	rec[0], rec[1], rec[2] = n.BoundsCenter[0], n.BoundsCenter[1], n.BoundsCenter[2]
	rec[3] = float32(n.PrimitivesOffset)
	rec[4], rec[5], rec[6] = n.BoundsSize[0], n.BoundsSize[1], n.BoundsSize[2]
	rec[7] = float32(n.SecondChildOffset)
	rec[8] = float32(n.NPrimitives)
	rec[9] = float32(n.Axis)
	rec[10], rec[11] = 0, 0
	return nil
}

func unpackNode(n *LinearNode, rec []float32) error {
	var fields [4]uint32
	for i, f := range [4]float32{rec[3], rec[7], rec[8], rec[9]} {
		if f < 0 || f > maxExactFloat32Int || f != float32(math.Trunc(float64(f))) {
			return ErrNodeBufferField
		}
		fields[i] = uint32(f)
	}
	if fields[3] > 2 {
		return ErrNodeBufferField
	}

	n.BoundsCenter = types.XYZ(rec[0], rec[1], rec[2])
	n.PrimitivesOffset = fields[0]
	n.BoundsSize = types.XYZ(rec[4], rec[5], rec[6])
	n.SecondChildOffset = fields[1]
	n.NPrimitives = fields[2]
	n.Axis = uint8(fields[3])
	return nil
}
