package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/microsoft/morphcharts-sub001/types"
	"github.com/stretchr/testify/require"
)

func sampleNodes() []LinearNode {
	var root, left, right LinearNode
	root.SetBBox(types.NewAABB(types.XYZ(-0.5, -0.5, 0), types.XYZ(10.5, 0.5, 0)))
	root.SetSecondChild(2, 0)
	left.SetBBox(types.NewAABB(types.XYZ(-0.5, -0.5, 0), types.XYZ(0.5, 0.5, 0)))
	left.SetPrimitives(0, 1)
	right.SetBBox(types.NewAABB(types.XYZ(9.5, -0.5, 0), types.XYZ(10.5, 0.5, 0)))
	right.SetPrimitives(1, 1)
	return []LinearNode{root, left, right}
}

func TestEncodeNodesLayout(t *testing.T) {
	nodes := sampleNodes()

	data, err := EncodeNodes(nodes)
	require.NoError(t, err)
	require.Len(t, data, len(nodes)*NodeStride)

	readF := func(node, field int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[node*NodeStride+field*4:]))
	}

	// root: center (5,0,0), size (11,1,0), interior split on x with right child at 2
	require.Equal(t, float32(5), readF(0, 0))
	require.Equal(t, float32(0), readF(0, 1))
	require.Equal(t, float32(0), readF(0, 3))
	require.Equal(t, float32(11), readF(0, 4))
	require.Equal(t, float32(1), readF(0, 5))
	require.Equal(t, float32(2), readF(0, 7))
	require.Equal(t, float32(0), readF(0, 8))
	require.Equal(t, float32(0), readF(0, 9))

	// right leaf at byte offset 96
	require.Equal(t, float32(10), readF(2, 0))
	require.Equal(t, float32(1), readF(2, 3))
	require.Equal(t, float32(1), readF(2, 8))

	// padding
	require.Equal(t, float32(0), readF(1, 10))
	require.Equal(t, float32(0), readF(1, 11))
}

func TestEncodeDecodeNodes(t *testing.T) {
	nodes := sampleNodes()
	nodes[0].Axis = 2

	data, err := EncodeNodes(nodes)
	require.NoError(t, err)

	decoded, err := DecodeNodes(data)
	require.NoError(t, err)
	require.Equal(t, nodes, decoded)

	floats, err := EncodeNodesFloat32(nodes)
	require.NoError(t, err)
	require.Len(t, floats, len(nodes)*NodeFloats)
	decoded, err = DecodeNodesFloat32(floats)
	require.NoError(t, err)
	require.Equal(t, nodes, decoded)
}

func TestEncodeEmptyNodeList(t *testing.T) {
	data, err := EncodeNodes(nil)
	require.NoError(t, err)
	require.Empty(t, data)

	nodes, err := DecodeNodes(data)
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestEncodeRejectsUnrepresentableIndices(t *testing.T) {
	nodes := []LinearNode{{PrimitivesOffset: maxExactFloat32Int + 1, NPrimitives: 1}}
	_, err := EncodeNodes(nodes)
	require.ErrorIs(t, err, ErrIndexNotRepresentable)
}

func TestEncodeRejectsNonFiniteBounds(t *testing.T) {
	nodes := sampleNodes()
	nodes[1].BoundsSize[0] = float32(math.Inf(1))
	_, err := EncodeNodes(nodes)
	require.ErrorIs(t, err, ErrNodeBoundsNotFinite)

	nodes = sampleNodes()
	nodes[2].BoundsCenter[1] = float32(math.NaN())
	_, err = EncodeNodesFloat32(nodes)
	require.ErrorIs(t, err, ErrNodeBoundsNotFinite)
}

func TestDecodeRejectsMalformedBuffers(t *testing.T) {
	_, err := DecodeNodes(make([]byte, NodeStride+4))
	require.ErrorIs(t, err, ErrNodeBufferSize)

	floats := make([]float32, NodeFloats)
	floats[3] = 1.5
	_, err = DecodeNodesFloat32(floats)
	require.ErrorIs(t, err, ErrNodeBufferField)

	floats[3] = 0
	floats[9] = 3
	_, err = DecodeNodesFloat32(floats)
	require.ErrorIs(t, err, ErrNodeBufferField)

	floats[9] = float32(math.NaN())
	_, err = DecodeNodesFloat32(floats)
	require.ErrorIs(t, err, ErrNodeBufferField)
}
