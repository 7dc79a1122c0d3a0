package scene

import (
	"testing"
	"time"

	"github.com/microsoft/morphcharts-sub001/types"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	sc := &Scene{
		Info: BuildInfo{
			ID:              "b5a5e4f8-6a49-4d61-9d53-6b0f4a6a3c8e",
			SplitMethod:     "sah",
			MaxPrimsPerLeaf: 4,
			CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 42, time.UTC),
		},
		BvhNodeList:     sampleNodes(),
		PrimitiveLookup: []uint32{1, 0},
	}

	data, err := EncodeManifest(sc.Manifest())
	require.NoError(t, err)

	m, err := DecodeManifest(data)
	require.NoError(t, err)
	require.Equal(t, uint32(3), m.NodeCount)
	require.Equal(t, uint32(2), m.PrimitiveCount)
	require.Equal(t, sc.Info, m.BuildInfo())
}

func TestManifestRejectsUnknownVersion(t *testing.T) {
	m := (&Scene{}).Manifest()
	m.Version = 99
	data, err := EncodeManifest(m)
	require.NoError(t, err)

	_, err = DecodeManifest(data)
	require.ErrorIs(t, err, ErrUnsupportedArchive)
}

func TestPrimitiveAndLookupBuffers(t *testing.T) {
	prims := []Primitive{
		{Type: CuboidPrimitive, ID: 1, Origin: types.XYZ(1, 2, 3), Dimensions: types.XYZ(4, 5, 6)},
		{Type: SpherePrimitive, ID: 0, Origin: types.XYZ(-1, 0, 0), Dimensions: types.XYZ(0.5, 0, 0)},
	}

	data, err := EncodePrimitives(prims)
	require.NoError(t, err)
	require.Len(t, data, 2*32)

	require.Equal(t, 32, PrimitiveStride)

	decoded, err := DecodePrimitives(data)
	require.NoError(t, err)
	require.Equal(t, prims, decoded)

	_, err = DecodePrimitives(data[:40])
	require.ErrorIs(t, err, ErrPrimitiveBufferSize)

	decoded, err = DecodePrimitives(nil)
	require.NoError(t, err)
	require.Empty(t, decoded)

	lookup := []uint32{1, 0}
	decodedLookup, err := DecodeLookup(EncodeLookup(lookup))
	require.NoError(t, err)
	require.Equal(t, lookup, decodedLookup)

	_, err = DecodeLookup([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidLookup)
}
