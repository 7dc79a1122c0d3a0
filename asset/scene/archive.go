package scene

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Entry names inside a compiled scene archive.
const (
	ManifestFile   = "manifest.cbor"
	BvhFile        = "bvh.bin"
	PrimitivesFile = "primitives.bin"
	LookupFile     = "lookup.bin"

	ArchiveVersion = 1
)

// Size in bytes of an encoded primitive record.
var PrimitiveStride = binary.Size(Primitive{})

var (
	ErrUnsupportedArchive  = errors.New("scene: unsupported archive version")
	ErrPrimitiveBufferSize = errors.New("scene: primitive buffer length is not a multiple of the record stride")
	ErrArchiveMismatch     = errors.New("scene: archive buffers do not match the manifest")
)

// Manifest describes the buffers stored in a compiled scene archive.
type Manifest struct {
	Version         uint32 `cbor:"1,keyasint"`
	BuildID         string `cbor:"2,keyasint"`
	SplitMethod     string `cbor:"3,keyasint"`
	MaxPrimsPerLeaf uint32 `cbor:"4,keyasint"`
	CreatedAt       int64  `cbor:"5,keyasint"`
	NodeCount       uint32 `cbor:"6,keyasint"`
	PrimitiveCount  uint32 `cbor:"7,keyasint"`
	NodeStride      uint32 `cbor:"8,keyasint"`
}

// Build the archive manifest for this scene.
func (sc *Scene) Manifest() Manifest {
	return Manifest{
		Version:         ArchiveVersion,
		BuildID:         sc.Info.ID,
		SplitMethod:     sc.Info.SplitMethod,
		MaxPrimsPerLeaf: sc.Info.MaxPrimsPerLeaf,
		CreatedAt:       sc.Info.CreatedAt.UnixNano(),
		NodeCount:       uint32(len(sc.BvhNodeList)),
		PrimitiveCount:  uint32(len(sc.PrimitiveLookup)),
		NodeStride:      NodeStride,
	}
}

// Restore the build info recorded in a manifest.
func (m *Manifest) BuildInfo() BuildInfo {
	return BuildInfo{
		ID:              m.BuildID,
		SplitMethod:     m.SplitMethod,
		MaxPrimsPerLeaf: m.MaxPrimsPerLeaf,
		CreatedAt:       time.Unix(0, m.CreatedAt).UTC(),
	}
}

func EncodeManifest(m Manifest) ([]byte, error) {
	return cbor.Marshal(m)
}

func DecodeManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := cbor.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("scene: invalid manifest: %w", err)
	}
	if m.Version != ArchiveVersion || m.NodeStride != NodeStride {
		return m, fmt.Errorf("%w: version %d, stride %d", ErrUnsupportedArchive, m.Version, m.NodeStride)
	}
	return m, nil
}

// Pack primitive records as little-endian fixed-size structs.
func EncodePrimitives(prims []Primitive) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, prims); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack a primitive buffer produced by EncodePrimitives. The record count
// is derived from the buffer length.
func DecodePrimitives(data []byte) ([]Primitive, error) {
	if len(data)%PrimitiveStride != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPrimitiveBufferSize, len(data))
	}

	prims := make([]Primitive, len(data)/PrimitiveStride)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, prims); err != nil {
		return nil, fmt.Errorf("scene: invalid primitive buffer: %w", err)
	}
	return prims, nil
}

// Pack the primitive lookup as little-endian uint32 values.
func EncodeLookup(lookup []uint32) []byte {
	out := make([]byte, 4*len(lookup))
	for index, v := range lookup {
		binary.LittleEndian.PutUint32(out[index*4:], v)
	}
	return out
}

func DecodeLookup(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: lookup buffer length %d", ErrInvalidLookup, len(data))
	}
	lookup := make([]uint32, len(data)/4)
	for index := range lookup {
		lookup[index] = binary.LittleEndian.Uint32(data[index*4:])
	}
	return lookup, nil
}
