package scene

import "errors"

var (
	ErrIndexNotRepresentable = errors.New("scene: node index or count exceeds exact float32 range")
	ErrNodeBufferSize        = errors.New("scene: node buffer length is not a multiple of the record stride")
	ErrNodeBufferField       = errors.New("scene: node buffer contains a non-integral index field")
	ErrNodeBoundsNotFinite   = errors.New("scene: node bounds center or size is not finite")
	ErrInvalidTree           = errors.New("scene: invalid bvh node list")
	ErrInvalidLookup         = errors.New("scene: primitive lookup is not a permutation")
)
