package bvh

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSplitMethod     = errors.New("bvh: unknown split method")
	ErrInvalidMaxPrimsPerLeaf = errors.New("bvh: max primitives per leaf must be at least 1")
	ErrInvalidBounds          = errors.New("bvh: primitive bounds are not finite")
	ErrTooManyPrimitives      = errors.New("bvh: primitive count exceeds uint32 range")
)

// InvalidBoundsError reports the primitives whose bounding boxes contain
// NaN or infinite components or were never initialized.
type InvalidBoundsError struct {
	Indices []int
}

func (e *InvalidBoundsError) Error() string {
	if len(e.Indices) == 1 {
		return fmt.Sprintf("%s: primitive %d", ErrInvalidBounds, e.Indices[0])
	}
	return fmt.Sprintf("%s: %d primitives (first: %d)", ErrInvalidBounds, len(e.Indices), e.Indices[0])
}

func (e *InvalidBoundsError) Unwrap() error {
	return ErrInvalidBounds
}
