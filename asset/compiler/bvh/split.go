package bvh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/microsoft/morphcharts-sub001/types"
)

// SplitMethod selects how interior nodes partition their primitives.
type SplitMethod uint8

const (
	// Split at the midpoint of the centroid bounds along the widest axis.
	Middle SplitMethod = iota

	// Split into two halves with the same primitive count.
	EqualCounts

	// Split using the bucketed surface area heuristic.
	SAH
)

const (
	// Number of buckets used for SAH split evaluation.
	sahBuckets = 12

	// Ranges with at most this many primitives use EqualCounts under SAH.
	sahMinPrimitives = 4

	// Relative cost of a traversal step compared to one intersection test.
	sahTraversalCost float32 = 0.125
)

func (m SplitMethod) String() string {
	switch m {
	case Middle:
		return "middle"
	case EqualCounts:
		return "equal-counts"
	case SAH:
		return "sah"
	}
	return fmt.Sprintf("SplitMethod(%d)", uint8(m))
}

// Valid returns true if m is one of the defined split methods.
func (m SplitMethod) Valid() bool {
	return m <= SAH
}

// Parse a split method name. Matching is case-insensitive.
func ParseSplitMethod(name string) (SplitMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "middle":
		return Middle, nil
	case "equal-counts", "equalcounts", "equal_counts":
		return EqualCounts, nil
	case "sah":
		return SAH, nil
	}
	return SAH, fmt.Errorf("%w: %q", ErrUnknownSplitMethod, name)
}

type sahBucket struct {
	count  int
	bounds types.AABB
}

// Select the split position for infos[start:end). Returns false if the
// range should become a leaf instead.
func (b *builder) split(start, end, axis int, nodeBounds, centroidBounds types.AABB) (mid int, ok bool) {
	switch b.splitMethod {
	case Middle:
		return b.splitMiddle(start, end, axis, centroidBounds), true
	case EqualCounts:
		return b.splitEqualCounts(start, end, axis), true
	default:
		return b.splitSAH(start, end, axis, nodeBounds, centroidBounds)
	}
}

// Partition around the centroid bounds midpoint. If rounding puts every
// primitive on one side, fall back to an equal counts split.
func (b *builder) splitMiddle(start, end, axis int, centroidBounds types.AABB) int {
	pmid := 0.5 * (centroidBounds.Min[axis] + centroidBounds.Max[axis])

	mid := start
	for i := start; i < end; i++ {
		if b.infos[i].centroid[axis] < pmid {
			b.infos[i], b.infos[mid] = b.infos[mid], b.infos[i]
			mid++
		}
	}

	if mid == start || mid == end {
		return b.splitEqualCounts(start, end, axis)
	}
	return mid
}

func (b *builder) splitEqualCounts(start, end, axis int) int {
	b.sortRange(start, end, axis)
	return (start + end) / 2
}

func (b *builder) splitSAH(start, end, axis int, nodeBounds, centroidBounds types.AABB) (int, bool) {
	nPrimitives := end - start
	if nPrimitives <= sahMinPrimitives {
		return b.splitEqualCounts(start, end, axis), true
	}

	var buckets [sahBuckets]sahBucket
	for i := range buckets {
		buckets[i].bounds = types.EmptyAABB()
	}
	for i := start; i < end; i++ {
		bi := bucketIndex(centroidBounds, b.infos[i].centroid, axis)
		buckets[bi].count++
		buckets[bi].bounds = buckets[bi].bounds.Union(b.infos[i].bounds)
	}

	// Sweep from the right so each candidate can read the area of the
	// buckets above it.
	var (
		rightArea  [sahBuckets - 1]float32
		rightCount [sahBuckets - 1]int
	)
	acc := types.EmptyAABB()
	count := 0
	for i := sahBuckets - 1; i > 0; i-- {
		acc = acc.Union(buckets[i].bounds)
		count += buckets[i].count
		rightArea[i-1] = acc.SurfaceArea()
		rightCount[i-1] = count
	}

	nodeArea := nodeBounds.SurfaceArea()
	minCost := float32(0)
	minBucket := -1
	acc = types.EmptyAABB()
	count = 0
	for i := 0; i < sahBuckets-1; i++ {
		acc = acc.Union(buckets[i].bounds)
		count += buckets[i].count

		weighted := float32(count)*acc.SurfaceArea() + float32(rightCount[i])*rightArea[i]
		if nodeArea > 0 {
			weighted /= nodeArea
		}
		cost := sahTraversalCost + weighted
		if minBucket == -1 || cost < minCost {
			minCost = cost
			minBucket = i
		}
	}

	leafCost := float32(nPrimitives)
	if nPrimitives <= b.maxPrimsPerLeaf && minCost >= leafCost {
		return 0, false
	}

	b.sortRange(start, end, axis)
	sub := b.infos[start:end]
	mid := start + sort.Search(len(sub), func(i int) bool {
		return bucketIndex(centroidBounds, sub[i].centroid, axis) > minBucket
	})

	// Buckets 0 and sahBuckets-1 are never empty so both sides are
	// populated; keep the guard in case rounding ever disagrees.
	if mid == start || mid == end {
		mid = (start + end) / 2
	}
	return mid, true
}

// Map a centroid to its SAH bucket.
func bucketIndex(centroidBounds types.AABB, centroid types.Vec3, axis int) int {
	bi := int(sahBuckets * centroidBounds.Normalize(centroid)[axis])
	if bi >= sahBuckets {
		bi = sahBuckets - 1
	}
	if bi < 0 {
		bi = 0
	}
	return bi
}

// Sort infos[start:end) by centroid along axis. Ties are broken by the
// original primitive index so builds are deterministic.
func (b *builder) sortRange(start, end, axis int) {
	sub := b.infos[start:end]
	sort.Slice(sub, func(i, j int) bool {
		ci, cj := sub[i].centroid[axis], sub[j].centroid[axis]
		if ci != cj {
			return ci < cj
		}
		return sub[i].primitiveIndex < sub[j].primitiveIndex
	})
}
