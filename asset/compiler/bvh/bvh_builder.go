package bvh

import (
	"math"
	"time"

	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/log"
	"github.com/microsoft/morphcharts-sub001/types"
)

// Result of a BVH build.
type Result struct {
	// Flattened nodes in depth-first order. Nodes[0] is the root.
	Nodes []scene.LinearNode

	// OrderedPrimitiveIndices[newPos] = index of the primitive in the
	// work list passed to Build.
	OrderedPrimitiveIndices []uint32

	TotalNodes uint32

	// Exact union of all primitive bounds.
	RootBounds types.AABB

	Stats Stats
}

// A node of the temporary build tree. Nodes live in a single slice owned by
// the builder and reference their children by index.
type buildNode struct {
	bounds types.AABB

	// Leaf data.
	firstPrimOffset uint32
	nPrimitives     uint32

	// Interior data.
	left, right int
	splitAxis   uint8
}

func (n *buildNode) isLeaf() bool {
	return n.nPrimitives > 0
}

type builder struct {
	logger log.Logger

	// Staged primitive data, reordered while partitioning.
	infos []primitiveInfo

	// Build tree nodes.
	nodes []buildNode

	// Primitive indices in leaf order.
	ordered []uint32

	maxPrimsPerLeaf int
	splitMethod     SplitMethod

	stats Stats
}

// Construct a BVH from a set of bounded volumes.
//
// Leaves are only created when a range holds a single primitive, when all
// centroids coincide along the widest axis or, with the SAH split method,
// when a range with at most maxPrimsPerLeaf primitives is cheaper to keep
// whole than to split.
//
// An empty work list yields an empty result. Primitives with non-finite
// bounds cause Build to fail with an *InvalidBoundsError before any
// partitioning takes place.
func Build(workList []BoundedVolume, maxPrimsPerLeaf int, splitMethod SplitMethod, opts ...Option) (*Result, error) {
	if !splitMethod.Valid() {
		return nil, ErrUnknownSplitMethod
	}
	if maxPrimsPerLeaf < 1 {
		return nil, ErrInvalidMaxPrimsPerLeaf
	}
	if uint64(len(workList)) > math.MaxUint32 {
		return nil, ErrTooManyPrimitives
	}

	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(workList) == 0 {
		cfg.logger.Debug("BVH build skipped: no primitives")
		return &Result{
			Nodes:                   []scene.LinearNode{},
			OrderedPrimitiveIndices: []uint32{},
			RootBounds:              types.EmptyAABB(),
		}, nil
	}

	infos, err := stagePrimitives(workList)
	if err != nil {
		cfg.logger.Errorf("BVH build aborted: %s", err.Error())
		return nil, err
	}

	b := &builder{
		logger:          cfg.logger,
		infos:           infos,
		nodes:           make([]buildNode, 0, 2*len(infos)),
		ordered:         make([]uint32, 0, len(infos)),
		maxPrimsPerLeaf: maxPrimsPerLeaf,
		splitMethod:     splitMethod,
		stats: Stats{
			Primitives: len(infos),
		},
	}

	start := time.Now()
	root := b.partition(0, len(infos), 0)
	linearNodes := flatten(b.nodes, root)
	b.stats.Nodes = len(linearNodes)
	b.stats.InteriorNodes = b.stats.Nodes - b.stats.Leafs
	b.stats.BuildTime = time.Since(start)

	b.logger.Debugf(
		"BVH tree build time: %d ms, method: %s, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6, splitMethod,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs,
	)
	if cfg.statsHook != nil {
		cfg.statsHook(b.stats)
	}

	return &Result{
		Nodes:                   linearNodes,
		OrderedPrimitiveIndices: b.ordered,
		TotalNodes:              uint32(len(linearNodes)),
		RootBounds:              b.nodes[root].bounds,
		Stats:                   b.stats,
	}, nil
}

// Partition infos[start:end) and return the build node index.
func (b *builder) partition(start, end, depth int) int {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	// Calculate bounding box for node
	bounds := types.EmptyAABB()
	for i := start; i < end; i++ {
		bounds = bounds.Union(b.infos[i].bounds)
	}

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, buildNode{bounds: bounds})

	if end-start == 1 {
		return b.createLeaf(nodeIndex, start, end)
	}

	centroidBounds := types.EmptyAABB()
	for i := start; i < end; i++ {
		centroidBounds = centroidBounds.UnionPoint(b.infos[i].centroid)
	}
	axis := centroidBounds.MaximumExtent()

	// All centroids coincide; no split can separate them.
	if centroidBounds.Max[axis] == centroidBounds.Min[axis] {
		return b.createLeaf(nodeIndex, start, end)
	}

	mid, ok := b.split(start, end, axis, bounds, centroidBounds)
	if !ok {
		return b.createLeaf(nodeIndex, start, end)
	}

	left := b.partition(start, mid, depth+1)
	right := b.partition(mid, end, depth+1)

	node := &b.nodes[nodeIndex]
	node.left = left
	node.right = right
	node.splitAxis = uint8(axis)
	node.bounds = b.nodes[left].bounds.Union(b.nodes[right].bounds)
	return nodeIndex
}

// Turn a node into a leaf holding infos[start:end) and append its
// primitives to the ordered primitive list.
func (b *builder) createLeaf(nodeIndex, start, end int) int {
	node := &b.nodes[nodeIndex]
	node.firstPrimOffset = uint32(len(b.ordered))
	node.nPrimitives = uint32(end - start)

	for i := start; i < end; i++ {
		b.ordered = append(b.ordered, uint32(b.infos[i].primitiveIndex))
	}

	b.stats.Leafs++
	if end-start > b.stats.MaxLeafSize {
		b.stats.MaxLeafSize = end - start
	}
	return nodeIndex
}
