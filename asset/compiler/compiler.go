package compiler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/morphcharts-sub001/asset/compiler/bvh"
	"github.com/microsoft/morphcharts-sub001/asset/compiler/input"
	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/log"
)

const (
	DefaultMaxPrimsPerLeaf = 4
)

// Options control how a scene is partitioned.
type Options struct {
	SplitMethod     bvh.SplitMethod
	MaxPrimsPerLeaf int
}

// Get the default compiler options.
func DefaultOptions() Options {
	return Options{
		SplitMethod:     bvh.SAH,
		MaxPrimsPerLeaf: DefaultMaxPrimsPerLeaf,
	}
}

type sceneCompiler struct {
	parsedScene    *input.Scene
	optimizedScene *scene.Scene
	opts           Options
	logger         log.Logger
}

// Compile a scene representation parsed by a scene reader into a GPU-friendly
// optimized scene format.
func Compile(parsedScene *input.Scene, opts Options) (*scene.Scene, error) {
	compiler := &sceneCompiler{
		parsedScene: parsedScene,
		optimizedScene: &scene.Scene{
			Info: scene.BuildInfo{
				ID:              uuid.NewString(),
				SplitMethod:     opts.SplitMethod.String(),
				MaxPrimsPerLeaf: uint32(opts.MaxPrimsPerLeaf),
				CreatedAt:       time.Now().UTC(),
			},
		},
		opts:   opts,
		logger: log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene %q", parsedScene.Name)

	var err error
	err = compiler.validatePrimitives()
	if err != nil {
		return nil, err
	}

	err = compiler.partitionGeometry()
	if err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.optimizedScene, nil
}

func (sc *sceneCompiler) validatePrimitives() error {
	for index, prim := range sc.parsedScene.Primitives {
		if prim == nil {
			return fmt.Errorf("compiler: primitive %d is nil", index)
		}
		if err := prim.Validate(); err != nil {
			return fmt.Errorf("compiler: primitive %d: %w", index, err)
		}
	}
	return nil
}

// Build a BVH over the scene primitives and store the primitive records in
// the order expected by the BVH leafs.
func (sc *sceneCompiler) partitionGeometry() error {
	start := time.Now()
	sc.logger.Infof("building scene BVH tree (%d primitives, split method: %s, max prims per leaf: %d)",
		len(sc.parsedScene.Primitives), sc.opts.SplitMethod, sc.opts.MaxPrimsPerLeaf)

	volList := make([]bvh.BoundedVolume, len(sc.parsedScene.Primitives))
	for index, prim := range sc.parsedScene.Primitives {
		volList[index] = prim
	}

	res, err := bvh.Build(volList, sc.opts.MaxPrimsPerLeaf, sc.opts.SplitMethod, bvh.WithStatsHook(func(stats bvh.Stats) {
		sc.logger.Infof("BVH stats: nodes: %d, leafs: %d, max depth: %d, max leaf size: %d",
			stats.Nodes, stats.Leafs, stats.MaxDepth, stats.MaxLeafSize)
	}))
	if err != nil {
		return fmt.Errorf("compiler: %w", err)
	}

	sc.optimizedScene.BvhNodeList = res.Nodes
	sc.optimizedScene.PrimitiveLookup = res.OrderedPrimitiveIndices
	sc.optimizedScene.PrimitiveList = make([]scene.Primitive, len(res.OrderedPrimitiveIndices))
	for newPos, origIndex := range res.OrderedPrimitiveIndices {
		sc.optimizedScene.PrimitiveList[newPos] = sc.parsedScene.Primitives[origIndex].Record(origIndex)
	}

	if len(sc.optimizedScene.PrimitiveList) == 0 {
		sc.logger.Warning("the scene contains no primitives; output will be empty")
	}

	sc.logger.Noticef("partitioned geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
