package bvh

import (
	"time"

	"github.com/microsoft/morphcharts-sub001/log"
)

// Stats collected while building a BVH.
type Stats struct {
	Primitives    int
	Nodes         int
	Leafs         int
	InteriorNodes int
	MaxDepth      int
	MaxLeafSize   int
	BuildTime     time.Duration
}

// A callback invoked with the stats of each completed build.
type StatsHook func(Stats)

// Option configures a Build call.
type Option func(*buildConfig)

type buildConfig struct {
	logger    log.Logger
	statsHook StatsHook
}

func defaultBuildConfig() buildConfig {
	return buildConfig{
		logger: log.New("bvh"),
	}
}

// WithLogger overrides the logger used for build diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *buildConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStatsHook registers a callback that receives the stats of the build.
func WithStatsHook(hook StatsHook) Option {
	return func(c *buildConfig) {
		c.statsHook = hook
	}
}
