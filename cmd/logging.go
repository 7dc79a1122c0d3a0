package cmd

import (
	"io"

	"github.com/microsoft/morphcharts-sub001/config"
	"github.com/microsoft/morphcharts-sub001/log"
	"github.com/urfave/cli"
)

var logger = log.New("morphcharts")

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Apply the configured level, then let -v/-vv raise verbosity. When a log
// file is configured, output is redirected to a rotating file sink.
func setupLogging(ctx *cli.Context, cfg *config.Config) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	log.SetLevel(raiseVerbosity(level, ctx.GlobalBool("v"), ctx.GlobalBool("vv")))

	if logFile := ctx.GlobalString("log-file"); logFile != "" {
		cfg.Logging.LogFile = logFile
	}
	if cfg.Logging.LogFile == "" {
		return nopCloser{}, nil
	}

	return log.SetFileSink(cfg.FileSink()), nil
}

// The verbosity flags never lower a more verbose configured level.
func raiseVerbosity(level log.Level, verbose, veryVerbose bool) log.Level {
	if verbose && level > log.Info {
		level = log.Info
	}

	if veryVerbose {
		level = log.Debug
	}
	return level
}

// Load the build configuration. Command flags override values from the
// config file which in turn override the defaults.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFile(ctx.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet("split-method") {
		cfg.BVH.SplitMethod = ctx.String("split-method")
	}
	if ctx.IsSet("max-prims-per-leaf") {
		cfg.BVH.MaxPrimsPerLeaf = ctx.Int("max-prims-per-leaf")
	}
	return cfg, nil
}
