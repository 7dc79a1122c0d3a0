package main

import (
	"fmt"
	"os"

	"github.com/microsoft/morphcharts-sub001/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "morphcharts"
	app.Usage = "compile chart scenes into GPU-ready BVH archives"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load build settings from a YAML config file",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "write logs to a size-rotated file instead of stdout",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile chart scene definitions into a binary compressed format",
			Description: `
Parse a chart scene definition from a YAML file, build a BVH tree over the
chart primitives and package the flattened nodes, the reordered primitive
records and the ordered primitive lookup in a GPU-friendly format.

The compiled scene is written to a zip archive next to the input file.`,
			ArgsUsage: "chart1.yaml chart2.yaml ...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "split-method, s",
					Value: "sah",
					Usage: "BVH split method: middle, equal-counts or sah",
				},
				cli.IntFlag{
					Name:  "max-prims-per-leaf, m",
					Value: 4,
					Usage: "maximum number of primitives in a SAH leaf",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output archive filename (single input only)",
				},
			},
			Action: cmd.CompileScene,
		},
		{
			Name:      "info",
			Usage:     "validate a compiled scene and print its statistics",
			ArgsUsage: "scene.zip",
			Action:    cmd.ShowSceneInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
