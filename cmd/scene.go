package cmd

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/microsoft/morphcharts-sub001/asset/compiler"
	"github.com/microsoft/morphcharts-sub001/asset/scene/reader"
	"github.com/microsoft/morphcharts-sub001/asset/scene/writer"
	"github.com/urfave/cli"
)

// Compile chart scenes to the binary zip format.
func CompileScene(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	closer, err := setupLogging(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := cfg.CompilerOptions()
	if err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing chart scene file argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		ext := strings.ToLower(filepath.Ext(sceneFile))
		if ext != ".yaml" && ext != ".yml" {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing and compiling scene: %s (split method: %s, max prims per leaf: %d)", sceneFile, opts.SplitMethod, opts.MaxPrimsPerLeaf)
		sc, err := reader.ReadScene(sceneFile, opts)
		if err != nil {
			return err
		}

		// Display compiled scene info
		logger.Noticef("scene information:\n%s", sc.Stats())

		zipFile := strings.TrimSuffix(sceneFile, filepath.Ext(sceneFile)) + ".zip"
		if out := ctx.String("out"); out != "" && ctx.NArg() == 1 {
			zipFile = out
		}

		if err = writer.WriteScene(sc, zipFile); err != nil {
			return err
		}
		logger.Noticef("wrote compiled scene to %s", zipFile)
	}

	return nil
}

// Display compiled scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	closer, err := setupLogging(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx.NArg() != 1 {
		return errors.New("missing compiled scene zip file")
	}

	sceneFile := ctx.Args().First()
	if !strings.HasSuffix(strings.ToLower(sceneFile), ".zip") {
		return errors.New("only compiled scene files with a .zip extension are supported")
	}

	// Compiled scenes are validated by the zip reader.
	sc, err := reader.ReadScene(sceneFile, compiler.DefaultOptions())
	if err != nil {
		return err
	}

	logger.Noticef("build %s (split method: %s, max prims per leaf: %d, created: %s)",
		sc.Info.ID, sc.Info.SplitMethod, sc.Info.MaxPrimsPerLeaf, sc.Info.CreatedAt.Format("2006-01-02 15:04:05"))
	logger.Noticef("scene information:\n%s", sc.Stats())

	return nil
}
