package reader

import (
	"fmt"
	"time"

	"github.com/microsoft/morphcharts-sub001/asset"
	"github.com/microsoft/morphcharts-sub001/asset/compiler"
	"github.com/microsoft/morphcharts-sub001/asset/compiler/input"
	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/log"
	"github.com/microsoft/morphcharts-sub001/types"
	"gopkg.in/yaml.v3"
)

type chartFile struct {
	Name       string           `yaml:"name"`
	Primitives []chartPrimitive `yaml:"primitives"`
}

type chartPrimitive struct {
	Kind   string     `yaml:"kind"`
	Center [3]float32 `yaml:"center"`
	Size   [3]float32 `yaml:"size"`
	Radius float32    `yaml:"radius"`
	Height float32    `yaml:"height"`
}

type chartSceneReader struct {
	logger log.Logger
	opts   compiler.Options
}

// Create a new chart scene reader.
func newChartReader(opts compiler.Options) *chartSceneReader {
	return &chartSceneReader{
		logger: log.New("chart scene reader"),
		opts:   opts,
	}
}

// Read scene definition and compile it.
func (r *chartSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	rawScene, err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}

	// Compile scene into an optimized, gpu-friendly format
	return compiler.Compile(rawScene, r.opts)
}

// Parse a YAML chart scene without compiling it.
func ReadChart(sceneRes *asset.Resource) (*input.Scene, error) {
	return newChartReader(compiler.DefaultOptions()).parse(sceneRes)
}

func (r *chartSceneReader) parse(sceneRes *asset.Resource) (*input.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	var file chartFile
	decoder := yaml.NewDecoder(sceneRes)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("[%s] error: %w", sceneRes.Path(), err)
	}

	name := file.Name
	if name == "" {
		name = sceneRes.Name()
	}
	rawScene := input.NewScene(name)
	for index, cp := range file.Primitives {
		prim, err := cp.toPrimitive()
		if err != nil {
			return nil, fmt.Errorf("[%s: primitive %d] error: %w", sceneRes.Path(), index, err)
		}
		rawScene.Primitives = append(rawScene.Primitives, prim)
	}

	r.logger.Noticef("parsed %d primitives in %d ms", len(rawScene.Primitives), time.Since(start).Nanoseconds()/1e6)
	return rawScene, nil
}

func (cp *chartPrimitive) toPrimitive() (*input.Primitive, error) {
	kind, err := input.ParseKind(cp.Kind)
	if err != nil {
		return nil, err
	}

	center := types.Vec3(cp.Center)
	var prim *input.Primitive
	switch kind {
	case scene.SpherePrimitive:
		prim = input.NewSphere(center, cp.Radius)
	case scene.CuboidPrimitive:
		prim = input.NewCuboid(center, types.Vec3(cp.Size))
	case scene.CylinderPrimitive:
		prim = input.NewCylinder(center, cp.Radius, cp.Height)
	}

	if err = prim.Validate(); err != nil {
		return nil, err
	}
	return prim, nil
}
