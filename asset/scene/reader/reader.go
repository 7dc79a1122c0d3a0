package reader

import (
	"fmt"

	"github.com/microsoft/morphcharts-sub001/asset"
	"github.com/microsoft/morphcharts-sub001/asset/compiler"
	"github.com/microsoft/morphcharts-sub001/asset/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from file. YAML chart scenes are compiled using opts while
// compiled zip scenes are loaded as-is.
func ReadScene(filename string, opts compiler.Options) (*scene.Scene, error) {
	res, err := asset.NewResource(filename)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res, opts)
}

// Read scene from a resource, selecting the reader based on its extension.
func Read(res *asset.Resource, opts compiler.Options) (*scene.Scene, error) {
	var reader Reader
	switch res.Ext() {
	case ".yaml", ".yml":
		reader = newChartReader(opts)
	case ".zip":
		reader = newZipSceneReader()
	default:
		return nil, fmt.Errorf("readScene: unsupported file format %q", res.Ext())
	}
	return reader.Read(res)
}
