package reader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/microsoft/morphcharts-sub001/asset"
	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/log"
)

type zipSceneReader struct {
	logger log.Logger
}

// Create a new zip scene reader
func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read compiled scene from zip file.
func (p *zipSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	p.logger.Noticef(`parsing compiled scene from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := io.ReadAll(sceneRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]byte)
	for _, f := range zr.File {
		switch f.Name {
		case scene.ManifestFile, scene.BvhFile, scene.PrimitivesFile, scene.LookupFile:
		default:
			p.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		entries[f.Name], err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zipSceneReader: failed to load %s: %s", f.Name, err.Error())
		}
	}

	for _, name := range []string{scene.ManifestFile, scene.BvhFile, scene.PrimitivesFile, scene.LookupFile} {
		if _, ok := entries[name]; !ok {
			return nil, fmt.Errorf("zipSceneReader: missing %s", name)
		}
	}

	manifest, err := scene.DecodeManifest(entries[scene.ManifestFile])
	if err != nil {
		return nil, err
	}

	// Buffer sizes are checked against the manifest before any buffer is
	// decoded so a forged count can never drive an allocation.
	bvhData, primData, lookupData := entries[scene.BvhFile], entries[scene.PrimitivesFile], entries[scene.LookupFile]
	nodeCount := uint64(len(bvhData) / scene.NodeStride)
	primCount := uint64(len(primData) / scene.PrimitiveStride)
	lookupCount := uint64(len(lookupData) / 4)
	if nodeCount != uint64(manifest.NodeCount) || lookupCount != uint64(manifest.PrimitiveCount) ||
		(primCount != 0 && primCount != lookupCount) {
		return nil, fmt.Errorf("zipSceneReader: %w (nodes %d/%d, primitives %d/%d, lookup %d/%d)",
			scene.ErrArchiveMismatch, nodeCount, manifest.NodeCount, primCount, manifest.PrimitiveCount,
			lookupCount, manifest.PrimitiveCount)
	}

	sc := &scene.Scene{Info: manifest.BuildInfo()}
	if sc.BvhNodeList, err = scene.DecodeNodes(bvhData); err != nil {
		return nil, err
	}
	if sc.PrimitiveLookup, err = scene.DecodeLookup(lookupData); err != nil {
		return nil, err
	}
	if sc.PrimitiveList, err = scene.DecodePrimitives(primData); err != nil {
		return nil, err
	}

	if err = sc.Validate(); err != nil {
		return nil, err
	}

	p.logger.Noticef("loaded scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}
