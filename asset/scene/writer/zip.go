package writer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/log"
)

type zipSceneWriter struct {
	logger   log.Logger
	filename string
}

// Create a new zip scene writer.
func newZipSceneWriter(filename string) *zipSceneWriter {
	return &zipSceneWriter{
		logger:   log.New("zip writer"),
		filename: filename,
	}
}

// Write compiled scene to a zip file.
func (w *zipSceneWriter) Write(sc *scene.Scene) error {
	w.logger.Noticef(`writing compiled scene to "%s"`, w.filename)
	start := time.Now()

	f, err := os.Create(w.filename)
	if err != nil {
		return err
	}

	err = WriteArchive(f, sc)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(w.filename)
		return err
	}

	w.logger.Noticef("wrote scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Write the compiled scene buffers as a zip archive to out.
func WriteArchive(out io.Writer, sc *scene.Scene) error {
	manifest, err := scene.EncodeManifest(sc.Manifest())
	if err != nil {
		return err
	}
	nodes, err := scene.EncodeNodes(sc.BvhNodeList)
	if err != nil {
		return err
	}
	prims, err := scene.EncodePrimitives(sc.PrimitiveList)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	entries := []struct {
		name string
		data []byte
	}{
		{scene.ManifestFile, manifest},
		{scene.BvhFile, nodes},
		{scene.PrimitivesFile, prims},
		{scene.LookupFile, scene.EncodeLookup(sc.PrimitiveLookup)},
	}
	for _, entry := range entries {
		fw, err := zw.Create(entry.name)
		if err != nil {
			return err
		}
		if _, err = fw.Write(entry.data); err != nil {
			return fmt.Errorf("zipSceneWriter: failed to write %s: %s", entry.name, err.Error())
		}
	}
	return zw.Close()
}
