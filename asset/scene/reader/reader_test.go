package reader

import (
	"archive/zip"
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/microsoft/morphcharts-sub001/asset"
	"github.com/microsoft/morphcharts-sub001/asset/compiler"
	"github.com/microsoft/morphcharts-sub001/asset/compiler/bvh"
	"github.com/microsoft/morphcharts-sub001/asset/scene"
	"github.com/microsoft/morphcharts-sub001/asset/scene/writer"
	"github.com/microsoft/morphcharts-sub001/types"
	"github.com/stretchr/testify/require"
)

const gridChart = `
name: grid
primitives:
  - kind: sphere
    center: [0, 0, 0]
    radius: 0.5
  - kind: cuboid
    center: [10, 0, 0]
    size: [1, 1, 1]
  - kind: cylinder
    center: [0, 10, 0]
    radius: 0.5
    height: 1
  - kind: box
    center: [10, 10, 0]
    size: [1, 1, 1]
`

func writeFile(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestReadChart(t *testing.T) {
	res := asset.NewResourceFromStream("grid.yaml", strings.NewReader(gridChart))
	parsed, err := ReadChart(res)
	require.NoError(t, err)

	require.Equal(t, "grid", parsed.Name)
	require.Len(t, parsed.Primitives, 4)
	require.Equal(t, scene.CylinderPrimitive, parsed.Primitives[2].Kind)
	require.Equal(t, types.XYZ(0.5, 1, 0), parsed.Primitives[2].Dimensions)
	require.Equal(t, scene.CuboidPrimitive, parsed.Primitives[3].Kind)
}

func TestReadChartErrors(t *testing.T) {
	specs := map[string]string{
		"unknown kind":  "primitives:\n  - kind: torus\n",
		"negative size": "primitives:\n  - kind: sphere\n    radius: -2\n",
		"unknown field": "primitives:\n  - kind: sphere\n    colour: red\n",
		"bad yaml":      "primitives: [",
	}

	for name, payload := range specs {
		res := asset.NewResourceFromStream("bad.yaml", strings.NewReader(payload))
		if _, err := ReadChart(res); err == nil {
			t.Errorf("[%s] expected an error", name)
		}
	}
}

func TestCompileWriteAndReadBack(t *testing.T) {
	chartPath := writeFile(t, "grid.yaml", gridChart)

	sc, err := ReadScene(chartPath, compiler.Options{SplitMethod: bvh.EqualCounts, MaxPrimsPerLeaf: 1})
	require.NoError(t, err)
	require.Len(t, sc.BvhNodeList, 7)
	require.NoError(t, sc.Validate())

	zipPath := filepath.Join(t.TempDir(), "grid.zip")
	require.NoError(t, writer.WriteScene(sc, zipPath))

	loaded, err := ReadScene(zipPath, compiler.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, sc.BvhNodeList, loaded.BvhNodeList)
	require.Equal(t, sc.PrimitiveList, loaded.PrimitiveList)
	require.Equal(t, sc.PrimitiveLookup, loaded.PrimitiveLookup)
	require.Equal(t, sc.Info.ID, loaded.Info.ID)
	require.Equal(t, sc.Info.SplitMethod, loaded.Info.SplitMethod)
}

func TestReadEmptyChartRoundTrip(t *testing.T) {
	chartPath := writeFile(t, "empty.yml", "name: empty\nprimitives: []\n")

	sc, err := ReadScene(chartPath, compiler.DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, sc.BvhNodeList)

	zipPath := filepath.Join(t.TempDir(), "empty.zip")
	require.NoError(t, writer.WriteScene(sc, zipPath))

	loaded, err := ReadScene(zipPath, compiler.DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, loaded.BvhNodeList)
	require.Empty(t, loaded.PrimitiveLookup)
}

func TestReadZipMissingEntries(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "broken.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create(scene.ManifestFile)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ReadScene(zipPath, compiler.DefaultOptions())
	require.Error(t, err)
}

func TestUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "scene.obj", "v 0 0 0\n")
	_, err := ReadScene(path, compiler.DefaultOptions())
	require.Error(t, err)
}

func buildArchive(t *testing.T, m scene.Manifest, entries map[string][]byte) *asset.Resource {
	t.Helper()
	manifest, err := scene.EncodeManifest(m)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{scene.ManifestFile, scene.BvhFile, scene.PrimitivesFile, scene.LookupFile} {
		data := entries[name]
		if name == scene.ManifestFile {
			data = manifest
		}
		fw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return asset.NewResourceFromStream("forged.zip", bytes.NewReader(buf.Bytes()))
}

func TestReadZipRejectsForgedCounts(t *testing.T) {
	m := (&scene.Scene{}).Manifest()
	m.PrimitiveCount = math.MaxUint32
	m.NodeCount = math.MaxUint32

	_, err := Read(buildArchive(t, m, nil), compiler.DefaultOptions())
	require.ErrorIs(t, err, scene.ErrArchiveMismatch)

	// Lookup and manifest agree but the primitive records are short.
	prims, err := scene.EncodePrimitives([]scene.Primitive{{Type: scene.SpherePrimitive}})
	require.NoError(t, err)
	m = (&scene.Scene{PrimitiveLookup: []uint32{0, 1}}).Manifest()
	_, err = Read(buildArchive(t, m, map[string][]byte{
		scene.PrimitivesFile: prims,
		scene.LookupFile:     scene.EncodeLookup([]uint32{0, 1}),
	}), compiler.DefaultOptions())
	require.ErrorIs(t, err, scene.ErrArchiveMismatch)
}
