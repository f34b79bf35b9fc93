package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citymesh/internal/cityjson"
)

// sampleDoc: a cube building with semantics, a flat bridge deck, an object
// without geometry, and one vertex (index 12) no face references.
const sampleDoc = `{
  "type": "CityJSON",
  "version": "1.1",
  "vertices": [
    [0,0,0],[1,0,0],[1,1,0],[0,1,0],
    [0,0,1],[1,0,1],[1,1,1],[0,1,1],
    [2,0,0],[3,0,0],[3,1,0],[2,1,0],
    [99,99,99]
  ],
  "CityObjects": {
    "building1": {
      "type": "Building",
      "attributes": {"yearBuilt": 1999},
      "geometry": [{
        "type": "Solid",
        "lod": 2,
        "boundaries": [[
          [[0,1,2,3]],
          [[4,5,6,7]],
          [[0,1,5,4]],
          [[2,3,7,6]],
          [[0,3,7,4]],
          [[1,2,6,5]]
        ]],
        "semantics": {
          "surfaces": [{"type": "GroundSurface"}, {"type": "RoofSurface"}, {"type": "WallSurface"}],
          "values": [[0,1,2,2,2,2]]
        }
      }]
    },
    "bridge1": {
      "type": "Bridge",
      "geometry": [{
        "type": "MultiSurface",
        "lod": 1,
        "boundaries": [[[8,9,10,11]]]
      }]
    },
    "stub1": {
      "type": "Building",
      "geometry": []
    }
  }
}`

func buildSample(t *testing.T) (*Mesh, []string) {
	t.Helper()
	doc, err := cityjson.Parse("mem", []byte(sampleDoc))
	require.NoError(t, err)
	return Build(doc)
}

func TestBuildCounts(t *testing.T) {
	m, _ := buildSample(t)
	assert.Equal(t, 7, m.NumFaces())
	// vertex 12 is never referenced: point count equals the union of
	// referenced indices
	assert.Equal(t, 12, m.NumPoints())
	assert.Len(t, m.ObjectID, 7)
	assert.Len(t, m.ObjectType, 7)
	assert.Len(t, m.Surface, 7)
	assert.Len(t, m.LoD, 7)
	assert.Nil(t, m.Colors)
}

func TestBuildAttributesAndTags(t *testing.T) {
	m, _ := buildSample(t)
	assert.Equal(t, []string{"Bridge", "Building"}, m.Types())
	assert.Equal(t, []string{"bridge1", "building1"}, m.Objects())
	assert.Equal(t, []string{"GroundSurface", "RoofSurface", "WallSurface"}, m.SurfaceTypes())
	assert.Equal(t, []string{"1", "2"}, m.LoDs())
	require.Contains(t, m.Attrs, "building1")
	assert.Equal(t, float64(1999), m.Attrs["building1"]["yearBuilt"])
}

func TestBuildWarnsOnMissingGeometry(t *testing.T) {
	_, warnings := buildSample(t)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "stub1")
	assert.Contains(t, warnings[0], "no geometry")
}

func TestBuildWarnsOnUnsupportedGeometry(t *testing.T) {
	doc, err := cityjson.Parse("mem", []byte(`{
	  "type": "CityJSON",
	  "version": "1.0",
	  "vertices": [[0,0,0]],
	  "CityObjects": {
	    "pt1": {"type": "CityFurniture", "geometry": [{"type": "MultiPoint", "boundaries": [0]}]}
	  }
	}`))
	require.NoError(t, err)
	m, warnings := Build(doc)
	assert.Zero(t, m.NumFaces())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unsupported geometry type MultiPoint")
}

func TestBuildSkipsOutOfRangeIndices(t *testing.T) {
	doc, err := cityjson.Parse("mem", []byte(`{
	  "type": "CityJSON",
	  "version": "1.0",
	  "vertices": [[0,0,0],[1,0,0],[1,1,0]],
	  "CityObjects": {
	    "b1": {"type": "Building", "geometry": [
	      {"type": "MultiSurface", "boundaries": [[[0,1,2]], [[0,1,9]]]}
	    ]}
	  }
	}`))
	require.NoError(t, err)
	m, warnings := Build(doc)
	assert.Equal(t, 1, m.NumFaces())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "out-of-range")
}

func TestBuildDefaultsMissingTypeToUnknown(t *testing.T) {
	doc, err := cityjson.Parse("mem", []byte(`{
	  "type": "CityJSON",
	  "version": "1.0",
	  "vertices": [[0,0,0],[1,0,0],[1,1,0]],
	  "CityObjects": {
	    "anon1": {"geometry": [{"type": "MultiSurface", "boundaries": [[[0,1,2]]]}]}
	  }
	}`))
	require.NoError(t, err)
	m, warnings := Build(doc)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"Unknown"}, m.Types())
	assert.Equal(t, 1, m.FilterByType("Unknown").NumFaces())
}

func TestBuildEmptyDocument(t *testing.T) {
	doc, err := cityjson.Parse("mem", []byte(`{
	  "type": "CityJSON", "version": "1.1", "vertices": [], "CityObjects": {}
	}`))
	require.NoError(t, err)
	m, warnings := Build(doc)
	assert.Zero(t, m.NumPoints())
	assert.Zero(t, m.NumFaces())
	assert.Empty(t, warnings)
}

func TestBounds(t *testing.T) {
	m, _ := buildSample(t)
	assert.Equal(t, [3]float64{0, 0, 0}, m.Bounds.Min)
	// the unreferenced [99,99,99] vertex must not widen the bounds
	assert.Equal(t, [3]float64{3, 1, 1}, m.Bounds.Max)
}

func TestFilterByType(t *testing.T) {
	m, _ := buildSample(t)

	buildings := m.FilterByType("Building")
	assert.Equal(t, 6, buildings.NumFaces())
	assert.Equal(t, 8, buildings.NumPoints())
	assert.Equal(t, []string{"Building"}, buildings.Types())
	require.Contains(t, buildings.Attrs, "building1")
	assert.NotContains(t, buildings.Attrs, "bridge1")

	bridges := m.FilterByType("Bridge")
	assert.Equal(t, 1, bridges.NumFaces())
	assert.Equal(t, 4, bridges.NumPoints())
}

func TestFilterNoMatchReturnsEmptyMesh(t *testing.T) {
	m, _ := buildSample(t)
	tunnels := m.FilterByType("Tunnel")
	require.NotNil(t, tunnels)
	assert.Zero(t, tunnels.NumFaces())
	assert.Zero(t, tunnels.NumPoints())
}

func TestFilterIsCaseSensitive(t *testing.T) {
	m, _ := buildSample(t)
	assert.Zero(t, m.FilterByType("building").NumFaces())
}

func TestFilterRoundTrip(t *testing.T) {
	m, _ := buildSample(t)
	total := 0
	for _, typ := range m.Types() {
		total += m.FilterByType(typ).NumFaces()
	}
	assert.Equal(t, m.NumFaces(), total)
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	m, _ := buildSample(t)
	before := m.NumFaces()
	_ = m.FilterByType("Building")
	assert.Equal(t, before, m.NumFaces())
	assert.Equal(t, 12, m.NumPoints())
}

func TestWriteGeoJSON(t *testing.T) {
	m, _ := buildSample(t)
	path := filepath.Join(t.TempDir(), "footprints.geojson")
	require.NoError(t, m.WriteGeoJSON(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
	assert.Contains(t, string(data), "building1")
}
