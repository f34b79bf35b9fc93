package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceRingClosed(t *testing.T) {
	m, _ := buildSample(t)
	r := m.FaceRing(0)
	require.Len(t, r, len(m.Faces[0])+1)
	assert.Equal(t, r[0], r[len(r)-1])
}

func TestBoundMatchesXYExtent(t *testing.T) {
	m, _ := buildSample(t)
	b := m.Bound()
	assert.Equal(t, m.Bounds.Min[0], b.Min[0])
	assert.Equal(t, m.Bounds.Min[1], b.Min[1])
	assert.Equal(t, m.Bounds.Max[0], b.Max[0])
	assert.Equal(t, m.Bounds.Max[1], b.Max[1])
}

func TestFeatureCollection(t *testing.T) {
	m, _ := buildSample(t)
	fc := m.FeatureCollection()
	require.Len(t, fc.Features, m.NumFaces())

	f := fc.Features[0]
	assert.Equal(t, "bridge1", f.Properties["object_id"])
	assert.Equal(t, "Bridge", f.Properties["object_type"])
	assert.Equal(t, "1", f.Properties["lod"])
	_, hasSurface := f.Properties["surface"]
	assert.False(t, hasSurface, "untagged faces omit the surface property")

	roof := fc.Features[2]
	assert.Equal(t, "RoofSurface", roof.Properties["surface"])
}
