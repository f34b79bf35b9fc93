package mesh

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FaceRing projects face i onto the XY plane as a closed orb ring.
func (m *Mesh) FaceRing(i int) orb.Ring {
	f := m.Faces[i]
	r := make(orb.Ring, 0, len(f)+1)
	for _, vi := range f {
		p := m.Points[vi]
		r = append(r, orb.Point{p[0], p[1]})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// Bound is the 2D ground extent of the mesh.
func (m *Mesh) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{m.Bounds.Min[0], m.Bounds.Min[1]},
		Max: orb.Point{m.Bounds.Max[0], m.Bounds.Max[1]},
	}
}

// FeatureCollection exports every face footprint as a GeoJSON polygon
// feature carrying the face attributes as properties.
func (m *Mesh) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range m.Faces {
		f := geojson.NewFeature(orb.Polygon{m.FaceRing(i)})
		f.Properties["object_id"] = m.ObjectID[i]
		f.Properties["object_type"] = m.ObjectType[i]
		if m.Surface[i] != "" {
			f.Properties["surface"] = m.Surface[i]
		}
		if m.LoD[i] != "" {
			f.Properties["lod"] = m.LoD[i]
		}
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes the footprint feature collection to path.
func (m *Mesh) WriteGeoJSON(path string) error {
	data, err := json.Marshal(m.FeatureCollection())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
