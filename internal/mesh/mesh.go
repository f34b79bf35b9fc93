package mesh

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"citymesh/internal/cityjson"
)

// Bounds is the axis-aligned 3D extent of a mesh.
type Bounds struct {
	Min [3]float64
	Max [3]float64
}

// Mesh is a polygonal mesh with one attribute entry per face. It is built
// once from a document and treated as immutable afterwards; filtering and
// coloring return derived copies.
type Mesh struct {
	Points [][3]float64
	Faces  [][]int

	// Per-face attributes, all parallel to Faces.
	ObjectID   []string
	ObjectType []string
	Surface    []string
	LoD        []string
	Colors     []colorful.Color // nil until a colorizer ran

	// Attrs maps object ids to their CityJSON attribute maps. Only objects
	// that contributed faces and carry attributes appear here.
	Attrs map[string]map[string]any

	Bounds Bounds
}

// Load reads a CityJSON file and converts it into a mesh. Warnings report
// skipped objects and geometries; the load itself continues past them.
func Load(path string) (*Mesh, []string, error) {
	doc, err := cityjson.Load(path)
	if err != nil {
		return nil, nil, err
	}
	m, warnings := Build(doc)
	return m, warnings, nil
}

// Build converts a parsed document into a mesh. Vertices are compacted to
// the referenced set so point count equals the union of used indices.
// Objects are visited in sorted id order so face order is deterministic.
func Build(doc *cityjson.Document) (*Mesh, []string) {
	m := &Mesh{Attrs: make(map[string]map[string]any)}
	var warnings []string

	ids := make([]string, 0, len(doc.Objects))
	for id := range doc.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	remap := make(map[int]int)
	lookup := func(vi int) int {
		ni, ok := remap[vi]
		if !ok {
			ni = len(m.Points)
			remap[vi] = ni
			m.Points = append(m.Points, doc.Vertices[vi])
		}
		return ni
	}

	for _, id := range ids {
		obj := doc.Objects[id]
		if len(obj.Geometry) == 0 {
			warnings = append(warnings, fmt.Sprintf("object %s: no geometry, skipped", id))
			continue
		}
		objType := obj.Type
		if objType == "" {
			objType = "Unknown"
		}
		faceCountBefore := len(m.Faces)
		for _, g := range obj.Geometry {
			if !supportedGeometry(g.Type) {
				warnings = append(warnings, fmt.Sprintf("object %s: unsupported geometry type %s, skipped", id, g.Type))
				continue
			}
			for _, f := range g.Faces() {
				if !validRing(f.Ring, len(doc.Vertices)) {
					warnings = append(warnings, fmt.Sprintf("object %s: face with out-of-range vertex index, skipped", id))
					continue
				}
				ring := make([]int, len(f.Ring))
				for j, vi := range f.Ring {
					ring[j] = lookup(vi)
				}
				m.Faces = append(m.Faces, ring)
				m.ObjectID = append(m.ObjectID, id)
				m.ObjectType = append(m.ObjectType, objType)
				m.Surface = append(m.Surface, f.Surface)
				m.LoD = append(m.LoD, f.LoD)
			}
		}
		if len(m.Faces) > faceCountBefore && len(obj.Attributes) > 0 {
			m.Attrs[id] = obj.Attributes
		}
	}
	m.computeBounds()
	return m, warnings
}

func supportedGeometry(t string) bool {
	switch t {
	case "Solid", "MultiSurface", "CompositeSurface":
		return true
	}
	return false
}

func validRing(ring []int, n int) bool {
	for _, vi := range ring {
		if vi < 0 || vi >= n {
			return false
		}
	}
	return true
}

// NumPoints reports the vertex count.
func (m *Mesh) NumPoints() int { return len(m.Points) }

// NumFaces reports the face count.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// Types returns the distinct object types present, sorted.
func (m *Mesh) Types() []string { return distinct(m.ObjectType) }

// Objects returns the distinct object ids present, sorted.
func (m *Mesh) Objects() []string { return distinct(m.ObjectID) }

// SurfaceTypes returns the distinct non-empty semantic surface tags, sorted.
func (m *Mesh) SurfaceTypes() []string { return distinct(m.Surface) }

// LoDs returns the distinct non-empty LoD tags, sorted.
func (m *Mesh) LoDs() []string { return distinct(m.LoD) }

func distinct(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func (m *Mesh) computeBounds() {
	if len(m.Points) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: m.Points[0], Max: m.Points[0]}
	for _, p := range m.Points[1:] {
		for k := 0; k < 3; k++ {
			if p[k] < b.Min[k] {
				b.Min[k] = p[k]
			}
			if p[k] > b.Max[k] {
				b.Max[k] = p[k]
			}
		}
	}
	m.Bounds = b
}

// clone copies the mesh header and attribute slices. Face rings and points
// are shared; meshes are never mutated in place.
func (m *Mesh) clone() *Mesh {
	out := &Mesh{
		Points:     m.Points,
		Faces:      m.Faces,
		ObjectID:   m.ObjectID,
		ObjectType: m.ObjectType,
		Surface:    m.Surface,
		LoD:        m.LoD,
		Attrs:      m.Attrs,
		Bounds:     m.Bounds,
	}
	if m.Colors != nil {
		out.Colors = append([]colorful.Color(nil), m.Colors...)
	}
	return out
}
