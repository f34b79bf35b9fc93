package cityjson

import (
	"encoding/json"
	"os"
	"strings"
)

// Transform holds the vertex quantization of a CityJSON 1.1 document
// (vertices are stored as integers, real coordinates are v*scale+translate).
type Transform struct {
	Scale     [3]float64 `json:"scale"`
	Translate [3]float64 `json:"translate"`
}

// SurfaceType is one entry of a geometry's semantics.surfaces array.
type SurfaceType struct {
	Type string `json:"type"`
}

// Semantics carries the semantic-surface tagging of a geometry. Values is
// kept untyped because its nesting mirrors the boundaries array (one level
// per geometry rank) and entries may be null.
type Semantics struct {
	Surfaces []SurfaceType `json:"surfaces"`
	Values   any           `json:"values"`
}

// Geometry is one boundary representation of a city object. Boundaries is
// kept untyped: the nesting depth depends on Type (MultiSurface rings are
// two levels deep, Solid shells three).
type Geometry struct {
	Type       string     `json:"type"`
	LoD        any        `json:"lod"`
	Boundaries any        `json:"boundaries"`
	Semantics  *Semantics `json:"semantics"`
}

// Object is a single city object (Building, Bridge, ...).
type Object struct {
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
	Geometry   []Geometry     `json:"geometry"`
}

// Document is a parsed CityJSON file with the transform already applied
// to Vertices.
type Document struct {
	Type      string            `json:"type"`
	Version   string            `json:"version"`
	Transform *Transform        `json:"transform"`
	Vertices  [][3]float64      `json:"vertices"`
	Objects   map[string]Object `json:"CityObjects"`
}

// Load reads and validates a CityJSON document. Documents whose type is
// not "CityJSON" or whose version is outside the 1.x line are rejected
// with a ParseError.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "read failed", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes and validates raw CityJSON bytes. The path is only used
// for error reporting.
func Parse(path string, data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Reason: "malformed json", Err: err}
	}
	if doc.Type != "CityJSON" {
		return nil, &ParseError{Path: path, Reason: "not a CityJSON document (type=" + doc.Type + ")"}
	}
	if doc.Version != "" && !strings.HasPrefix(doc.Version, "1.") {
		return nil, &ParseError{Path: path, Reason: "unsupported version " + doc.Version}
	}
	doc.applyTransform()
	return &doc, nil
}

// applyTransform rescales quantized vertices into world coordinates and
// drops the transform so it cannot be applied twice.
func (d *Document) applyTransform() {
	if d.Transform == nil {
		return
	}
	t := d.Transform
	for i, v := range d.Vertices {
		d.Vertices[i] = [3]float64{
			v[0]*t.Scale[0] + t.Translate[0],
			v[1]*t.Scale[1] + t.Translate[1],
			v[2]*t.Scale[2] + t.Translate[2],
		}
	}
	d.Transform = nil
}
