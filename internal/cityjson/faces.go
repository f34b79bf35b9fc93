package cityjson

import "strconv"

// Face is a single polygon extracted from a geometry: the outer ring's
// vertex indices plus the tags of the owning geometry.
type Face struct {
	Ring    []int
	Surface string
	LoD     string
}

// Faces flattens the geometry's boundaries into outer-ring faces. Inner
// rings (holes) are dropped and rings with fewer than 3 vertices are
// skipped. Supported geometry types: Solid, MultiSurface,
// CompositeSurface; anything else yields no faces.
func (g *Geometry) Faces() []Face {
	lod := g.lodString()
	names := g.surfaceNames()
	vals := flattenValues(g.semanticValues())

	var faces []Face
	k := 0 // surface counter; advances even for skipped rings so semantics stay aligned
	addSurface := func(v any) {
		ring := outerRing(v)
		if len(ring) >= 3 {
			faces = append(faces, Face{Ring: ring, Surface: surfaceAt(vals, names, k), LoD: lod})
		}
		k++
	}

	switch g.Type {
	case "Solid":
		shells, _ := g.Boundaries.([]any)
		for _, shell := range shells {
			surfs, _ := shell.([]any)
			for _, s := range surfs {
				addSurface(s)
			}
		}
	case "MultiSurface", "CompositeSurface":
		surfs, _ := g.Boundaries.([]any)
		for _, s := range surfs {
			addSurface(s)
		}
	}
	return faces
}

func (g *Geometry) lodString() string {
	switch v := g.LoD.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func (g *Geometry) surfaceNames() []string {
	if g.Semantics == nil {
		return nil
	}
	names := make([]string, len(g.Semantics.Surfaces))
	for i, s := range g.Semantics.Surfaces {
		names[i] = s.Type
	}
	return names
}

func (g *Geometry) semanticValues() any {
	if g.Semantics == nil {
		return nil
	}
	return g.Semantics.Values
}

// surfaceAt resolves the k-th flattened semantics value to a surface name.
// Null values and out-of-range indices map to the empty string.
func surfaceAt(vals []any, names []string, k int) string {
	if k >= len(vals) {
		return ""
	}
	f, ok := vals[k].(float64)
	if !ok {
		return ""
	}
	i := int(f)
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

// flattenValues reduces the semantics values array to a flat slice of
// leaves in depth-first order, matching face iteration order.
func flattenValues(v any) []any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []any
	for _, el := range arr {
		if _, nested := el.([]any); nested {
			out = append(out, flattenValues(el)...)
		} else {
			out = append(out, el)
		}
	}
	return out
}

// outerRing extracts the outer ring of a surface boundary. A surface is
// normally a list of rings; some writers emit a bare ring instead, which
// is accepted too.
func outerRing(v any) []int {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil
	}
	if _, nested := arr[0].([]any); nested {
		return indexRing(arr[0])
	}
	return indexRing(v)
}

func indexRing(v any) []int {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, el := range arr {
		f, ok := el.(float64)
		if !ok {
			return nil
		}
		out = append(out, int(f))
	}
	return out
}
