package mesh

// FilterByType returns a new mesh containing only faces whose owning
// object's type equals t (case-sensitive exact match). No match yields an
// empty mesh, not an error.
func (m *Mesh) FilterByType(t string) *Mesh {
	var keep []int
	for i, ot := range m.ObjectType {
		if ot == t {
			keep = append(keep, i)
		}
	}
	return m.extract(keep)
}

// extract builds a derived mesh from the selected face indices, compacting
// vertices to the referenced set. Colors carry over when present.
func (m *Mesh) extract(faceIdx []int) *Mesh {
	out := &Mesh{}
	remap := make(map[int]int)
	for _, fi := range faceIdx {
		ring := make([]int, len(m.Faces[fi]))
		for j, vi := range m.Faces[fi] {
			ni, ok := remap[vi]
			if !ok {
				ni = len(out.Points)
				remap[vi] = ni
				out.Points = append(out.Points, m.Points[vi])
			}
			ring[j] = ni
		}
		out.Faces = append(out.Faces, ring)
		out.ObjectID = append(out.ObjectID, m.ObjectID[fi])
		out.ObjectType = append(out.ObjectType, m.ObjectType[fi])
		out.Surface = append(out.Surface, m.Surface[fi])
		out.LoD = append(out.LoD, m.LoD[fi])
		if m.Colors != nil {
			out.Colors = append(out.Colors, m.Colors[fi])
		}
	}
	if len(m.Attrs) > 0 {
		out.Attrs = make(map[string]map[string]any)
		for _, id := range out.ObjectID {
			if a, ok := m.Attrs[id]; ok {
				out.Attrs[id] = a
			}
		}
	}
	out.computeBounds()
	return out
}
