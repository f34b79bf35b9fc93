package mesh

import (
	"hash/fnv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fixed colors for the common CityGML surface vocabulary: roofs orange,
// walls grey, ground chocolate.
var surfacePalette = map[string]colorful.Color{
	"RoofSurface":         {R: 0.6627, G: 0.2627, B: 0.0863},
	"WallSurface":         {R: 0.8314, G: 0.8314, B: 0.8471},
	"GroundSurface":       {R: 0.82, G: 0.41, B: 0.12},
	"OuterCeilingSurface": {R: 0.70, G: 0.35, B: 0.10},
	"OuterFloorSurface":   {R: 0.75, G: 0.55, B: 0.35},
	"Window":              {R: 0.35, G: 0.55, B: 0.85},
	"Door":                {R: 0.45, G: 0.30, B: 0.18},
}

// unknownColor marks faces with no tag set.
var unknownColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ColorBySurface returns a copy with one color per face keyed on the
// semantic surface tag. Untagged faces get the unknown color. Applying it
// again yields the identical color array.
func (m *Mesh) ColorBySurface() *Mesh { return m.colorBy(m.Surface, surfacePalette) }

// ColorByLoD returns a copy colored by the per-face LoD tag.
func (m *Mesh) ColorByLoD() *Mesh { return m.colorBy(m.LoD, nil) }

// ColorByType returns a copy colored by the owning object's type.
func (m *Mesh) ColorByType() *Mesh { return m.colorBy(m.ObjectType, nil) }

func (m *Mesh) colorBy(tags []string, fixed map[string]colorful.Color) *Mesh {
	out := m.clone()
	out.Colors = make([]colorful.Color, len(tags))
	for i, tag := range tags {
		out.Colors[i] = tagColor(tag, fixed)
	}
	return out
}

// tagColor picks the fixed palette entry when one exists, otherwise a
// deterministic hue derived from the tag so equal tags always share a
// color across runs.
func tagColor(tag string, fixed map[string]colorful.Color) colorful.Color {
	if tag == "" {
		return unknownColor
	}
	if c, ok := fixed[tag]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(tag))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsv(hue, 0.65, 0.85)
}
