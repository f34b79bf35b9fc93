package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var hoverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))

func (m Model) validBound() bool {
	return m.bound.Max[0] > m.bound.Min[0] && m.bound.Max[1] > m.bound.Min[1]
}

// cellToXY converts a map cell coordinate back to world x/y using the
// bound, zoom, and pan.
func (m Model) cellToXY(cx, cy, w, h int) (float64, float64, bool) {
	if !m.validBound() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	x := m.bound.Min[0] + nx*(m.bound.Max[0]-m.bound.Min[0])
	y := m.bound.Min[1] + ny*(m.bound.Max[1]-m.bound.Min[1])
	return x, y, true
}

// renderCanvas draws the mesh top-down onto a braille microgrid, one
// filled polygon per face, colored from the mesh color array.
func (m Model) renderCanvas(w, h int) string {
	br := newBrailleBuf(w, h)
	if m.view != nil && m.validBound() {
		// painter's order: lower faces first so roofs overdraw ground
		order := make([]int, m.view.NumFaces())
		zmean := make([]float64, len(order))
		for i, f := range m.view.Faces {
			order[i] = i
			var z float64
			for _, vi := range f {
				z += m.view.Points[vi][2]
			}
			if len(f) > 0 {
				z /= float64(len(f))
			}
			zmean[i] = z
		}
		sort.SliceStable(order, func(a, b int) bool { return zmean[order[a]] < zmean[order[b]] })

		for _, fi := range order {
			ci := br.colorIndex(m.faceHex(fi))
			ring := m.view.Faces[fi]
			mic := make([][2]int, 0, len(ring))
			for _, vi := range ring {
				p := m.view.Points[vi]
				mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
				if !ok {
					continue
				}
				mic = append(mic, [2]int{mx, my})
			}
			if len(mic) < 3 {
				continue
			}
			fillRing(br, mic, h*4, ci)
			for i := 0; i < len(mic); i++ {
				a := mic[i]
				b := mic[(i+1)%len(mic)]
				br.drawLineMicro(a[0], a[1], b[0], b[1], ci)
			}
		}
	}

	if !m.hovering {
		return strings.Join(br.toLines(), "\n")
	}

	// assemble rows, substituting the hover marker cell
	hx, hy := m.hoverMicX/2, m.hoverMicY/4
	var sb strings.Builder
	for y := 0; y < h; y++ {
		x := 0
		for x < w {
			if y == hy && x == hx {
				sb.WriteString(hoverStyle.Render("◯"))
				x++
				continue
			}
			ci := br.c[y][x]
			var run []rune
			for x < w && br.c[y][x] == ci && !(y == hy && x == hx) {
				run = append(run, br.cellRune(x, y))
				x++
			}
			if ci >= 0 {
				sb.WriteString(br.palette[ci].Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
		}
		if y < h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// faceHex returns the lipgloss hex color of a face, falling back to the
// accent color when no colorizer ran.
func (m Model) faceHex(i int) string {
	if m.view == nil || m.view.Colors == nil || i >= len(m.view.Colors) {
		return "#7C3AED"
	}
	return m.view.Colors[i].Hex()
}

// fillRing scanline-fills a ring on the microgrid using the even-odd rule.
func fillRing(br *brailleBuf, ring [][2]int, hMic, ci int) {
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		if len(xs) >= 2 {
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				xstart, xend := xs[i], xs[i+1]
				if xstart > xend {
					xstart, xend = xend, xstart
				}
				for x := max(0, xstart); x <= xend; x++ {
					br.setPixel(x, yMic, ci)
				}
			}
		}
	}
}

// screenXYMicro maps world x/y into a 2x4 microgrid per cell for braille
// rendering.
func (m Model) screenXYMicro(x, y float64, w, h int) (int, int, bool) {
	if !m.validBound() {
		return 0, 0, false
	}
	nx := (x - m.bound.Min[0]) / (m.bound.Max[0] - m.bound.Min[0])
	ny := (y - m.bound.Min[1]) / (m.bound.Max[1] - m.bound.Min[1])
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps world x/y to screen cell coordinates considering zoom and pan.
func (m Model) screenXY(x, y float64, w, h int) (int, int, bool) {
	if !m.validBound() {
		return 0, 0, false
	}
	nx := (x - m.bound.Min[0]) / (m.bound.Max[0] - m.bound.Min[0])
	ny := (y - m.bound.Min[1]) / (m.bound.Max[1] - m.bound.Min[1])
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// inspectNearest finds the mesh vertex closest to the viewport center.
func (m Model) inspectNearest() (x, y float64, ok bool) {
	if m.view == nil || m.view.NumPoints() == 0 {
		return 0, 0, false
	}
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	var best [3]float64
	for _, p := range m.view.Points {
		sx, sy, ok2 := m.screenXY(p[0], p[1], w, h)
		if !ok2 {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if d < bestD {
			bestD = d
			best = p
		}
	}
	if bestD == 1<<31-1 {
		return 0, 0, false
	}
	return best[0], best[1], true
}
