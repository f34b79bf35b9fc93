package tui

import "github.com/charmbracelet/lipgloss"

type brailleBuf struct {
	w, h    int       // in cells
	m       [][]uint8 // per-cell 8-bit mask
	c       [][]int   // per-cell palette index, -1 when unset
	palette []lipgloss.Style
	colors  map[string]int // hex -> palette index
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]int, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]int, w)
		for j := range c[i] {
			c[i][j] = -1
		}
	}
	return &brailleBuf{w: w, h: h, m: m, c: c, colors: make(map[string]int)}
}

// colorIndex interns a hex color into the buffer palette.
func (b *brailleBuf) colorIndex(hex string) int {
	if ci, ok := b.colors[hex]; ok {
		return ci
	}
	ci := len(b.palette)
	b.palette = append(b.palette, lipgloss.NewStyle().Foreground(lipgloss.Color(hex)))
	b.colors[hex] = ci
	return ci
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell). The cell
// takes the color of the last pixel drawn into it.
func (b *brailleBuf) setPixel(mx, my, ci int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.c[cy][cx] = ci
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1, ci int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, ci)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// toLines renders the buffer as one string per row, styling runs of
// same-colored cells together to keep the ANSI overhead low.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var line string
		x := 0
		for x < b.w {
			ci := b.c[y][x]
			run := make([]rune, 0, b.w-x)
			for x < b.w && b.c[y][x] == ci {
				mask := b.m[y][x]
				if mask == 0 {
					run = append(run, ' ')
				} else {
					run = append(run, rune(0x2800+int(mask)))
				}
				x++
			}
			if ci >= 0 && ci < len(b.palette) {
				line += b.palette[ci].Render(string(run))
			} else {
				line += string(run)
			}
		}
		out[y] = line
	}
	return out
}

// cellRune returns the bare braille rune at a cell, ' ' when empty.
func (b *brailleBuf) cellRune(x, y int) rune {
	if y < 0 || y >= b.h || x < 0 || x >= b.w {
		return ' '
	}
	mask := b.m[y][x]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
