package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcMapSize()
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; will be refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			m.recalcMapSize()
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "f":
			// cycle object-type filter: all -> each distinct type
			if len(m.types) > 0 {
				m.typeIdx = (m.typeIdx + 1) % (len(m.types) + 1)
				m.rebuildView()
				if f := m.currentFilter(); f != "" {
					m.status = fmt.Sprintf("filter: %s  faces=%d", f, m.view.NumFaces())
				} else {
					m.status = fmt.Sprintf("filter: all  faces=%d", m.view.NumFaces())
				}
			}
		case "c":
			m.mode = (m.mode + 1) % 3
			m.rebuildView()
			m.status = "color by " + m.mode.String()
		case "h":
			m.helpVisible = !m.helpVisible
		case "r":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			x, y, ok := m.inspectNearest()
			if ok {
				name := filepath.Base(m.selPath)
				if name == "" {
					name = "<unsaved>"
				}
				filter := m.currentFilter()
				if filter == "" {
					filter = "all"
				}
				meta := []string{
					fmt.Sprintf("name: %s", name),
					fmt.Sprintf("path: %s", m.selPath),
					fmt.Sprintf("bounds: [%.3f, %.3f, %.3f, %.3f]", m.bound.Min[0], m.bound.Min[1], m.bound.Max[0], m.bound.Max[1]),
					fmt.Sprintf("counts: pts=%d faces=%d", m.view.NumPoints(), m.view.NumFaces()),
					fmt.Sprintf("types: %s", strings.Join(m.types, ", ")),
					fmt.Sprintf("filter: %s  color: %s", filter, m.mode),
					fmt.Sprintf("nearest: x=%.3f y=%.3f", x, y),
					fmt.Sprintf("warnings: %d", len(m.warnings)),
				}
				m.inspectPopup = strings.Join(meta, "\n")
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "no mesh loaded"
				m.status = m.inspectPopup
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			} else if m.inspectPopup != "" {
				m.inspectPopup = ""
			}
		case "esc":
			m.inspectPopup = ""
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		// track hover over map area
		// compute map origin and size (must match View layout)
		sidebarWidth := 0
		if m.showSidebar {
			sidebarWidth = 28
		}
		headerHeight := 1
		footerHeight := 2
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 4 {
			contentHeight = 4
		}
		contentWidth := max(10, m.width)

		// Update list size with accurate content height when sidebar visible
		if m.showSidebar {
			m.l.SetSize(28-2, contentHeight-2)
		}

		mapWidth := contentWidth - sidebarWidth - 1
		if mapWidth < 10 {
			mapWidth = 10
		}
		mapHeight := contentHeight
		mapOriginX := sidebarWidth + func() int {
			if m.showSidebar {
				return 1
			}
			return 0
		}()
		mapOriginY := headerHeight
		// mouse cell within map?
		cx, cy := msg.X, msg.Y
		if cx >= mapOriginX && cx < mapOriginX+mapWidth && cy >= mapOriginY && cy < mapOriginY+mapHeight {
			m.hovering = true
			m.hoverCellX = cx - mapOriginX
			m.hoverCellY = cy - mapOriginY
			// compute world coordinates for the footer
			if x, y, ok := m.cellToXY(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
				m.hoverHasGeo = true
				m.hoverX = x
				m.hoverY = y
			} else {
				m.hoverHasGeo = false
			}
			// find nearest mesh vertex using micro coords
			hxMic := m.hoverCellX * 2
			hyMic := m.hoverCellY * 4
			best := 1<<31 - 1
			bx, by := hxMic, hyMic
			if m.view != nil {
				for _, p := range m.view.Points {
					mx, my, ok := m.screenXYMicro(p[0], p[1], mapWidth, mapHeight)
					if !ok {
						continue
					}
					dx := mx - hxMic
					dy := my - hyMic
					d := dx*dx + dy*dy
					if d < best {
						best = d
						bx, by = mx, my
					}
				}
			}
			m.hoverMicX, m.hoverMicY = bx, by
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}
