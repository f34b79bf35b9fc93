package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"citymesh/internal/mesh"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		p := filepath.Join(m.cwd, name)
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".json" || ext == ".cityjson" {
			items = append(items, fileItem{title: name, desc: ext, path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no CityJSON files in current directory"
	}
}

// setMesh installs a loaded mesh, resetting filter, colors, and viewport.
func (m *Model) setMesh(path string, full *mesh.Mesh, warnings []string) {
	m.selPath = path
	m.full = full
	m.warnings = warnings
	m.types = full.Types()
	m.typeIdx = 0
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.rebuildView()
	m.status = fmt.Sprintf("loaded: %s  objects=%d faces=%d pts=%d",
		filepath.Base(path), len(full.Objects()), full.NumFaces(), full.NumPoints())
	if len(warnings) > 0 {
		m.status += fmt.Sprintf("  warnings=%d", len(warnings))
	}
}

// loadPath loads a CityJSON file into the model. Load failures surface in
// the status line; the previous mesh stays on screen.
func (m *Model) loadPath(p string) {
	ext := strings.ToLower(filepath.Ext(p))
	if ext != ".json" && ext != ".cityjson" {
		m.status = "unsupported file: " + ext
		return
	}
	full, warnings, err := mesh.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.setMesh(p, full, warnings)
	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
