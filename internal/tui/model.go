package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"citymesh/internal/mesh"
)

type colorMode int

const (
	colorBySurface colorMode = iota
	colorByLoD
	colorByType
)

func (c colorMode) String() string {
	switch c {
	case colorByLoD:
		return "lod"
	case colorByType:
		return "type"
	}
	return "surface"
}

func parseColorMode(s string) colorMode {
	switch s {
	case "lod":
		return colorByLoD
	case "type":
		return colorByType
	}
	return colorBySurface
}

// Options configures the initial viewer state. A preloaded mesh (from the
// CLI preflight) takes precedence over Path.
type Options struct {
	Path       string
	Mesh       *mesh.Mesh
	Warnings   []string
	TypeFilter string
	ColorMode  string
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	// Data
	full     *mesh.Mesh // as loaded, never filtered or colored
	view     *mesh.Mesh // filtered + colored copy used for rendering
	warnings []string
	types    []string // distinct object types of full
	typeIdx  int      // 0 = all, 1.. indexes types
	mode     colorMode
	bound    orb.Bound

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverX      float64
	hoverY      float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "citymesh ready",
		mode:        parseColorMode(opts.ColorMode),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// attributes table setup (columns are inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()

	if opts.Mesh != nil {
		m.setMesh(opts.Path, opts.Mesh, opts.Warnings)
	} else if opts.Path != "" {
		m.loadPath(opts.Path)
	}
	if opts.TypeFilter != "" {
		m.setTypeFilter(opts.TypeFilter)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setTypeFilter positions the filter cycle on the requested object type.
// Unknown types leave the filter on "all".
func (m *Model) setTypeFilter(t string) {
	m.typeIdx = 0
	for i, tt := range m.types {
		if tt == t {
			m.typeIdx = i + 1
			break
		}
	}
	m.rebuildView()
}

// currentFilter reports the active object-type filter, "" meaning all.
func (m *Model) currentFilter() string {
	if m.typeIdx <= 0 || m.typeIdx > len(m.types) {
		return ""
	}
	return m.types[m.typeIdx-1]
}

// rebuildView recomputes the rendered mesh from the loaded one by applying
// the active type filter and color mode.
func (m *Model) rebuildView() {
	if m.full == nil {
		m.view = nil
		return
	}
	v := m.full
	if f := m.currentFilter(); f != "" {
		v = v.FilterByType(f)
	}
	switch m.mode {
	case colorByLoD:
		v = v.ColorByLoD()
	case colorByType:
		v = v.ColorByType()
	default:
		v = v.ColorBySurface()
	}
	m.view = v
	m.bound = v.Bound()
}
