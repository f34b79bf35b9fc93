package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the current mesh
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	// map to bubbles table columns/rows
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Normalize each row to match the number of table columns
	colCount := len(tcols)
	for i := range trows {
		cells := []string(trows[i])
		if len(cells) < colCount {
			pad := make([]string, colCount-len(cells))
			cells = append(cells, pad...)
		} else if len(cells) > colCount {
			cells = cells[:colCount]
		}
		trows[i] = table.Row(cells)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lists the visible city objects as rows: id, type, and
// the union of their CityJSON attribute keys as further columns.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.view == nil {
		return nil, nil
	}
	ids := m.view.Objects()
	if len(ids) == 0 {
		return nil, nil
	}
	var keys []string
	seen := make(map[string]bool)
	for _, id := range ids {
		for k := range m.view.Attrs[id] {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	cols := append([]string{"id", "type"}, keys...)

	// first face of each object determines its displayed type
	typeOf := make(map[string]string)
	for i, id := range m.view.ObjectID {
		if _, ok := typeOf[id]; !ok {
			typeOf[id] = m.view.ObjectType[i]
		}
	}

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		row := make([]string, 0, len(cols))
		row = append(row, id, typeOf[id])
		for _, k := range keys {
			row = append(row, formatAttr(m.view.Attrs[id][k]))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func formatAttr(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
