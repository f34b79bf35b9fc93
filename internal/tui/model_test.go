package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowSizePersistsMapSize(t *testing.T) {
	m := New(Options{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, ok := next.(Model)
	require.True(t, ok)
	assert.Equal(t, 99, m.mapW) // full width minus the map gutter
	assert.Equal(t, 37, m.mapH) // height minus header and footer

	// toggling the sidebar shrinks the map by the sidebar column
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	assert.Equal(t, 71, m.mapW)
	assert.Equal(t, 37, m.mapH)
}

func TestMapSizeClampsTinyWindows(t *testing.T) {
	m := New(Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 5, Height: 3})
	m = next.(Model)
	assert.Equal(t, 10, m.mapW)
	assert.Equal(t, 4, m.mapH)
}
