package preview_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashysurf/internal/ui/carousel"
	"flashysurf/internal/ui/preview"
)

func newModel(t *testing.T, n int) preview.Model {
	t.Helper()
	c, err := carousel.New(n)
	require.NoError(t, err)
	return preview.New(c, []string{"Blocker", "Stats", "", "Themes", "Sync"})
}

func press(m preview.Model, msgs ...tea.Msg) (preview.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(preview.Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNavigationKeys(t *testing.T) {
	m := newModel(t, 5)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 4, m.Current(), "left wraps to the last slide")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, m.Current())

	m, _ = press(m, runes("l"), runes("l"), runes("h"))
	assert.Equal(t, 1, m.Current())

	m, _ = press(m, runes("4"))
	assert.Equal(t, 3, m.Current())

	m, _ = press(m, runes("9"))
	assert.Equal(t, 3, m.Current(), "digits past the last slide are ignored")

	m, _ = press(m, runes("G"))
	assert.Equal(t, 4, m.Current())
	m, _ = press(m, runes("g"))
	assert.Equal(t, 0, m.Current())
}

func TestView(t *testing.T) {
	m := newModel(t, 5)
	m, _ = press(m, tea.WindowSizeMsg{Width: 60, Height: 20}, runes("2"))

	out := m.View()
	assert.Contains(t, out, "Slide 2/5")
	assert.Contains(t, out, "Stats")
	assert.Equal(t, 1, strings.Count(out, "●"))
	assert.Equal(t, 4, strings.Count(out, "○"))

	m, _ = press(m, runes("3"))
	assert.Contains(t, m.View(), "Slide 3", "unlabelled slides fall back to their number")
}

func TestQuit(t *testing.T) {
	m := newModel(t, 2)
	m, cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
