// Package preview renders a carousel in the terminal so slide order and
// wrap-around can be checked without a browser.
package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flashysurf/internal/ui/carousel"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	slideStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4)
	activeDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("●")
	inactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("○")
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is a bubbletea model driving a carousel.Controller from the keyboard.
type Model struct {
	ctrl     *carousel.Controller
	labels   []string
	width    int
	quitting bool
}

// New builds a model over c. labels[i] names slide i; missing labels fall
// back to the slide number.
func New(c *carousel.Controller, labels []string) Model {
	return Model{ctrl: c, labels: labels}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "left", "h":
			m.ctrl.Prev()
		case "right", "l", " ":
			m.ctrl.Next()
		case "home", "g":
			_ = m.ctrl.GoTo(0)
		case "end", "G":
			_ = m.ctrl.GoTo(m.ctrl.Len() - 1)
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				// Out-of-range digits are ignored.
				_ = m.ctrl.Select(int(key[0] - '1'))
			}
		}
	}
	return m, nil
}

// Current returns the slide on screen.
func (m Model) Current() int { return m.ctrl.Current() }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cur := m.ctrl.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Slide %d/%d", cur+1, m.ctrl.Len())))
	b.WriteString("\n\n")

	slide := slideStyle
	if m.width > 8 {
		slide = slide.Width(m.width - 4)
	}
	b.WriteString(slide.Render(m.label(cur)))
	b.WriteString("\n\n")

	dots := make([]string, m.ctrl.Len())
	for i, on := range m.ctrl.Indicators() {
		if on {
			dots[i] = activeDot
		} else {
			dots[i] = inactiveDot
		}
	}
	b.WriteString(strings.Join(dots, " "))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("←/h prev • →/l next • 1-9 jump • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) label(i int) string {
	if i < len(m.labels) && m.labels[i] != "" {
		return m.labels[i]
	}
	return fmt.Sprintf("Slide %d", i+1)
}
