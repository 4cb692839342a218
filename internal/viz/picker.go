package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// LaunchFunc builds the live view for a named start.
type LaunchFunc func(name string) (Model, error)

// Picker lists named starts and opens the live view for the chosen one.
// Esc in the live view returns to the list.
type Picker struct {
	items  []string
	info   map[string]string
	cursor int
	launch LaunchFunc
	live   *Model
	err    error
}

func NewPicker(items []string, info map[string]string, launch LaunchFunc) Picker {
	return Picker{items: items, info: info, launch: launch}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.live = nil
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) == 0 {
			return p, nil
		}
		live, err := p.launch(p.items[p.cursor])
		if err != nil {
			p.err = err
			return p, nil
		}
		p.err = nil
		p.live = &live
		return p, live.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("DPEND") + dim.Render("  choose a start") + "\n\n")
	for i, name := range p.items {
		line := fmt.Sprintf("%-12s %s", name, dim.Render(p.info[name]))
		if i == p.cursor {
			s.WriteString(cyan.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + red.Render(p.err.Error()) + "\n")
	}
	s.WriteString("\n" + dim.Render("↑↓:Select Enter:Start Esc:Back Q:Quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}
